package cache

import (
	"context"
	"errors"
	"fmt"
)

// GetAs extracts a typed value from an entry snapshot. The entry's error,
// if any, takes precedence over type extraction.
func GetAs[T any](e Entry) (T, error) {
	var zero T
	if e.Err != nil {
		return zero, e.Err
	}
	v, ok := e.Data.(T)
	if !ok {
		return zero, errors.Join(ErrTypeMismatch, fmt.Errorf("want %T, have %T", zero, e.Data))
	}
	return v, nil
}

// Fetch is the typed counterpart of Cache.Query: it runs a cached query
// and returns the entry's value as T.
func Fetch[T any](ctx context.Context, c *Cache, endpoint string, args any, fn func(ctx context.Context) (T, []Tag, error)) (T, error) {
	entry, err := c.Query(ctx, endpoint, args, func(ctx context.Context) (any, []Tag, error) {
		v, tags, err := fn(ctx)
		if err != nil {
			return nil, nil, err
		}
		return v, tags, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return GetAs[T](entry)
}

// Exec is the typed counterpart of Cache.Mutate: it runs an uncached write
// and invalidates the declared tags on completion.
func Exec[T any](ctx context.Context, c *Cache, do func(ctx context.Context) (T, error), invalidates func(result T, err error) []Tag) (T, error) {
	result, err := c.Mutate(ctx, func(ctx context.Context) (any, error) {
		v, err := do(ctx)
		if err != nil {
			return nil, err
		}
		return v, nil
	}, func(result any, err error) []Tag {
		if invalidates == nil {
			return nil
		}
		typed, _ := result.(T)
		return invalidates(typed, err)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, _ := result.(T)
	return typed, nil
}
