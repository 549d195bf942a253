package marketplace

import (
	"context"
	"fmt"

	"github.com/pharmakit/backoffice/core/cache"
)

type categoryNameRequest struct {
	Name string `json:"name"`
}

// Categories returns every category projected into select-list options,
// cached with per-item tags plus the category list tag.
func (c *Client) Categories(ctx context.Context) ([]CategoryOption, error) {
	return cache.Fetch(ctx, c.cache, epCategories, nil, func(ctx context.Context) ([]CategoryOption, []cache.Tag, error) {
		var categories []Category
		if err := c.api.Get(ctx, "/product-category", &categories); err != nil {
			return nil, nil, err
		}
		options := make([]CategoryOption, 0, len(categories))
		tags := make([]cache.Tag, 0, len(categories)+1)
		for _, cat := range categories {
			options = append(options, CategoryOption{Value: cat.ID, Label: cat.Name})
			tags = append(tags, cache.NewTag(TagCategory, cat.ID))
		}
		return options, append(tags, cache.List(TagCategory)), nil
	})
}

// CreateCategory adds a category and invalidates the category list.
func (c *Client) CreateCategory(ctx context.Context, name string) (Category, error) {
	return cache.Exec(ctx, c.cache, func(ctx context.Context) (Category, error) {
		var created Category
		err := c.api.Post(ctx, "/product-category", categoryNameRequest{Name: name}, &created)
		return created, err
	}, func(result Category, err error) []cache.Tag {
		if err != nil {
			return nil
		}
		return []cache.Tag{cache.List(TagCategory)}
	})
}

// UpdateCategory renames a category and invalidates its item tag plus the
// category list.
func (c *Client) UpdateCategory(ctx context.Context, id int, name string) (Category, error) {
	return cache.Exec(ctx, c.cache, func(ctx context.Context) (Category, error) {
		var updated Category
		err := c.api.Patch(ctx, fmt.Sprintf("/product-category/%d", id), categoryNameRequest{Name: name}, &updated)
		return updated, err
	}, func(result Category, err error) []cache.Tag {
		if err != nil {
			return nil
		}
		return []cache.Tag{cache.NewTag(TagCategory, id), cache.List(TagCategory)}
	})
}

// DeleteCategory removes a category and invalidates its item tag plus the
// category list.
func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	_, err := cache.Exec(ctx, c.cache, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.api.Delete(ctx, fmt.Sprintf("/product-category/%d", id))
	}, func(_ struct{}, err error) []cache.Tag {
		if err != nil {
			return nil
		}
		return []cache.Tag{cache.NewTag(TagCategory, id), cache.List(TagCategory)}
	})
	return err
}
