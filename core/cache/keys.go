package cache

import (
	"encoding/json"
	"errors"
)

// defaultKey builds the cache key from the endpoint identifier and the
// canonical JSON encoding of the arguments. encoding/json serializes map
// keys in sorted order and struct fields in declaration order, so
// structurally equal arguments produce equal keys.
func defaultKey(endpoint string, args any) (string, error) {
	if args == nil {
		return endpoint, nil
	}
	b, err := json.Marshal(args)
	if err != nil {
		return "", errors.Join(ErrKeyEncoding, err)
	}
	return endpoint + "?" + string(b), nil
}
