package marketplace

import (
	"context"
	"fmt"

	"github.com/pharmakit/backoffice/core/cache"
)

// Stores returns every storefront, cached with per-item tags plus the store
// list tag.
func (c *Client) Stores(ctx context.Context) ([]Store, error) {
	return cache.Fetch(ctx, c.cache, epStores, nil, func(ctx context.Context) ([]Store, []cache.Tag, error) {
		var stores []Store
		if err := c.api.Get(ctx, "/stores", &stores); err != nil {
			return nil, nil, err
		}
		tags := make([]cache.Tag, 0, len(stores)+1)
		for _, s := range stores {
			tags = append(tags, cache.NewTag(TagStore, s.ID))
		}
		return stores, append(tags, cache.List(TagStore)), nil
	})
}

// CreateStore adds a storefront and invalidates the store list.
func (c *Client) CreateStore(ctx context.Context, input StoreInput) (Store, error) {
	return cache.Exec(ctx, c.cache, func(ctx context.Context) (Store, error) {
		var created Store
		err := c.api.Post(ctx, "/stores", input, &created)
		return created, err
	}, func(result Store, err error) []cache.Tag {
		if err != nil {
			return nil
		}
		return []cache.Tag{cache.List(TagStore)}
	})
}

// UpdateStore rewrites a storefront and invalidates its item tag plus the
// store list.
func (c *Client) UpdateStore(ctx context.Context, id int, input StoreInput) (Store, error) {
	return cache.Exec(ctx, c.cache, func(ctx context.Context) (Store, error) {
		var updated Store
		err := c.api.Put(ctx, fmt.Sprintf("/stores/%d", id), input, &updated)
		return updated, err
	}, func(result Store, err error) []cache.Tag {
		if err != nil {
			return nil
		}
		return []cache.Tag{cache.NewTag(TagStore, id), cache.List(TagStore)}
	})
}

// DeleteStore removes a storefront and invalidates its item tag plus the
// store list.
func (c *Client) DeleteStore(ctx context.Context, id int) error {
	_, err := cache.Exec(ctx, c.cache, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.api.Delete(ctx, fmt.Sprintf("/stores/%d", id))
	}, func(_ struct{}, err error) []cache.Tag {
		if err != nil {
			return nil
		}
		return []cache.Tag{cache.NewTag(TagStore, id), cache.List(TagStore)}
	})
	return err
}

// StoreAdmins returns the admins assigned to one store, cached under the
// store-admin list tag keyed by store.
func (c *Client) StoreAdmins(ctx context.Context, storeID int) ([]StoreAdmin, error) {
	return cache.Fetch(ctx, c.cache, epStoreAdmins, storeID, func(ctx context.Context) ([]StoreAdmin, []cache.Tag, error) {
		var admins []StoreAdmin
		if err := c.api.Get(ctx, fmt.Sprintf("/store-admins/store/%d", storeID), &admins); err != nil {
			return nil, nil, err
		}
		return admins, []cache.Tag{cache.NewTag(TagStoreAdmin, storeID), cache.List(TagStoreAdmin)}, nil
	})
}

// RegisterAdmin creates a new admin account that can then be assigned to a
// store. Registration alone does not touch any cached read.
func (c *Client) RegisterAdmin(ctx context.Context, input RegisterAdminInput) (RegisterResult, error) {
	// The backend expects the fixed store-admin role markers alongside the
	// profile fields.
	payload := struct {
		RegisterAdminInput
		MRN        string `json:"mrn"`
		UserTypeID int    `json:"userTypeId"`
		IsVerified int    `json:"isVerified"`
	}{RegisterAdminInput: input, MRN: "000000", UserTypeID: 3, IsVerified: 1}

	var result RegisterResult
	err := c.api.Post(ctx, "/auth/register", payload, &result)
	return result, err
}

// AssignAdmin binds a registered user to a store and invalidates that
// store's admin listing.
func (c *Client) AssignAdmin(ctx context.Context, req AssignAdminRequest) error {
	_, err := cache.Exec(ctx, c.cache, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.api.Post(ctx, "/store-admins/assign", req, nil)
	}, func(_ struct{}, err error) []cache.Tag {
		if err != nil {
			return nil
		}
		return []cache.Tag{cache.NewTag(TagStoreAdmin, req.StoreID), cache.List(TagStoreAdmin)}
	})
	return err
}
