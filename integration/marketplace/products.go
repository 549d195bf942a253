package marketplace

import (
	"context"
	"fmt"

	"github.com/pharmakit/backoffice/core/cache"
)

// productListTags labels each item individually plus the given list
// identifier, so both per-item and whole-list invalidations hit the entry.
func productListTags(products []Product, listID string) []cache.Tag {
	tags := make([]cache.Tag, 0, len(products)+1)
	for _, p := range products {
		tags = append(tags, cache.NewTag(TagProduct, p.ID))
	}
	return append(tags, cache.Tag{Type: TagProduct, ID: listID})
}

// productMutationTags are the tags every product write invalidates. The
// per-item tag is zero for creations, where no cached entry carries it yet.
func productMutationTags(id int) []cache.Tag {
	tags := []cache.Tag{
		cache.List(TagProduct),
		{Type: TagProduct, ID: CategoryListID},
	}
	if id != 0 {
		tags = append(tags, cache.NewTag(TagProduct, id))
	}
	return tags
}

// Products returns the full catalog, cached under the product list tag.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	return cache.Fetch(ctx, c.cache, epProducts, nil, func(ctx context.Context) ([]Product, []cache.Tag, error) {
		var products []Product
		if err := c.api.Get(ctx, "/products", &products); err != nil {
			return nil, nil, err
		}
		return products, productListTags(products, cache.ListID), nil
	})
}

// Product returns a single catalog record, cached under its item tag.
func (c *Client) Product(ctx context.Context, id int) (Product, error) {
	return cache.Fetch(ctx, c.cache, epProductByID, id, func(ctx context.Context) (Product, []cache.Tag, error) {
		var product Product
		if err := c.api.Get(ctx, fmt.Sprintf("/products/%d", id), &product); err != nil {
			return Product{}, nil, err
		}
		return product, []cache.Tag{cache.NewTag(TagProduct, id)}, nil
	})
}

// ProductsByCategory returns the catalog slice for one category, cached
// under the separate by-category list tag.
func (c *Client) ProductsByCategory(ctx context.Context, categoryID int) ([]Product, error) {
	return cache.Fetch(ctx, c.cache, epProductsByCategory, categoryID, func(ctx context.Context) ([]Product, []cache.Tag, error) {
		var products []Product
		if err := c.api.Get(ctx, fmt.Sprintf("/products/category/%d", categoryID), &products); err != nil {
			return nil, nil, err
		}
		return products, productListTags(products, CategoryListID), nil
	})
}

// CreateProduct adds a catalog record and invalidates both product lists.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (Product, error) {
	return cache.Exec(ctx, c.cache, func(ctx context.Context) (Product, error) {
		var created Product
		err := c.api.Post(ctx, "/products", input, &created)
		return created, err
	}, func(result Product, err error) []cache.Tag {
		if err != nil {
			return nil
		}
		return productMutationTags(0)
	})
}

// UpdateProduct rewrites a catalog record and invalidates its item tag
// along with both product lists.
func (c *Client) UpdateProduct(ctx context.Context, id int, input ProductInput) (Product, error) {
	return cache.Exec(ctx, c.cache, func(ctx context.Context) (Product, error) {
		var updated Product
		err := c.api.Put(ctx, fmt.Sprintf("/products/%d", id), input, &updated)
		return updated, err
	}, func(result Product, err error) []cache.Tag {
		if err != nil {
			return nil
		}
		return productMutationTags(id)
	})
}

// DeleteProduct removes a catalog record and invalidates its item tag
// along with both product lists.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	_, err := cache.Exec(ctx, c.cache, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.api.Delete(ctx, fmt.Sprintf("/products/%d", id))
	}, func(_ struct{}, err error) []cache.Tag {
		if err != nil {
			return nil
		}
		return productMutationTags(id)
	})
	return err
}
