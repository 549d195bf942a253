package marketplace

import (
	"github.com/pharmakit/backoffice/core/cache"
	"github.com/pharmakit/backoffice/pkg/apiclient"
)

// Tag types used to label cached reads and target invalidations.
const (
	TagProduct    = "Product"
	TagCategory   = "Category"
	TagOrder      = "Order"
	TagStore      = "Store"
	TagStoreAdmin = "StoreAdmin"
)

// CategoryListID labels the products-by-category list separately from the
// full product list, so both are invalidated by product mutations while
// remaining distinct cache entries.
const CategoryListID = "CATEGORY_LIST"

// Cache endpoint names. Together with the query arguments they form the
// cache key for each read.
const (
	epProducts           = "products.list"
	epProductByID        = "products.byID"
	epProductsByCategory = "products.byCategory"
	epCategories         = "categories.list"
	epOrders             = "orders.list"
	epStores             = "stores.list"
	epStoreAdmins        = "stores.admins"
)

// Client is the typed backend client. Reads go through the cache with tag
// descriptors attached; writes bypass the cache and invalidate the tags of
// the reads they affect.
type Client struct {
	api   *apiclient.Client
	cache *cache.Cache
}

// New creates a backend client on top of an HTTP client and a cache.
func New(api *apiclient.Client, c *cache.Cache) *Client {
	return &Client{api: api, cache: c}
}

// Cache exposes the underlying cache for subscription management and
// lifecycle operations such as Reset on logout.
func (c *Client) Cache() *cache.Cache {
	return c.cache
}
