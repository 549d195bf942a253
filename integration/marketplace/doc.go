// Package marketplace is the typed client for the pharmacy marketplace
// REST backend.
//
// Every read goes through the request cache with tag descriptors attached:
// list queries carry a per-item tag for each record plus a list tag, and
// single-record queries carry the item tag alone. Writes bypass the cache
// and declare the tags they invalidate, so cached reads refresh on the next
// access (or immediately when subscribed).
//
// Usage:
//
//	api := apiclient.New(cfg.BackendURL, apiclient.WithTokenSource(sessions.Token))
//	backend := marketplace.New(api, cache.New())
//
//	products, err := backend.Products(ctx)
//	if err != nil {
//		return err
//	}
//
//	// Creating a product invalidates the cached lists; the next call to
//	// Products refetches.
//	_, err = backend.CreateProduct(ctx, marketplace.ProductInput{
//		Name:       "Paracetamol 500mg",
//		Price:      4.5,
//		CategoryID: 2,
//	})
//
// Authentication calls (Login, UpdatePassword, RegisterAdmin) never touch
// the cache. Bearer credentials come from the HTTP client's TokenSource,
// typically wired to the session manager.
package marketplace
