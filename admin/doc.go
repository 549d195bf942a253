// Package admin is the JSON API the dashboard UI consumes.
//
// Handlers are thin glue: reads go through the typed backend client (and
// therefore the request cache), list endpoints apply the derived
// product/order projections from query parameters, and writes invalidate
// cached reads through their tag descriptors. Authentication state lives in
// the session manager; logging out clears both the session and the cache.
//
// Upstream errors pass through with their original status and message so
// the UI surfaces backend validation errors unchanged. Requests that never
// reach the backend become 502s with a generic payload.
//
// GET /events upgrades to a websocket and streams cache invalidation
// events, letting connected clients refetch instead of polling.
package admin
