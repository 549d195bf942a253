// Package apiclient provides the JSON-over-HTTP plumbing shared by every
// upstream integration: bearer credential injection, request IDs, and a
// small error taxonomy.
//
// A Client is bound to one base URL. Credentials come from a TokenSource,
// typically the session manager's Token method, and are attached as
// "Authorization: Bearer <token>" only when non-empty. Token-less requests
// to protected endpoints are sent anyway; the upstream's auth error comes
// back as an ordinary *HTTPError without special-casing.
//
//	api := apiclient.New("https://api.example.com/api",
//		apiclient.WithTokenSource(sessions.Token),
//	)
//
//	var products []Product
//	if err := api.Get(ctx, "/products", &products); err != nil {
//		if httpErr, ok := apiclient.AsHTTPError(err); ok {
//			// non-2xx: httpErr.Status, httpErr.Body
//		} else if errors.Is(err, apiclient.ErrNetwork) {
//			// no response at all
//		}
//	}
//
// The client never retries; callers decide whether a failure is worth
// retrying.
package apiclient
