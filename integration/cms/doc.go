// Package cms is a read-only client for the headless CMS that hosts the
// marketplace blog.
//
// Content is queried with GROQ over the CMS HTTP query API. The package
// ships the projections the dashboard needs (posts with resolved cover
// image, author, and category; the category list) and a generic Query for
// ad hoc reads.
//
// Usage:
//
//	client, err := cms.New(cms.Config{
//		ProjectID:  "c0yyh9c8",
//		Dataset:    "production",
//		APIVersion: "2025-06-13",
//	})
//	if err != nil {
//		return err
//	}
//
//	posts, err := client.Posts(ctx)
//	post, err := client.PostBySlug(ctx, "flu-season-guide")
//
// The client is read-only: publishing happens in the CMS studio, not in
// the dashboard. Responses are not cached here; callers that want the
// tag-invalidation behavior wrap these reads in the request cache.
package cms
