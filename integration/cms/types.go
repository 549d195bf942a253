package cms

import (
	"encoding/json"
	"time"
)

// PostCategory is a blog category reference resolved into its title and
// slug.
type PostCategory struct {
	ID    string `json:"_id,omitempty"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Author is a post author with a resolved portrait URL.
type Author struct {
	Name     string `json:"name"`
	Bio      string `json:"bio,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Post is a blog post document. Body holds the portable-text blocks as raw
// JSON; the dashboard renders them client-side and this layer passes them
// through untouched.
type Post struct {
	ID          string          `json:"_id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug,omitempty"`
	PublishedAt time.Time       `json:"publishedAt"`
	CoverImage  string          `json:"coverImage,omitempty"`
	Category    *PostCategory   `json:"category,omitempty"`
	Author      *Author         `json:"author,omitempty"`
	Body        json.RawMessage `json:"body,omitempty"`
}
