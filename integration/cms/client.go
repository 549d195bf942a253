package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/pharmakit/backoffice/pkg/apiclient"
)

var (
	// ErrMissingProjectID is returned when the CMS project is not configured.
	ErrMissingProjectID = errors.New("cms project ID is required")
	// ErrQueryFailed wraps transport and decode failures from the query API.
	ErrQueryFailed = errors.New("cms query failed")
	// ErrNotFound is returned when a slug lookup resolves to no document.
	ErrNotFound = errors.New("cms document not found")
)

// Client is a read-only client for the headless CMS query API. Queries are
// GROQ strings with optional named parameters; responses arrive wrapped in
// a {"result": ...} envelope.
type Client struct {
	api       *apiclient.Client
	projectID string
	dataset   string
}

// Option configures the client.
type Option func(*options)

type options struct {
	apiOpts []apiclient.Option
}

// WithAPIOptions passes options through to the underlying HTTP client.
func WithAPIOptions(opts ...apiclient.Option) Option {
	return func(o *options) {
		o.apiOpts = append(o.apiOpts, opts...)
	}
}

// New creates a CMS client from config. The token, when set, is attached as
// a bearer credential on every request.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, ErrMissingProjectID
	}
	dataset := cfg.Dataset
	if dataset == "" {
		dataset = "production"
	}

	host := "api.sanity.io"
	if cfg.UseCDN {
		host = "apicdn.sanity.io"
	}
	baseURL := fmt.Sprintf("https://%s.%s/v%s", cfg.ProjectID, host, cfg.APIVersion)

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	apiOpts := o.apiOpts
	if cfg.Token != "" {
		token := cfg.Token
		apiOpts = append(apiOpts, apiclient.WithTokenSource(func() string { return token }))
	}

	return &Client{
		api:       apiclient.New(baseURL, apiOpts...),
		projectID: cfg.ProjectID,
		dataset:   dataset,
	}, nil
}

// Query runs a GROQ query and decodes the result envelope into dest.
// Parameters are passed as $name query values, JSON-encoded per the query
// API convention.
func (c *Client) Query(ctx context.Context, groq string, params map[string]any, dest any) error {
	values := url.Values{}
	values.Set("query", groq)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return errors.Join(ErrQueryFailed, err)
		}
		values.Set("$"+name, string(encoded))
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	path := "/data/query/" + c.dataset + "?" + values.Encode()
	if err := c.api.Get(ctx, path, &envelope); err != nil {
		return err
	}
	if dest == nil || len(envelope.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, dest); err != nil {
		return errors.Join(ErrQueryFailed, err)
	}
	return nil
}

// Posts returns all blog posts with resolved cover image, category, and
// author projections.
func (c *Client) Posts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.Query(ctx, queryPosts, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// PostBySlug returns a single post, or ErrNotFound when the slug does not
// resolve to a published post.
func (c *Client) PostBySlug(ctx context.Context, slug string) (Post, error) {
	var post *Post
	if err := c.Query(ctx, queryPostBySlug, map[string]any{"slug": slug}, &post); err != nil {
		return Post{}, err
	}
	if post == nil {
		return Post{}, ErrNotFound
	}
	return *post, nil
}

// Categories returns all blog categories.
func (c *Client) Categories(ctx context.Context) ([]PostCategory, error) {
	var categories []PostCategory
	if err := c.Query(ctx, queryCategories, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// PostsByCategory returns the posts filed under one category slug.
func (c *Client) PostsByCategory(ctx context.Context, categorySlug string) ([]Post, error) {
	var posts []Post
	if err := c.Query(ctx, queryPostsByCategory, map[string]any{"category": categorySlug}, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
