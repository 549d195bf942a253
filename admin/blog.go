package admin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pharmakit/backoffice/core/cache"
	"github.com/pharmakit/backoffice/integration/cms"
)

// TagPost labels cached blog reads. Posts are published in the CMS studio,
// outside this service, so nothing here invalidates them; Reset on logout
// and cache-level invalidation calls still apply.
const TagPost = "Post"

const (
	epPosts          = "blog.posts"
	epPostBySlug     = "blog.postBySlug"
	epPostCategories = "blog.categories"
)

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := cache.Fetch(r.Context(), h.cache, epPosts, nil, func(ctx context.Context) ([]cms.Post, []cache.Tag, error) {
		posts, err := h.blog.Posts(ctx)
		if err != nil {
			return nil, nil, err
		}
		tags := make([]cache.Tag, 0, len(posts)+1)
		for _, p := range posts {
			tags = append(tags, cache.NewTag(TagPost, p.Slug))
		}
		return posts, append(tags, cache.List(TagPost)), nil
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, posts)
}

func (h *Handler) getPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := cache.Fetch(r.Context(), h.cache, epPostBySlug, slug, func(ctx context.Context) (cms.Post, []cache.Tag, error) {
		post, err := h.blog.PostBySlug(ctx, slug)
		if err != nil {
			return cms.Post{}, nil, err
		}
		return post, []cache.Tag{cache.NewTag(TagPost, slug)}, nil
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, post)
}

func (h *Handler) listPostCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := cache.Fetch(r.Context(), h.cache, epPostCategories, nil, func(ctx context.Context) ([]cms.PostCategory, []cache.Tag, error) {
		categories, err := h.blog.Categories(ctx)
		if err != nil {
			return nil, nil, err
		}
		return categories, []cache.Tag{cache.List(TagPost)}, nil
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, categories)
}
