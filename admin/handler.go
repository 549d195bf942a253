package admin

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pharmakit/backoffice/core/cache"
	"github.com/pharmakit/backoffice/core/logger"
	"github.com/pharmakit/backoffice/core/session"
	"github.com/pharmakit/backoffice/integration/cms"
	"github.com/pharmakit/backoffice/integration/marketplace"
)

// Handler is the JSON API surface the dashboard UI talks to. It binds the
// request cache, session manager, and derived projections to HTTP routes.
type Handler struct {
	backend  *marketplace.Client
	blog     *cms.Client
	sessions *session.Manager
	cache    *cache.Cache
	checks   []func(context.Context) error
	log      *slog.Logger
}

// Option configures the handler.
type Option func(*Handler)

// WithLogger sets the request logger.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithBlog enables the blog routes backed by the CMS client. Without it the
// blog endpoints respond 404.
func WithBlog(client *cms.Client) Option {
	return func(h *Handler) { h.blog = client }
}

// WithHealthchecks registers dependency checks served by the readiness
// probe, such as pg.Healthcheck or redis.Healthcheck.
func WithHealthchecks(fn ...func(context.Context) error) Option {
	return func(h *Handler) { h.checks = append(h.checks, fn...) }
}

// New creates the API handler.
func New(backend *marketplace.Client, sessions *session.Manager, opts ...Option) *Handler {
	h := &Handler{
		backend:  backend,
		sessions: sessions,
		cache:    backend.Cache(),
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Router builds the route tree.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", h.liveness)
	r.Get("/health/ready", h.readiness)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.login)
		r.Post("/logout", h.logout)
		r.Put("/password", h.updatePassword)
	})
	r.Get("/session", h.currentSession)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Post("/", h.createProduct)
		r.Get("/{id}", h.getProduct)
		r.Put("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.listCategories)
		r.Post("/", h.createCategory)
		r.Patch("/{id}", h.updateCategory)
		r.Delete("/{id}", h.deleteCategory)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)
		r.Put("/{id}/status", h.updateOrderStatus)
	})

	r.Route("/stores", func(r chi.Router) {
		r.Get("/", h.listStores)
		r.Post("/", h.createStore)
		r.Put("/{id}", h.updateStore)
		r.Delete("/{id}", h.deleteStore)
		r.Get("/{id}/admins", h.listStoreAdmins)
		r.Post("/admins/assign", h.assignStoreAdmin)
	})

	if h.blog != nil {
		r.Route("/blog", func(r chi.Router) {
			r.Get("/", h.listPosts)
			r.Get("/categories", h.listPostCategories)
			r.Get("/{slug}", h.getPost)
		})
	}

	r.Get("/events", h.streamEvents)

	return r
}
