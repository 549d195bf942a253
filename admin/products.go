package admin

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pharmakit/backoffice/core/productview"
	"github.com/pharmakit/backoffice/integration/marketplace"
)

// productFields adapts the catalog record to the projection accessors.
var productFields = productview.Fields[marketplace.Product]{
	Name:        func(p marketplace.Product) string { return p.Name },
	Description: func(p marketplace.Product) string { return p.Description },
	Price:       func(p marketplace.Product) float64 { return p.Price },
	CategoryID:  func(p marketplace.Product) int { return p.CategoryID },
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.backend.Products(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	view := productview.New(productFields)
	view.SetProducts(products)

	q := r.URL.Query()
	if raw := q.Get("category"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			h.respond(w, http.StatusBadRequest, errorPayload{Message: "invalid category"})
			return
		}
		view.SetCategoryFilter(&id)
	}
	if search := q.Get("q"); search != "" {
		view.SetSearchQuery(search)
	}
	minPrice, err := parsePriceParam(q.Get("min_price"))
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorPayload{Message: "invalid min_price"})
		return
	}
	maxPrice, err := parsePriceParam(q.Get("max_price"))
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorPayload{Message: "invalid max_price"})
		return
	}
	if minPrice != nil || maxPrice != nil {
		view.SetPriceRange(minPrice, maxPrice)
	}
	if raw := q.Get("sort"); raw != "" {
		sort, ok := parseSortParam(raw)
		if !ok {
			h.respond(w, http.StatusBadRequest, errorPayload{Message: "invalid sort"})
			return
		}
		view.SortProducts(sort)
	}

	h.respond(w, http.StatusOK, view.Filtered())
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	product, err := h.backend.Product(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, product)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var input marketplace.ProductInput
	if err := decode(r, &input); err != nil {
		h.respond(w, http.StatusBadRequest, errorPayload{Message: "invalid request body"})
		return
	}
	created, err := h.backend.CreateProduct(r.Context(), input)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, created)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var input marketplace.ProductInput
	if err := decode(r, &input); err != nil {
		h.respond(w, http.StatusBadRequest, errorPayload{Message: "invalid request body"})
		return
	}
	updated, err := h.backend.UpdateProduct(r.Context(), id, input)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, updated)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.backend.DeleteProduct(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}

// pathID parses the {id} route parameter, responding 400 on garbage.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorPayload{Message: "invalid id"})
		return 0, false
	}
	return id, true
}

func parseSortParam(raw string) (productview.SortOption, bool) {
	switch opt := productview.SortOption(raw); opt {
	case productview.SortPriceAsc, productview.SortPriceDesc,
		productview.SortNameAsc, productview.SortNameDesc:
		return opt, true
	default:
		return "", false
	}
}

func parsePriceParam(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
