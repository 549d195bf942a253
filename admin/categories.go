package admin

import "net/http"

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	options, err := h.backend.Categories(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, options)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decode(r, &req); err != nil || req.Name == "" {
		h.respond(w, http.StatusBadRequest, errorPayload{Message: "category name is required"})
		return
	}
	created, err := h.backend.CreateCategory(r.Context(), req.Name)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, created)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req categoryRequest
	if err := decode(r, &req); err != nil || req.Name == "" {
		h.respond(w, http.StatusBadRequest, errorPayload{Message: "category name is required"})
		return
	}
	updated, err := h.backend.UpdateCategory(r.Context(), id, req.Name)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, updated)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.backend.DeleteCategory(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}
