package admin

import (
	"net/http"

	"github.com/pharmakit/backoffice/integration/marketplace"
)

func (h *Handler) listStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.backend.Stores(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, stores)
}

func (h *Handler) createStore(w http.ResponseWriter, r *http.Request) {
	var input marketplace.StoreInput
	if err := decode(r, &input); err != nil {
		h.respond(w, http.StatusBadRequest, errorPayload{Message: "invalid request body"})
		return
	}
	created, err := h.backend.CreateStore(r.Context(), input)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, created)
}

func (h *Handler) updateStore(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var input marketplace.StoreInput
	if err := decode(r, &input); err != nil {
		h.respond(w, http.StatusBadRequest, errorPayload{Message: "invalid request body"})
		return
	}
	updated, err := h.backend.UpdateStore(r.Context(), id, input)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, updated)
}

func (h *Handler) deleteStore(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.backend.DeleteStore(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}

func (h *Handler) listStoreAdmins(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	admins, err := h.backend.StoreAdmins(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, admins)
}

type assignAdminRequest struct {
	StoreID  int                             `json:"storeId"`
	UserID   int                             `json:"userId"`
	Register *marketplace.RegisterAdminInput `json:"register,omitempty"`
}

// assignStoreAdmin binds an admin account to a store. When a register
// payload is present the account is created first and its new ID used for
// the assignment.
func (h *Handler) assignStoreAdmin(w http.ResponseWriter, r *http.Request) {
	var req assignAdminRequest
	if err := decode(r, &req); err != nil || req.StoreID == 0 {
		h.respond(w, http.StatusBadRequest, errorPayload{Message: "store is required"})
		return
	}

	userID := req.UserID
	if req.Register != nil {
		registered, err := h.backend.RegisterAdmin(r.Context(), *req.Register)
		if err != nil {
			h.respondError(w, err)
			return
		}
		userID = registered.User.ID
	}
	if userID == 0 {
		h.respond(w, http.StatusBadRequest, errorPayload{Message: "user is required"})
		return
	}

	if err := h.backend.AssignAdmin(r.Context(), marketplace.AssignAdminRequest{
		StoreID: req.StoreID,
		UserID:  userID,
	}); err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]string{"message": "admin assigned"})
}
