package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/pharmakit/backoffice/core/orderview"
	"github.com/pharmakit/backoffice/integration/marketplace"
)

// orderFields adapts the order record to the projection accessors.
var orderFields = orderview.Fields[marketplace.Order]{
	StatusID:   func(o marketplace.Order) int { return o.OrderStatus },
	UserID:     func(o marketplace.Order) int { return o.UserID },
	AcceptedBy: func(o marketplace.Order) *int { return o.AcceptedByID },
	CreatedAt:  func(o marketplace.Order) time.Time { return o.CreatedAt },
}

type updateOrderStatusRequest struct {
	OrderStatusID int  `json:"orderStatusId"`
	AcceptedByID  *int `json:"acceptedById"`
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.backend.Orders(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	view := orderview.New(orderFields)
	view.SetOrders(orders)
	if h.sessions.IsAuthenticated() {
		if user := h.sessions.Current().User; user != nil {
			view.SetViewer(user.ID)
		}
	}

	q := r.URL.Query()
	if raw := q.Get("status"); raw != "" && raw != "all" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			h.respond(w, http.StatusBadRequest, errorPayload{Message: "invalid status"})
			return
		}
		view.SetStatusFilter(&id)
	}
	view.SetMineOnly(q.Get("mine") == "true")
	view.SetNewOnly(q.Get("new") == "true")
	view.SetTodayOnly(q.Get("today") == "true")

	h.respond(w, http.StatusOK, view.Filtered())
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req updateOrderStatusRequest
	if err := decode(r, &req); err != nil {
		h.respond(w, http.StatusBadRequest, errorPayload{Message: "invalid request body"})
		return
	}

	// Accepting an order records the acting admin unless the caller names
	// someone explicitly.
	acceptedBy := req.AcceptedByID
	if acceptedBy == nil {
		if user := h.sessions.Current().User; user != nil {
			acceptedBy = &user.ID
		}
	}

	updated, err := h.backend.UpdateOrderStatus(r.Context(), id, req.OrderStatusID, acceptedBy)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, updated)
}
