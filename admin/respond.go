package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pharmakit/backoffice/core/logger"
	"github.com/pharmakit/backoffice/integration/cms"
	"github.com/pharmakit/backoffice/pkg/apiclient"
)

type errorPayload struct {
	Message string `json:"message"`
}

// respond writes v as JSON with the given status. A nil v with a 204 sends
// no body.
func (h *Handler) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil || status == http.StatusNoContent {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("failed to encode response", logger.Error(err))
	}
}

// respondError maps the error taxonomy onto HTTP responses. Upstream
// responses pass through with their original status and message so the UI
// sees backend validation errors unchanged; requests that never reached the
// backend become 502s with a generic payload.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, cms.ErrNotFound):
		h.respond(w, http.StatusNotFound, errorPayload{Message: "not found"})
	case errors.Is(err, apiclient.ErrNetwork):
		h.log.Error("upstream unreachable", logger.Error(err))
		h.respond(w, http.StatusBadGateway, errorPayload{Message: "upstream unavailable"})
	default:
		if httpErr, ok := apiclient.AsHTTPError(err); ok {
			h.respond(w, httpErr.Status, errorPayload{Message: httpErr.Message()})
			return
		}
		h.log.Error("request failed", logger.Error(err))
		h.respond(w, http.StatusInternalServerError, errorPayload{Message: "internal error"})
	}
}

// decode reads the request body as JSON into dest.
func decode(r *http.Request, dest any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dest)
}
