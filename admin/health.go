package admin

import (
	"net/http"

	"github.com/pharmakit/backoffice/core/logger"
)

// liveness reports that the process is up.
func (h *Handler) liveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ALIVE"))
}

// readiness verifies every registered dependency check succeeds. A single
// failing check makes the service report unavailable.
func (h *Handler) readiness(w http.ResponseWriter, r *http.Request) {
	for _, fn := range h.checks {
		if err := fn(r.Context()); err != nil {
			h.log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("READY"))
}
