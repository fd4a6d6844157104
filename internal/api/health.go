package api

import (
	"net/http"
	"time"

	"github.com/healthvault/healthvault/internal/api/respond"
	"github.com/healthvault/healthvault/internal/store"
)

type HealthHandler struct {
	store store.Store
}

func NewHealthHandler(s store.Store) *HealthHandler { return &HealthHandler{store: s} }

// CheckHealth reports liveness plus store connectivity.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK

	if p, ok := h.store.(store.HealthPinger); ok {
		if err := p.HealthPing(r.Context()); err != nil {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
	}

	respond.WriteJSON(w, code, map[string]string{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
