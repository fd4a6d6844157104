package api

import (
	"errors"
	"net/http"

	"github.com/healthvault/healthvault/internal/api/respond"
	"github.com/healthvault/healthvault/internal/auth"
	"github.com/healthvault/healthvault/internal/model"
	"github.com/healthvault/healthvault/internal/services"
)

// Fixed user-facing messages per failure category. Provider error text never
// reaches the response; detail goes to the operator log in the service.
const (
	msgRateLimited   = "Too many AI requests, please try again later."
	msgQuotaExceeded = "AI service quota exceeded. Please try again later."
	msgGenerateFail  = "Failed to generate health summary"
)

type AIHandler struct {
	svc *services.SummaryService
}

func NewAIHandler(svc *services.SummaryService) *AIHandler { return &AIHandler{svc: svc} }

// GenerateSummary runs the summarization pipeline for the authenticated user.
func (h *AIHandler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	out, err := h.svc.Generate(r.Context(), u.UserID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrRateLimited):
			respond.WriteError(w, http.StatusTooManyRequests, msgRateLimited)
		case errors.Is(err, services.ErrProviderQuota):
			respond.WriteError(w, http.StatusTooManyRequests, msgQuotaExceeded)
		case errors.Is(err, model.ErrNotFound):
			respond.WriteNotFound(w, "user not found")
		default:
			// ErrProviderAuth, ErrProviderDown and store failures all
			// surface the same fixed message.
			respond.WriteInternalError(w, msgGenerateFail)
		}
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// ListSummaries returns the authenticated user's summary history, oldest first.
func (h *AIHandler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	lst, err := h.svc.List(r.Context(), u.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.WriteNotFound(w, "user not found")
			return
		}
		respond.WriteInternalError(w, "Server error")
		return
	}
	respond.WriteJSON(w, http.StatusOK, lst)
}
