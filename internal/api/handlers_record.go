package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/healthvault/healthvault/internal/api/respond"
	"github.com/healthvault/healthvault/internal/auth"
	"github.com/healthvault/healthvault/internal/model"
	"github.com/healthvault/healthvault/internal/services"
)

type RecordHandler struct {
	svc *services.RecordService
}

func NewRecordHandler(svc *services.RecordService) *RecordHandler { return &RecordHandler{svc: svc} }

// GetProfile returns the authenticated user's full health record.
func (h *RecordHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	rec, err := h.svc.GetRecord(r.Context(), u.UserID)
	if err != nil {
		writeRecordError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, rec)
}

func (h *RecordHandler) AddCondition(w http.ResponseWriter, r *http.Request) {
	appendToRecord(w, r, h.svc.AddCondition)
}

func (h *RecordHandler) AddMedication(w http.ResponseWriter, r *http.Request) {
	appendToRecord(w, r, h.svc.AddMedication)
}

func (h *RecordHandler) AddAllergy(w http.ResponseWriter, r *http.Request) {
	appendToRecord(w, r, h.svc.AddAllergy)
}

func (h *RecordHandler) AddVital(w http.ResponseWriter, r *http.Request) {
	appendToRecord(w, r, h.svc.AddVital)
}

func (h *RecordHandler) AddAppointment(w http.ResponseWriter, r *http.Request) {
	appendToRecord(w, r, h.svc.AddAppointment)
}

// appendToRecord decodes one record item and appends it for the
// authenticated user.
func appendToRecord[T any](w http.ResponseWriter, r *http.Request, add func(ctx context.Context, userID string, item T) error) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var item T
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := add(r.Context(), u.UserID, item); err != nil {
		writeRecordError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}

func writeRecordError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, "user not found")
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, err.Error())
	default:
		respond.WriteInternalError(w, "Server error")
	}
}
