package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/me/studyplan/pkg/model"
)

type slotRequest struct {
	DayOfWeek *int  `json:"day_of_week"`
	StartHour *int  `json:"start_hour"`
	EndHour   *int  `json:"end_hour"`
	Available *bool `json:"is_available"`
}

func (req *slotRequest) validate() []model.FieldError {
	var errs []model.FieldError
	if req.DayOfWeek == nil || *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
		errs = append(errs, model.FieldError{Field: "day_of_week", Message: "must be between 0 (Sunday) and 6 (Saturday)"})
	}
	if req.StartHour == nil || *req.StartHour < 0 || *req.StartHour > 23 {
		errs = append(errs, model.FieldError{Field: "start_hour", Message: "must be between 0 and 23"})
	}
	if req.EndHour == nil || *req.EndHour < 1 || *req.EndHour > 24 {
		errs = append(errs, model.FieldError{Field: "end_hour", Message: "must be between 1 and 24"})
	}
	if req.StartHour != nil && req.EndHour != nil && *req.EndHour <= *req.StartHour {
		errs = append(errs, model.FieldError{Field: "end_hour", Message: "must be after start_hour"})
	}
	return errs
}

func (s *Server) handleCreateSlot(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req slotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		})
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("invalid slot", errs...))
		return
	}

	slot := &model.RecurringSlot{
		ID:        "slot_" + uuid.New().String(),
		DayOfWeek: *req.DayOfWeek,
		StartHour: *req.StartHour,
		EndHour:   *req.EndHour,
		Available: true,
		CreatedAt: time.Now().UTC(),
	}
	if req.Available != nil {
		slot.Available = *req.Available
	}

	if err := s.store.CreateSlot(r.Context(), slot); err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}

	s.logger.Info("slot created", "slot_id", slot.ID, "day", slot.DayOfWeek, "request_id", reqID)
	respondCreated(w, reqID, slot)
}

func (s *Server) handleListSlots(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	slots, err := s.store.ListSlots(r.Context())
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}

	respondList(w, reqID, slots, &model.Pagination{
		Total:   len(slots),
		Limit:   len(slots),
		Offset:  0,
		HasMore: false,
	})
}

func (s *Server) handleUpdateSlot(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	slot, err := s.store.GetSlot(r.Context(), id)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	if slot == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("slot", id))
		return
	}

	var req slotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		})
		return
	}

	// Partial update: only fields present in the body change.
	if req.DayOfWeek != nil {
		if *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
			respondError(w, reqID, http.StatusBadRequest,
				model.NewValidationError("invalid slot",
					model.FieldError{Field: "day_of_week", Message: "must be between 0 (Sunday) and 6 (Saturday)"}))
			return
		}
		slot.DayOfWeek = *req.DayOfWeek
	}
	if req.StartHour != nil {
		slot.StartHour = *req.StartHour
	}
	if req.EndHour != nil {
		slot.EndHour = *req.EndHour
	}
	if slot.EndHour <= slot.StartHour || slot.StartHour < 0 || slot.EndHour > 24 {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("invalid slot",
				model.FieldError{Field: "end_hour", Message: "must be after start_hour and within 0-24"}))
		return
	}
	if req.Available != nil {
		slot.Available = *req.Available
	}

	if err := s.store.UpdateSlot(r.Context(), slot); err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	respondOK(w, reqID, slot)
}

func (s *Server) handleDeleteSlot(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	slot, err := s.store.GetSlot(r.Context(), id)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	if slot == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("slot", id))
		return
	}

	if err := s.store.DeleteSlot(r.Context(), id); err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	respondOK(w, reqID, map[string]any{"deleted": true, "id": id})
}
