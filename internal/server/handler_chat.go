package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/me/studyplan/pkg/model"
)

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("invalid chat message",
				model.FieldError{Field: "message", Message: "message is required"}))
		return
	}

	reply, err := s.assistant.Respond(r.Context(), req.Message)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	respondOK(w, reqID, reply)
}
