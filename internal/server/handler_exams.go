package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/me/studyplan/pkg/model"
)

type examRequest struct {
	Title   string     `json:"title"`
	Subject string     `json:"subject"`
	Date    *time.Time `json:"date"`
	Weight  int        `json:"weight"`
	Topics  []string   `json:"topics"`
}

func (req *examRequest) validate() []model.FieldError {
	var errs []model.FieldError
	if req.Title == "" {
		errs = append(errs, model.FieldError{Field: "title", Message: "title is required"})
	}
	if req.Subject == "" {
		errs = append(errs, model.FieldError{Field: "subject", Message: "subject is required"})
	}
	if req.Date == nil {
		errs = append(errs, model.FieldError{Field: "date", Message: "date is required"})
	}
	if req.Weight < 0 || req.Weight > 100 {
		errs = append(errs, model.FieldError{Field: "weight", Message: "must be between 0 and 100"})
	}
	return errs
}

func (s *Server) handleCreateExam(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req examRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		})
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("invalid exam", errs...))
		return
	}

	exam := &model.Exam{
		ID:        "exam_" + uuid.New().String(),
		Title:     req.Title,
		Subject:   req.Subject,
		Date:      *req.Date,
		Weight:    req.Weight,
		Topics:    req.Topics,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateExam(r.Context(), exam); err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}

	s.logger.Info("exam created", "exam_id", exam.ID, "title", exam.Title, "request_id", reqID)
	respondCreated(w, reqID, exam)
}

func (s *Server) handleListExams(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	exams, err := s.store.ListExams(r.Context())
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}

	respondList(w, reqID, exams, &model.Pagination{
		Total:   len(exams),
		Limit:   len(exams),
		Offset:  0,
		HasMore: false,
	})
}

func (s *Server) handleGetExam(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	exam, err := s.store.GetExam(r.Context(), id)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	if exam == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("exam", id))
		return
	}
	respondOK(w, reqID, exam)
}

func (s *Server) handleDeleteExam(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	exam, err := s.store.GetExam(r.Context(), id)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	if exam == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("exam", id))
		return
	}

	if err := s.store.DeleteExam(r.Context(), id); err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	respondOK(w, reqID, map[string]any{"deleted": true, "id": id})
}
