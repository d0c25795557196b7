package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/me/studyplan/pkg/model"
)

// taskRequest is the create/update payload for a study task.
type taskRequest struct {
	Title            string     `json:"title"`
	Subject          string     `json:"subject"`
	Difficulty       string     `json:"difficulty"`
	Status           string     `json:"status"`
	Priority         string     `json:"priority"`
	EstimatedMinutes int        `json:"estimated_minutes"`
	DueDate          *time.Time `json:"due_date"`
	RelatedExamID    string     `json:"related_exam_id"`
	Notes            string     `json:"notes"`
}

func (req *taskRequest) validate() []model.FieldError {
	var errs []model.FieldError
	if req.Title == "" {
		errs = append(errs, model.FieldError{Field: "title", Message: "title is required"})
	}
	if req.Subject == "" {
		errs = append(errs, model.FieldError{Field: "subject", Message: "subject is required"})
	}
	if req.Difficulty != "" && !model.TaskDifficulty(req.Difficulty).Valid() {
		errs = append(errs, model.FieldError{Field: "difficulty", Message: "must be one of: easy, medium, hard"})
	}
	if req.Status != "" && !model.TaskStatus(req.Status).Valid() {
		errs = append(errs, model.FieldError{Field: "status", Message: "must be one of: pending, in_progress, completed, overdue"})
	}
	if req.Priority != "" && !model.TaskPriority(req.Priority).Valid() {
		errs = append(errs, model.FieldError{Field: "priority", Message: "must be one of: low, medium, high, urgent"})
	}
	if req.EstimatedMinutes < 0 {
		errs = append(errs, model.FieldError{Field: "estimated_minutes", Message: "must not be negative"})
	}
	if req.DueDate == nil {
		errs = append(errs, model.FieldError{Field: "due_date", Message: "due_date is required"})
	}
	return errs
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		})
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("invalid task", errs...))
		return
	}

	now := time.Now().UTC()
	task := &model.StudyTask{
		ID:               "task_" + uuid.New().String(),
		Title:            req.Title,
		Subject:          req.Subject,
		Difficulty:       model.DifficultyMedium,
		Status:           model.TaskStatusPending,
		Priority:         model.PriorityMedium,
		EstimatedMinutes: req.EstimatedMinutes,
		DueDate:          *req.DueDate,
		RelatedExamID:    req.RelatedExamID,
		Notes:            req.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if req.Difficulty != "" {
		task.Difficulty = model.TaskDifficulty(req.Difficulty)
	}
	if req.Status != "" {
		task.Status = model.TaskStatus(req.Status)
	}
	if req.Priority != "" {
		task.Priority = model.TaskPriority(req.Priority)
	}
	if task.EstimatedMinutes == 0 {
		task.EstimatedMinutes = 60
	}

	if err := s.store.CreateTask(r.Context(), task); err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}

	s.logger.Info("task created", "task_id", task.ID, "title", task.Title, "request_id", reqID)
	respondCreated(w, reqID, task)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	opts := listOptionsFromQuery(r)
	if opts.Status != "" && !model.TaskStatus(opts.Status).Valid() {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("invalid status filter",
				model.FieldError{Field: "status", Message: "must be one of: pending, in_progress, completed, overdue"}))
		return
	}

	tasks, total, err := s.store.ListTasks(r.Context(), opts)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}

	respondList(w, reqID, tasks, &model.Pagination{
		Total:   total,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
		HasMore: opts.Offset+len(tasks) < total,
	})
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	task, err := s.store.GetTask(r.Context(), id)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	if task == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("task", id))
		return
	}
	respondOK(w, reqID, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	task, err := s.store.GetTask(r.Context(), id)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	if task == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("task", id))
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		})
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("invalid task", errs...))
		return
	}

	task.Title = req.Title
	task.Subject = req.Subject
	if req.Difficulty != "" {
		task.Difficulty = model.TaskDifficulty(req.Difficulty)
	}
	if req.Status != "" {
		task.Status = model.TaskStatus(req.Status)
	}
	if req.Priority != "" {
		task.Priority = model.TaskPriority(req.Priority)
	}
	if req.EstimatedMinutes > 0 {
		task.EstimatedMinutes = req.EstimatedMinutes
	}
	task.DueDate = *req.DueDate
	task.RelatedExamID = req.RelatedExamID
	task.Notes = req.Notes
	task.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateTask(r.Context(), task); err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	respondOK(w, reqID, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	task, err := s.store.GetTask(r.Context(), id)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	if task == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("task", id))
		return
	}

	if err := s.store.DeleteTask(r.Context(), id); err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	respondOK(w, reqID, map[string]any{"deleted": true, "id": id})
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	task, err := s.store.GetTask(r.Context(), id)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	if task == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("task", id))
		return
	}

	now := time.Now().UTC()
	task.Status = model.TaskStatusCompleted
	task.CompletedAt = &now
	task.UpdatedAt = now

	if err := s.store.UpdateTask(r.Context(), task); err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}

	s.logger.Info("task completed", "task_id", task.ID, "request_id", reqID)
	respondOK(w, reqID, task)
}

// listOptionsFromQuery parses ?limit=, ?offset=, and ?status= with defaults.
func listOptionsFromQuery(r *http.Request) model.ListOptions {
	opts := model.DefaultListOptions()
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Offset = n
		}
	}
	opts.Status = q.Get("status")
	opts.Clamp()
	return opts
}
