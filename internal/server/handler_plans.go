package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/me/studyplan/pkg/model"
)

// allTasks pages through the store so plan generation sees every task rather
// than the first page only.
func (s *Server) allTasks(ctx context.Context) ([]*model.StudyTask, error) {
	var tasks []*model.StudyTask
	opts := model.ListOptions{Limit: 100}
	for {
		page, total, err := s.store.ListTasks(ctx, opts)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, page...)
		if len(page) == 0 || len(tasks) >= total {
			return tasks, nil
		}
		opts.Offset += len(page)
	}
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	ctx := r.Context()

	tasks, err := s.allTasks(ctx)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	exams, err := s.store.ListExams(ctx)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	slots, err := s.store.ListSlots(ctx)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}

	plan := s.planner.Generate(tasks, exams, slots)
	if err := s.store.SavePlan(ctx, plan); err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}

	s.logger.Info("plan generated",
		"plan_id", plan.ID,
		"sessions", len(plan.Sessions),
		"tasks_included", plan.TasksIncluded,
		"request_id", reqID,
	)
	respondCreated(w, reqID, plan)
}

func (s *Server) handleLatestPlan(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	plan, err := s.store.LatestPlan(r.Context())
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	if plan == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("plan", "latest"))
		return
	}
	respondOK(w, reqID, plan)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	plan, err := s.store.GetPlan(r.Context(), id)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	if plan == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("plan", id))
		return
	}
	respondOK(w, reqID, plan)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	opts := listOptionsFromQuery(r)
	plans, total, err := s.store.ListPlans(r.Context(), opts)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}

	respondList(w, reqID, plans, &model.Pagination{
		Total:   total,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
		HasMore: opts.Offset+len(plans) < total,
	})
}
