package server

import "net/http"

type endpointInfo struct {
	Path        string   `json:"path"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

type discoveryResponse struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Endpoints   []endpointInfo `json:"endpoints"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, discoveryResponse{
		Name:        "Studyplan API",
		Version:     "v1",
		Description: "Study planner — task management, exam tracking, and priority-based schedule generation",
		Endpoints: []endpointInfo{
			{"/api/v1/tasks", []string{"GET", "POST"}, "Study task management. GET accepts ?status=, ?limit=, ?offset="},
			{"/api/v1/tasks/{id}", []string{"GET", "PUT", "DELETE"}, "Single task operations"},
			{"/api/v1/tasks/{id}/complete", []string{"POST"}, "Mark a task completed"},
			{"/api/v1/exams", []string{"GET", "POST"}, "Exam management"},
			{"/api/v1/exams/{id}", []string{"GET", "DELETE"}, "Single exam operations"},
			{"/api/v1/slots", []string{"GET", "POST"}, "Weekly availability slot management"},
			{"/api/v1/slots/{id}", []string{"PUT", "DELETE"}, "Single slot operations"},
			{"/api/v1/plans", []string{"GET"}, "List generated study plans"},
			{"/api/v1/plans/generate", []string{"POST"}, "Generate and persist a new study plan"},
			{"/api/v1/plans/latest", []string{"GET"}, "Most recently generated plan"},
			{"/api/v1/plans/{id}", []string{"GET"}, "Single plan detail with sessions"},
			{"/api/v1/chat", []string{"POST"}, "Chat assistant for task creation and plan generation"},
			{"/api/v1/health", []string{"GET"}, "Server health and version"},
		},
	})
}
