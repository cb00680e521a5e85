package api

import (
	"net/http"

	"github.com/bornholm/worklog/internal/core/port"
	"github.com/bornholm/worklog/internal/core/service"
)

type Handler struct {
	taskManager *service.TaskManager
	store       port.TaskStore
	mux         *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(taskManager *service.TaskManager, store port.TaskStore) *Handler {
	h := &Handler{
		taskManager: taskManager,
		store:       store,
		mux:         &http.ServeMux{},
	}

	h.mux.Handle("POST /tasks", http.HandlerFunc(h.handleCreateTask))
	h.mux.Handle("GET /tasks", http.HandlerFunc(h.handleListTasks))
	h.mux.Handle("GET /tasks/{taskID}", http.HandlerFunc(h.handleGetTask))
	h.mux.Handle("PATCH /tasks/{taskID}/complete", http.HandlerFunc(h.handleMarkComplete))
	h.mux.Handle("PATCH /tasks/{taskID}/continue", http.HandlerFunc(h.handleContinueTomorrow))

	h.mux.Handle("GET /analytics/status", http.HandlerFunc(h.handleStatusBreakdown))

	return h
}

var _ http.Handler = &Handler{}
