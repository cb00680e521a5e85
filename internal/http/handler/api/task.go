package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/bornholm/worklog/internal/core/model"
	"github.com/bornholm/worklog/internal/core/port"
	"github.com/bornholm/worklog/internal/core/service"
	"github.com/bornholm/worklog/internal/metrics"
)

type Task struct {
	ID          model.TaskID      `json:"id"`
	CreatorRole model.CreatorRole `json:"creatorRole"`
	CreatorID   model.UserID      `json:"creatorId"`
	AssignedTo  model.UserID      `json:"assignedTo"`
	ProjectID   model.ProjectID   `json:"projectId"`
	ServiceID   model.ServiceID   `json:"serviceId"`
	Purpose     string            `json:"purpose"`
	Slug        model.Slug        `json:"slug"`
	Date        time.Time         `json:"date"`
	StartDate   time.Time         `json:"startDate"`
	StartTime   time.Time         `json:"startTime"`
	FinishDate  *time.Time        `json:"finishDate"`
	FinishTime  *time.Time        `json:"finishTime"`
	Status      model.TaskStatus  `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func fromTask(t model.Task) *Task {
	return &Task{
		ID:          t.ID(),
		CreatorRole: t.CreatorRole(),
		CreatorID:   t.CreatorID(),
		AssignedTo:  t.AssignedTo(),
		ProjectID:   t.ProjectID(),
		ServiceID:   t.ServiceID(),
		Purpose:     t.Purpose(),
		Slug:        t.Slug(),
		Date:        t.Date(),
		StartDate:   t.StartDate(),
		StartTime:   t.StartTime(),
		FinishDate:  t.FinishDate(),
		FinishTime:  t.FinishTime(),
		Status:      t.Status(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

type CreateTaskRequest struct {
	CreatorID  int64            `json:"creatorId"`
	AssignedTo int64            `json:"assignedTo"`
	Project    string           `json:"project"`
	Service    string           `json:"service"`
	Purpose    string           `json:"purpose"`
	StartDate  time.Time        `json:"startDate"`
	StartTime  time.Time        `json:"startTime"`
	FinishDate *time.Time       `json:"finishDate"`
	FinishTime *time.Time       `json:"finishTime"`
	Status     model.TaskStatus `json:"status"`
}

type TaskResponse struct {
	Task *Task `json:"task"`
}

func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Project == "" || req.Service == "" || req.Purpose == "" {
		encode(w, r, http.StatusBadRequest, errorResponse{Error: "project, service and purpose are required"})
		return
	}

	task, err := h.taskManager.CreateTask(r.Context(), service.CreateTaskParams{
		CreatorExternalID:  req.CreatorID,
		AssignedExternalID: req.AssignedTo,
		ProjectName:        req.Project,
		ServiceName:        req.Service,
		Purpose:            req.Purpose,
		StartDate:          req.StartDate,
		StartTime:          req.StartTime,
		FinishDate:         req.FinishDate,
		FinishTime:         req.FinishTime,
		Status:             req.Status,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	metrics.TotalCreatedTasks.Inc()

	encode(w, r, http.StatusCreated, TaskResponse{Task: fromTask(task)})
}

type ListTasksResponse struct {
	Tasks      []*Task    `json:"tasks"`
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int64 `json:"totalPages"`
	TotalTasks  int64 `json:"totalTasks"`
}

func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	opts := port.QueryTasksOptions{}

	if rawStatus := r.URL.Query().Get("status"); rawStatus != "" {
		status := model.TaskStatus(rawStatus)
		opts.Status = &status
	}

	if rawSlug := r.URL.Query().Get("slug"); rawSlug != "" {
		slug := model.Slug(rawSlug)
		opts.Slug = &slug
	}

	page := 1
	if rawPage := r.URL.Query().Get("page"); rawPage != "" {
		if v, err := strconv.Atoi(rawPage); err == nil && v > 0 {
			page = v
		}
	}

	limit := 10
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		if v, err := strconv.Atoi(rawLimit); err == nil && v > 0 {
			limit = v
		}
	}

	opts.Page = &page
	opts.Limit = &limit

	tasks, total, err := h.store.QueryTasks(r.Context(), opts)
	if err != nil {
		handleError(w, r, err)
		return
	}

	items := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, fromTask(t))
	}

	totalPages := total / int64(limit)
	if total%int64(limit) > 0 {
		totalPages++
	}

	encode(w, r, http.StatusOK, ListTasksResponse{
		Tasks: items,
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalTasks:  total,
		},
	})
}

func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.store.GetTaskByID(r.Context(), model.TaskID(r.PathValue("taskID")))
	if err != nil {
		handleError(w, r, err)
		return
	}

	encode(w, r, http.StatusOK, TaskResponse{Task: fromTask(task)})
}

func (h *Handler) handleMarkComplete(w http.ResponseWriter, r *http.Request) {
	task, err := h.taskManager.MarkComplete(r.Context(), model.TaskID(r.PathValue("taskID")))
	if err != nil {
		handleError(w, r, err)
		return
	}

	encode(w, r, http.StatusOK, TaskResponse{Task: fromTask(task)})
}

func (h *Handler) handleContinueTomorrow(w http.ResponseWriter, r *http.Request) {
	successor, err := h.taskManager.ContinueTomorrow(r.Context(), model.TaskID(r.PathValue("taskID")))
	if err != nil {
		handleError(w, r, err)
		return
	}

	encode(w, r, http.StatusOK, TaskResponse{Task: fromTask(successor)})
}
