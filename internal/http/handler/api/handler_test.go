package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bornholm/worklog/internal/adapter/memory"
	"github.com/bornholm/worklog/internal/core/model"
	"github.com/bornholm/worklog/internal/core/port"
	"github.com/bornholm/worklog/internal/core/service"
	"github.com/bornholm/worklog/internal/workday"
	"github.com/pkg/errors"
)

func TestHandlerTaskLifecycle(t *testing.T) {
	handler, location := setupHandler(t)

	now := time.Date(2026, time.March, 11, 11, 0, 0, 0, location)

	created := createTask(t, handler, CreateTaskRequest{
		CreatorID:  1,
		AssignedTo: 2,
		Project:    "Atlas",
		Service:    "Backend",
		Purpose:    "API cleanup",
		StartDate:  time.Date(2026, time.March, 11, 0, 0, 0, 0, location),
		StartTime:  now,
	})

	if e, g := model.TaskStatusInitiated, created.Status; e != g {
		t.Errorf("created.Status: expected '%s', got '%s'", e, g)
	}

	// Fetch it back
	res := doRequest(t, handler, http.MethodGet, fmt.Sprintf("/tasks/%s", created.ID), nil)
	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("status: expected '%d', got '%d': %s", e, g, res.Body.String())
	}

	// Complete it
	res = doRequest(t, handler, http.MethodPatch, fmt.Sprintf("/tasks/%s/complete", created.ID), nil)
	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("status: expected '%d', got '%d': %s", e, g, res.Body.String())
	}

	var completed TaskResponse
	if err := json.Unmarshal(res.Body.Bytes(), &completed); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := model.TaskStatusCompleted, completed.Task.Status; e != g {
		t.Errorf("completed.Task.Status: expected '%s', got '%s'", e, g)
	}

	// Completing twice conflicts
	res = doRequest(t, handler, http.MethodPatch, fmt.Sprintf("/tasks/%s/complete", created.ID), nil)
	if e, g := http.StatusConflict, res.Code; e != g {
		t.Fatalf("status: expected '%d', got '%d': %s", e, g, res.Body.String())
	}
}

func TestHandlerContinueTomorrow(t *testing.T) {
	handler, location := setupHandler(t)

	now := time.Date(2026, time.March, 11, 18, 0, 0, 0, location)

	created := createTask(t, handler, CreateTaskRequest{
		CreatorID:  1,
		AssignedTo: 2,
		Project:    "Atlas",
		Service:    "Backend",
		Purpose:    "API cleanup",
		StartDate:  time.Date(2026, time.March, 11, 0, 0, 0, 0, location),
		StartTime:  now.Add(-8 * time.Hour),
	})

	res := doRequest(t, handler, http.MethodPatch, fmt.Sprintf("/tasks/%s/continue", created.ID), nil)
	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("status: expected '%d', got '%d': %s", e, g, res.Body.String())
	}

	var successor TaskResponse
	if err := json.Unmarshal(res.Body.Bytes(), &successor); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := model.TaskStatusOngoing, successor.Task.Status; e != g {
		t.Errorf("successor.Task.Status: expected '%s', got '%s'", e, g)
	}

	if e, g := created.Slug, successor.Task.Slug; e != g {
		t.Errorf("successor.Task.Slug: expected '%s', got '%s'", e, g)
	}

	if successor.Task.ID == created.ID {
		t.Errorf("expected a new task id")
	}
}

func TestHandlerListTasks(t *testing.T) {
	handler, location := setupHandler(t)

	for idx := range 3 {
		createTask(t, handler, CreateTaskRequest{
			CreatorID:  1,
			AssignedTo: 2,
			Project:    "Atlas",
			Service:    "Backend",
			Purpose:    fmt.Sprintf("task %d", idx),
			StartDate:  time.Date(2026, time.March, 11, 0, 0, 0, 0, location),
			StartTime:  time.Date(2026, time.March, 11, 11, 0, 0, 0, location),
		})
	}

	res := doRequest(t, handler, http.MethodGet, "/tasks?page=1&limit=2", nil)
	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("status: expected '%d', got '%d': %s", e, g, res.Body.String())
	}

	var listed ListTasksResponse
	if err := json.Unmarshal(res.Body.Bytes(), &listed); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 2, len(listed.Tasks); e != g {
		t.Errorf("len(listed.Tasks): expected '%d', got '%d'", e, g)
	}

	if e, g := int64(3), listed.Pagination.TotalTasks; e != g {
		t.Errorf("listed.Pagination.TotalTasks: expected '%d', got '%d'", e, g)
	}

	if e, g := int64(2), listed.Pagination.TotalPages; e != g {
		t.Errorf("listed.Pagination.TotalPages: expected '%d', got '%d'", e, g)
	}
}

func TestHandlerStatusBreakdown(t *testing.T) {
	handler, location := setupHandler(t)

	createTask(t, handler, CreateTaskRequest{
		CreatorID:  1,
		AssignedTo: 2,
		Project:    "Atlas",
		Service:    "Backend",
		Purpose:    "API cleanup",
		StartDate:  time.Date(2026, time.March, 11, 0, 0, 0, 0, location),
		StartTime:  time.Date(2026, time.March, 11, 11, 0, 0, 0, location),
	})

	res := doRequest(t, handler, http.MethodGet, "/analytics/status", nil)
	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("status: expected '%d', got '%d': %s", e, g, res.Body.String())
	}

	var breakdown StatusBreakdownResponse
	if err := json.Unmarshal(res.Body.Bytes(), &breakdown); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(1), breakdown.Total; e != g {
		t.Errorf("breakdown.Total: expected '%d', got '%d'", e, g)
	}

	if e, g := int64(1), breakdown.Breakdown[model.TaskStatusInitiated]; e != g {
		t.Errorf("breakdown.Breakdown[Initiated]: expected '%d', got '%d'", e, g)
	}

	// Filtered by an unknown user
	res = doRequest(t, handler, http.MethodGet, "/analytics/status?userId=99", nil)
	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Errorf("status: expected '%d', got '%d': %s", e, g, res.Body.String())
	}
}

func TestHandlerGetUnknownTask(t *testing.T) {
	handler, _ := setupHandler(t)

	res := doRequest(t, handler, http.MethodGet, fmt.Sprintf("/tasks/%s", model.NewTaskID()), nil)
	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Fatalf("status: expected '%d', got '%d': %s", e, g, res.Body.String())
	}
}

func createTask(t *testing.T, handler *Handler, req CreateTaskRequest) *Task {
	t.Helper()

	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	res := doRequest(t, handler, http.MethodPost, "/tasks", bytes.NewReader(body))
	if e, g := http.StatusCreated, res.Code; e != g {
		t.Fatalf("status: expected '%d', got '%d': %s", e, g, res.Body.String())
	}

	var created TaskResponse
	if err := json.Unmarshal(res.Body.Bytes(), &created); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return created.Task
}

func doRequest(t *testing.T, handler *Handler, method string, target string, body *bytes.Reader) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	return res
}

func setupHandler(t *testing.T) (*Handler, *time.Location) {
	t.Helper()

	ctx := context.Background()

	location, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	store := memory.NewTaskStore()

	if err := store.SaveUser(ctx, model.NewReadOnlyUser(model.NewUserID(), 1, "Alice", model.CreatorRoleAdmin)); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := store.SaveUser(ctx, model.NewReadOnlyUser(model.NewUserID(), 2, "Bob", model.CreatorRoleUser)); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := store.SaveProject(ctx, model.NewReadOnlyProject(model.NewProjectID(), "Atlas", "ACME")); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := store.SaveService(ctx, model.NewReadOnlyService(model.NewServiceID(), "Backend")); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	now := time.Date(2026, time.March, 11, 18, 0, 0, 0, location)

	taskManager := service.NewTaskManager(store, workday.NewCalendar(location),
		service.WithTaskManagerClock(port.ClockFunc(func() time.Time { return now })),
	)

	return NewHandler(taskManager, store), location
}
