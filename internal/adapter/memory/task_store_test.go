package memory

import (
	"context"
	"testing"
	"time"

	"github.com/bornholm/worklog/internal/core/model"
	"github.com/bornholm/worklog/internal/core/port"
	"github.com/pkg/errors"
)

func TestTaskStoreCreateTask(t *testing.T) {
	ctx := context.Background()

	store := NewTaskStore()

	task := newTask("api-cleanup", model.TaskStatusInitiated, day(11))

	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := store.CreateTask(ctx, task); err == nil {
		t.Fatal("expected error on duplicate id")
	}

	fetched, err := store.GetTaskByID(ctx, task.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := task.Slug(), fetched.Slug(); e != g {
		t.Errorf("fetched.Slug(): expected '%s', got '%s'", e, g)
	}

	if _, err := store.GetTaskByID(ctx, model.NewTaskID()); !errors.Is(err, port.ErrNotFound) {
		t.Fatalf("expected port.ErrNotFound, got %+v", err)
	}
}

func TestTaskStoreSingleCompletedPerSlug(t *testing.T) {
	ctx := context.Background()

	store := NewTaskStore()

	first := newTask("api-cleanup", model.TaskStatusCompleted, day(11))
	if err := store.CreateTask(ctx, first); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	// A second completed task on the same slug breaks the invariant
	second := newTask("api-cleanup", model.TaskStatusCompleted, day(12))
	if err := store.CreateTask(ctx, second); !errors.Is(err, port.ErrModuleClosed) {
		t.Fatalf("expected port.ErrModuleClosed, got %+v", err)
	}

	// Patching a sibling to completed is rejected the same way
	sibling := newTask("api-cleanup", model.TaskStatusOngoing, day(12))
	if err := store.CreateTask(ctx, sibling); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	completed := model.TaskStatusCompleted
	if _, err := store.UpdateTasks(ctx, []model.TaskID{sibling.ID()}, port.TaskUpdates{
		Status: &completed,
	}); !errors.Is(err, port.ErrModuleClosed) {
		t.Fatalf("expected port.ErrModuleClosed, got %+v", err)
	}

	// Another module is unaffected
	other := newTask("other-module", model.TaskStatusCompleted, day(12))
	if err := store.CreateTask(ctx, other); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
}

func TestTaskStoreQueryTasks(t *testing.T) {
	ctx := context.Background()

	store := NewTaskStore()

	ongoing := newTask("api-cleanup", model.TaskStatusOngoing, day(11))
	initiated := newTask("other-module", model.TaskStatusInitiated, day(12))
	finished := newTask("api-cleanup", model.TaskStatusOngoing, day(10))

	for _, task := range []model.Task{ongoing, initiated, finished} {
		if err := store.CreateTask(ctx, task); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	finish := day(10).Add(20 * time.Hour)
	if _, err := store.UpdateTasks(ctx, []model.TaskID{finished.ID()}, port.TaskUpdates{
		FinishDate: &finish,
		FinishTime: &finish,
	}); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	status := model.TaskStatusOngoing

	tasks, total, err := store.QueryTasks(ctx, port.QueryTasksOptions{Status: &status})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(2), total; e != g {
		t.Errorf("total: expected '%d', got '%d'", e, g)
	}

	tasks, total, err = store.QueryTasks(ctx, port.QueryTasksOptions{
		Status:         &status,
		OnlyUnfinished: true,
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(1), total; e != g {
		t.Fatalf("total: expected '%d', got '%d'", e, g)
	}

	if e, g := ongoing.ID(), tasks[0].ID(); e != g {
		t.Errorf("tasks[0].ID(): expected '%s', got '%s'", e, g)
	}

	after := day(11)
	before := day(11).Add(24*time.Hour - time.Nanosecond)

	_, total, err = store.QueryTasks(ctx, port.QueryTasksOptions{
		StartedAfter:  &after,
		StartedBefore: &before,
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(1), total; e != g {
		t.Errorf("total: expected '%d', got '%d'", e, g)
	}
}

func TestTaskStoreQueryTasksPagination(t *testing.T) {
	ctx := context.Background()

	store := NewTaskStore()

	for range 5 {
		if err := store.CreateTask(ctx, newTask("api-cleanup", model.TaskStatusOngoing, day(11))); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	page := 2
	limit := 2

	tasks, total, err := store.QueryTasks(ctx, port.QueryTasksOptions{
		Page:  &page,
		Limit: &limit,
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(5), total; e != g {
		t.Errorf("total: expected '%d', got '%d'", e, g)
	}

	if e, g := 2, len(tasks); e != g {
		t.Errorf("len(tasks): expected '%d', got '%d'", e, g)
	}

	page = 4

	tasks, _, err = store.QueryTasks(ctx, port.QueryTasksOptions{
		Page:  &page,
		Limit: &limit,
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 0, len(tasks); e != g {
		t.Errorf("len(tasks): expected '%d', got '%d'", e, g)
	}
}

func TestTaskStoreUpdateTasksClearFinish(t *testing.T) {
	ctx := context.Background()

	store := NewTaskStore()

	task := newTask("api-cleanup", model.TaskStatusOngoing, day(11))
	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	finish := day(11).Add(20 * time.Hour)

	updated, err := store.UpdateTasks(ctx, []model.TaskID{task.ID()}, port.TaskUpdates{
		FinishDate: &finish,
		FinishTime: &finish,
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(1), updated; e != g {
		t.Errorf("updated: expected '%d', got '%d'", e, g)
	}

	if _, err := store.UpdateTasks(ctx, []model.TaskID{task.ID()}, port.TaskUpdates{
		ClearFinish: true,
	}); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	reloaded, err := store.GetTaskByID(ctx, task.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if reloaded.FinishDate() != nil || reloaded.FinishTime() != nil {
		t.Errorf("expected cleared finish stamps, got '%v' / '%v'", reloaded.FinishDate(), reloaded.FinishTime())
	}

	// Unknown ids are skipped, not an error
	updated, err = store.UpdateTasks(ctx, []model.TaskID{model.NewTaskID()}, port.TaskUpdates{
		ClearFinish: true,
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(0), updated; e != g {
		t.Errorf("updated: expected '%d', got '%d'", e, g)
	}
}

func TestTaskStoreCountTasksByStatus(t *testing.T) {
	ctx := context.Background()

	store := NewTaskStore()

	alice := model.NewUserID()
	bob := model.NewUserID()

	tasks := []model.Task{
		newAssignedTask("m1", model.TaskStatusOngoing, alice),
		newAssignedTask("m2", model.TaskStatusOngoing, alice),
		newAssignedTask("m3", model.TaskStatusCompleted, alice),
		newAssignedTask("m4", model.TaskStatusInitiated, bob),
	}

	for _, task := range tasks {
		if err := store.CreateTask(ctx, task); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	counts, err := store.CountTasksByStatus(ctx, nil)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(2), counts[model.TaskStatusOngoing]; e != g {
		t.Errorf("counts[Ongoing]: expected '%d', got '%d'", e, g)
	}

	if e, g := int64(1), counts[model.TaskStatusInitiated]; e != g {
		t.Errorf("counts[Initiated]: expected '%d', got '%d'", e, g)
	}

	counts, err = store.CountTasksByStatus(ctx, &alice)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(2), counts[model.TaskStatusOngoing]; e != g {
		t.Errorf("counts[Ongoing]: expected '%d', got '%d'", e, g)
	}

	if e, g := int64(0), counts[model.TaskStatusInitiated]; e != g {
		t.Errorf("counts[Initiated]: expected '%d', got '%d'", e, g)
	}
}

func TestTaskStoreReferences(t *testing.T) {
	ctx := context.Background()

	store := NewTaskStore()

	user := model.NewReadOnlyUser(model.NewUserID(), 42, "Alice", model.CreatorRoleAdmin)
	if err := store.SaveUser(ctx, user); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	fetched, err := store.GetUserByExternalID(ctx, 42)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := user.ID(), fetched.ID(); e != g {
		t.Errorf("fetched.ID(): expected '%s', got '%s'", e, g)
	}

	if _, err := store.GetUserByExternalID(ctx, 43); !errors.Is(err, port.ErrNotFound) {
		t.Fatalf("expected port.ErrNotFound, got %+v", err)
	}

	if _, err := store.GetProjectByName(ctx, "Atlas"); !errors.Is(err, port.ErrNotFound) {
		t.Fatalf("expected port.ErrNotFound, got %+v", err)
	}

	if err := store.SaveProject(ctx, model.NewReadOnlyProject(model.NewProjectID(), "Atlas", "ACME")); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, err := store.GetProjectByName(ctx, "Atlas"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := store.SaveService(ctx, model.NewReadOnlyService(model.NewServiceID(), "Backend")); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, err := store.GetServiceByName(ctx, "Backend"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func newTask(slug model.Slug, status model.TaskStatus, startDate time.Time) model.Task {
	return model.NewTask(
		model.CreatorRoleUser,
		model.NewUserID(),
		model.NewUserID(),
		model.NewProjectID(),
		model.NewServiceID(),
		"recurring work",
		slug,
		startDate,
		startDate.Add(10*time.Hour),
		status,
	)
}

func newAssignedTask(slug model.Slug, status model.TaskStatus, assignedTo model.UserID) model.Task {
	return model.NewTask(
		model.CreatorRoleUser,
		model.NewUserID(),
		assignedTo,
		model.NewProjectID(),
		model.NewServiceID(),
		"recurring work",
		slug,
		day(11),
		day(11).Add(10*time.Hour),
		status,
	)
}
