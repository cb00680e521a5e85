package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/bornholm/worklog/internal/adapter/memory"
	"github.com/bornholm/worklog/internal/core/model"
	"github.com/bornholm/worklog/internal/core/port"
	"github.com/bornholm/worklog/internal/workday"
	"github.com/pkg/errors"
)

func TestCarryForwardRunOnce(t *testing.T) {
	ctx := context.Background()

	location, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	calendar := workday.NewCalendar(location)
	store := memory.NewTaskStore()

	// Open task from friday, march 13th
	friday := time.Date(2026, time.March, 13, 0, 0, 0, 0, location)
	task := newOpenTask(t, store, "api-cleanup", friday, calendar.At(friday, 10, 30))

	// The scheduler fires early saturday morning (a working second
	// saturday)
	now := time.Date(2026, time.March, 14, 0, 5, 0, 0, location)

	carryForward := NewCarryForward(store, calendar,
		WithClock(port.ClockFunc(func() time.Time { return now })),
	)

	if err := carryForward.RunOnce(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	closed, err := store.GetTaskByID(ctx, task.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	// The predecessor closes at the cutoff of its own day
	cutoff := time.Date(2026, time.March, 13, 20, 0, 0, 0, location)
	if closed.FinishDate() == nil || !closed.FinishDate().Equal(cutoff) {
		t.Errorf("closed.FinishDate(): expected '%s', got '%v'", cutoff, closed.FinishDate())
	}

	if closed.FinishTime() == nil || !closed.FinishTime().Equal(cutoff) {
		t.Errorf("closed.FinishTime(): expected '%s', got '%v'", cutoff, closed.FinishTime())
	}

	if e, g := model.TaskStatusOngoing, closed.Status(); e != g {
		t.Errorf("closed.Status(): expected '%s', got '%s'", e, g)
	}

	successor := findSuccessor(t, store, task)

	saturday := time.Date(2026, time.March, 14, 0, 0, 0, 0, location)
	if !successor.StartDate().Equal(saturday) {
		t.Errorf("successor.StartDate(): expected '%s', got '%s'", saturday, successor.StartDate())
	}

	clockIn := time.Date(2026, time.March, 14, 10, 30, 0, 0, location)
	if !successor.StartTime().Equal(clockIn) {
		t.Errorf("successor.StartTime(): expected '%s', got '%s'", clockIn, successor.StartTime())
	}

	if successor.FinishDate() != nil || successor.FinishTime() != nil {
		t.Errorf("expected null finish stamps on successor")
	}
}

func TestCarryForwardSkipsOffDaySuccessor(t *testing.T) {
	ctx := context.Background()

	location, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	calendar := workday.NewCalendar(location)
	store := memory.NewTaskStore()

	// Open task from friday, march 6th: the next day is a first
	// saturday, so the successor lands on monday
	friday := time.Date(2026, time.March, 6, 0, 0, 0, 0, location)
	task := newOpenTask(t, store, "api-cleanup", friday, calendar.At(friday, 10, 30))

	now := time.Date(2026, time.March, 7, 0, 5, 0, 0, location)

	carryForward := NewCarryForward(store, calendar,
		WithClock(port.ClockFunc(func() time.Time { return now })),
	)

	if err := carryForward.RunOnce(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	successor := findSuccessor(t, store, task)

	monday := time.Date(2026, time.March, 9, 0, 0, 0, 0, location)
	if !successor.StartDate().Equal(monday) {
		t.Errorf("successor.StartDate(): expected '%s', got '%s'", monday, successor.StartDate())
	}
}

func TestCarryForwardSkipsNonWorkingYesterday(t *testing.T) {
	ctx := context.Background()

	location, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	calendar := workday.NewCalendar(location)
	store := memory.NewTaskStore()

	sunday := time.Date(2026, time.March, 8, 0, 0, 0, 0, location)
	task := newOpenTask(t, store, "api-cleanup", sunday, calendar.At(sunday, 10, 30))

	// Monday morning: yesterday was a sunday, nothing runs
	now := time.Date(2026, time.March, 9, 0, 5, 0, 0, location)

	carryForward := NewCarryForward(store, calendar,
		WithClock(port.ClockFunc(func() time.Time { return now })),
	)

	if err := carryForward.RunOnce(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	untouched, err := store.GetTaskByID(ctx, task.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if untouched.FinishDate() != nil {
		t.Errorf("expected task to stay open, got finish date '%v'", untouched.FinishDate())
	}

	if _, total, err := store.QueryTasks(ctx, port.QueryTasksOptions{}); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	} else if e, g := int64(1), total; e != g {
		t.Errorf("total tasks: expected '%d', got '%d'", e, g)
	}
}

func TestCarryForwardRunOnceIsIdempotent(t *testing.T) {
	ctx := context.Background()

	location, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	calendar := workday.NewCalendar(location)
	store := memory.NewTaskStore()

	wednesday := time.Date(2026, time.March, 11, 0, 0, 0, 0, location)
	newOpenTask(t, store, "api-cleanup", wednesday, calendar.At(wednesday, 10, 30))

	now := time.Date(2026, time.March, 12, 0, 5, 0, 0, location)

	carryForward := NewCarryForward(store, calendar,
		WithClock(port.ClockFunc(func() time.Time { return now })),
	)

	if err := carryForward.RunOnce(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := carryForward.RunOnce(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	// The second pass finds nothing: the first one stamped every
	// predecessor's finish fields
	if _, total, err := store.QueryTasks(ctx, port.QueryTasksOptions{}); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	} else if e, g := int64(2), total; e != g {
		t.Errorf("total tasks: expected '%d', got '%d'", e, g)
	}
}

func TestCarryForwardFailedSuccessorDoesNotAbortRun(t *testing.T) {
	ctx := context.Background()

	location, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	calendar := workday.NewCalendar(location)
	store := memory.NewTaskStore()

	wednesday := time.Date(2026, time.March, 11, 0, 0, 0, 0, location)
	doomed := newOpenTask(t, store, "doomed", wednesday, calendar.At(wednesday, 10, 30))
	healthy := newOpenTask(t, store, "healthy", wednesday, calendar.At(wednesday, 11, 0))

	now := time.Date(2026, time.March, 12, 0, 5, 0, 0, location)

	failing := &failingSlugStore{TaskStore: store, slug: doomed.Slug()}

	carryForward := NewCarryForward(failing, calendar,
		WithClock(port.ClockFunc(func() time.Time { return now })),
	)

	if err := carryForward.RunOnce(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	// The healthy module still got its successor
	findSuccessor(t, store, healthy)

	// The doomed module's predecessor was still closed
	reloaded, err := store.GetTaskByID(ctx, doomed.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if reloaded.FinishDate() == nil {
		t.Errorf("expected closed predecessor despite failed successor")
	}
}

type failingSlugStore struct {
	port.TaskStore
	slug model.Slug
}

func (s *failingSlugStore) CreateTask(ctx context.Context, task model.Task) error {
	if task.Slug() == s.slug {
		return errors.New("store unavailable")
	}

	return s.TaskStore.CreateTask(ctx, task)
}

func newOpenTask(t *testing.T, store *memory.TaskStore, slug model.Slug, startDate, startTime time.Time) model.Task {
	t.Helper()

	task := model.NewTask(
		model.CreatorRoleUser,
		model.NewUserID(),
		model.NewUserID(),
		model.NewProjectID(),
		model.NewServiceID(),
		"recurring work",
		slug,
		startDate,
		startTime,
		model.TaskStatusOngoing,
	)

	if err := store.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return task
}

func findSuccessor(t *testing.T, store *memory.TaskStore, predecessor model.Task) model.Task {
	t.Helper()

	slug := predecessor.Slug()

	tasks, _, err := store.QueryTasks(context.Background(), port.QueryTasksOptions{
		Slug:           &slug,
		OnlyUnfinished: true,
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	for _, task := range tasks {
		if task.ID() != predecessor.ID() {
			return task
		}
	}

	t.Fatalf("no successor found for task '%s'", predecessor.ID())

	return nil
}
