package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/worklog/internal/core/model"
	"github.com/bornholm/worklog/internal/core/port"
	"github.com/bornholm/worklog/internal/workday"
	"github.com/bornholm/worklog/internal/workflow"
	"github.com/pkg/errors"
)

type TaskManagerOptions struct {
	Clock   port.Clock
	ClockIn workday.ClockTime
}

type TaskManagerOptionFunc func(opts *TaskManagerOptions)

func WithTaskManagerClock(clock port.Clock) TaskManagerOptionFunc {
	return func(opts *TaskManagerOptions) {
		opts.Clock = clock
	}
}

func WithTaskManagerClockIn(clockIn workday.ClockTime) TaskManagerOptionFunc {
	return func(opts *TaskManagerOptions) {
		opts.ClockIn = clockIn
	}
}

func NewTaskManagerOptions(funcs ...TaskManagerOptionFunc) *TaskManagerOptions {
	opts := &TaskManagerOptions{
		Clock:   port.SystemClock,
		ClockIn: workday.ClockTime{Hour: 10, Minute: 30},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

// TaskManager drives a task through Initiated -> Ongoing -> Completed
// and the continue-tomorrow fork. Every civil-date comparison uses the
// calendar's timezone.
type TaskManager struct {
	store    port.TaskStore
	calendar port.Calendar
	clock    port.Clock
	clockIn  workday.ClockTime
}

type CreateTaskParams struct {
	CreatorExternalID  int64
	AssignedExternalID int64
	ProjectName        string
	ServiceName        string
	Purpose            string
	StartDate          time.Time
	StartTime          time.Time
	FinishDate         *time.Time
	FinishTime         *time.Time
	Status             model.TaskStatus
}

// CreateTask resolves the reference entities by name, derives the
// module slug and persists a new task. Creation is rejected when the
// module is already closed or when the supplied date range is inverted.
func (m *TaskManager) CreateTask(ctx context.Context, params CreateTaskParams) (model.Task, error) {
	creator, err := m.store.GetUserByExternalID(ctx, params.CreatorExternalID)
	if err != nil {
		return nil, errors.Wrap(err, "could not resolve creator")
	}

	assigned, err := m.store.GetUserByExternalID(ctx, params.AssignedExternalID)
	if err != nil {
		return nil, errors.Wrap(err, "could not resolve assigned user")
	}

	project, err := m.store.GetProjectByName(ctx, params.ProjectName)
	if err != nil {
		return nil, errors.Wrap(err, "could not resolve project")
	}

	service, err := m.store.GetServiceByName(ctx, params.ServiceName)
	if err != nil {
		return nil, errors.Wrap(err, "could not resolve service")
	}

	if params.FinishDate != nil && params.StartDate.After(*params.FinishDate) {
		return nil, errors.WithStack(port.ErrInvalidDateRange)
	}

	if params.FinishTime != nil && !params.StartTime.Before(*params.FinishTime) {
		return nil, errors.WithStack(port.ErrInvalidDateRange)
	}

	slug := model.ComputeSlug(assigned.Name(), project.Name(), service.Name(), params.Purpose)

	closed, err := m.store.HasCompletedTask(ctx, slug)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if closed {
		return nil, errors.WithStack(port.ErrModuleClosed)
	}

	status := params.Status
	if status == "" {
		status = model.TaskStatusInitiated
	}

	taskOpts := []model.TaskOptionFunc{}
	if params.FinishDate != nil && params.FinishTime != nil {
		taskOpts = append(taskOpts, model.WithTaskFinish(*params.FinishDate, *params.FinishTime))
	}

	task := model.NewTask(
		creator.Role(),
		creator.ID(),
		assigned.ID(),
		project.ID(),
		service.ID(),
		params.Purpose,
		slug,
		params.StartDate,
		params.StartTime,
		status,
		taskOpts...,
	)

	if err := m.store.CreateTask(ctx, task); err != nil {
		return nil, errors.WithStack(err)
	}

	return task, nil
}

// MarkComplete closes a task for good. No successor is created and the
// whole module closes with it.
func (m *TaskManager) MarkComplete(ctx context.Context, id model.TaskID) (model.Task, error) {
	task, err := m.loadOpenTask(ctx, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	now := m.clock.Now()
	status := model.TaskStatusCompleted

	if _, err := m.store.UpdateTasks(ctx, []model.TaskID{task.ID()}, port.TaskUpdates{
		Status:     &status,
		FinishDate: &now,
		FinishTime: &now,
	}); err != nil {
		return nil, errors.Wrap(err, "could not mark task as completed")
	}

	updated, err := m.store.GetTaskByID(ctx, task.ID())
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return updated, nil
}

// ContinueTomorrow closes the task at the current instant and opens a
// successor on the next working day. The two store writes run as a
// saga: if the successor cannot be created the predecessor's finish
// stamps are rolled back, so a module is never left closed without a
// durably created successor.
func (m *TaskManager) ContinueTomorrow(ctx context.Context, id model.TaskID) (model.Task, error) {
	task, err := m.loadOpenTask(ctx, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	now := m.clock.Now()

	successorDay := m.calendar.NextWorkingDay(now)
	successor := model.NewSuccessorTask(
		task,
		m.calendar.StartOfDay(successorDay),
		m.calendar.At(successorDay, m.clockIn.Hour, m.clockIn.Minute),
	)

	saga := workflow.New(
		workflow.StepFunc(
			"close-predecessor",
			func(ctx context.Context) error {
				_, err := m.store.UpdateTasks(ctx, []model.TaskID{task.ID()}, port.TaskUpdates{
					FinishDate: &now,
					FinishTime: &now,
				})
				return errors.WithStack(err)
			},
			func(ctx context.Context) error {
				_, err := m.store.UpdateTasks(ctx, []model.TaskID{task.ID()}, port.TaskUpdates{
					ClearFinish: true,
				})
				return errors.WithStack(err)
			},
		),
		workflow.StepFunc(
			"create-successor",
			func(ctx context.Context) error {
				return errors.WithStack(m.store.CreateTask(ctx, successor))
			},
			nil,
		),
	)

	if err := saga.Execute(ctx); err != nil {
		return nil, errors.Wrap(err, "could not continue task tomorrow")
	}

	slog.InfoContext(ctx, "task carried to next working day",
		slog.String("taskID", string(task.ID())),
		slog.String("successorID", string(successor.ID())),
		slog.Time("successorDay", successorDay),
	)

	return successor, nil
}

// loadOpenTask fetches a task and applies the guards shared by the two
// interactive transitions: the task must exist, must not be completed
// or already finished, its module must still be open and its work day
// must not lie in the future.
func (m *TaskManager) loadOpenTask(ctx context.Context, id model.TaskID) (model.Task, error) {
	task, err := m.store.GetTaskByID(ctx, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if task.Status() == model.TaskStatusCompleted {
		return nil, errors.WithStack(port.ErrAlreadyCompleted)
	}

	// A task whose finish stamps are already set was closed by a
	// previous transition or by the carry-forward job, even when its
	// status still reads open. Transitioning it again would overwrite
	// the stamps and spawn a duplicate successor.
	if task.FinishDate() != nil || task.FinishTime() != nil {
		return nil, errors.WithStack(port.ErrAlreadyCompleted)
	}

	closed, err := m.store.HasCompletedTask(ctx, task.Slug())
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if closed {
		return nil, errors.WithStack(port.ErrModuleClosed)
	}

	// A task scheduled for a future day can not be transitioned early
	today := m.calendar.StartOfDay(m.clock.Now())
	if m.calendar.StartOfDay(task.StartDate()).After(today) {
		return nil, errors.WithStack(port.ErrNotToday)
	}

	return task, nil
}

// IsModuleClosed reports whether any task sharing the slug reached
// Completed.
func (m *TaskManager) IsModuleClosed(ctx context.Context, slug model.Slug) (bool, error) {
	closed, err := m.store.HasCompletedTask(ctx, slug)
	if err != nil {
		return false, errors.WithStack(err)
	}

	return closed, nil
}

func NewTaskManager(store port.TaskStore, calendar port.Calendar, funcs ...TaskManagerOptionFunc) *TaskManager {
	opts := NewTaskManagerOptions(funcs...)
	return &TaskManager{
		store:    store,
		calendar: calendar,
		clock:    opts.Clock,
		clockIn:  opts.ClockIn,
	}
}
