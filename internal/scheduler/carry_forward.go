package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/worklog/internal/core/model"
	"github.com/bornholm/worklog/internal/core/port"
	"github.com/bornholm/worklog/internal/metrics"
	"github.com/bornholm/worklog/internal/workday"
	"github.com/pkg/errors"
)

type Options struct {
	Clock   port.Clock
	Trigger workday.ClockTime
	ClockIn workday.ClockTime
	Cutoff  workday.ClockTime
}

type OptionFunc func(opts *Options)

func WithClock(clock port.Clock) OptionFunc {
	return func(opts *Options) {
		opts.Clock = clock
	}
}

func WithTrigger(trigger workday.ClockTime) OptionFunc {
	return func(opts *Options) {
		opts.Trigger = trigger
	}
}

func WithClockIn(clockIn workday.ClockTime) OptionFunc {
	return func(opts *Options) {
		opts.ClockIn = clockIn
	}
}

func WithCutoff(cutoff workday.ClockTime) OptionFunc {
	return func(opts *Options) {
		opts.Cutoff = cutoff
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Clock:   port.SystemClock,
		Trigger: workday.ClockTime{Hour: 0, Minute: 5},
		ClockIn: workday.ClockTime{Hour: 10, Minute: 30},
		Cutoff:  workday.ClockTime{Hour: 20, Minute: 0},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

// CarryForward is the daily recurring job closing out the previous
// working day's open tasks and spawning their successors. One instance
// runs per process; Start and Stop bracket its lifetime and RunOnce
// performs a single synchronous tick for tests and operator commands.
type CarryForward struct {
	store    port.TaskStore
	calendar port.Calendar
	clock    port.Clock
	trigger  workday.ClockTime
	clockIn  workday.ClockTime
	cutoff   workday.ClockTime

	mutex   sync.Mutex
	running bool
	stop    context.CancelFunc
}

// Start launches the daily trigger loop. It returns an error when the
// scheduler is already running.
func (s *CarryForward) Start(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.running {
		return errors.New("scheduler already started")
	}

	ctx, cancel := context.WithCancel(ctx)
	s.running = true
	s.stop = cancel

	go s.loop(ctx)

	slog.InfoContext(ctx, "carry-forward scheduler started", slog.String("trigger", s.trigger.String()))

	return nil
}

// Stop cancels the trigger loop. A run already in flight completes on
// its own.
func (s *CarryForward) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.running {
		return
	}

	s.stop()
	s.running = false
	s.stop = nil
}

func (s *CarryForward) loop(ctx context.Context) {
	for {
		next := s.nextTrigger()
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case <-timer.C:
			// Errors are already recorded per task; a run never aborts
			// the loop.
			if err := s.RunOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "carry-forward run failed", slogx.Error(errors.WithStack(err)))
			}
		}
	}
}

// nextTrigger computes the next wall-clock firing instant: today at the
// trigger time when still ahead, otherwise tomorrow.
func (s *CarryForward) nextTrigger() time.Time {
	now := s.clock.Now()

	next := s.calendar.At(now, s.trigger.Hour, s.trigger.Minute)
	if !next.After(now) {
		next = s.calendar.At(now.AddDate(0, 0, 1), s.trigger.Hour, s.trigger.Minute)
	}

	return next
}

// RunOnce performs one carry-forward pass. Running it twice in the same
// day is a no-op the second time: the finishDate-is-null guard in the
// query excludes everything the first pass already closed.
func (s *CarryForward) RunOnce(ctx context.Context) error {
	metrics.CarryForwardRuns.Inc()

	now := s.clock.Now()
	yesterday := s.calendar.StartOfDay(now.AddDate(0, 0, -1))

	if !s.calendar.IsWorkingDay(yesterday) {
		slog.InfoContext(ctx, "previous day was not a working day, nothing to carry forward", slog.Time("yesterday", yesterday))
		return nil
	}

	yesterdayStart := yesterday
	yesterdayEnd := s.calendar.EndOfDay(yesterday)

	status := model.TaskStatusOngoing

	tasks, _, err := s.store.QueryTasks(ctx, port.QueryTasksOptions{
		Status:         &status,
		StartedAfter:   &yesterdayStart,
		StartedBefore:  &yesterdayEnd,
		OnlyUnfinished: true,
	})
	if err != nil {
		return errors.Wrap(err, "could not query open tasks from previous working day")
	}

	if len(tasks) == 0 {
		slog.InfoContext(ctx, "no open tasks from previous working day")
		return nil
	}

	// Close the whole batch before creating any successor: a crash
	// mid-run must never leave a successor without a closed predecessor.
	cutoff := s.calendar.At(yesterday, s.cutoff.Hour, s.cutoff.Minute)

	ids := make([]model.TaskID, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID())
	}

	closed, err := s.store.UpdateTasks(ctx, ids, port.TaskUpdates{
		FinishDate: &cutoff,
		FinishTime: &cutoff,
	})
	if err != nil {
		return errors.Wrap(err, "could not close open tasks from previous working day")
	}

	metrics.CarryForwardClosed.Add(float64(closed))

	// One successor day for the whole run, so all modules land on the
	// same working day.
	successorDay := s.calendar.StartOfDay(now)
	if !s.calendar.IsWorkingDay(successorDay) {
		successorDay = s.calendar.NextWorkingDay(successorDay)
	}

	successorStart := s.calendar.At(successorDay, s.clockIn.Hour, s.clockIn.Minute)

	spawned := 0

	for _, task := range tasks {
		successor := model.NewSuccessorTask(task, successorDay, successorStart)

		// Unattended batch: one failed successor must not abort the rest
		// of the run.
		if err := s.store.CreateTask(ctx, successor); err != nil {
			metrics.CarryForwardFailures.Inc()
			slog.ErrorContext(ctx, "could not create successor task",
				slog.String("taskID", string(task.ID())),
				slog.String("slug", string(task.Slug())),
				slogx.Error(errors.WithStack(err)),
			)
			continue
		}

		spawned++
	}

	metrics.CarryForwardSpawned.Add(float64(spawned))

	slog.InfoContext(ctx, "carry-forward run finished",
		slog.Int64("closed", closed),
		slog.Int("spawned", spawned),
		slog.Time("successorDay", successorDay),
	)

	return nil
}

func NewCarryForward(store port.TaskStore, calendar port.Calendar, funcs ...OptionFunc) *CarryForward {
	opts := NewOptions(funcs...)
	return &CarryForward{
		store:    store,
		calendar: calendar,
		clock:    opts.Clock,
		trigger:  opts.Trigger,
		clockIn:  opts.ClockIn,
		cutoff:   opts.Cutoff,
	}
}
