package setup

import (
	"context"

	"github.com/bornholm/worklog/internal/config"
	"github.com/bornholm/worklog/internal/scheduler"
	"github.com/bornholm/worklog/internal/workday"
	"github.com/pkg/errors"
)

var getCarryForwardFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*scheduler.CarryForward, error) {
	store, err := getTaskStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create task store from config")
	}

	calendar, err := getCalendarFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create calendar from config")
	}

	trigger, err := workday.ParseClockTime(conf.Scheduler.Trigger)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse trigger time")
	}

	clockIn, err := workday.ParseClockTime(conf.Scheduler.ClockIn)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse clock-in time")
	}

	cutoff, err := workday.ParseClockTime(conf.Scheduler.Cutoff)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse cutoff time")
	}

	carryForward := scheduler.NewCarryForward(store, calendar,
		scheduler.WithTrigger(trigger),
		scheduler.WithClockIn(clockIn),
		scheduler.WithCutoff(cutoff),
	)

	return carryForward, nil
})

// NewCarryForwardFromConfig exposes the process-wide carry-forward
// scheduler to the entrypoints.
func NewCarryForwardFromConfig(ctx context.Context, conf *config.Config) (*scheduler.CarryForward, error) {
	carryForward, err := getCarryForwardFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return carryForward, nil
}
