package setup

import (
	"context"

	"github.com/bornholm/worklog/internal/config"
	"github.com/bornholm/worklog/internal/core/service"
	"github.com/bornholm/worklog/internal/workday"
	"github.com/pkg/errors"
)

var getTaskManagerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*service.TaskManager, error) {
	store, err := getTaskStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create task store from config")
	}

	calendar, err := getCalendarFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create calendar from config")
	}

	clockIn, err := workday.ParseClockTime(conf.Scheduler.ClockIn)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse clock-in time")
	}

	taskManager := service.NewTaskManager(store, calendar,
		service.WithTaskManagerClockIn(clockIn),
	)

	return taskManager, nil
})
