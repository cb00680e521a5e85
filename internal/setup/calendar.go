package setup

import (
	"context"
	"time"

	"github.com/bornholm/worklog/internal/config"
	"github.com/bornholm/worklog/internal/workday"
	"github.com/pkg/errors"
)

var getCalendarFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*workday.Calendar, error) {
	location, err := time.LoadLocation(conf.Workday.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load timezone '%s'", conf.Workday.Timezone)
	}

	opts := []workday.CalendarOptionFunc{}

	if conf.Workday.HolidaysFile != "" {
		holidays, err := workday.LoadHolidays(conf.Workday.HolidaysFile, location)
		if err != nil {
			return nil, errors.Wrapf(err, "could not load holidays from '%s'", conf.Workday.HolidaysFile)
		}

		opts = append(opts, workday.WithHolidays(holidays...))
	}

	return workday.NewCalendar(location, opts...), nil
})
