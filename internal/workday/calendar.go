package workday

import (
	"time"

	"github.com/bornholm/worklog/internal/core/port"
)

const civilDateLayout = "2006-01-02"

// Calendar implements the organizational working-day rules: Sunday is
// always off, the 1st and 3rd Saturday of each month are off, every
// other day works unless listed as a holiday. All arithmetic happens in
// the configured civil timezone.
type Calendar struct {
	location *time.Location
	holidays map[string]struct{}
}

type CalendarOptionFunc func(c *Calendar)

func WithHolidays(holidays ...time.Time) CalendarOptionFunc {
	return func(c *Calendar) {
		for _, h := range holidays {
			c.holidays[h.In(c.location).Format(civilDateLayout)] = struct{}{}
		}
	}
}

func NewCalendar(location *time.Location, funcs ...CalendarOptionFunc) *Calendar {
	calendar := &Calendar{
		location: location,
		holidays: map[string]struct{}{},
	}
	for _, fn := range funcs {
		fn(calendar)
	}
	return calendar
}

func (c *Calendar) Location() *time.Location {
	return c.location
}

// IsWorkingDay implements port.Calendar.
func (c *Calendar) IsWorkingDay(t time.Time) bool {
	t = t.In(c.location)

	switch t.Weekday() {
	case time.Sunday:
		return false
	case time.Saturday:
		// Nth occurrence of this weekday within the month
		occurrence := (t.Day() + 6) / 7
		if occurrence == 1 || occurrence == 3 {
			return false
		}
	}

	if _, off := c.holidays[t.Format(civilDateLayout)]; off {
		return false
	}

	return true
}

// NextWorkingDay implements port.Calendar. It walks forward one civil
// day at a time, so isWorkingDay(nextWorkingDay(d)) always holds.
func (c *Calendar) NextWorkingDay(t time.Time) time.Time {
	day := c.StartOfDay(t).AddDate(0, 0, 1)
	for !c.IsWorkingDay(day) {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

// StartOfDay implements port.Calendar.
func (c *Calendar) StartOfDay(t time.Time) time.Time {
	t = t.In(c.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.location)
}

// EndOfDay implements port.Calendar.
func (c *Calendar) EndOfDay(t time.Time) time.Time {
	return c.StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// At implements port.Calendar.
func (c *Calendar) At(day time.Time, hour int, minute int) time.Time {
	day = day.In(c.location)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, c.location)
}

var _ port.Calendar = &Calendar{}
