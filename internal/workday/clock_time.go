package workday

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ClockTime is a wall-clock hour and minute with no date attached, used
// for the scheduler trigger, the clock-in time of successor tasks and
// the finish cutoff.
type ClockTime struct {
	Hour   int
	Minute int
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseClockTime parses a "HH:MM" value.
func ParseClockTime(raw string) (ClockTime, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return ClockTime{}, errors.Errorf("could not parse clock time '%s': expected HH:MM", raw)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return ClockTime{}, errors.Errorf("could not parse clock time '%s': invalid hour", raw)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, errors.Errorf("could not parse clock time '%s': invalid minute", raw)
	}

	return ClockTime{Hour: hour, Minute: minute}, nil
}
