package port

import "time"

// Clock abstracts the wall clock so lifecycle transitions and the
// carry-forward scheduler can be driven deterministically in tests.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

var SystemClock Clock = ClockFunc(time.Now)
