package port

import "time"

// Calendar decides which civil days count as working days. All
// computations happen in the organization's single civil timezone;
// implementations must never fall back to UTC day boundaries.
type Calendar interface {
	// IsWorkingDay reports whether the civil day containing t is a
	// working day.
	IsWorkingDay(t time.Time) bool

	// NextWorkingDay returns the start of the first working day strictly
	// after the civil day containing t.
	NextWorkingDay(t time.Time) time.Time

	// StartOfDay and EndOfDay bound the civil day containing t.
	StartOfDay(t time.Time) time.Time
	EndOfDay(t time.Time) time.Time

	// At anchors a wall-clock time on the civil day containing day.
	At(day time.Time, hour int, minute int) time.Time
}
