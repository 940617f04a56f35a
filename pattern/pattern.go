// Package pattern computes the next due date for recurring todos from a
// cadence description and the previous due date.
package pattern

import (
	"errors"

	"github.com/hearthplan/recurrence/weekday"
)

// ErrInvalidInterval is returned when a pattern carries a non-positive
// interval. Callers must reject such a pattern before persisting it.
var ErrInvalidInterval = errors.New("pattern: interval must be a positive integer")

// Pattern is a closed set of recurrence cadences: Daily, Weekly or Monthly.
type Pattern interface {
	isPattern()
	interval() int
}

// Daily repeats every Interval days.
type Daily struct {
	Interval int
}

// Weekly repeats on the given weekdays every Interval weeks. An empty Days
// set behaves exactly like Daily with Interval*7.
type Weekly struct {
	Interval int
	Days     []weekday.Index
}

// Monthly repeats on DayOfMonth every Interval months. DayOfMonth is capped
// to the last valid day of the target month (Jan 31 + 1 month is Feb 28/29,
// never March).
type Monthly struct {
	Interval   int
	DayOfMonth int
}

func (Daily) isPattern()   {}
func (Weekly) isPattern()  {}
func (Monthly) isPattern() {}

func (p Daily) interval() int   { return p.Interval }
func (p Weekly) interval() int  { return p.Interval }
func (p Monthly) interval() int { return p.Interval }

// Validate checks the pattern's interval invariant. It never corrects the
// value silently.
func Validate(p Pattern) error {
	if p == nil || p.interval() <= 0 {
		return ErrInvalidInterval
	}
	return nil
}
