package pattern

import (
	"fmt"
	"time"

	"github.com/samber/mo"

	"github.com/hearthplan/recurrence/weekday"
)

// Calculator computes next due dates. The zero value is not usable; create
// one with NewCalculator.
type Calculator struct {
	now func() time.Time
}

// NewCalculator returns a Calculator backed by the system clock.
func NewCalculator() *Calculator {
	return &Calculator{now: time.Now}
}

// NewCalculatorAt returns a Calculator with an injected clock.
func NewCalculatorAt(now func() time.Time) *Calculator {
	return &Calculator{now: now}
}

// NextDue computes the next due instant for p.
//
// previous is the item's previous due date, absent for a freshly created
// item. reference lets the caller supply a client-local "now" so the day
// boundary matches the user's timezone; when absent the system clock is
// used. Either way the reference is normalized to midnight before any
// comparison.
//
// A completed item advances from its own cadence anchor, not from today, so
// an every-3-days todo finished late stays on its 3-day grid - but the
// result never falls behind today.
func (c *Calculator) NextDue(p Pattern, previous, reference mo.Option[time.Time]) (time.Time, error) {
	if err := Validate(p); err != nil {
		return time.Time{}, err
	}

	today := dateOf(reference.OrElse(c.now()))
	base := previous.OrElse(today)

	switch p := p.(type) {
	case Daily:
		return nextByDays(base, today, p.Interval), nil
	case Weekly:
		days := weekday.NormalizeSet(p.Days)
		if len(days) == 0 {
			return nextByDays(base, today, p.Interval*7), nil
		}
		return nextWeekly(base, today, p.Interval, days), nil
	case Monthly:
		return nextMonthly(base, today, p.Interval, p.DayOfMonth), nil
	default:
		return time.Time{}, fmt.Errorf("pattern: unsupported pattern %T", p)
	}
}

// nextByDays advances base by whole intervals until it is strictly past both
// base and today. Interval validation has already guaranteed progress.
func nextByDays(base, today time.Time, intervalDays int) time.Time {
	comparePoint := base
	if today.After(comparePoint) {
		comparePoint = today
	}
	return advancePastDate(base, comparePoint, intervalDays)
}

// advancePastDate repeatedly adds intervalDays to start until the result is
// strictly greater than mustExceed.
func advancePastDate(start, mustExceed time.Time, intervalDays int) time.Time {
	next := start
	for !next.After(mustExceed) {
		next = next.AddDate(0, 0, intervalDays)
	}
	return next
}

// nextWeekly picks the next selected weekday. Two phases: decide whether the
// current week still has usable days, otherwise jump forward in whole
// interval-week blocks from the anchor's week start; then walk day by day
// onto a selected weekday. The block jump is what keeps multi-week cadences
// on their weekday grid across month and year boundaries.
func nextWeekly(base, today time.Time, intervalWeeks int, sortedDays []weekday.Index) time.Time {
	latestDay := sortedDays[len(sortedDays)-1]
	weekStart := weekday.StartOfWeek(today)
	weekEnd := weekStart.AddDate(0, 0, 7)

	canUseCurrentWeek := weekday.FromTime(base) != weekday.Saturday &&
		weekday.FromTime(today) <= latestDay &&
		weekday.FromTime(base) < latestDay &&
		!base.Before(weekStart) && base.Before(weekEnd)

	var candidate time.Time
	if canUseCurrentWeek {
		candidate = base.AddDate(0, 0, 1)
		if candidate.Before(today) {
			candidate = today
		}
	} else {
		candidate = weekday.StartOfWeek(base).AddDate(0, 0, intervalWeeks*7)
		for candidate.Before(today) {
			candidate = candidate.AddDate(0, 0, intervalWeeks*7)
		}
	}

	for !weekday.Contains(sortedDays, weekday.FromTime(candidate)) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate
}

// nextMonthly applies one unconditional interval step from the anchor, then
// keeps stepping while the result is still behind today (stale anchors).
func nextMonthly(base, today time.Time, intervalMonths, dayOfMonth int) time.Time {
	next := addMonths(base, intervalMonths, dayOfMonth)
	for next.Before(today) {
		next = addMonths(next, intervalMonths, dayOfMonth)
	}
	return next
}

// addMonths moves t forward by the given months and sets the day to
// dayOfMonth capped at the target month's length. The day is pinned to 1
// before the month shift so the shift itself can never overflow into the
// following month.
func addMonths(t time.Time, months, dayOfMonth int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	shifted := first.AddDate(0, months, 0)

	day := dayOfMonth
	if day < 1 {
		day = 1
	}
	if last := daysInMonth(shifted.Year(), shifted.Month()); day > last {
		day = last
	}
	return time.Date(shifted.Year(), shifted.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysInMonth returns the number of days in the given month. Day zero of the
// following month is the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dateOf truncates t to midnight in its own location.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
