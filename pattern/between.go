package pattern

import (
	"fmt"
	"time"

	"github.com/hearthplan/recurrence/weekday"
)

// ExpandOptions bounds OccurrencesBetween.
type ExpandOptions struct {
	// MaxOccurrences caps the number of returned occurrences. Zero means
	// DefaultExpandOptions.MaxOccurrences.
	MaxOccurrences int
}

// DefaultExpandOptions is a reasonable cap for dashboard previews.
var DefaultExpandOptions = ExpandOptions{
	MaxOccurrences: 1000,
}

// OccurrencesBetween lists every occurrence of p, anchored at anchor, that
// falls inside the inclusive [windowStart, windowEnd] range. The anchor
// itself is included when it lies in the window. Results carry the anchor's
// time of day.
func OccurrencesBetween(p Pattern, anchor, windowStart, windowEnd time.Time, opts ExpandOptions) ([]time.Time, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	if windowEnd.Before(windowStart) {
		return nil, nil
	}
	limit := opts.MaxOccurrences
	if limit <= 0 {
		limit = DefaultExpandOptions.MaxOccurrences
	}

	switch p := p.(type) {
	case Daily:
		return stepDays(anchor, windowStart, windowEnd, p.Interval, limit), nil
	case Weekly:
		days := weekday.NormalizeSet(p.Days)
		if len(days) == 0 {
			return stepDays(anchor, windowStart, windowEnd, p.Interval*7, limit), nil
		}
		return stepWeekdays(anchor, windowStart, windowEnd, p.Interval, days, limit), nil
	case Monthly:
		return stepMonths(anchor, windowStart, windowEnd, p.Interval, p.DayOfMonth, limit), nil
	default:
		return nil, fmt.Errorf("pattern: unsupported pattern %T", p)
	}
}

func stepDays(anchor, start, end time.Time, intervalDays, limit int) []time.Time {
	var out []time.Time
	for t := anchor; !t.After(end) && len(out) < limit; t = t.AddDate(0, 0, intervalDays) {
		if !t.Before(start) {
			out = append(out, t)
		}
	}
	return out
}

// stepWeekdays walks interval-week blocks from the anchor's week and emits
// every selected weekday at or after the anchor.
func stepWeekdays(anchor, start, end time.Time, intervalWeeks int, days []weekday.Index, limit int) []time.Time {
	var out []time.Time
	block := weekday.SetDay(anchor, weekday.Sunday)
	for !block.After(end) && len(out) < limit {
		for _, d := range days {
			t := block.AddDate(0, 0, int(d))
			if t.Before(anchor) || t.Before(start) || t.After(end) {
				continue
			}
			if len(out) == limit {
				break
			}
			out = append(out, t)
		}
		block = block.AddDate(0, 0, intervalWeeks*7)
	}
	return out
}

func stepMonths(anchor, start, end time.Time, intervalMonths, dayOfMonth, limit int) []time.Time {
	var out []time.Time
	t := anchor
	for !t.After(end) && len(out) < limit {
		if !t.Before(start) {
			out = append(out, t)
		}
		t = addMonths(t, intervalMonths, dayOfMonth)
	}
	return out
}
