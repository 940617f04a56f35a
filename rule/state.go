package rule

import (
	"strings"
	"time"

	"github.com/hearthplan/recurrence/weekday"
)

// Frequency is the cadence type of a recurrence rule.
type Frequency int

const (
	Daily Frequency = iota
	Weekly
	Monthly
	Yearly
)

// String returns the RRULE FREQ token for f.
func (f Frequency) String() string {
	switch f {
	case Daily:
		return "DAILY"
	case Weekly:
		return "WEEKLY"
	case Monthly:
		return "MONTHLY"
	case Yearly:
		return "YEARLY"
	}
	return ""
}

// parseFrequency resolves a FREQ token case-insensitively. Unrecognized
// tokens report ok=false so the caller can keep its prior frequency.
func parseFrequency(s string) (Frequency, bool) {
	switch strings.ToLower(s) {
	case "daily":
		return Daily, true
	case "weekly":
		return Weekly, true
	case "monthly":
		return Monthly, true
	case "yearly":
		return Yearly, true
	}
	return 0, false
}

// EndType describes how a recurrence ends.
type EndType int

const (
	EndNever EndType = iota
	EndCount
	EndUntil
)

// MonthlyMode selects between "on day N" and "on the Nth weekday" monthly
// recurrence.
type MonthlyMode int

const (
	MonthlyOnDay MonthlyMode = iota
	MonthlyOnNthWeekday
)

// YearlyMode is the yearly analogue of MonthlyMode.
type YearlyMode int

const (
	YearlyOnDate YearlyMode = iota
	YearlyOnNthWeekday
)

// NthWeekday is an ordinal weekday within a month, e.g. {2, Monday} for the
// second Monday and {-1, Friday} for the last Friday.
type NthWeekday struct {
	Week int
	Day  weekday.Index
}

// YearlyNthWeekday adds the zero-based month to NthWeekday.
type YearlyNthWeekday struct {
	Week   int
	Day    weekday.Index
	Month0 int
}

// UIState is the recurrence form state behind the calendar event editor. It
// is a superset of what round-trips losslessly through an RRULE: end
// conditions and nth-weekday modes exist here even when the wire form drops
// them.
type UIState struct {
	IsRecurring bool
	Type        Frequency
	Interval    int
	EndType     EndType
	Count       int
	Until       time.Time // calendar date, midnight in the translator's location
	Days        []weekday.Index
	MonthlyMode MonthlyMode
	MonthlyNth  NthWeekday
	YearlyMode  YearlyMode
	YearlyNth   YearlyNthWeekday
}
