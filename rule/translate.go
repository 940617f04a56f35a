// Package rule translates between the calendar editor's recurrence state and
// the iCal RRULE wire format.
package rule

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"github.com/samber/mo"

	"github.com/hearthplan/recurrence/weekday"
)

// nthByDay matches an ordinal-prefixed day code such as "2MO" or "-1FR".
var nthByDay = regexp.MustCompile(`^(-?\d+)([A-Z]{2})$`)

// Translator converts RRULE wire values to editor state and back.
type Translator struct {
	logger *slog.Logger
	loc    *time.Location
	now    func() time.Time
}

// NewTranslator creates a Translator. A nil logger discards diagnostics; a
// nil location means the process-local zone, which callers override with the
// user's pre-resolved zone for timezone-correct UNTIL handling.
func NewTranslator(logger *slog.Logger, loc *time.Location) *Translator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if loc == nil {
		loc = time.Local
	}
	return &Translator{logger: logger, loc: loc, now: time.Now}
}

// Reset returns the canonical default editor state: not recurring, weekly,
// interval 1, never-ending, count 10, until today, no selected days,
// day-of-month mode with {week 1, Monday} nth-weekday placeholders. Form
// initialization and the parse-failure fallback both depend on this exact
// tuple.
func (t *Translator) Reset() UIState {
	now := t.now().In(t.loc)
	return UIState{
		IsRecurring: false,
		Type:        Weekly,
		Interval:    1,
		EndType:     EndNever,
		Count:       10,
		Until:       time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, t.loc),
		Days:        nil,
		MonthlyMode: MonthlyOnDay,
		MonthlyNth:  NthWeekday{Week: 1, Day: weekday.Monday},
		YearlyMode:  YearlyOnDate,
		YearlyNth:   YearlyNthWeekday{Week: 1, Day: weekday.Monday, Month0: 0},
	}
}

// Parse interprets an RRULE wire value as editor state. A nil rule yields
// the canonical defaults. Parse is the honest half of the fail-safe policy:
// it reports malformed input instead of guessing, and FromRule decides to
// collapse that into defaults.
func (t *Translator) Parse(r *Rule) (UIState, error) {
	return t.parse(r).Get()
}

// FromRule is Parse with the degrade policy applied: any parse failure
// resets the whole state to the canonical defaults, never a partial state.
// Third-party calendars emit malformed rules often enough that a predictable
// fallback beats a precise one here.
func (t *Translator) FromRule(r *Rule) UIState {
	state, err := t.parse(r).Get()
	if err != nil {
		t.logger.Warn("resetting recurrence state after parse failure", "error", err)
		return t.Reset()
	}
	return state
}

// FromText parses RRULE text and applies the same degrade policy as
// FromRule.
func (t *Translator) FromText(s string) UIState {
	if s == "" {
		return t.Reset()
	}
	r, err := ParseRuleString(s)
	if err != nil {
		t.logger.Warn("resetting recurrence state after parse failure", "error", err)
		return t.Reset()
	}
	return t.FromRule(&r)
}

func (t *Translator) parse(r *Rule) mo.Result[UIState] {
	state := t.Reset()
	if r == nil {
		return mo.Ok(state)
	}
	state.IsRecurring = true

	// An unrecognized FREQ keeps the prior (default) type rather than
	// overwriting it.
	if freq, ok := parseFrequency(r.Freq); ok {
		state.Type = freq
	}
	if r.Interval > 0 {
		state.Interval = r.Interval
	}

	switch state.Type {
	case Weekly:
		var days []weekday.Index
		for _, code := range r.ByDay {
			if d, ok := weekday.FromCode(code); ok {
				days = append(days, d)
			}
			// Unknown codes are dropped silently.
		}
		state.Days = weekday.NormalizeSet(days)
	case Monthly:
		if nth, ok := parseNthByDay(r.ByDay); ok {
			state.MonthlyMode = MonthlyOnNthWeekday
			state.MonthlyNth = nth
		}
	case Yearly:
		if nth, ok := parseNthByDay(r.ByDay); ok {
			state.YearlyMode = YearlyOnNthWeekday
			state.YearlyNth = YearlyNthWeekday{Week: nth.Week, Day: nth.Day}
			if len(r.ByMonth) > 0 {
				state.YearlyNth.Month0 = r.ByMonth[0] - 1
			}
		}
	}

	switch {
	case r.Count > 0:
		state.EndType = EndCount
		state.Count = r.Count
	case r.Until != "":
		until, err := time.Parse(ICalInstantLayout, r.Until)
		if err != nil {
			return mo.Err[UIState](fmt.Errorf("rule: invalid UNTIL %q: %w", r.Until, err))
		}
		local := until.In(t.loc)
		state.EndType = EndUntil
		state.Until = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, t.loc)
	default:
		state.EndType = EndNever
	}

	return mo.Ok(state)
}

// parseNthByDay reads a single ordinal BYDAY entry. No match leaves the
// caller in day-of-month mode.
func parseNthByDay(byday []string) (NthWeekday, bool) {
	if len(byday) != 1 {
		return NthWeekday{}, false
	}
	m := nthByDay.FindStringSubmatch(byday[0])
	if m == nil {
		return NthWeekday{}, false
	}
	week, err := strconv.Atoi(m[1])
	if err != nil {
		return NthWeekday{}, false
	}
	day, ok := weekday.FromCode(m[2])
	if !ok {
		return NthWeekday{}, false
	}
	return NthWeekday{Week: week, Day: day}, true
}

// ToRule converts editor state to its RRULE wire value, or nil when the
// event does not recur.
func (t *Translator) ToRule(state UIState) *Rule {
	if !state.IsRecurring {
		return nil
	}

	r := &Rule{Freq: state.Type.String()}
	if state.Interval > 1 {
		r.Interval = state.Interval
	}

	switch state.Type {
	case Weekly:
		for _, d := range weekday.NormalizeSet(state.Days) {
			if code := d.Code(); code != "" {
				r.ByDay = append(r.ByDay, code)
			}
		}
	case Monthly:
		if state.MonthlyMode == MonthlyOnNthWeekday {
			r.ByDay = []string{fmt.Sprintf("%d%s", state.MonthlyNth.Week, state.MonthlyNth.Day.Code())}
		}
	case Yearly:
		if state.YearlyMode == YearlyOnNthWeekday {
			r.ByDay = []string{fmt.Sprintf("%d%s", state.YearlyNth.Week, state.YearlyNth.Day.Code())}
			r.ByMonth = []int{state.YearlyNth.Month0 + 1}
		}
	}

	switch state.EndType {
	case EndCount:
		r.Count = state.Count
	case EndUntil:
		// The rule ends at the close of the chosen day in the caller's
		// zone, expressed as a UTC instant on the wire.
		endOfDay := time.Date(state.Until.Year(), state.Until.Month(), state.Until.Day(),
			23, 59, 59, 999_000_000, t.loc)
		r.Until = endOfDay.UTC().Format(ICalInstantLayout)
	}

	return r
}

// AdjustStartDate snaps start forward onto the nearest selected weekday,
// preserving the time of day. A start already on a selected day, or an empty
// set, is returned unchanged. Used once when a new weekly-recurring event is
// created, so callers need not pre-align the first occurrence.
func AdjustStartDate(start time.Time, days []weekday.Index) time.Time {
	set := weekday.NormalizeSet(days)
	if len(set) == 0 {
		return start
	}
	current := weekday.FromTime(start)
	for offset := 0; offset < 7; offset++ {
		if weekday.Contains(set, weekday.Index((int(current)+offset)%7)) {
			return start.AddDate(0, 0, offset)
		}
	}
	return start
}
