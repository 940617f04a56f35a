package rule

import (
	"errors"
	"fmt"

	"github.com/emersion/go-ical"
)

// ErrNotVEvent is returned when recurrence data is requested from an iCal
// component that is not a VEVENT.
var ErrNotVEvent = errors.New("rule: component is not a VEVENT")

// EventRule extracts the raw RRULE text from a VEVENT component. It returns
// the empty string when the event has no recurrence rule.
func EventRule(comp *ical.Component) (string, error) {
	if comp == nil || comp.Name != ical.CompEvent {
		return "", fmt.Errorf("%w: %q", ErrNotVEvent, componentName(comp))
	}
	prop := comp.Props.Get(ical.PropRecurrenceRule)
	if prop == nil {
		return "", nil
	}
	return prop.Value, nil
}

// FromEvent loads a VEVENT's recurrence rule as editor state, with the same
// degrade policy as FromRule: a non-VEVENT container or malformed rule
// yields the canonical defaults. An event without an RRULE is simply not
// recurring.
func (t *Translator) FromEvent(comp *ical.Component) UIState {
	text, err := EventRule(comp)
	if err != nil {
		t.logger.Warn("resetting recurrence state after parse failure", "error", err)
		return t.Reset()
	}
	return t.FromText(text)
}

func componentName(comp *ical.Component) string {
	if comp == nil {
		return "<nil>"
	}
	return comp.Name
}
