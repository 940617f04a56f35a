package rule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/teambition/rrule-go"
)

// ICalInstantLayout is the iCal UTC instant format used for UNTIL values and
// DTSTART lines.
const ICalInstantLayout = "20060102T150405Z"

// Rule is the structured form of an iCal RRULE. It is the only way RRULE
// values enter or leave the engine; callers never assemble RRULE text by
// hand.
type Rule struct {
	Freq     string   // DAILY, WEEKLY, MONTHLY or YEARLY
	Interval int      // omitted from the wire form when <= 1
	ByDay    []string // day codes, optionally ordinal-prefixed ("MO", "2MO", "-1FR")
	ByMonth  []int    // 1..12
	Count    int      // 0 when absent
	Until    string   // iCal UTC instant, empty when absent
}

// Encode renders r in canonical RRULE text form. INTERVAL=1 is redundant and
// omitted.
func (r Rule) Encode() string {
	parts := []string{"FREQ=" + r.Freq}
	if r.Interval > 1 {
		parts = append(parts, "INTERVAL="+strconv.Itoa(r.Interval))
	}
	if len(r.ByDay) > 0 {
		parts = append(parts, "BYDAY="+strings.Join(r.ByDay, ","))
	}
	if len(r.ByMonth) > 0 {
		months := make([]string, len(r.ByMonth))
		for i, m := range r.ByMonth {
			months[i] = strconv.Itoa(m)
		}
		parts = append(parts, "BYMONTH="+strings.Join(months, ","))
	}
	if r.Count > 0 {
		parts = append(parts, "COUNT="+strconv.Itoa(r.Count))
	}
	if r.Until != "" {
		parts = append(parts, "UNTIL="+r.Until)
	}
	return strings.Join(parts, ";")
}

// ParseRuleString decodes RRULE text into a Rule. The text is first run
// through the reference parser (rrule-go) so malformed rules are rejected
// the same way a calendar client would reject them, then split into fields
// preserving the raw BYDAY tokens.
func ParseRuleString(s string) (Rule, error) {
	// RRULE content is case-insensitive on the wire.
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "RRULE:")
	if s == "" {
		return Rule{}, fmt.Errorf("rule: empty RRULE")
	}
	if _, err := rrule.StrToROption(s); err != nil {
		return Rule{}, fmt.Errorf("rule: invalid RRULE %q: %w", s, err)
	}

	var r Rule
	for _, part := range strings.Split(s, ";") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		switch key {
		case "FREQ":
			r.Freq = value
		case "INTERVAL":
			n, err := strconv.Atoi(value)
			if err != nil {
				return Rule{}, fmt.Errorf("rule: invalid INTERVAL %q: %w", value, err)
			}
			r.Interval = n
		case "BYDAY":
			for _, token := range strings.Split(value, ",") {
				if token = strings.TrimSpace(token); token != "" {
					r.ByDay = append(r.ByDay, token)
				}
			}
		case "BYMONTH":
			for _, token := range strings.Split(value, ",") {
				n, err := strconv.Atoi(strings.TrimSpace(token))
				if err != nil {
					return Rule{}, fmt.Errorf("rule: invalid BYMONTH %q: %w", value, err)
				}
				r.ByMonth = append(r.ByMonth, n)
			}
		case "COUNT":
			n, err := strconv.Atoi(value)
			if err != nil {
				return Rule{}, fmt.Errorf("rule: invalid COUNT %q: %w", value, err)
			}
			r.Count = n
		case "UNTIL":
			r.Until = value
		}
	}
	if r.Freq == "" {
		return Rule{}, fmt.Errorf("rule: RRULE %q has no FREQ", s)
	}
	return r, nil
}
