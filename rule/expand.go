package rule

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// OccurrencesInRange expands r into concrete start times inside
// [rangeStart, rangeEnd], anchored at the event's master start. Occurrences
// listed in exdates are removed; a date-only exdate (midnight UTC) excludes
// any occurrence on that calendar date.
func OccurrencesInRange(masterStart time.Time, r Rule, exdates []time.Time, rangeStart, rangeEnd time.Time) ([]time.Time, error) {
	dtstart := masterStart.UTC().Format(ICalInstantLayout)
	full := fmt.Sprintf("DTSTART:%s\nRRULE:%s", dtstart, r.Encode())

	set, err := rrule.StrToRRuleSet(full)
	if err != nil {
		return nil, fmt.Errorf("rule: failed to parse %q: %w", r.Encode(), err)
	}

	// rrule-go's Between is inclusive of start, exclusive of end; the
	// third argument makes it inclusive on both sides.
	occurrences := set.Between(rangeStart, rangeEnd, true)

	if len(exdates) == 0 {
		return occurrences, nil
	}
	kept := occurrences[:0]
	for _, occ := range occurrences {
		if !isExcluded(occ, exdates) {
			kept = append(kept, occ)
		}
	}
	return kept, nil
}

func isExcluded(t time.Time, exdates []time.Time) bool {
	for _, exdate := range exdates {
		if t.Equal(exdate) {
			return true
		}
		if exdate.Hour() == 0 && exdate.Minute() == 0 && exdate.Second() == 0 && exdate.Location() == time.UTC {
			sameDay := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			if sameDay.Equal(exdate) {
				return true
			}
		}
	}
	return false
}
