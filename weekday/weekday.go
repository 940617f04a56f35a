// Package weekday defines the weekday numbering shared by every component of
// the recurrence engine: 0-6 starting at Sunday, matching the iCal day-code
// order SU,MO,TU,WE,TH,FR,SA.
package weekday

import "time"

// Index is a weekday number in the range 0-6, Sunday-first.
type Index int

const (
	Sunday Index = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// Codes maps each Index to its two-letter iCal day code. This is the single
// day-code table for the whole module; components must not declare their own.
var Codes = [7]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// Valid reports whether i is within the 0-6 range.
func (i Index) Valid() bool {
	return i >= Sunday && i <= Saturday
}

// Code returns the iCal day code for i, or the empty string if i is out of
// range.
func (i Index) Code() string {
	if !i.Valid() {
		return ""
	}
	return Codes[i]
}

// FromCode resolves an iCal day code (case-sensitive, e.g. "MO") to its
// Index. The second return value is false for unknown codes.
func FromCode(code string) (Index, bool) {
	for i, c := range Codes {
		if c == code {
			return Index(i), true
		}
	}
	return 0, false
}

// FromTime returns the Index of t's weekday. time.Weekday is also
// Sunday-first, so the mapping is direct.
func FromTime(t time.Time) Index {
	return Index(t.Weekday())
}

// NormalizeSet returns days sorted ascending with duplicates and
// out-of-range values removed. The input slice is not modified.
func NormalizeSet(days []Index) []Index {
	seen := [7]bool{}
	for _, d := range days {
		if d.Valid() {
			seen[d] = true
		}
	}
	var out []Index
	for i := Sunday; i <= Saturday; i++ {
		if seen[i] {
			out = append(out, i)
		}
	}
	return out
}

// Contains reports whether d is in days.
func Contains(days []Index, d Index) bool {
	for _, v := range days {
		if v == d {
			return true
		}
	}
	return false
}

// SetDay moves t onto the given weekday within t's own week (Sunday-first),
// preserving the time of day. The shift is at most six days in either
// direction.
func SetDay(t time.Time, day Index) time.Time {
	return t.AddDate(0, 0, int(day)-int(FromTime(t)))
}

// StartOfWeek returns midnight of the Sunday beginning t's week, in t's
// location.
func StartOfWeek(t time.Time) time.Time {
	t = t.AddDate(0, 0, -int(FromTime(t)))
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
