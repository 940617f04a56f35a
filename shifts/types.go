package shifts

import (
	"time"

	"github.com/samber/mo"

	"github.com/hearthplan/recurrence/weekday"
)

// Rotation is a repeating shift schedule of CycleWeeks weeks. Rotations are
// created and edited by the settings UI; the expander only reads them.
type Rotation struct {
	ID            string
	IntegrationID string
	Name          string
	CycleWeeks    int
	Color         string
	Order         int
	Slots         []Slot
	Assignments   []Assignment
}

// Slot is one shift within a rotation cycle. WeekIndex must be below the
// owning rotation's CycleWeeks; out-of-range slots never match and are
// skipped. StartTime and EndTime are 24-hour "HH:MM" strings; the pair
// "00:00"-"24:00" is the all-day sentinel.
type Slot struct {
	ID        string
	WeekIndex int
	DayOfWeek weekday.Index
	StartTime string
	EndTime   string
	Label     string
	Order     int
}

// Assignment binds a user to a rotation from StartDate onward. StartDate is
// the cycle anchor: it fixes which week index the cycle starts on. An absent
// EndDate means the assignment is open-ended.
type Assignment struct {
	ID         string
	UserID     string
	RotationID string
	StartDate  time.Time
	EndDate    mo.Option[time.Time]
}

// User is the minimal user record the expander needs for titles and colors.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// UserDirectory resolves user ids to user records. The backing store is an
// external collaborator; tests use MockDirectory and in-memory callers use
// MapDirectory.
type UserDirectory interface {
	UserByID(id string) (User, bool)
}

// MapDirectory is a UserDirectory over a plain map.
type MapDirectory map[string]User

// UserByID implements UserDirectory.
func (m MapDirectory) UserByID(id string) (User, bool) {
	u, ok := m[id]
	return u, ok
}

// Settings controls occurrence presentation.
type Settings struct {
	// EventColor is the fallback color when a rotation has none.
	EventColor string
	// UseUserColors colors each occurrence with the assigned user's color
	// and attaches that user to the occurrence.
	UseUserColors bool
	// UserIDs, when non-empty and UseUserColors is off, overrides the
	// Users field of every occurrence with these users. It is a display
	// filter, independent of who is actually assigned.
	UserIDs []string
}

// Occurrence is one concrete dated shift. Occurrences are recomputed fresh
// per request and never persisted by the engine; their ids are deterministic
// so two expansions of the same window can be diffed.
type Occurrence struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	AllDay bool      `json:"allDay"`
	Color  string    `json:"color,omitempty"`
	Users  []User    `json:"users,omitempty"`
}

// Window is an inclusive date range, expanded one day at a time.
type Window struct {
	Start time.Time
	End   time.Time
}

// DefaultWindow is the expansion range the shifts endpoint serves when the
// caller gives none: one year back, two years forward.
func DefaultWindow(now time.Time) Window {
	return Window{
		Start: now.AddDate(-1, 0, 0),
		End:   now.AddDate(2, 0, 0),
	}
}
