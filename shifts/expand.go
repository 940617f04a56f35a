package shifts

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hearthplan/recurrence/weekday"
)

// clockPattern matches a 24-hour "HH:MM" slot time.
var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

const minutesPerDay = 24 * 60

// Expander turns shift rotations into dated calendar occurrences.
type Expander struct {
	users  UserDirectory
	logger *slog.Logger
}

// NewExpander creates an Expander. A nil directory resolves no users; a nil
// logger discards diagnostics.
func NewExpander(users UserDirectory, logger *slog.Logger) *Expander {
	if users == nil {
		users = MapDirectory{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Expander{users: users, logger: logger}
}

// Expand walks every day of the inclusive window once per assignment and
// emits an occurrence for each slot whose (week index, weekday) matches that
// day's position in the rotation cycle. The result is sorted by start time
// and fully deterministic: expanding the same inputs twice yields identical
// ids and timestamps.
//
// Bad records degrade instead of failing the window: a rotation with a
// non-positive cycle is skipped, a malformed slot time resolves to minute 0,
// and an unknown user simply stays unresolved. The cost of one bad record
// must never be an empty calendar.
func (e *Expander) Expand(rotations []Rotation, settings Settings, window Window) []Occurrence {
	start := dateOnlyUTC(window.Start)
	end := dateOnlyUTC(window.End)

	var occurrences []Occurrence
	for _, rotation := range rotations {
		if rotation.CycleWeeks <= 0 {
			e.logger.Warn("skipping rotation with non-positive cycle length",
				"rotation_id", rotation.ID,
				"cycle_weeks", rotation.CycleWeeks)
			continue
		}
		for _, assignment := range rotation.Assignments {
			occurrences = append(occurrences,
				e.expandAssignment(rotation, assignment, settings, start, end)...)
		}
	}

	e.applyUserFilter(occurrences, settings)

	sort.Slice(occurrences, func(i, j int) bool {
		if !occurrences[i].Start.Equal(occurrences[j].Start) {
			return occurrences[i].Start.Before(occurrences[j].Start)
		}
		return occurrences[i].ID < occurrences[j].ID
	})
	return occurrences
}

func (e *Expander) expandAssignment(rotation Rotation, assignment Assignment, settings Settings, start, end time.Time) []Occurrence {
	anchor := dateOnlyUTC(assignment.StartDate)
	var until time.Time
	if assignmentEnd, ok := assignment.EndDate.Get(); ok {
		until = dateOnlyUTC(assignmentEnd)
	}

	var out []Occurrence
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Before(anchor) {
			continue
		}
		if !until.IsZero() && d.After(until) {
			continue
		}

		weeksSinceStart := int(d.Sub(anchor).Hours()/24) / 7
		// Double mod keeps the index non-negative even for a day before
		// the anchor.
		weekIndex := ((weeksSinceStart % rotation.CycleWeeks) + rotation.CycleWeeks) % rotation.CycleWeeks
		dayOfWeek := weekday.FromTime(d)

		// A rotation may have zero, one or many matching slots per day
		// (split shifts).
		for _, slot := range rotation.Slots {
			if slot.WeekIndex != weekIndex || slot.DayOfWeek != dayOfWeek {
				continue
			}
			out = append(out, e.makeOccurrence(rotation, assignment, slot, settings, d))
		}
	}
	return out
}

func (e *Expander) makeOccurrence(rotation Rotation, assignment Assignment, slot Slot, settings Settings, day time.Time) Occurrence {
	start, end, allDay := e.slotTimesToUTC(rotation, slot, day)

	title := strings.TrimSpace(slot.Label)
	if title == "" {
		title = rotation.Name
	}

	color := rotation.Color
	if color == "" {
		color = settings.EventColor
	}

	var users []User
	if settings.UseUserColors {
		if user, ok := e.users.UserByID(assignment.UserID); ok {
			if user.Color != "" {
				color = user.Color
			}
			users = []User{user}
		}
	}

	return Occurrence{
		ID:     fmt.Sprintf("shift-%s-%s-%d", assignment.ID, slot.ID, day.UnixMilli()),
		Title:  title,
		Start:  start,
		End:    end,
		AllDay: allDay,
		Color:  color,
		Users:  users,
	}
}

// slotTimesToUTC resolves a slot's wall-clock range on the given UTC date.
// The exact pair 00:00-24:00 is an all-day occurrence spanning to the next
// UTC midnight; any other range stays within the day (no cross-midnight
// shifts).
func (e *Expander) slotTimesToUTC(rotation Rotation, slot Slot, day time.Time) (start, end time.Time, allDay bool) {
	startMin := e.parseClock(rotation, slot, slot.StartTime)
	endMin := e.parseClock(rotation, slot, slot.EndTime)

	if startMin == 0 && endMin == minutesPerDay {
		return day, day.AddDate(0, 0, 1), true
	}
	return day.Add(time.Duration(startMin) * time.Minute),
		day.Add(time.Duration(endMin) * time.Minute),
		false
}

// parseClock converts "HH:MM" to minutes since midnight. A malformed value
// resolves to minute 0 with a warning rather than aborting the whole
// window's expansion over one bad slot.
func (e *Expander) parseClock(rotation Rotation, slot Slot, value string) int {
	m := clockPattern.FindStringSubmatch(value)
	if m == nil {
		e.logger.Warn("malformed slot time, using midnight",
			"rotation_id", rotation.ID,
			"slot_id", slot.ID,
			"value", value)
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes
}

// applyUserFilter overwrites every occurrence's user list with the settings'
// display filter. Only active when user colors are off and a filter is set.
func (e *Expander) applyUserFilter(occurrences []Occurrence, settings Settings) {
	if settings.UseUserColors || len(settings.UserIDs) == 0 {
		return
	}
	var filter []User
	for _, id := range settings.UserIDs {
		if user, ok := e.users.UserByID(id); ok {
			filter = append(filter, user)
		}
	}
	for i := range occurrences {
		occurrences[i].Users = filter
	}
}

// dateOnlyUTC truncates t to its UTC calendar date.
func dateOnlyUTC(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}
