package shifts

import (
	"fmt"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthplan/recurrence/weekday"
)

func utcDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func januaryWindow() Window {
	return Window{Start: utcDate(2025, 1, 1), End: utcDate(2025, 1, 31)}
}

// mondayRotation is a one-week cycle with a single Monday 09:00-17:00 slot,
// assigned open-ended from Monday 2025-01-06.
func mondayRotation() Rotation {
	return Rotation{
		ID:         "rot-1",
		Name:       "Day shift",
		CycleWeeks: 1,
		Slots: []Slot{
			{ID: "slot-1", WeekIndex: 0, DayOfWeek: weekday.Monday, StartTime: "09:00", EndTime: "17:00"},
		},
		Assignments: []Assignment{
			{ID: "asg-1", UserID: "alice", RotationID: "rot-1", StartDate: utcDate(2025, 1, 6)},
		},
	}
}

func TestExpand_WeeklyMondaySlot(t *testing.T) {
	expander := NewExpander(nil, nil)

	got := expander.Expand([]Rotation{mondayRotation()}, Settings{}, januaryWindow())
	require.Len(t, got, 4)

	mondays := []int{6, 13, 20, 27}
	for i, occ := range got {
		day := utcDate(2025, 1, mondays[i])
		assert.Equal(t, fmt.Sprintf("shift-asg-1-slot-1-%d", day.UnixMilli()), occ.ID)
		assert.Equal(t, "Day shift", occ.Title)
		assert.Equal(t, day.Add(9*time.Hour), occ.Start)
		assert.Equal(t, day.Add(17*time.Hour), occ.End)
		assert.False(t, occ.AllDay)
	}
}

func TestExpand_AllDaySentinel(t *testing.T) {
	rotation := mondayRotation()
	rotation.Slots[0].StartTime = "00:00"
	rotation.Slots[0].EndTime = "24:00"

	expander := NewExpander(nil, nil)
	got := expander.Expand([]Rotation{rotation}, Settings{}, januaryWindow())
	require.NotEmpty(t, got)

	for _, occ := range got {
		assert.True(t, occ.AllDay)
		assert.Equal(t, occ.Start.AddDate(0, 0, 1), occ.End)
		assert.Equal(t, occ.Start, occ.Start.Truncate(24*time.Hour), "all-day start must be UTC midnight")
	}
}

func TestExpand_Deterministic(t *testing.T) {
	expander := NewExpander(nil, nil)
	rotations := []Rotation{mondayRotation()}

	first := expander.Expand(rotations, Settings{}, januaryWindow())
	second := expander.Expand(rotations, Settings{}, januaryWindow())
	assert.Equal(t, first, second)
}

func TestExpand_MalformedSlotTimeFallsBackToMidnight(t *testing.T) {
	rotation := mondayRotation()
	rotation.Slots[0].StartTime = "9am"

	expander := NewExpander(nil, nil)
	got := expander.Expand([]Rotation{rotation}, Settings{}, januaryWindow())
	require.Len(t, got, 4)

	// The bad start time resolves to minute 0; the end time still parses.
	assert.Equal(t, utcDate(2025, 1, 6), got[0].Start)
	assert.Equal(t, utcDate(2025, 1, 6).Add(17*time.Hour), got[0].End)
	assert.False(t, got[0].AllDay)
}

func TestExpand_AssignmentBounds(t *testing.T) {
	rotation := mondayRotation()
	rotation.Assignments[0].EndDate = mo.Some(utcDate(2025, 1, 15))

	expander := NewExpander(nil, nil)
	got := expander.Expand([]Rotation{rotation}, Settings{}, januaryWindow())
	require.Len(t, got, 2)
	assert.Equal(t, utcDate(2025, 1, 6).Add(9*time.Hour), got[0].Start)
	assert.Equal(t, utcDate(2025, 1, 13).Add(9*time.Hour), got[1].Start)
}

func TestExpand_MultiWeekCycle(t *testing.T) {
	rotation := Rotation{
		ID:         "rot-2",
		Name:       "Alternating",
		CycleWeeks: 2,
		Slots: []Slot{
			{ID: "early", WeekIndex: 0, DayOfWeek: weekday.Monday, StartTime: "06:00", EndTime: "14:00", Label: "Early"},
			{ID: "late", WeekIndex: 1, DayOfWeek: weekday.Monday, StartTime: "14:00", EndTime: "22:00", Label: "Late"},
		},
		Assignments: []Assignment{
			{ID: "asg-2", UserID: "bob", StartDate: utcDate(2025, 1, 6)},
		},
	}

	expander := NewExpander(nil, nil)
	got := expander.Expand([]Rotation{rotation}, Settings{}, januaryWindow())
	require.Len(t, got, 4)

	assert.Equal(t, []string{"Early", "Late", "Early", "Late"},
		[]string{got[0].Title, got[1].Title, got[2].Title, got[3].Title})
}

func TestExpand_SlotWeekIndexOutOfRangeNeverMatches(t *testing.T) {
	rotation := mondayRotation()
	rotation.Slots[0].WeekIndex = 5 // beyond CycleWeeks

	expander := NewExpander(nil, nil)
	assert.Empty(t, expander.Expand([]Rotation{rotation}, Settings{}, januaryWindow()))
}

func TestExpand_ZeroCycleRotationSkipped(t *testing.T) {
	rotation := mondayRotation()
	rotation.CycleWeeks = 0

	expander := NewExpander(nil, nil)
	assert.Empty(t, expander.Expand([]Rotation{rotation}, Settings{}, januaryWindow()))
}

func TestExpand_Colors(t *testing.T) {
	directory := MapDirectory{
		"alice": {ID: "alice", Name: "Alice", Color: "#ef4444"},
		"carol": {ID: "carol", Name: "Carol"}, // no color
	}

	tests := []struct {
		name      string
		userID    string
		rotColor  string
		settings  Settings
		wantColor string
		wantUsers []User
	}{
		{
			name:      "user color wins when enabled",
			userID:    "alice",
			rotColor:  "#0ea5e9",
			settings:  Settings{UseUserColors: true, EventColor: "#3b82f6"},
			wantColor: "#ef4444",
			wantUsers: []User{{ID: "alice", Name: "Alice", Color: "#ef4444"}},
		},
		{
			name:      "colorless user falls back to rotation color",
			userID:    "carol",
			rotColor:  "#0ea5e9",
			settings:  Settings{UseUserColors: true},
			wantColor: "#0ea5e9",
			wantUsers: []User{{ID: "carol", Name: "Carol"}},
		},
		{
			name:      "rotation color without user colors",
			userID:    "alice",
			rotColor:  "#0ea5e9",
			settings:  Settings{EventColor: "#3b82f6"},
			wantColor: "#0ea5e9",
			wantUsers: nil,
		},
		{
			name:      "settings color is the last fallback",
			userID:    "alice",
			rotColor:  "",
			settings:  Settings{EventColor: "#3b82f6"},
			wantColor: "#3b82f6",
			wantUsers: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rotation := mondayRotation()
			rotation.Color = tt.rotColor
			rotation.Assignments[0].UserID = tt.userID

			expander := NewExpander(directory, nil)
			got := expander.Expand([]Rotation{rotation}, tt.settings, januaryWindow())
			require.NotEmpty(t, got)
			assert.Equal(t, tt.wantColor, got[0].Color)
			assert.Equal(t, tt.wantUsers, got[0].Users)
		})
	}
}

func TestExpand_UserFilterOverridesUsers(t *testing.T) {
	directory := MapDirectory{
		"alice": {ID: "alice", Name: "Alice"},
		"dave":  {ID: "dave", Name: "Dave"},
	}

	expander := NewExpander(directory, nil)
	settings := Settings{UserIDs: []string{"dave"}}
	got := expander.Expand([]Rotation{mondayRotation()}, settings, januaryWindow())
	require.NotEmpty(t, got)

	// The filter replaces Users on every occurrence, regardless of the
	// assigned user.
	for _, occ := range got {
		assert.Equal(t, []User{{ID: "dave", Name: "Dave"}}, occ.Users)
	}
}

func TestExpand_SortedAcrossRotations(t *testing.T) {
	second := mondayRotation()
	second.ID = "rot-9"
	second.Name = "Evening"
	second.Slots = []Slot{
		{ID: "slot-9", WeekIndex: 0, DayOfWeek: weekday.Tuesday, StartTime: "18:00", EndTime: "20:00"},
	}
	second.Assignments = []Assignment{
		{ID: "asg-9", UserID: "bob", StartDate: utcDate(2025, 1, 6)},
	}

	expander := NewExpander(nil, nil)
	got := expander.Expand([]Rotation{second, mondayRotation()}, Settings{}, januaryWindow())
	require.NotEmpty(t, got)

	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Start.Before(got[i-1].Start), "occurrences must be sorted by start")
	}
}

func TestExpand_MockDirectory(t *testing.T) {
	directory := new(MockDirectory)
	directory.On("UserByID", "alice").Return(User{ID: "alice", Name: "Alice", Color: "#ef4444"}, true)

	expander := NewExpander(directory, nil)
	got := expander.Expand([]Rotation{mondayRotation()}, Settings{UseUserColors: true}, januaryWindow())
	require.Len(t, got, 4)
	assert.Equal(t, "#ef4444", got[0].Color)

	directory.AssertExpectations(t)
}

func TestEnsureIDs(t *testing.T) {
	rotation := Rotation{
		Name:       "Unsaved",
		CycleWeeks: 1,
		Slots:      []Slot{{WeekIndex: 0, DayOfWeek: weekday.Monday, StartTime: "09:00", EndTime: "10:00"}},
		Assignments: []Assignment{
			{UserID: "alice", StartDate: utcDate(2025, 1, 6)},
		},
	}

	EnsureIDs(&rotation)

	assert.NotEmpty(t, rotation.ID)
	assert.NotEmpty(t, rotation.Slots[0].ID)
	assert.NotEmpty(t, rotation.Assignments[0].ID)
	assert.Equal(t, rotation.ID, rotation.Assignments[0].RotationID)

	// Existing ids are left alone.
	before := rotation.ID
	EnsureIDs(&rotation)
	assert.Equal(t, before, rotation.ID)
}
