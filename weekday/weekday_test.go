package weekday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCodeRoundTrip(t *testing.T) {
	for i := Sunday; i <= Saturday; i++ {
		code := i.Code()
		assert.NotEmpty(t, code)

		parsed, ok := FromCode(code)
		assert.True(t, ok)
		assert.Equal(t, i, parsed)
	}
}

func TestFromCodeUnknown(t *testing.T) {
	for _, code := range []string{"", "XX", "mo", "MON"} {
		_, ok := FromCode(code)
		assert.False(t, ok, "code %q should not resolve", code)
	}
}

func TestFromTime(t *testing.T) {
	// 2025-01-05 is a Sunday.
	sunday := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		assert.Equal(t, Index(i), FromTime(sunday.AddDate(0, 0, i)))
	}
}

func TestSetDay(t *testing.T) {
	// 2025-01-15 is a Wednesday.
	wednesday := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		day  Index
		want time.Time
	}{
		{name: "backward to sunday", day: Sunday, want: time.Date(2025, 1, 12, 9, 30, 0, 0, time.UTC)},
		{name: "identity", day: Wednesday, want: wednesday},
		{name: "forward to saturday", day: Saturday, want: time.Date(2025, 1, 18, 9, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SetDay(wednesday, tt.day))
		})
	}
}

func TestStartOfWeek(t *testing.T) {
	wednesday := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
	want := time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, StartOfWeek(wednesday))

	// A Sunday is its own week start.
	assert.Equal(t, want, StartOfWeek(want))
}

func TestNormalizeSet(t *testing.T) {
	got := NormalizeSet([]Index{Friday, Monday, Friday, Index(9), Index(-1), Sunday})
	assert.Equal(t, []Index{Sunday, Monday, Friday}, got)

	assert.Nil(t, NormalizeSet(nil))
	assert.Nil(t, NormalizeSet([]Index{Index(42)}))
}

func TestContains(t *testing.T) {
	days := []Index{Monday, Wednesday}
	assert.True(t, Contains(days, Monday))
	assert.False(t, Contains(days, Tuesday))
	assert.False(t, Contains(nil, Monday))
}
