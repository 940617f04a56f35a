package rule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccurrencesInRange_Weekly(t *testing.T) {
	masterStart := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC) // a Monday
	r := Rule{Freq: "WEEKLY", ByDay: []string{"MO"}}

	got, err := OccurrencesInRange(masterStart, r, nil,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC))
	require.NoError(t, err)

	want := []time.Time{
		time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 27, 9, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, want, got)
}

func TestOccurrencesInRange_ExDates(t *testing.T) {
	masterStart := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	r := Rule{Freq: "WEEKLY", ByDay: []string{"MO"}}

	exdates := []time.Time{
		// Exact occurrence instant.
		time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC),
		// Date-only exception stored as midnight UTC.
		time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC),
	}

	got, err := OccurrencesInRange(masterStart, r, exdates,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC))
	require.NoError(t, err)

	want := []time.Time{
		time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, want, got)
}

func TestOccurrencesInRange_CountBound(t *testing.T) {
	masterStart := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	r := Rule{Freq: "DAILY", Count: 3}

	got, err := OccurrencesInRange(masterStart, r, nil,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
