package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleEncode(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
		want string
	}{
		{
			name: "interval one is omitted",
			rule: Rule{Freq: "WEEKLY", Interval: 1},
			want: "FREQ=WEEKLY",
		},
		{
			name: "interval above one is kept",
			rule: Rule{Freq: "WEEKLY", Interval: 2},
			want: "FREQ=WEEKLY;INTERVAL=2",
		},
		{
			name: "weekly days",
			rule: Rule{Freq: "WEEKLY", ByDay: []string{"MO", "WE", "FR"}},
			want: "FREQ=WEEKLY;BYDAY=MO,WE,FR",
		},
		{
			name: "monthly nth weekday with count",
			rule: Rule{Freq: "MONTHLY", ByDay: []string{"2MO"}, Count: 5},
			want: "FREQ=MONTHLY;BYDAY=2MO;COUNT=5",
		},
		{
			name: "yearly nth weekday with month and until",
			rule: Rule{Freq: "YEARLY", ByDay: []string{"3TH"}, ByMonth: []int{7}, Until: "20251231T235959Z"},
			want: "FREQ=YEARLY;BYDAY=3TH;BYMONTH=7;UNTIL=20251231T235959Z",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Encode())
		})
	}
}

func TestParseRuleString(t *testing.T) {
	r, err := ParseRuleString("FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE;COUNT=10")
	require.NoError(t, err)
	assert.Equal(t, Rule{
		Freq:     "WEEKLY",
		Interval: 2,
		ByDay:    []string{"MO", "WE"},
		Count:    10,
	}, r)
}

func TestParseRuleString_PrefixAndCase(t *testing.T) {
	r, err := ParseRuleString("RRULE:FREQ=monthly;BYDAY=-1fr")
	require.NoError(t, err)
	assert.Equal(t, "MONTHLY", r.Freq)
	assert.Equal(t, []string{"-1FR"}, r.ByDay)
}

func TestParseRuleString_RoundTrip(t *testing.T) {
	const text = "FREQ=YEARLY;BYDAY=3TH;BYMONTH=7;COUNT=4"
	r, err := ParseRuleString(text)
	require.NoError(t, err)
	assert.Equal(t, text, r.Encode())
}

func TestParseRuleString_Malformed(t *testing.T) {
	for _, text := range []string{
		"",
		"FREQ=BOGUS",
		"FREQ=WEEKLY;INTERVAL=often",
		"not an rrule at all",
	} {
		_, err := ParseRuleString(text)
		assert.Error(t, err, "text %q should not parse", text)
	}
}
