package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 15, parsed.Day())

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDayUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	stamp := time.Date(2024, 3, 15, 2, 30, 0, 0, loc)

	day := DayUTC(stamp)

	assert.Equal(t, "2024-03-14", FormatDate(day))
	assert.Equal(t, time.UTC, day.Location())
	assert.Zero(t, day.Hour())
}

func TestEnumerateDays(t *testing.T) {
	testCases := []struct {
		name     string
		start    string
		end      string
		expected []string
	}{
		{
			name:     "Single day",
			start:    "2024-03-15",
			end:      "2024-03-15",
			expected: []string{"2024-03-15"},
		},
		{
			name:     "Inclusive range across month boundary",
			start:    "2024-02-28",
			end:      "2024-03-02",
			expected: []string{"2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"},
		},
		{
			name:     "Start after end",
			start:    "2024-03-15",
			end:      "2024-03-14",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			start, err := ParseDate(tc.start)
			require.NoError(t, err)
			end, err := ParseDate(tc.end)
			require.NoError(t, err)

			days := EnumerateDays(start, end)

			var got []string
			for _, d := range days {
				got = append(got, FormatDate(d))
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestSpanDays(t *testing.T) {
	testCases := []struct {
		name     string
		start    string
		end      string
		expected int
	}{
		{
			name:     "Single day",
			start:    "2024-03-15",
			end:      "2024-03-15",
			expected: 1,
		},
		{
			name:     "Inclusive five-day range",
			start:    "2024-03-01",
			end:      "2024-03-05",
			expected: 5,
		},
		{
			name:     "Start after end",
			start:    "2024-03-15",
			end:      "2024-03-14",
			expected: 0,
		},
		{
			name:     "Multi-year range",
			start:    "2024-01-01",
			end:      "2026-12-31",
			expected: 1096,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			start, err := ParseDate(tc.start)
			require.NoError(t, err)
			end, err := ParseDate(tc.end)
			require.NoError(t, err)

			assert.Equal(t, tc.expected, SpanDays(start, end))
		})
	}
}
