package utils

import (
	"time"
)

const dateLayout = "2006-01-02"

func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(dateLayout, dateStr)
}

func FormatDate(date time.Time) string {
	return date.Format(dateLayout)
}

// DayUTC truncates a timestamp to its UTC calendar day.
func DayUTC(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// EnumerateDays lists every calendar day from start to end inclusive,
// ascending. Returns nil when start is after end.
func EnumerateDays(start, end time.Time) []time.Time {
	start, end = DayUTC(start), DayUTC(end)
	if start.After(end) {
		return nil
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// SpanDays counts the calendar days from start to end inclusive without
// materializing them. Zero when start is after end.
func SpanDays(start, end time.Time) int {
	start, end = DayUTC(start), DayUTC(end)
	if start.After(end) {
		return 0
	}
	return int(end.Sub(start)/(24*time.Hour)) + 1
}
