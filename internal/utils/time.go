package utils

import "time"

const DateFormat = "2006-01-02"

func Now() time.Time {
	return time.Now().UTC()
}

func NowPtr() *time.Time {
	now := Now()
	return &now
}

// Today truncates the current UTC time to a calendar date.
func Today() time.Time {
	return Now().Truncate(24 * time.Hour)
}

func IsInFuture(t time.Time) bool {
	return t.After(Now())
}

// ParseDate parses an ISO "YYYY-MM-DD" date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}
