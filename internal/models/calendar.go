package models

import (
	"fmt"
	"strings"
	"time"
)

// CalendarLayout is the close-approach calendar date format, e.g. "2020-Jan-01 06:00".
const CalendarLayout = "2006-Jan-02 15:04"

// Input side accepts a day without leading zero and an optional seconds part.
var calendarInputLayouts = []string{
	"2006-Jan-2 15:04",
	"2006-Jan-2 15:04:05",
}

// ParseCalendarDate converts a calendar date string into a UTC time truncated
// to the minute.
func ParseCalendarDate(s string) (time.Time, error) {
	value := strings.TrimSpace(s)

	var lastErr error
	for _, layout := range calendarInputLayouts {
		t, err := time.ParseInLocation(layout, value, time.UTC)
		if err == nil {
			return t.UTC().Truncate(time.Minute), nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("%w: calendar date %q: %v", ErrParse, s, lastErr)
}

// FormatCalendarDate renders t without seconds in CalendarLayout.
func FormatCalendarDate(t time.Time) string {
	return t.UTC().Format(CalendarLayout)
}
