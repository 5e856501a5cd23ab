// internal/app/system/inputval/datetime.go
package inputval

import (
	"strings"
	"time"
)

// Layouts of HTML date and time inputs.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// IsValidDate reports whether s is a YYYY-MM-DD calendar date.
func IsValidDate(s string) bool {
	_, err := time.Parse(DateLayout, strings.TrimSpace(s))
	return err == nil
}

// IsValidClock reports whether s is an HH:MM time of day.
func IsValidClock(s string) bool {
	_, err := time.Parse(ClockLayout, strings.TrimSpace(s))
	return err == nil
}

// CombineDateTime joins a date input and a time input into one instant in
// loc. An empty clock means midnight.
func CombineDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)
	if clock == "" {
		clock = "00:00"
	}
	return time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+clock, loc)
}
