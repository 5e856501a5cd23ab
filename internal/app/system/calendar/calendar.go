// internal/app/system/calendar/calendar.go
//
// Package calendar lays events out on a Monday-first month grid. A day shows
// every event whose start..end calendar-date range covers it.
package calendar

import (
	"time"

	"github.com/dalemusser/eventdash/internal/domain/models"
)

// Layouts for the month and date query parameters.
const (
	MonthLayout = "2006-01"
	DateLayout  = "2006-01-02"
)

// Day is one cell of the grid.
type Day struct {
	Date     time.Time
	InMonth  bool
	Today    bool
	Selected bool
	Events   []models.Event
}

// Key is the cell's date in DateLayout.
func (d Day) Key() string { return d.Date.Format(DateLayout) }

// Month is a rendered month grid.
type Month struct {
	First time.Time
	Weeks [][7]Day
}

// Title is e.g. "March 2025".
func (m Month) Title() string { return m.First.Format("January 2006") }

// Key is the month in MonthLayout.
func (m Month) Key() string { return m.First.Format(MonthLayout) }

// PrevKey and NextKey are the neighbouring months in MonthLayout.
func (m Month) PrevKey() string { return m.First.AddDate(0, -1, 0).Format(MonthLayout) }

func (m Month) NextKey() string { return m.First.AddDate(0, 1, 0).Format(MonthLayout) }

// Weekdays are the column headings.
var Weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// ParseMonth reads a MonthLayout value. Anything unparseable falls back to
// the month containing now.
func ParseMonth(s string, now time.Time, loc *time.Location) time.Time {
	if t, err := time.ParseInLocation(MonthLayout, s, loc); err == nil {
		return t
	}
	n := now.In(loc)
	return time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, loc)
}

// ParseDate reads a DateLayout value, reporting whether it was valid.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Covers reports whether day falls inside the event's calendar-date range.
// An event without an end date covers its start date only.
func Covers(e models.Event, day time.Time, loc *time.Location) bool {
	if e.DateStart.IsZero() {
		return false
	}
	d := StartOfDay(day, loc)
	start := StartOfDay(e.DateStart, loc)
	end := start
	if !e.DateEnd.IsZero() {
		end = StartOfDay(e.DateEnd, loc)
	}
	return !d.Before(start) && !d.After(end)
}

// EventsOn returns the events covering day, in input order.
func EventsOn(events []models.Event, day time.Time, loc *time.Location) []models.Event {
	var out []models.Event
	for _, e := range events {
		if Covers(e, day, loc) {
			out = append(out, e)
		}
	}
	return out
}

// Build lays out the month containing month. Leading and trailing cells from
// the neighbouring months are included so every week is complete.
func Build(month time.Time, events []models.Event, selected, now time.Time, loc *time.Location) Month {
	m := month.In(loc)
	first := time.Date(m.Year(), m.Month(), 1, 0, 0, 0, 0, loc)
	offset := (int(first.Weekday()) + 6) % 7 // Monday = 0
	cursor := first.AddDate(0, 0, -offset)
	today := StartOfDay(now, loc)
	var sel time.Time
	if !selected.IsZero() {
		sel = StartOfDay(selected, loc)
	}

	out := Month{First: first}
	for {
		var week [7]Day
		for i := range week {
			week[i] = Day{
				Date:     cursor,
				InMonth:  cursor.Month() == first.Month(),
				Today:    cursor.Equal(today),
				Selected: !sel.IsZero() && cursor.Equal(sel),
				Events:   EventsOn(events, cursor, loc),
			}
			cursor = cursor.AddDate(0, 0, 1)
		}
		out.Weeks = append(out.Weeks, week)
		if cursor.Month() != first.Month() {
			break
		}
	}
	return out
}
