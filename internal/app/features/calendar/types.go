// internal/app/features/calendar/types.go
package calendar

import (
	"net/url"
	"time"

	calgrid "github.com/dalemusser/eventdash/internal/app/system/calendar"
	"github.com/dalemusser/eventdash/internal/app/system/collection"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/eventdash/internal/domain/models"
)

type eventItem struct {
	ID       string
	Name     string
	TypeName string
	When     string
	Location string
}

type dayCell struct {
	Day      int
	Key      string
	URL      string
	InMonth  bool
	Today    bool
	Selected bool
	Events   []eventItem
}

type monthGroup struct {
	Title  string
	Events []eventItem
}

type pageData struct {
	viewdata.BaseVM

	MonthTitle string
	Month      string
	PrevURL    string
	NextURL    string
	Weekdays   [7]string
	Weeks      [][7]dayCell

	Selected       string
	SelectedEvents []eventItem

	Upcoming []monthGroup
	Error    string
}

func monthURL(key string) string {
	return basePath + "?" + url.Values{"month": {key}}.Encode()
}

func dateURL(key string) string {
	return basePath + "?" + url.Values{"date": {key}}.Encode()
}

func toItem(e models.Event, loc *time.Location) eventItem {
	it := eventItem{ID: e.ID, Name: e.Name, TypeName: e.Type.Name, Location: e.Location}
	if !e.DateStart.IsZero() {
		it.When = e.DateStart.In(loc).Format("Jan 2 · 3:04 PM")
	}
	return it
}

func toItems(events []models.Event, loc *time.Location) []eventItem {
	out := make([]eventItem, 0, len(events))
	for _, e := range events {
		out = append(out, toItem(e, loc))
	}
	return out
}

func toWeeks(m calgrid.Month, loc *time.Location) [][7]dayCell {
	out := make([][7]dayCell, 0, len(m.Weeks))
	for _, wk := range m.Weeks {
		var row [7]dayCell
		for i, d := range wk {
			row[i] = dayCell{
				Day:      d.Date.Day(),
				Key:      d.Key(),
				URL:      dateURL(d.Key()),
				InMonth:  d.InMonth,
				Today:    d.Today,
				Selected: d.Selected,
				Events:   toItems(d.Events, loc),
			}
		}
		out = append(out, row)
	}
	return out
}

// upcomingMonths groups events that start today or later by year-month.
func upcomingMonths(events []models.Event, now time.Time, loc *time.Location) []monthGroup {
	today := calgrid.StartOfDay(now, loc)
	var next []models.Event
	for _, e := range events {
		if !e.DateStart.IsZero() && !e.DateStart.Before(today) {
			next = append(next, e)
		}
	}
	next = collection.Sorted(next, func(a, b models.Event) int { return a.DateStart.Compare(b.DateStart) })

	groups := collection.GroupBy(next, collection.ByField[models.Event](models.EventFieldDate, loc))
	out := make([]monthGroup, 0, len(groups))
	for _, g := range groups {
		title := g.Key
		if t, err := time.ParseInLocation(calgrid.MonthLayout, g.Key, loc); err == nil {
			title = t.Format("January 2006")
		}
		out = append(out, monthGroup{Title: title, Events: toItems(g.Items, loc)})
	}
	return out
}
