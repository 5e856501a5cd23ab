// internal/app/features/attendance/types.go
package attendance

import (
	"net/url"
	"time"

	"github.com/dalemusser/eventdash/internal/app/system/charts"
	"github.com/dalemusser/eventdash/internal/app/system/paging"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/eventdash/internal/domain/models"
)

type eventOption struct {
	ID   string
	Name string
}

// attendeeRow carries the three roster columns. Selectable means the
// registered column shows a checkbox.
type attendeeRow struct {
	UserID     string
	Name       string
	Selectable bool
	Attended   bool
	Absent     bool
}

func toRow(a models.Attendee, status models.EventStatus) attendeeRow {
	return attendeeRow{
		UserID:     a.UserID,
		Name:       a.FullName(),
		Selectable: status == models.StatusOngoing && !a.HasAttended,
		Attended:   a.HasAttended,
		Absent:     status == models.StatusDone && !a.HasAttended,
	}
}

func toRows(as []models.Attendee, status models.EventStatus) []attendeeRow {
	out := make([]attendeeRow, 0, len(as))
	for _, a := range as {
		out = append(out, toRow(a, status))
	}
	return out
}

type pagerVM struct {
	Pager   paging.Pager
	BaseURL string
	Target  string
}

type pageData struct {
	viewdata.BaseVM

	Events    []eventOption
	EventID   string
	EventName string
	Status    models.EventStatus
	Ends      string
	Attended  string

	Rows       []attendeeRow
	Total      int
	Empty      bool
	CanApprove bool
	Error      string
	Pager      pagerVM
}

type chartData struct {
	viewdata.BaseVM
	EventID   string
	EventName string
	Status    models.EventStatus
	Counts    models.AttendanceCounts
	Chart     charts.Config
	Rows      []attendeeRow
}

func rosterURL(eventID, attended string) string {
	q := url.Values{"event": {eventID}}
	if attended != "" {
		q.Set("attended", attended)
	}
	return basePath + "/roster?" + q.Encode() + "&"
}

func selectedURL(eventID string) string {
	if eventID == "" {
		return basePath
	}
	return basePath + "?" + url.Values{"event": {eventID}}.Encode()
}

func formatEnd(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format("Jan 2, 2006 3:04 PM")
}
