// internal/app/features/events/types.go
package events

import (
	"html/template"
	"net/url"
	"time"

	"github.com/dalemusser/eventdash/internal/app/system/collection"
	"github.com/dalemusser/eventdash/internal/app/system/formutil"
	"github.com/dalemusser/eventdash/internal/app/system/htmlsanitize"
	"github.com/dalemusser/eventdash/internal/app/system/paging"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/eventdash/internal/domain/models"
)

const (
	dateDisplay  = "Jan 2, 2006"
	clockDisplay = "3:04 PM"
	excerptLen   = 120
)

// eventRow is one event as the list and detail templates show it.
type eventRow struct {
	ID          string
	Name        string
	TypeName    string
	Location    string
	Start       string
	End         string
	Status      models.EventStatus
	Image       string
	Excerpt     string
	Description template.HTML
	Images      []string
}

func toRow(e models.Event, now time.Time, loc *time.Location) eventRow {
	row := eventRow{
		ID:          e.ID,
		Name:        e.Name,
		TypeName:    e.Type.Name,
		Location:    e.Location,
		Status:      models.StatusAt(now, e.DateEnd),
		Image:       e.CoverImage(),
		Excerpt:     htmlsanitize.Excerpt(e.Description, excerptLen),
		Description: htmlsanitize.PrepareForDisplay(e.Description),
		Images:      e.Images,
	}
	if row.TypeName == "" {
		row.TypeName = collection.UnknownGroup
	}
	if !e.DateStart.IsZero() {
		row.Start = e.DateStart.In(loc).Format(dateDisplay + " " + clockDisplay)
	}
	if !e.DateEnd.IsZero() {
		row.End = e.DateEnd.In(loc).Format(dateDisplay + " " + clockDisplay)
	}
	return row
}

func toRows(events []models.Event, now time.Time, loc *time.Location) []eventRow {
	out := make([]eventRow, 0, len(events))
	for _, e := range events {
		out = append(out, toRow(e, now, loc))
	}
	return out
}

type groupVM struct {
	Key  string
	Rows []eventRow
}

// pagerVM feeds the shared "pager" template.
type pagerVM struct {
	Pager   paging.Pager
	BaseURL string
	Target  string
}

type listData struct {
	viewdata.BaseVM

	Type    string
	Date    string
	GroupBy bool
	Types   []string

	Rows   []eventRow
	Groups []groupVM
	Total  int
	Shown  int
	Empty  bool
	Error  string

	Pager pagerVM
}

// tableURL is the partial endpoint with the active filters, ready for a
// trailing "page=N".
func tableURL(typ, date string, group bool) string {
	q := url.Values{}
	if typ != "" {
		q.Set("type", typ)
	}
	if date != "" {
		q.Set("date", date)
	}
	if !group {
		q.Set("group", "off")
	}
	if len(q) == 0 {
		return "/dashboard/events/table?"
	}
	return "/dashboard/events/table?" + q.Encode() + "&"
}

type detailData struct {
	viewdata.BaseVM
	Event            eventRow
	HasQuestionnaire bool
	Organization     string
	Department       string
}

type deleteData struct {
	viewdata.BaseVM
	Event    eventRow
	Return   string
	FromList bool
}

type typeOption struct {
	ID   string
	Name string
}

// formData backs both the create and edit forms.
type formData struct {
	formutil.Base

	Action   string
	IsEdit   bool
	EventID  string
	Types    []typeOption
	Existing []string

	Name         string
	Description  string
	TypeID       string
	Organization string
	Department   string
	DateStart    string
	TimeStart    string
	DateEnd      string
	TimeEnd      string
	Location     string
}
