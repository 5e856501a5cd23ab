// internal/domain/models/event.go
package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Filterable field names exposed by Event.
const (
	EventFieldType     = "type"
	EventFieldDate     = "date"
	EventFieldEnd      = "end"
	EventFieldLocation = "location"
)

// Event is an event as returned by the backend's events endpoints.
//
// The backend populates Type as an object ({_id, eventType}) on list calls but
// some single-event responses carry only the type id; EventTypeRef accepts both.
type Event struct {
	ID           string       `json:"_id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Type         EventTypeRef `json:"type"`
	Organization string       `json:"organization,omitempty"`
	Department   string       `json:"department,omitempty"`
	DateStart    time.Time    `json:"dateStart"`
	DateEnd      time.Time    `json:"dateEnd"`
	Location     string       `json:"location"`
	Images       []string     `json:"images"`
}

// RecordID returns the backend id.
func (e Event) RecordID() string { return e.ID }

// FieldValue exposes the fields screens filter and group on.
func (e Event) FieldValue(name string) (any, bool) {
	switch name {
	case EventFieldType:
		return e.Type.Name, e.Type.Name != ""
	case EventFieldDate:
		return e.DateStart, !e.DateStart.IsZero()
	case EventFieldEnd:
		return e.DateEnd, !e.DateEnd.IsZero()
	case EventFieldLocation:
		return e.Location, e.Location != ""
	}
	return nil, false
}

// CoverImage returns the first image URL, or "" when the event has none.
func (e Event) CoverImage() string {
	if len(e.Images) == 0 {
		return ""
	}
	return e.Images[0]
}

// EventTypeRef is a reference to an EventType that may arrive either as a
// bare id string or as a populated object.
type EventTypeRef struct {
	ID   string
	Name string
}

// UnmarshalJSON accepts "id", {"_id": "...", "eventType": "..."} or null.
func (r *EventTypeRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = EventTypeRef{}
		return nil
	}
	if b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = EventTypeRef{ID: id}
		return nil
	}
	var t EventType
	if err := json.Unmarshal(b, &t); err != nil {
		return err
	}
	*r = EventTypeRef{ID: t.ID, Name: t.EventType}
	return nil
}

// MarshalJSON writes the populated form.
func (r EventTypeRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(EventType{ID: r.ID, EventType: r.Name})
}

// EventType is a category of events (e.g. "Sports").
type EventType struct {
	ID        string `json:"_id"`
	EventType string `json:"eventType"`
}

// Comment is a free-text comment left on an event.
type Comment struct {
	ID   string `json:"_id,omitempty"`
	Text string `json:"text"`
}
