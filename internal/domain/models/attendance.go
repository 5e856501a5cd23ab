// internal/domain/models/attendance.go
package models

import "strconv"

// Attendee field names.
const (
	AttendeeFieldAttended = "attended"
)

// Attendee is one registered user on an event's roster.
type Attendee struct {
	UserID      string `json:"userId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	HasAttended bool   `json:"hasAttended"`
}

// RecordID returns the user id.
func (a Attendee) RecordID() string { return a.UserID }

// FieldValue exposes the attended flag as "true"/"false".
func (a Attendee) FieldValue(name string) (any, bool) {
	if name == AttendeeFieldAttended {
		return strconv.FormatBool(a.HasAttended), true
	}
	return nil, false
}

// FullName joins first and last name.
func (a Attendee) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// AttendanceUpdate is one entry of an attendance approval request.
type AttendanceUpdate struct {
	UserID      string `json:"userId"`
	HasAttended bool   `json:"hasAttended"`
}

// AttendanceCounts is the backend's present/absent tally for an event.
type AttendanceCounts struct {
	Present int `json:"Present"`
	Absent  int `json:"Absent"`
}

// Registered is everyone on the roster.
func (c AttendanceCounts) Registered() int { return c.Present + c.Absent }
