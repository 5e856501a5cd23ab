// internal/domain/models/status.go
package models

import "time"

// EventStatus describes whether an event is still running.
type EventStatus string

const (
	StatusOngoing EventStatus = "ongoing"
	StatusDone    EventStatus = "done"
)

// StatusAt derives an event's status from the wall clock. It is evaluated at
// render time rather than stored, so a page left open does not go stale.
// An event with no end date is treated as ongoing.
func StatusAt(now, dateEnd time.Time) EventStatus {
	if !dateEnd.IsZero() && now.After(dateEnd) {
		return StatusDone
	}
	return StatusOngoing
}
