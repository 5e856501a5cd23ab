// internal/app/system/backend/attendance.go
package backend

import (
	"context"
	"net/http"

	"github.com/dalemusser/eventdash/internal/domain/models"
)

// Attendees lists the users registered for an event.
func (c *Client) Attendees(ctx context.Context, sess Session, eventID string) ([]models.Attendee, error) {
	seg, err := segment(eventID)
	if err != nil {
		return nil, err
	}
	var out []models.Attendee
	if err := c.get(ctx, sess, "attendance/getUsersByEvent/{id}", "attendance/getUsersByEvent/"+seg, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveAttendance marks the given users as having attended.
func (c *Client) ApproveAttendance(ctx context.Context, sess Session, eventID string, userIDs []string) error {
	seg, err := segment(eventID)
	if err != nil {
		return err
	}
	in := struct {
		Attendees []models.AttendanceUpdate `json:"attendees"`
	}{Attendees: make([]models.AttendanceUpdate, 0, len(userIDs))}
	for _, id := range userIDs {
		in.Attendees = append(in.Attendees, models.AttendanceUpdate{UserID: id, HasAttended: true})
	}
	return c.sendJSON(ctx, sess, http.MethodPut, "attendance/updateUsersAttendance/{id}", "attendance/updateUsersAttendance/"+seg, in, nil)
}

// AttendanceCounts returns present/absent totals for an event.
func (c *Client) AttendanceCounts(ctx context.Context, sess Session, eventID string) (models.AttendanceCounts, error) {
	var out models.AttendanceCounts
	seg, err := segment(eventID)
	if err != nil {
		return out, err
	}
	err = c.get(ctx, sess, "attendance/hasAttendedCounts/{id}", "attendance/hasAttendedCounts/"+seg, nil, &out)
	return out, err
}
