// internal/app/system/backend/events.go
package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/eventdash/internal/domain/models"
)

// AdminEvents lists every event visible to an administrator.
func (c *Client) AdminEvents(ctx context.Context, sess Session) ([]models.Event, error) {
	var out []models.Event
	if err := c.get(ctx, sess, "events/adminevents", "events/adminevents", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ActiveEvents lists events from the enveloped events/events endpoint.
func (c *Client) ActiveEvents(ctx context.Context, sess Session) ([]models.Event, error) {
	var env struct {
		Success bool           `json:"success"`
		Data    []models.Event `json:"data"`
		Message string         `json:"message"`
	}
	if err := c.get(ctx, sess, "events/events", "events/events", nil, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "Failed to fetch events"
		}
		return nil, &ServerError{Op: "events/events", Status: http.StatusOK, Message: msg}
	}
	return env.Data, nil
}

// PublicEvents lists public events, optionally narrowed to one event type id.
func (c *Client) PublicEvents(ctx context.Context, eventType string) ([]models.Event, error) {
	var q url.Values
	if t := strings.TrimSpace(eventType); t != "" {
		q = url.Values{"type": {t}}
	}
	var out []models.Event
	if err := c.get(ctx, Session{}, "events", "events", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Event fetches one event.
func (c *Client) Event(ctx context.Context, sess Session, id string) (models.Event, error) {
	var ev models.Event
	seg, err := segment(id)
	if err != nil {
		return ev, err
	}
	err = c.get(ctx, sess, "events/{id}", "events/"+seg, nil, &ev)
	return ev, err
}

// DeleteEvent deletes one event.
func (c *Client) DeleteEvent(ctx context.Context, sess Session, id string) error {
	seg, err := segment(id)
	if err != nil {
		return err
	}
	return c.do(ctx, call{name: "events/{id}", method: http.MethodDelete, path: "events/" + seg, sess: sess}, nil)
}

// EventInput is the multipart payload for creating or updating an event.
type EventInput struct {
	Name         string
	Description  string
	TypeID       string
	Organization string
	Department   string
	UserID       string
	DateStart    time.Time
	DateEnd      time.Time
	Location     string

	// ExistingImages are image URLs to keep on update.
	ExistingImages []string
	Images         []Upload
}

func (in EventInput) form(update bool) Form {
	f := Form{
		Fields: map[string][]string{
			"name":         {in.Name},
			"description":  {in.Description},
			"type":         {in.TypeID},
			"organization": {in.Organization},
			"department":   {in.Department},
			"userId":       {in.UserID},
			"dateStart":    {in.DateStart.UTC().Format(time.RFC3339)},
			"dateEnd":      {in.DateEnd.UTC().Format(time.RFC3339)},
			"location":     {in.Location},
		},
	}
	if update && len(in.ExistingImages) > 0 {
		f.Fields["existingImages"] = in.ExistingImages
	}
	if len(in.Images) > 0 {
		f.Files = map[string][]Upload{"images": in.Images}
	}
	return f
}

// CreateEvent creates an event with at least one image.
func (c *Client) CreateEvent(ctx context.Context, sess Session, in EventInput) (models.Event, error) {
	var ev models.Event
	err := c.sendMultipart(ctx, sess, http.MethodPost, "events/create", "events/create", in.form(false), &ev)
	return ev, err
}

// UpdateEvent replaces an event's fields and images.
func (c *Client) UpdateEvent(ctx context.Context, sess Session, id string, in EventInput) (models.Event, error) {
	var ev models.Event
	seg, err := segment(id)
	if err != nil {
		return ev, err
	}
	err = c.sendMultipart(ctx, sess, http.MethodPut, "events/{id}", "events/"+seg, in.form(true), &ev)
	return ev, err
}

// Comments lists the comments left on an event.
func (c *Client) Comments(ctx context.Context, id string) ([]models.Comment, error) {
	seg, err := segment(id)
	if err != nil {
		return nil, err
	}
	var out []models.Comment
	if err := c.get(ctx, Session{}, "events/{id}/comments", "events/"+seg+"/comments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
