// internal/app/system/backend/catalog.go
package backend

import (
	"context"

	"github.com/dalemusser/eventdash/internal/domain/models"
)

// EventTypes lists the event type catalog.
func (c *Client) EventTypes(ctx context.Context) ([]models.EventType, error) {
	var out []models.EventType
	if err := c.get(ctx, Session{}, "types", "types/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Traits lists the trait catalog.
func (c *Client) Traits(ctx context.Context) ([]models.Trait, error) {
	var out []models.Trait
	if err := c.get(ctx, Session{}, "traits", "traits/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ping checks that the backend answers. It uses the cheap types listing.
func (c *Client) Ping(ctx context.Context) error {
	return c.get(ctx, Session{}, "ping", "types/", nil, nil)
}
