// internal/app/system/backend/ratings.go
package backend

import (
	"context"
	"net/url"

	"github.com/dalemusser/eventdash/internal/domain/models"
)

// SentimentCounts returns positive/negative/neutral tallies for an event.
func (c *Client) SentimentCounts(ctx context.Context, sess Session, eventID string) (models.SentimentCounts, error) {
	var out models.SentimentCounts
	seg, err := segment(eventID)
	if err != nil {
		return out, err
	}
	err = c.get(ctx, sess, "ratings/{id}?type=counts", "ratings/"+seg, url.Values{"type": {"counts"}}, &out)
	return out, err
}

// SentimentDetails returns each scored response for an event.
func (c *Client) SentimentDetails(ctx context.Context, sess Session, eventID string) ([]models.SentimentDetail, error) {
	seg, err := segment(eventID)
	if err != nil {
		return nil, err
	}
	var out []models.SentimentDetail
	if err := c.get(ctx, sess, "ratings/{id}?type=details", "ratings/"+seg, url.Values{"type": {"details"}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
