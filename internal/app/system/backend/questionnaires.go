// internal/app/system/backend/questionnaires.go
package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dalemusser/eventdash/internal/domain/models"
)

// CreateQuestionnaire attaches hand-picked questions to an event.
func (c *Client) CreateQuestionnaire(ctx context.Context, sess Session, in models.NewQuestionnaire) error {
	return c.sendJSON(ctx, sess, http.MethodPost, "questionnaires/create", "questionnaires/create", in, nil)
}

// RandomizeQuestionnaire asks the backend to pick questions for an event.
func (c *Client) RandomizeQuestionnaire(ctx context.Context, sess Session, eventID string) (models.Questionnaire, error) {
	var out struct {
		Questionnaire models.Questionnaire `json:"questionnaire"`
	}
	in := map[string]string{"eventId": eventID}
	err := c.sendJSON(ctx, sess, http.MethodPost, "questionnaires/randomize-create", "questionnaires/randomize-create", in, &out)
	return out.Questionnaire, err
}

// Questionnaire fetches the questionnaire attached to an event.
func (c *Client) Questionnaire(ctx context.Context, sess Session, eventID string) (models.Questionnaire, error) {
	var out struct {
		Questionnaire models.Questionnaire `json:"questionnaire"`
	}
	seg, err := segment(eventID)
	if err != nil {
		return out.Questionnaire, err
	}
	err = c.get(ctx, sess, "questionnaires/event/{id}", "questionnaires/event/"+seg, nil, &out)
	return out.Questionnaire, err
}

// SetAcceptingResponses opens or closes an event's questionnaire.
func (c *Client) SetAcceptingResponses(ctx context.Context, sess Session, eventID string, accepting bool) error {
	seg, err := segment(eventID)
	if err != nil {
		return err
	}
	in := map[string]bool{"acceptingResponses": accepting}
	return c.sendJSON(ctx, sess, http.MethodPut, "questionnaires/accepting-responses/{id}", "questionnaires/accepting-responses/"+seg, in, nil)
}

// HasQuestionnaire reports whether an event already has a questionnaire.
func (c *Client) HasQuestionnaire(ctx context.Context, sess Session, eventID string) (bool, error) {
	seg, err := segment(eventID)
	if err != nil {
		return false, err
	}
	var out struct {
		HasQuestionnaire bool `json:"hasQuestionnaire"`
	}
	err = c.get(ctx, sess, "questionnaires/check-questionnaire/{id}", "questionnaires/check-questionnaire/"+seg, nil, &out)
	return out.HasQuestionnaire, err
}

// AggregatedRatings returns the mean rating per trait for an event.
func (c *Client) AggregatedRatings(ctx context.Context, sess Session, eventID string) ([]models.AggregatedRating, error) {
	var out struct {
		AggregatedRatings []models.AggregatedRating `json:"aggregatedRatings"`
	}
	q := url.Values{"eventId": {eventID}}
	if err := c.get(ctx, sess, "questionnaires/aggregated-ratings", "questionnaires/aggregated-ratings", q, &out); err != nil {
		return nil, err
	}
	return out.AggregatedRatings, nil
}
