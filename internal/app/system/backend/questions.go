// internal/app/system/backend/questions.go
package backend

import (
	"context"
	"net/http"

	"github.com/dalemusser/eventdash/internal/domain/models"
)

// Questions lists every question.
func (c *Client) Questions(ctx context.Context) ([]models.Question, error) {
	var out []models.Question
	if err := c.get(ctx, Session{}, "questions", "questions/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// QuestionsForEvent lists the questions that apply to an event's type.
func (c *Client) QuestionsForEvent(ctx context.Context, eventID string) ([]models.Question, error) {
	seg, err := segment(eventID)
	if err != nil {
		return nil, err
	}
	var out []models.Question
	if err := c.get(ctx, Session{}, "questions/event-type/{id}", "questions/event-type/"+seg, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BulkCreateQuestions creates drafts in one call and returns the stored questions.
func (c *Client) BulkCreateQuestions(ctx context.Context, sess Session, drafts []models.NewQuestion) ([]models.Question, error) {
	in := struct {
		Questions []models.NewQuestion `json:"questions"`
	}{drafts}
	var out []models.Question
	if err := c.sendJSON(ctx, sess, http.MethodPost, "questions/bulk-create-questions", "questions/bulk-create-questions", in, &out); err != nil {
		return nil, err
	}
	return out, nil
}
