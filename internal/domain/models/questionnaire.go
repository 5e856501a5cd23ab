// internal/domain/models/questionnaire.go
package models

import (
	"bytes"
	"encoding/json"
)

// MaxQuestionsPerTrait caps how many questions of one trait a questionnaire may hold.
const MaxQuestionsPerTrait = 5

// Questionnaire is the set of questions attached to an event.
type Questionnaire struct {
	ID                 string        `json:"_id,omitempty"`
	EventID            string        `json:"eventId"`
	Questions          []QuestionRef `json:"questions"`
	AcceptingResponses bool          `json:"acceptingResponses"`
}

// QuestionRef is a question reference that may be a bare id or a populated question.
type QuestionRef struct {
	Question
}

// UnmarshalJSON accepts "id" or a populated question object.
func (r *QuestionRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = QuestionRef{Question{ID: id}}
		return nil
	}
	return json.Unmarshal(b, &r.Question)
}

// NewQuestionnaire is the create request body.
type NewQuestionnaire struct {
	EventID           string         `json:"eventId"`
	SelectedQuestions []string       `json:"selectedQuestions"`
	Ratings           map[string]int `json:"ratings"`
}
