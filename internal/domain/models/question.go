// internal/domain/models/question.go
package models

import (
	"bytes"
	"encoding/json"
)

// Question field names.
const (
	QuestionFieldTrait = "trait"
	QuestionFieldType  = "type"
)

// Trait is a personality/behavior trait questions are scored against.
type Trait struct {
	ID    string `json:"_id"`
	Trait string `json:"trait"`
	Name  string `json:"name,omitempty"`
}

// Label returns the trait name, falling back to Name.
func (t Trait) Label() string {
	if t.Trait != "" {
		return t.Trait
	}
	return t.Name
}

// TraitRef is a trait reference that may be a bare id or a populated trait.
type TraitRef struct {
	ID    string
	Trait string
}

// UnmarshalJSON accepts "id", a populated trait object, or null.
func (r *TraitRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = TraitRef{}
		return nil
	}
	if b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = TraitRef{ID: id}
		return nil
	}
	var t Trait
	if err := json.Unmarshal(b, &t); err != nil {
		return err
	}
	*r = TraitRef{ID: t.ID, Trait: t.Label()}
	return nil
}

// MarshalJSON writes the populated form.
func (r TraitRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(Trait{ID: r.ID, Trait: r.Trait})
}

// Question is a questionnaire question tied to a trait and an event type.
type Question struct {
	ID       string       `json:"_id"`
	Question string       `json:"question"`
	TraitID  TraitRef     `json:"traitId"`
	TypeID   EventTypeRef `json:"typeId"`
}

// RecordID returns the backend id.
func (q Question) RecordID() string { return q.ID }

// FieldValue exposes trait and type for filtering/grouping.
func (q Question) FieldValue(name string) (any, bool) {
	switch name {
	case QuestionFieldTrait:
		return q.TraitID.Trait, q.TraitID.Trait != ""
	case QuestionFieldType:
		if q.TypeID.Name != "" {
			return q.TypeID.Name, true
		}
		return q.TypeID.ID, q.TypeID.ID != ""
	}
	return nil, false
}

// NewQuestion is a draft question submitted in a bulk create.
type NewQuestion struct {
	Question string `json:"question" validate:"required"`
	TraitID  string `json:"traitId" validate:"required"`
	TypeID   string `json:"typeId" validate:"required"`
}
