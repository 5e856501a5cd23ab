// internal/domain/models/rating.go
package models

// Sentiment labels used by the backend.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// SentimentFieldLabel is the filter field for sentiment details.
const SentimentFieldLabel = "sentiment"

// AggregatedRating is the mean score of one trait across responses.
type AggregatedRating struct {
	Trait         string  `json:"trait"`
	AverageRating float64 `json:"averageRating"`
	Count         int     `json:"count,omitempty"`

	// Older backend builds report the tally as totalResponses.
	TotalResponses int `json:"totalResponses,omitempty"`
}

// Responses returns the number of answers behind the average.
func (a AggregatedRating) Responses() int {
	if a.TotalResponses > 0 {
		return a.TotalResponses
	}
	return a.Count
}

// SentimentCounts tallies response sentiment for an event.
type SentimentCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Total is the number of scored responses.
func (c SentimentCounts) Total() int { return c.Positive + c.Negative + c.Neutral }

// SentimentDetail is one user's scored feedback.
type SentimentDetail struct {
	ID        string      `json:"_id,omitempty"`
	User      *RatingUser `json:"user"`
	Sentiment string      `json:"sentiment"`
	Feedback  string      `json:"feedback"`
	Score     float64     `json:"score"`
}

// RatingUser is the populated author of a rating.
type RatingUser struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
}

// UserName returns the author's name or "Unknown".
func (d SentimentDetail) UserName() string {
	if d.User == nil || d.User.Name == "" {
		return "Unknown"
	}
	return d.User.Name
}

// Label returns the sentiment or "No Sentiment".
func (d SentimentDetail) Label() string {
	if d.Sentiment == "" {
		return "No Sentiment"
	}
	return d.Sentiment
}

// RecordID returns the backend id when present.
func (d SentimentDetail) RecordID() string { return d.ID }

// FieldValue exposes the sentiment label.
func (d SentimentDetail) FieldValue(name string) (any, bool) {
	if name == SentimentFieldLabel {
		return d.Label(), true
	}
	return nil, false
}
