// internal/app/features/reports/types.go
package reports

import (
	"net/url"

	"github.com/dalemusser/eventdash/internal/app/system/charts"
	"github.com/dalemusser/eventdash/internal/app/system/htmlsanitize"
	"github.com/dalemusser/eventdash/internal/app/system/paging"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/eventdash/internal/domain/models"
)

type detailRow struct {
	User      string
	Sentiment string
	Feedback  string
	Score     float64
}

type traitRow struct {
	Trait     string
	Average   float64
	Responses int
}

type pagerVM struct {
	Pager   paging.Pager
	BaseURL string
	Target  string
}

// pageData is the view model for the report page. Chart configs are
// emitted as JSON for the client-side charting library.
type pageData struct {
	viewdata.BaseVM

	EventID   string
	EventName string

	Counts    models.SentimentCounts
	Sentiment charts.Config
	TraitBar  charts.Config
	Radar     charts.Config
	Traits    []traitRow

	Sentiments []string
	Selected   string
	Rows       []detailRow
	Total      int
	Empty      bool
	Error      string
	Pager      pagerVM
	CSVURL     string
}

func toDetailRows(ds []models.SentimentDetail) []detailRow {
	out := make([]detailRow, 0, len(ds))
	for _, d := range ds {
		out = append(out, detailRow{
			User:      d.UserName(),
			Sentiment: d.Label(),
			Feedback:  htmlsanitize.StripTags(d.Feedback),
			Score:     d.Score,
		})
	}
	return out
}

func toTraitRows(rs []models.AggregatedRating) []traitRow {
	out := make([]traitRow, 0, len(rs))
	for _, r := range rs {
		out = append(out, traitRow{Trait: r.Trait, Average: r.AverageRating, Responses: r.Responses()})
	}
	return out
}

func reportPath(eventID string) string { return "/dashboard/events/" + eventID + "/reports" }

// detailsURL is the partial endpoint with the active filter, ready for a
// trailing "page=N".
func detailsURL(eventID, sentiment string) string {
	if sentiment == "" {
		return reportPath(eventID) + "/details?"
	}
	return reportPath(eventID) + "/details?" + url.Values{"sentiment": {sentiment}}.Encode() + "&"
}

func csvURL(eventID, sentiment string) string {
	if sentiment == "" {
		return reportPath(eventID) + "/details.csv"
	}
	return reportPath(eventID) + "/details.csv?" + url.Values{"sentiment": {sentiment}}.Encode()
}
