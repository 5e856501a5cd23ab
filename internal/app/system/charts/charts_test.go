package charts

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dalemusser/eventdash/internal/domain/models"
)

func TestSentimentBar(t *testing.T) {
	cfg := SentimentBar(models.SentimentCounts{Positive: 4, Negative: 1, Neutral: 2})
	if cfg.Type != "bar" {
		t.Errorf("Type = %q", cfg.Type)
	}
	got := cfg.Data.Datasets[0].Data
	want := []float64{4, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Data = %v, want %v", got, want)
		}
	}
	if cfg.Empty() {
		t.Error("non-zero counts should not be empty")
	}
	if !SentimentBar(models.SentimentCounts{}).Empty() {
		t.Error("zero counts should be empty")
	}
}

func TestTraitBarIsHorizontal(t *testing.T) {
	ratings := []models.AggregatedRating{
		{Trait: "Openness", AverageRating: 4.5},
		{Trait: "Neuroticism", AverageRating: 2},
		{Trait: "Extraversion", AverageRating: 3},
		{Trait: "Agreeableness", AverageRating: 3.5},
		{Trait: "Conscientiousness", AverageRating: 4},
		{Trait: "Humor", AverageRating: 1},
	}
	cfg := TraitBar(ratings)
	if cfg.Options.IndexAxis != "y" {
		t.Errorf("IndexAxis = %q, want y", cfg.Options.IndexAxis)
	}
	ds := cfg.Data.Datasets[0]
	if len(cfg.Data.Labels) != 6 || len(ds.BackgroundColor) != 6 {
		t.Fatalf("labels=%d colors=%d", len(cfg.Data.Labels), len(ds.BackgroundColor))
	}
	if ds.BackgroundColor[5] != ds.BackgroundColor[0] {
		t.Error("palette should wrap around")
	}
}

func TestTraitRadarScale(t *testing.T) {
	cfg := TraitRadar([]models.AggregatedRating{{Trait: "Openness", AverageRating: 4}})
	r, ok := cfg.Options.Scales["r"]
	if !ok || r.Max == nil || *r.Max != 5 {
		t.Errorf("radial scale = %+v", r)
	}
	if cfg.Type != "radar" {
		t.Errorf("Type = %q", cfg.Type)
	}
}

func TestAttendanceBar(t *testing.T) {
	cfg := AttendanceBar(models.AttendanceCounts{Present: 7, Absent: 3})
	got := cfg.Data.Datasets[0].Data
	if got[0] != 10 || got[1] != 7 || got[2] != 3 {
		t.Errorf("Data = %v, want [10 7 3]", got)
	}
}

func TestJSON(t *testing.T) {
	js := string(TraitBar(nil).JSON())
	var decoded map[string]any
	if err := json.Unmarshal([]byte(js), &decoded); err != nil {
		t.Fatalf("JSON is not valid: %v", err)
	}
	if !strings.Contains(js, `"indexAxis":"y"`) {
		t.Errorf("JSON missing indexAxis: %s", js)
	}
	if !strings.Contains(js, `"labels":[]`) {
		t.Errorf("empty series should marshal as arrays: %s", js)
	}
}
