// internal/app/system/charts/charts.go
//
// Package charts builds Chart.js configurations for the report and attendance
// screens. Pages embed the JSON and a small script hands it to the charting
// library, so nothing here draws anything.
package charts

import (
	"encoding/json"
	"html/template"

	"github.com/dalemusser/eventdash/internal/domain/models"
)

// Config is the subset of a Chart.js configuration the dashboard uses.
type Config struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

// Data holds labels and datasets.
type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one series.
type Dataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor,omitempty"`
	BorderColor     []string  `json:"borderColor,omitempty"`
	BorderWidth     int       `json:"borderWidth,omitempty"`
	Fill            *bool     `json:"fill,omitempty"`
}

// Options are the chart-wide settings.
type Options struct {
	Responsive bool             `json:"responsive"`
	IndexAxis  string           `json:"indexAxis,omitempty"`
	Plugins    Plugins          `json:"plugins"`
	Scales     map[string]Scale `json:"scales,omitempty"`
}

// Plugins configures legend and tooltip.
type Plugins struct {
	Legend  Legend  `json:"legend"`
	Tooltip Tooltip `json:"tooltip"`
}

// Legend placement.
type Legend struct {
	Display  bool   `json:"display"`
	Position string `json:"position,omitempty"`
}

// Tooltip toggle.
type Tooltip struct {
	Enabled bool `json:"enabled"`
}

// Scale is one axis (or the radial axis of a radar chart).
type Scale struct {
	BeginAtZero bool     `json:"beginAtZero"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
}

// Palette used for per-bar colors; series longer than the palette wrap around.
var (
	fillPalette = []string{
		"rgba(53, 162, 235, 0.6)",
		"rgba(77, 189, 104, 0.6)",
		"rgba(255, 159, 64, 0.6)",
		"rgba(255, 99, 132, 0.6)",
		"rgba(153, 102, 255, 0.6)",
	}
	borderPalette = []string{
		"rgba(53, 162, 235, 1)",
		"rgba(77, 189, 104, 1)",
		"rgba(255, 159, 64, 1)",
		"rgba(255, 99, 132, 1)",
		"rgba(153, 102, 255, 1)",
	}
)

// JSON renders the config for a <script> block.
func (c Config) JSON() template.JS {
	b, err := json.Marshal(c)
	if err != nil {
		return template.JS("{}")
	}
	return template.JS(b)
}

// Empty reports whether every dataset is all zeros or missing.
func (c Config) Empty() bool {
	for _, ds := range c.Data.Datasets {
		for _, v := range ds.Data {
			if v != 0 {
				return false
			}
		}
	}
	return true
}

func baseOptions() Options {
	return Options{
		Responsive: true,
		Plugins: Plugins{
			Legend:  Legend{Display: true, Position: "top"},
			Tooltip: Tooltip{Enabled: true},
		},
		Scales: map[string]Scale{
			"x": {BeginAtZero: true},
			"y": {BeginAtZero: true},
		},
	}
}

func cycle(palette []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = palette[i%len(palette)]
	}
	return out
}

// SentimentBar is the vertical positive/negative/neutral distribution.
func SentimentBar(c models.SentimentCounts) Config {
	opts := baseOptions()
	opts.Plugins.Legend.Display = false
	return Config{
		Type: "bar",
		Data: Data{
			Labels: []string{"Positive", "Negative", "Neutral"},
			Datasets: []Dataset{{
				Label:           "Responses",
				Data:            []float64{float64(c.Positive), float64(c.Negative), float64(c.Neutral)},
				BackgroundColor: []string{"#58d68d", "#e74c3c", "#f39c12"},
				BorderColor:     []string{"#45b16d", "#e23d2f", "#d48e1e"},
				BorderWidth:     1,
			}},
		},
		Options: opts,
	}
}

// TraitBar is the horizontal bar of average rating per trait.
func TraitBar(ratings []models.AggregatedRating) Config {
	labels, values := traitSeries(ratings)
	opts := baseOptions()
	opts.IndexAxis = "y"
	return Config{
		Type: "bar",
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{{
				Label:           "Trait Ratings",
				Data:            values,
				BackgroundColor: cycle(fillPalette, len(values)),
				BorderColor:     cycle(borderPalette, len(values)),
				BorderWidth:     2,
			}},
		},
		Options: opts,
	}
}

// TraitRadar plots the same averages on a 0–5 radial scale.
func TraitRadar(ratings []models.AggregatedRating) Config {
	labels, values := traitSeries(ratings)
	lo, hi := 0.0, 5.0
	fill := true
	opts := baseOptions()
	opts.Scales = map[string]Scale{"r": {BeginAtZero: true, Min: &lo, Max: &hi}}
	return Config{
		Type: "radar",
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{{
				Label:           "Average Rating",
				Data:            values,
				BackgroundColor: []string{fillPalette[0]},
				BorderColor:     []string{borderPalette[0]},
				BorderWidth:     2,
				Fill:            &fill,
			}},
		},
		Options: opts,
	}
}

// AttendanceBar compares registered, attended and absent counts.
func AttendanceBar(c models.AttendanceCounts) Config {
	return Config{
		Type: "bar",
		Data: Data{
			Labels: []string{"Registered", "Attended", "Absent"},
			Datasets: []Dataset{{
				Label:           "User Attendance",
				Data:            []float64{float64(c.Registered()), float64(c.Present), float64(c.Absent)},
				BackgroundColor: []string{"#FFCC00", "#00FF00", "#FF0000"},
				BorderColor:     []string{"#FF9900", "#00CC00", "#CC0000"},
				BorderWidth:     1,
			}},
		},
		Options: baseOptions(),
	}
}

func traitSeries(ratings []models.AggregatedRating) ([]string, []float64) {
	labels := make([]string, 0, len(ratings))
	values := make([]float64, 0, len(ratings))
	for _, r := range ratings {
		labels = append(labels, r.Trait)
		values = append(values, r.AverageRating)
	}
	return labels, values
}
