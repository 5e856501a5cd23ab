// internal/app/system/screens/settings.go
package screens

import (
	"time"

	"github.com/dalemusser/eventdash/internal/app/system/paging"
)

// Settings are the display defaults every list screen starts from.
type Settings struct {
	PageSize   int
	MaxButtons int
	Location   *time.Location
}

// DefaultSettings uses the paging defaults and UTC.
func DefaultSettings() Settings {
	return Settings{PageSize: paging.PageSize, MaxButtons: paging.MaxVisibleButtons, Location: time.UTC}
}

// Loc returns the display location, UTC when unset.
func (s Settings) Loc() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}
