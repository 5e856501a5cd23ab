// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, logging, CORS); everything specific
// to the dashboard lives here.
type AppConfig struct {
	// Backend API
	APIBaseURL string        // Base URL of the events API (e.g., http://localhost:4000/api/v1/)
	APITimeout time.Duration // Per-request ceiling applied by the backend client

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: eventdash-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// CSRFKey authenticates CSRF tokens. It must be 32 bytes.
	CSRFKey string

	// List screen defaults
	PageSize        int    // Items per page (default 6)
	MaxPageButtons  int    // Numbered pager buttons (default 5)
	DisplayTimezone string // IANA zone used for dates on every screen

	// Per-session screen state
	ScreenTTL      time.Duration
	ScreenCapacity int

	// UploadMaxMB caps multipart event submissions.
	UploadMaxMB int

	// Backend call timeouts used by handlers
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutUpload time.Duration
}

// Location resolves DisplayTimezone. ValidateConfig has already rejected bad zones.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// UploadLimit is UploadMaxMB in bytes.
func (c AppConfig) UploadLimit() int64 {
	return int64(c.UploadMaxMB) << 20
}
