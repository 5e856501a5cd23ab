// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for eventdash.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base_url, session_name, etc.
//   - Environment variables: EVENTDASH_API_BASE_URL, EVENTDASH_SESSION_NAME, etc.
//   - Command-line flags: --api_base_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "api_base_url", Default: "http://localhost:4000/api/v1/", Desc: "Base URL of the events backend API"},
	{Name: "api_timeout", Default: "30s", Desc: "Upper bound for any single backend request"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "eventdash-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime"},
	{Name: "csrf_key", Default: "dev-only-csrf-key-32-bytes-long!", Desc: "CSRF authentication key (32 bytes)"},

	// List screens
	{Name: "page_size", Default: 6, Desc: "Items per page on list screens"},
	{Name: "max_page_buttons", Default: 5, Desc: "Numbered buttons shown by the pager"},
	{Name: "display_timezone", Default: "UTC", Desc: "IANA time zone for displayed dates"},

	// Screen state
	{Name: "screen_ttl", Default: "30m", Desc: "Idle lifetime of a session's screen state"},
	{Name: "screen_capacity", Default: 2048, Desc: "Maximum screen states kept in memory"},

	// Uploads
	{Name: "upload_max_mb", Default: 20, Desc: "Maximum event form upload size in MB"},

	// Handler timeouts
	{Name: "timeout_short", Default: "5s", Desc: "Timeout for single-record backend calls"},
	{Name: "timeout_medium", Default: "10s", Desc: "Timeout for list fetches and fan-outs"},
	{Name: "timeout_upload", Default: "60s", Desc: "Timeout for multipart event submissions"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, EVENTDASH_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "EVENTDASH", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL: strings.TrimSpace(appValues.String("api_base_url")),
		APITimeout: appValues.Duration("api_timeout", 30*time.Second),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),
		CSRFKey:       appValues.String("csrf_key"),

		PageSize:        appValues.Int("page_size"),
		MaxPageButtons:  appValues.Int("max_page_buttons"),
		DisplayTimezone: appValues.String("display_timezone"),

		ScreenTTL:      appValues.Duration("screen_ttl", 30*time.Minute),
		ScreenCapacity: appValues.Int("screen_capacity"),

		UploadMaxMB: appValues.Int("upload_max_mb"),

		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 10*time.Second),
		TimeoutUpload: appValues.Duration("timeout_upload", 60*time.Second),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// eventdash checks the backend URL, the display time zone and the list
// sizes so a typo fails at boot instead of on the first request.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := validateBaseURL(appCfg.APIBaseURL); err != nil {
		logger.Error("invalid backend API URL", zap.String("api_base_url", appCfg.APIBaseURL), zap.Error(err))
		return fmt.Errorf("invalid api_base_url: %w", err)
	}
	if _, err := time.LoadLocation(appCfg.DisplayTimezone); err != nil {
		return fmt.Errorf("invalid display_timezone %q: %w", appCfg.DisplayTimezone, err)
	}
	if appCfg.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", appCfg.PageSize)
	}
	if appCfg.MaxPageButtons <= 0 {
		return fmt.Errorf("max_page_buttons must be positive, got %d", appCfg.MaxPageButtons)
	}
	if appCfg.ScreenCapacity <= 0 {
		return fmt.Errorf("screen_capacity must be positive, got %d", appCfg.ScreenCapacity)
	}
	if len(appCfg.CSRFKey) != 32 {
		return fmt.Errorf("csrf_key must be 32 bytes, got %d", len(appCfg.CSRFKey))
	}
	if coreCfg != nil && coreCfg.Env == "prod" && strings.HasPrefix(appCfg.SessionKey, "dev-only") {
		return errors.New("session_key must be set in production")
	}
	return nil
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return errors.New("missing")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
