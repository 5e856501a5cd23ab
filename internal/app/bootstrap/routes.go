// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	attendancefeature "github.com/dalemusser/eventdash/internal/app/features/attendance"
	calendarfeature "github.com/dalemusser/eventdash/internal/app/features/calendar"
	errorsfeature "github.com/dalemusser/eventdash/internal/app/features/errors"
	eventsfeature "github.com/dalemusser/eventdash/internal/app/features/events"
	healthfeature "github.com/dalemusser/eventdash/internal/app/features/health"
	homefeature "github.com/dalemusser/eventdash/internal/app/features/home"
	loginfeature "github.com/dalemusser/eventdash/internal/app/features/login"
	logoutfeature "github.com/dalemusser/eventdash/internal/app/features/logout"
	questionnairesfeature "github.com/dalemusser/eventdash/internal/app/features/questionnaires"
	questionsfeature "github.com/dalemusser/eventdash/internal/app/features/questions"
	reportsfeature "github.com/dalemusser/eventdash/internal/app/features/reports"
	wordcloudfeature "github.com/dalemusser/eventdash/internal/app/features/wordcloud"
	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/ratelimit"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, the backend client, and the
// Startup hook are ready. It boots the template engine, installs the
// session and CSRF middleware, and mounts the public pages, the auth
// endpoints and the admin dashboard screens.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}
	viewdata.SetFlashLoader(sessionMgr.Flashes)

	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)
	settings := screens.Settings{
		PageSize:   appCfg.PageSize,
		MaxButtons: appCfg.MaxPageButtons,
		Location:   appCfg.Location(),
	}

	r := chi.NewRouter()

	// CSRF protection for every form post and htmx request.
	protect := csrf.Protect([]byte(appCfg.CSRFKey),
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("csrf rejected", zap.String("path", r.URL.Path), zap.Error(csrf.FailureReason(r)))
			errorsfeature.RenderForbidden(w, r, "Your form expired. Reload the page and try again.", r.URL.Path)
		})),
	)
	if !secure {
		r.Use(plaintextCSRF)
	}
	r.Use(protect)

	// Loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health and metrics for load balancers and scrapers
	healthHandler := healthfeature.NewHandler(deps.API, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(deps.API, settings, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.API, sessionMgr, errLog, ratelimit.NewLoginLimiter(), logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, deps.Screens, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Admin dashboard
	r.Get("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, loginfeature.AdminHome, http.StatusSeeOther)
	})

	calendarHandler := calendarfeature.NewHandler(deps.API, deps.Screens, errLog, settings, logger)
	r.Mount("/dashboard/calendar", calendarfeature.Routes(calendarHandler, sessionMgr))

	// Events, with the per-event attendance chart, questionnaire and reports
	eventsHandler := eventsfeature.NewHandler(deps.API, deps.Screens, sessionMgr, errLog, settings, appCfg.UploadLimit(), logger)
	attendanceHandler := attendancefeature.NewHandler(deps.API, deps.Screens, sessionMgr, errLog, settings, logger)
	questionnairesHandler := questionnairesfeature.NewHandler(deps.API, deps.Screens, sessionMgr, errLog, settings, logger)
	reportsHandler := reportsfeature.NewHandler(deps.API, deps.Screens, errLog, settings, logger)

	eventsRouter := eventsfeature.Routes(eventsHandler, sessionMgr)
	eventsRouter.Mount("/{id}/attendance", attendancefeature.ChartRoutes(attendanceHandler, sessionMgr))
	eventsRouter.Mount("/{id}/questionnaire", questionnairesfeature.Routes(questionnairesHandler, sessionMgr))
	eventsRouter.Mount("/{id}/reports", reportsfeature.Routes(reportsHandler, sessionMgr))
	r.Mount("/dashboard/events", eventsRouter)

	r.Mount("/dashboard/attendance", attendancefeature.Routes(attendanceHandler, sessionMgr))

	// Question bank, traits and event types
	questionsHandler := questionsfeature.NewHandler(deps.API, deps.Screens, sessionMgr, errLog, settings, logger)
	r.Mount("/dashboard/questions", questionsfeature.Routes(questionsHandler, sessionMgr))
	r.Mount("/dashboard/types", questionsfeature.TypesRoutes(questionsHandler, sessionMgr))

	wordcloudHandler := wordcloudfeature.NewHandler(deps.API, logger)
	r.Mount("/dashboard/wordcloud", wordcloudfeature.Routes(wordcloudHandler, sessionMgr))

	return r, nil
}

// plaintextCSRF lets gorilla/csrf accept plain-HTTP origins outside production.
func plaintextCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}
