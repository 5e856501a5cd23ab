// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/eventdash/internal/app/features/errors"
	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/dalemusser/eventdash/internal/app/system/inputval"
	"github.com/dalemusser/eventdash/internal/app/system/ratelimit"
	"github.com/dalemusser/eventdash/internal/app/system/timeouts"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

// Landing pages after sign-in.
const (
	AdminHome = "/dashboard/calendar"
	UserHome  = "/"
)

type Handler struct {
	API        *backend.Client
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Limiter    *ratelimit.LoginLimiter
}

func NewHandler(api *backend.Client, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, limiter *ratelimit.LoginLimiter, logger *zap.Logger) *Handler {
	if limiter == nil {
		limiter = ratelimit.NewLoginLimiter()
	}
	return &Handler{
		API:        api,
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Limiter:    limiter,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
}

// credentials are checked for presence only; the backend decides validity.
type credentials struct {
	Email    string `validate:"notblank" label:"Email"`
	Password string `validate:"notblank" label:"Password"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(w, r, "Login", "/"),
		ReturnURL: query.Get(r, "return"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	in := credentials{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	ret := strings.TrimSpace(r.FormValue("return"))

	if res := inputval.Validate(in); res.HasErrors() {
		h.renderFormWithError(w, r, http.StatusUnprocessableEntity, res.First(), in.Email, ret)
		return
	}

	if ok, reason := h.Limiter.Check(r, in.Email); !ok {
		h.Log.Warn("login rate limited", zap.String("ip", ratelimit.ClientIP(r)))
		h.renderFormWithError(w, r, http.StatusTooManyRequests, reason, in.Email, ret)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	res, err := h.API.Login(ctx, in.Email, in.Password)
	if err != nil {
		var se *backend.ServerError
		if errors.As(err, &se) && se.Status >= 400 && se.Status < 500 {
			h.Log.Info("login rejected", zap.Int("status", se.Status))
			h.renderFormWithError(w, r, http.StatusUnauthorized, "Invalid credentials", in.Email, ret)
			return
		}
		h.Log.Warn("login failed", zap.Error(err))
		h.renderFormWithError(w, r, http.StatusBadGateway, backend.UserMessage(err), in.Email, ret)
		return
	}
	if res.Token == "" {
		h.Log.Warn("login response carried no token")
		h.renderFormWithError(w, r, http.StatusBadGateway, "The server did not return a session. Please try again.", in.Email, ret)
		return
	}

	u, err := h.SessionMgr.SignIn(w, r, res)
	if err != nil {
		h.Log.Error("save session failed", zap.Error(err))
		h.renderFormWithError(w, r, http.StatusInternalServerError, "Unable to create session. Please try again.", in.Email, ret)
		return
	}
	h.Limiter.ResetEmail(in.Email)
	h.Log.Info("login success", zap.String("user_id", u.ID), zap.String("role", u.Role))

	http.Redirect(w, r, destination(u, ret), http.StatusSeeOther)
}

// destination honors a safe local return path; otherwise admins land on the
// calendar and everyone else on the public home page.
func destination(u *auth.SessionUser, ret string) string {
	def := UserHome
	if u.IsAdmin() {
		def = AdminHome
	}
	return urlutil.SafeReturn(ret, "", def)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, status int, msg, email, ret string) {
	data := loginFormData{
		BaseVM:    viewdata.NewBaseVM(w, r, "Login", "/"),
		Error:     msg,
		Email:     email,
		ReturnURL: ret,
	}
	w.WriteHeader(status)
	templates.Render(w, r, "login", data)
}
