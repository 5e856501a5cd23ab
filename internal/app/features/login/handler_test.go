package login_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	uierrors "github.com/dalemusser/eventdash/internal/app/features/errors"
	"github.com/dalemusser/eventdash/internal/app/features/login"
	"github.com/dalemusser/eventdash/internal/app/system/ratelimit"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/eventdash/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, be *testutil.Backend) *login.Handler {
	t.Helper()
	logger := zap.NewNop()
	limiter := ratelimit.NewLoginLimiterWithConfig(100, time.Minute, 3, time.Minute)
	return login.NewHandler(be.Client(t), testutil.NewSessionManager(t), uierrors.NewErrorLogger(logger), limiter, logger)
}

func loginResult(admin bool) models.LoginResult {
	return models.LoginResult{
		Token: "tok-123",
		User: models.User{
			UserID: "u1", FirstName: "Ada", LastName: "Lovelace",
			Email: "ada@example.com", IsAdmin: admin, Organization: "Analytical",
		},
	}
}

func postLogin(t *testing.T, h *login.Handler, form url.Values) *testutil.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return testutil.Serve(t, h.HandleLoginPost, req)
}

func TestHandleLoginPost_AdminLandsOnCalendar(t *testing.T) {
	be := testutil.NewBackend(t)
	be.JSON(http.MethodPost, "/users/weblogin", http.StatusOK, loginResult(true))
	h := newTestHandler(t, be)

	rec := postLogin(t, h, url.Values{"email": {"ada@example.com"}, "password": {"secret"}})

	rec.AssertRedirect(t, login.AdminHome)
	if rec.Header().Get("Set-Cookie") == "" {
		t.Error("expected a session cookie")
	}

	got, ok := be.Last(http.MethodPost, "/users/weblogin")
	if !ok {
		t.Fatal("weblogin not called")
	}
	var body map[string]string
	got.DecodeJSON(t, &body)
	if body["email"] != "ada@example.com" || body["password"] != "secret" {
		t.Errorf("login body = %v", body)
	}
}

func TestHandleLoginPost_UserLandsOnHome(t *testing.T) {
	be := testutil.NewBackend(t)
	be.JSON(http.MethodPost, "/users/weblogin", http.StatusOK, loginResult(false))
	h := newTestHandler(t, be)

	rec := postLogin(t, h, url.Values{"email": {"ada@example.com"}, "password": {"secret"}})
	rec.AssertRedirect(t, login.UserHome)
}

func TestHandleLoginPost_ReturnURL(t *testing.T) {
	tests := []struct {
		name string
		ret  string
		want string
	}{
		{"local path honored", "/dashboard/events", "/dashboard/events"},
		{"absolute url rejected", "https://evil.example/", login.AdminHome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be := testutil.NewBackend(t)
			be.JSON(http.MethodPost, "/users/weblogin", http.StatusOK, loginResult(true))
			h := newTestHandler(t, be)

			rec := postLogin(t, h, url.Values{"email": {"ada@example.com"}, "password": {"x"}, "return": {tt.ret}})
			rec.AssertRedirect(t, tt.want)
		})
	}
}

func TestHandleLoginPost_EmptyFieldsNeverReachBackend(t *testing.T) {
	tests := []url.Values{
		{"email": {""}, "password": {"x"}},
		{"email": {"   "}, "password": {"x"}},
		{"email": {"ada@example.com"}, "password": {""}},
	}
	for _, form := range tests {
		be := testutil.NewBackend(t)
		h := newTestHandler(t, be)

		rec := postLogin(t, h, form)
		rec.AssertStatus(t, http.StatusUnprocessableEntity)
		if n := be.Count(http.MethodPost, "/users/weblogin"); n != 0 {
			t.Errorf("form %v: weblogin called %d times", form, n)
		}
	}
}

func TestHandleLoginPost_InvalidCredentials(t *testing.T) {
	be := testutil.NewBackend(t)
	be.Fail(http.MethodPost, "/users/weblogin", http.StatusUnauthorized, "wrong password")
	h := newTestHandler(t, be)

	rec := postLogin(t, h, url.Values{"email": {"ada@example.com"}, "password": {"bad"}})
	rec.AssertStatus(t, http.StatusUnauthorized)
	if rec.Header().Get("Location") != "" {
		t.Error("failed login must not redirect")
	}
}

func TestHandleLoginPost_BackendDown(t *testing.T) {
	be := testutil.NewBackend(t)
	be.Fail(http.MethodPost, "/users/weblogin", http.StatusInternalServerError, "")
	h := newTestHandler(t, be)

	rec := postLogin(t, h, url.Values{"email": {"ada@example.com"}, "password": {"x"}})
	rec.AssertStatus(t, http.StatusBadGateway)
}

func TestHandleLoginPost_RateLimitedPerEmail(t *testing.T) {
	be := testutil.NewBackend(t)
	be.Fail(http.MethodPost, "/users/weblogin", http.StatusUnauthorized, "nope")
	h := newTestHandler(t, be)

	form := url.Values{"email": {"ada@example.com"}, "password": {"bad"}}
	for i := 0; i < 3; i++ {
		postLogin(t, h, form)
	}
	rec := postLogin(t, h, form)
	rec.AssertStatus(t, http.StatusTooManyRequests)
	if n := be.Count(http.MethodPost, "/users/weblogin"); n != 3 {
		t.Errorf("weblogin calls = %d, want 3", n)
	}
}
