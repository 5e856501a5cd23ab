package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/authz"
)

func TestUserCtx_NoUser(t *testing.T) {
	role, name, id, ok := authz.UserCtx(httptest.NewRequest("GET", "/", nil))
	if ok || role != "visitor" || name != "" || id != "" {
		t.Errorf("UserCtx = %q %q %q %v", role, name, id, ok)
	}
}

func TestUserCtx_MissingIDFailsClosed(t *testing.T) {
	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{Role: "admin"})
	if _, _, _, ok := authz.UserCtx(req); ok {
		t.Error("a user without an id must not count as signed in")
	}
}

func TestUserCtx_LowercasesRole(t *testing.T) {
	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{
		ID:   "u1",
		Name: "Ana",
		Role: "ADMIN",
	})
	role, name, id, ok := authz.UserCtx(req)
	if !ok || role != "admin" || name != "Ana" || id != "u1" {
		t.Errorf("UserCtx = %q %q %q %v", role, name, id, ok)
	}
	if !authz.IsAdmin(req) {
		t.Error("IsAdmin should be true")
	}
}

func TestIsAdmin_FalseForUser(t *testing.T) {
	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{ID: "u1", Role: "user"})
	if authz.IsAdmin(req) {
		t.Error("IsAdmin should be false for role user")
	}
}

func TestAffiliation(t *testing.T) {
	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{
		ID: "u1", Organization: "Red Cross", Department: "Youth",
	})
	org, dept := authz.Affiliation(req)
	if org != "Red Cross" || dept != "Youth" {
		t.Errorf("Affiliation = %q %q", org, dept)
	}
	if org, dept := authz.Affiliation(httptest.NewRequest("GET", "/", nil)); org != "" || dept != "" {
		t.Error("anonymous affiliation should be empty")
	}
}
