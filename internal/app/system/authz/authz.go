// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/eventdash/internal/app/system/auth"
)

// UserCtx returns the user's role (lowercased), name, backend user id, and a
// found flag. With no signed-in user it returns "visitor", "", "", false.
func UserCtx(r *http.Request) (role string, name string, userID string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok || user.ID == "" {
		return "visitor", "", "", false
	}
	return strings.ToLower(user.Role), user.Name, user.ID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == auth.RoleAdmin
}

// Affiliation returns the organization and department the backend reported
// for the current user. Event forms are prefilled with them.
func Affiliation(r *http.Request) (organization, department string) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "", ""
	}
	return user.Organization, user.Department
}
