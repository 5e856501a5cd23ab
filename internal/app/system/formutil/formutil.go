// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a submission fails validation the form is rendered again with the
// values the user entered, the error message, and whatever option lists the
// form needs (event types, traits). Base is embedded in each form's data struct.
//
//	type eventFormData struct {
//		formutil.Base
//		Name  string
//		Types []typeOption
//	}
//
//	data := eventFormData{Name: name}
//	formutil.SetBase(&data.Base, r, "New Event", "/dashboard/events")
//	data.SetError("Event name is required.")
//	templates.Render(w, r, "event_new", data)
package formutil

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/authz"
	"github.com/dalemusser/eventdash/internal/app/system/inputval"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// Base contains common fields for form pages.
type Base struct {
	SiteName    string
	Title       string
	IsLoggedIn  bool
	IsAdmin     bool
	Role        string
	UserName    string
	UserOrg     string
	BackURL     string
	CurrentPath string
	CSRFToken   string
	Error       template.HTML
	FieldErrors map[string]string

	// Forms never drain flashes; the field exists for the shared layout.
	Flashes []auth.Flash
}

// SetBase populates the common Base fields from the request context.
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	role, uname, _, ok := authz.UserCtx(r)
	b.SiteName = models.DefaultSiteName
	b.Title = title
	b.IsLoggedIn = ok
	b.IsAdmin = ok && role == auth.RoleAdmin
	b.Role = role
	b.UserName = uname
	b.UserOrg, _ = authz.Affiliation(r)
	b.BackURL = httpnav.ResolveBackURL(r, backDefault)
	b.CurrentPath = httpnav.CurrentPath(r)
	b.CSRFToken = csrf.Token(r)
}

// SetError sets the error message on a Base struct.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}

// SetValidation copies a validation result onto the form: the first message
// becomes the banner and every field gets its own message.
func (b *Base) SetValidation(res *inputval.Result) {
	if res == nil || !res.HasErrors() {
		return
	}
	b.SetError(res.First())
	b.FieldErrors = make(map[string]string, len(res.Errors))
	for _, fe := range res.Errors {
		if _, seen := b.FieldErrors[fe.Field]; !seen {
			b.FieldErrors[fe.Field] = fe.Message
		}
	}
}

// HasError reports whether an error banner is set.
func (b *Base) HasError() bool {
	return b.Error != ""
}
