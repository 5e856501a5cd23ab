// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/authz"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type eventsPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := eventsPageData{
//	    BaseVM: viewdata.NewBaseVM(w, r, "Events", "/dashboard/calendar"),
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn bool
	IsAdmin    bool
	Role       string
	UserName   string
	UserOrg    string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// CSRF protection
	CSRFToken string

	// One-shot notifications queued by the previous request
	Flashes []auth.Flash
}

// FlashLoader drains queued notifications for a request.
// This is set by bootstrap to avoid circular dependencies.
type FlashLoader func(w http.ResponseWriter, r *http.Request) []auth.Flash

var flashLoader FlashLoader

// SetFlashLoader sets the function used to drain flashes.
// Call this once at startup from bootstrap after the session manager exists.
func SetFlashLoader(loader FlashLoader) {
	flashLoader = loader
}

// NewBaseVM creates a fully populated BaseVM for a page. Queued flashes are
// drained, so call it before writing the response body.
func NewBaseVM(w http.ResponseWriter, r *http.Request, title, backDefault string) BaseVM {
	role, name, _, signedIn := authz.UserCtx(r)

	vm := BaseVM{
		SiteName:    models.DefaultSiteName,
		IsLoggedIn:  signedIn,
		IsAdmin:     authz.IsAdmin(r),
		Role:        role,
		UserName:    name,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}
	vm.UserOrg, _ = authz.Affiliation(r)

	if flashLoader != nil && w != nil {
		vm.Flashes = flashLoader(w, r)
	}
	return vm
}

// LoadBase populates a BaseVM without a title or back link. It does not
// drain flashes.
func LoadBase(r *http.Request) BaseVM {
	return NewBaseVM(nil, r, "", "")
}
