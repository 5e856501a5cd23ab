// internal/domain/models/user.go
package models

// DefaultSiteName is shown when no site name is configured.
const DefaultSiteName = "EventDash"

// User is the account returned by the backend on login.
type User struct {
	UserID       string `json:"userId"`
	Name         string `json:"name,omitempty"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	Email        string `json:"email"`
	IsAdmin      bool   `json:"isAdmin"`
	Organization string `json:"organization,omitempty"`
	Department   string `json:"department,omitempty"`
}

// DisplayName prefers Name, then first/last, then email.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if n := (Attendee{FirstName: u.FirstName, LastName: u.LastName}).FullName(); n != "" {
		return n
	}
	return u.Email
}

// LoginResult is the backend's weblogin response.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
