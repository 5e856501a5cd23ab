// internal/app/system/backend/users.go
package backend

import (
	"context"
	"net/http"

	"github.com/dalemusser/eventdash/internal/domain/models"
)

// Login exchanges email and password for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (models.LoginResult, error) {
	in := map[string]string{"email": email, "password": password}
	var out models.LoginResult
	err := c.sendJSON(ctx, Session{}, http.MethodPost, "users/weblogin", "users/weblogin", in, &out)
	return out, err
}
