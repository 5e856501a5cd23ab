// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Screens    *screens.Registry
}

func NewHandler(sessionMgr *auth.SessionManager, reg *screens.Registry, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Screens:    reg,
	}
}

// HandleLogout handles POST /logout: the session cookie is expired and every
// screen state held for the session is discarded.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	sid, err := h.SessionMgr.SignOut(w, r)
	if err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}
	if h.Screens != nil {
		if n := h.Screens.DropSession(sid); n > 0 {
			h.Log.Debug("logout: dropped screens", zap.Int("count", n))
		}
	}

	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
