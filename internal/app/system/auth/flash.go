// internal/app/system/auth/flash.go
package auth

import (
	"net/http"

	"go.uber.org/zap"
)

// Toast kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

var flashKinds = []string{FlashSuccess, FlashError, FlashInfo}

// Flash is a one-shot notification shown on the next rendered page.
type Flash struct {
	Kind    string
	Message string
}

// AddFlash queues a notification and saves the session.
func (sm *SessionManager) AddFlash(w http.ResponseWriter, r *http.Request, kind, msg string) {
	sess, err := sm.GetSession(r)
	if err != nil {
		sm.log.Debug("flash: fresh session", zap.Error(err))
	}
	sess.AddFlash(msg, "flash_"+kind)
	if err := sess.Save(r, w); err != nil {
		sm.log.Warn("flash: save session", zap.Error(err))
	}
}

// Flashes drains queued notifications. Call it before writing the body.
func (sm *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	sess, err := sm.GetSession(r)
	if err != nil {
		return nil
	}
	var out []Flash
	for _, kind := range flashKinds {
		for _, v := range sess.Flashes("flash_" + kind) {
			if s, ok := v.(string); ok && s != "" {
				out = append(out, Flash{Kind: kind, Message: s})
			}
		}
	}
	if len(out) > 0 {
		if err := sess.Save(r, w); err != nil {
			sm.log.Warn("flash: save session", zap.Error(err))
		}
	}
	return out
}
