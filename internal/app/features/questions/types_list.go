// internal/app/features/questions/types_list.go
package questions

import (
	"net/http"

	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/dalemusser/eventdash/internal/app/system/timeouts"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeTypes lists the event types questions can target.
// GET /dashboard/types
func (h *Handler) ServeTypes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "list event types")
	defer cancel()

	data := typesData{BaseVM: viewdata.NewBaseVM(w, r, "Event Types", basePath)}
	types, err := h.API.EventTypes(ctx)
	if err != nil {
		h.Log.Warn("list event types failed", zap.Error(err))
		data.Error = backend.UserMessage(err)
	}
	data.Types = typeOptions(types)
	templates.Render(w, r, "event_types", data)
}
