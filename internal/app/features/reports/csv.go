// internal/app/features/reports/csv.go
package reports

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/collection"
	"github.com/dalemusser/eventdash/internal/app/system/htmlsanitize"
	"github.com/dalemusser/eventdash/internal/app/system/timeouts"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeCSV handles GET /dashboard/events/{id}/reports/details.csv and
// streams the sentiment details, narrowed by ?sentiment= when given. It
// always fetches fresh rows so an export never reflects a stale screen.
func (h *Handler) ServeCSV(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sentiment := strings.TrimSpace(query.Get(r, "sentiment"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "export report details")
	defer cancel()

	details, err := h.API.SentimentDetails(ctx, auth.Credentials(r), id)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "export report details failed", err, reportPath(id))
		return
	}
	details = collection.Filter(details, collection.Filters{models.SentimentFieldLabel: sentiment}, h.Settings.Loc())

	filename := fmt.Sprintf("event_%s_feedback_%s.csv", id, time.Now().In(h.Settings.Loc()).Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))

	// UTF-8 BOM for Excel
	_, _ = w.Write([]byte{0xEF, 0xBB, 0xBF})

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	defer cw.Flush()

	_ = cw.Write([]string{"user", "sentiment", "score", "feedback"})
	for _, d := range details {
		_ = cw.Write([]string{
			d.UserName(),
			d.Label(),
			strconv.FormatFloat(d.Score, 'f', -1, 64),
			htmlsanitize.StripTags(d.Feedback),
		})
	}
	h.Log.Info("report details exported", zap.String("event_id", id), zap.Int("rows", len(details)))
}
