package reports

import (
	"net/http"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/eventdash/internal/app/features/errors"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/eventdash/internal/testutil"
	"go.uber.org/zap"
)

func stubBackend(t *testing.T) *testutil.Backend {
	t.Helper()
	be := testutil.NewBackend(t)
	be.Handle(http.MethodGet, "/ratings/ev1", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("type") {
		case "counts":
			testutil.WriteJSON(w, http.StatusOK, models.SentimentCounts{Positive: 2, Negative: 1})
		case "details":
			testutil.WriteJSON(w, http.StatusOK, []map[string]any{
				{"_id": "r1", "user": map[string]string{"name": "Ada"}, "sentiment": "positive", "feedback": "<b>Great</b> night", "score": 0.9},
				{"_id": "r2", "user": nil, "sentiment": "negative", "feedback": "Too loud", "score": -0.4},
				{"_id": "r3", "user": map[string]string{"name": "Alan"}, "sentiment": "", "feedback": "ok", "score": 0},
				{"_id": "r4", "user": map[string]string{"name": "Grace"}, "sentiment": "positive", "feedback": "Loved it", "score": 0.8},
			})
		default:
			testutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "bad type"})
		}
	})
	be.JSON(http.MethodGet, "/questionnaires/aggregated-ratings", http.StatusOK, map[string]any{
		"aggregatedRatings": []models.AggregatedRating{{Trait: "Openness", AverageRating: 4.5, Count: 2}},
	})
	be.JSON(http.MethodGet, "/events/ev1", http.StatusOK, models.Event{ID: "ev1", Name: "Jazz Night"})
	return be
}

func newTestHandler(t *testing.T, be *testutil.Backend) *Handler {
	t.Helper()
	logger := zap.NewNop()
	settings := screens.DefaultSettings()
	settings.PageSize = 2
	return NewHandler(be.Client(t), testutil.NewRegistry(), uierrors.NewErrorLogger(logger), settings, logger)
}

func idReq(r *http.Request) *http.Request { return testutil.WithChiURLParam(r, "id", "ev1") }

func mount(t *testing.T, h *Handler, user testutil.TestUser) *report {
	t.Helper()
	testutil.Serve(t, h.ServeReport, idReq(testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard/events/ev1/reports", user)))
	rp, ok := screens.Peek[*report](h.Screens, user.SessionID, screens.Reports)
	if !ok {
		t.Fatal("report not mounted")
	}
	return rp
}

func TestServeReport_FetchesEndpointsConcurrently(t *testing.T) {
	be := stubBackend(t)
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()

	rp := mount(t, h, admin)

	if n := be.Count(http.MethodGet, "/ratings/ev1"); n != 2 {
		t.Errorf("ratings calls = %d, want counts and details", n)
	}
	agg, ok := be.Last(http.MethodGet, "/questionnaires/aggregated-ratings")
	if !ok || agg.Query != "eventId=ev1" {
		t.Errorf("aggregated ratings query = %q", agg.Query)
	}

	data := h.build(viewdata.BaseVM{}, rp)
	if data.EventName != "Jazz Night" || data.Counts.Positive != 2 {
		t.Errorf("event=%q counts=%+v", data.EventName, data.Counts)
	}
	if data.Sentiment.Empty() || data.TraitBar.Empty() || data.Radar.Empty() {
		t.Error("charts should have data")
	}
	if data.Total != 4 || len(data.Rows) != 2 {
		t.Errorf("total=%d rows=%d", data.Total, len(data.Rows))
	}
	if data.Rows[1].User != "Unknown" {
		t.Errorf("missing user should read Unknown, got %q", data.Rows[1].User)
	}
	if data.Rows[0].Feedback != "Great night" {
		t.Errorf("feedback should be plain text, got %q", data.Rows[0].Feedback)
	}
}

func TestServeDetails_FiltersBySentimentWithoutRefetch(t *testing.T) {
	be := stubBackend(t)
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()
	rp := mount(t, h, admin)

	req := testutil.HTMX(idReq(testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard/events/ev1/reports/details?sentiment=No+Sentiment", admin)))
	testutil.Serve(t, h.ServeDetails, req)

	if n := be.Count(http.MethodGet, "/ratings/ev1"); n != 2 {
		t.Errorf("partial refetched: calls = %d", n)
	}
	v := rp.details.View()
	if len(v.Filtered) != 1 || v.Filtered[0].ID != "r3" {
		t.Errorf("filtered = %+v", v.Filtered)
	}
	sents := rp.details.Distinct(models.SentimentFieldLabel)
	if strings.Join(sents, ",") != "positive,negative,No Sentiment" {
		t.Errorf("sentiments = %v", sents)
	}
}

func TestServeReport_BackendFailureShownInline(t *testing.T) {
	be := testutil.NewBackend(t)
	be.Fail(http.MethodGet, "/ratings/ev1", http.StatusInternalServerError, "ratings down")
	be.JSON(http.MethodGet, "/questionnaires/aggregated-ratings", http.StatusOK, map[string]any{"aggregatedRatings": []any{}})
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()

	rec := testutil.Serve(t, h.ServeReport, idReq(testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard/events/ev1/reports", admin)))

	if rec.Code == http.StatusSeeOther {
		t.Error("a backend failure should render inline, not redirect")
	}
	rp, _ := screens.Peek[*report](h.Screens, admin.SessionID, screens.Reports)
	if rp == nil {
		t.Fatal("report not mounted")
	}
	if data := h.build(viewdata.BaseVM{}, rp); data.Total != 0 {
		t.Errorf("total = %d", data.Total)
	}
}

func TestServeCSV(t *testing.T) {
	be := stubBackend(t)
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()

	req := idReq(testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard/events/ev1/reports/details.csv?sentiment=positive", admin))
	rec := testutil.Serve(t, h.ServeCSV, req)

	rec.AssertStatus(t, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := strings.TrimPrefix(rec.Body.String(), "\ufeff")
	lines := strings.Split(strings.TrimSpace(body), "\r\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %q", lines)
	}
	if lines[0] != "user,sentiment,score,feedback" || lines[1] != "Ada,positive,0.9,Great night" {
		t.Errorf("csv = %q", lines)
	}
}
