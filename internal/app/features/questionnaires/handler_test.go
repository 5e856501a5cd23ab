package questionnaires

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/eventdash/internal/app/features/errors"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/eventdash/internal/testutil"
	"go.uber.org/zap"
)

func q(id, trait string) map[string]any {
	m := map[string]any{"_id": id, "question": "Question " + id, "typeId": "ty1"}
	if trait != "" {
		m["traitId"] = map[string]string{"_id": "t-" + trait, "trait": trait}
	}
	return m
}

// eventQuestions offers six Openness questions, one Empathy and one
// without a trait.
func eventQuestions() []map[string]any {
	out := []map[string]any{}
	for i := 1; i <= 6; i++ {
		out = append(out, q(fmt.Sprintf("o%d", i), "Openness"))
	}
	return append(out, q("e1", "Empathy"), q("x1", ""))
}

func stubBackend(t *testing.T) *testutil.Backend {
	t.Helper()
	be := testutil.NewBackend(t)
	be.JSON(http.MethodGet, "/questions/event-type/ev1", http.StatusOK, eventQuestions())
	be.JSON(http.MethodGet, "/events/ev1", http.StatusOK, models.Event{ID: "ev1", Name: "Jazz Night"})
	return be
}

func newTestHandler(t *testing.T, be *testutil.Backend) *Handler {
	t.Helper()
	logger := zap.NewNop()
	return NewHandler(be.Client(t), testutil.NewRegistry(), testutil.NewSessionManager(t),
		uierrors.NewErrorLogger(logger), screens.DefaultSettings(), logger)
}

func idReq(r *http.Request) *http.Request { return testutil.WithChiURLParam(r, "id", "ev1") }

func TestServeNew_GroupsByTraitWithUnknownLabel(t *testing.T) {
	be := stubBackend(t)
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()

	testutil.Serve(t, h.ServeNew, idReq(testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard/events/ev1/questionnaire/new", admin)))

	p, ok := screens.Peek[*picker](h.Screens, admin.SessionID, screens.Questionnaire)
	if !ok {
		t.Fatal("picker not mounted")
	}
	data := h.buildNew(viewdata.BaseVM{}, p, "ev1", "")
	labels := []string{}
	for _, g := range data.Groups {
		labels = append(labels, g.Trait)
	}
	if strings.Join(labels, ",") != "Openness,Empathy,"+UnknownTrait {
		t.Errorf("groups = %v", labels)
	}
}

func TestHandleCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{"nothing selected", url.Values{}},
		{"six of one trait", url.Values{"question": {"o1", "o2", "o3", "o4", "o5", "o6"}}},
		{"rating out of range", url.Values{"question": {"o1"}, "rating_o1": {"7"}}},
		{"question not offered", url.Values{"question": {"zzz"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be := stubBackend(t)
			h := newTestHandler(t, be)
			admin := testutil.AdminUser()

			rec := testutil.Serve(t, h.HandleCreate, idReq(testutil.NewFormRequest("/dashboard/events/ev1/questionnaire", tt.form, admin)))

			rec.AssertStatus(t, http.StatusUnprocessableEntity)
			if n := be.Count(http.MethodPost, "/questionnaires/create"); n != 0 {
				t.Errorf("create called %d times", n)
			}
		})
	}
}

func TestHandleCreate_SendsSelectionAndRatings(t *testing.T) {
	be := stubBackend(t)
	be.JSON(http.MethodPost, "/questionnaires/create", http.StatusCreated, map[string]string{"message": "ok"})
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()

	form := url.Values{
		"question":  {"o1", "o2", "o3", "o4", "o5", "e1", "x1"},
		"rating_o1": {"4"},
		"rating_e1": {"1"},
		"rating_zz": {"5"},
	}
	rec := testutil.Serve(t, h.HandleCreate, idReq(testutil.NewFormRequest("/dashboard/events/ev1/questionnaire", form, admin)))

	rec.AssertRedirect(t, "/dashboard/events/ev1/questionnaire")
	req, ok := be.Last(http.MethodPost, "/questionnaires/create")
	if !ok {
		t.Fatal("create not sent")
	}
	if req.Authorization != "Bearer admin-token" {
		t.Errorf("Authorization = %q", req.Authorization)
	}
	var body models.NewQuestionnaire
	req.DecodeJSON(t, &body)
	if body.EventID != "ev1" || len(body.SelectedQuestions) != 7 {
		t.Errorf("body = %+v", body)
	}
	if len(body.Ratings) != 2 || body.Ratings["o1"] != 4 || body.Ratings["e1"] != 1 {
		t.Errorf("ratings = %v", body.Ratings)
	}
	if _, ok := screens.Peek[*picker](h.Screens, admin.SessionID, screens.Questionnaire); ok {
		t.Error("picker should be dropped after create")
	}
}

func TestHandleRandomize(t *testing.T) {
	be := stubBackend(t)
	be.JSON(http.MethodPost, "/questionnaires/randomize-create", http.StatusCreated, map[string]any{
		"questionnaire": map[string]any{"eventId": "ev1", "questions": []string{"o1", "e1"}},
	})
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()

	rec := testutil.Serve(t, h.HandleRandomize, idReq(testutil.NewFormRequest("/dashboard/events/ev1/questionnaire/randomize", url.Values{}, admin)))

	rec.AssertRedirect(t, "/dashboard/events/ev1/questionnaire")
	req, _ := be.Last(http.MethodPost, "/questionnaires/randomize-create")
	var body map[string]string
	req.DecodeJSON(t, &body)
	if body["eventId"] != "ev1" {
		t.Errorf("body = %v", body)
	}
}

func TestHandleAccepting(t *testing.T) {
	be := stubBackend(t)
	be.JSON(http.MethodPut, "/questionnaires/accepting-responses/ev1", http.StatusOK, map[string]string{"message": "ok"})
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()

	req := testutil.HTMX(idReq(testutil.NewFormRequest("/dashboard/events/ev1/questionnaire/accepting", url.Values{"accepting": {"true"}}, admin)))
	rec := testutil.Serve(t, h.HandleAccepting, req)

	rec.AssertStatus(t, http.StatusOK)
	put, ok := be.Last(http.MethodPut, "/questionnaires/accepting-responses/ev1")
	if !ok {
		t.Fatal("toggle not sent")
	}
	var body map[string]bool
	put.DecodeJSON(t, &body)
	if !body["acceptingResponses"] {
		t.Errorf("body = %v", body)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "accepting responses") {
		t.Errorf("HX-Trigger = %q", rec.Header().Get("HX-Trigger"))
	}
}

func TestHandleAccepting_BadFlag(t *testing.T) {
	be := stubBackend(t)
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()

	req := idReq(testutil.NewFormRequest("/dashboard/events/ev1/questionnaire/accepting", url.Values{"accepting": {"maybe"}}, admin))
	testutil.Serve(t, h.HandleAccepting, req)

	if n := be.Count(http.MethodPut, "/questionnaires/accepting-responses/ev1"); n != 0 {
		t.Errorf("toggle sent %d times for a bad flag", n)
	}
}

func TestValidateSelection_UnknownTraitCountsAsOneBucket(t *testing.T) {
	offered := []models.Question{}
	ids := []string{}
	for i := 0; i < 6; i++ {
		id := fmt.Sprintf("u%d", i)
		offered = append(offered, models.Question{ID: id})
		ids = append(ids, id)
	}
	res := validateSelection(offered, ids)
	if !res.HasErrors() || !strings.Contains(res.First(), UnknownTrait) {
		t.Errorf("res = %q", res.First())
	}
}
