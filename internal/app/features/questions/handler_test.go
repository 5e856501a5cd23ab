package questions

import (
	"net/http"
	"net/url"
	"testing"

	uierrors "github.com/dalemusser/eventdash/internal/app/features/errors"
	"github.com/dalemusser/eventdash/internal/app/system/collection"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/eventdash/internal/testutil"
	"go.uber.org/zap"
)

func stubBackend(t *testing.T) *testutil.Backend {
	t.Helper()
	be := testutil.NewBackend(t)
	be.JSON(http.MethodGet, "/traits/", http.StatusOK, []models.Trait{
		{ID: "tr1", Trait: "Openness"},
		{ID: "tr2", Trait: "Empathy"},
	})
	be.JSON(http.MethodGet, "/types/", http.StatusOK, []models.EventType{
		{ID: "ty1", EventType: "Sports"},
		{ID: "ty2", EventType: "Music"},
	})
	// Questions arrive with bare ids and one populated trait.
	be.JSON(http.MethodGet, "/questions/", http.StatusOK, []map[string]any{
		{"_id": "q1", "question": "Did you try something new?", "traitId": "tr1", "typeId": "ty1"},
		{"_id": "q2", "question": "Did you help a teammate?", "traitId": map[string]string{"_id": "tr2", "trait": "Empathy"}, "typeId": "ty2"},
		{"_id": "q3", "question": "Orphan", "traitId": nil, "typeId": "ty1"},
	})
	return be
}

func newTestHandler(t *testing.T, be *testutil.Backend) *Handler {
	t.Helper()
	logger := zap.NewNop()
	return NewHandler(be.Client(t), testutil.NewRegistry(), testutil.NewSessionManager(t),
		uierrors.NewErrorLogger(logger), screens.DefaultSettings(), logger)
}

func mount(t *testing.T, h *Handler, user testutil.TestUser) *board {
	t.Helper()
	testutil.Serve(t, h.ServeQuestions, testutil.NewAuthenticatedRequest(http.MethodGet, basePath, user))
	b, ok := h.mounted(user.SessionID)
	if !ok {
		t.Fatal("questions board not mounted")
	}
	return b
}

func TestServeQuestions_MountFetchesAllThreeAndNamesRefs(t *testing.T) {
	be := stubBackend(t)
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()

	b := mount(t, h, admin)

	for _, p := range []string{"/traits/", "/types/", "/questions/"} {
		if n := be.Count(http.MethodGet, p); n != 1 {
			t.Errorf("%s calls = %d, want 1", p, n)
		}
	}
	all := b.bank.All()
	if len(all) != 3 {
		t.Fatalf("bank = %d questions", len(all))
	}
	if all[0].TraitID.Trait != "Openness" || all[0].TypeID.Name != "Sports" {
		t.Errorf("q1 not resolved: %+v", all[0])
	}

	data := h.build(viewdata.BaseVM{}, b)
	keys := map[string]int{}
	for _, g := range data.Groups {
		keys[g.Key] = len(g.Rows)
	}
	if keys["Openness"] != 1 || keys["Empathy"] != 1 || keys[collection.UnknownGroup] != 1 {
		t.Errorf("groups = %v", keys)
	}
}

func TestServeTable_FiltersByTypeWithoutRefetch(t *testing.T) {
	be := stubBackend(t)
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()
	b := mount(t, h, admin)

	req := testutil.HTMX(testutil.NewAuthenticatedRequest(http.MethodGet, basePath+"/table?type=Sports&group=off", admin))
	testutil.Serve(t, h.ServeTable, req)

	if n := be.Count(http.MethodGet, "/questions/"); n != 1 {
		t.Errorf("partial refetched: calls = %d", n)
	}
	v := b.bank.View()
	if v.GroupBy || len(v.Filtered) != 2 {
		t.Errorf("groupBy=%v filtered=%d, want ungrouped Sports pair", v.GroupBy, len(v.Filtered))
	}
}

func TestHandleAddDraft(t *testing.T) {
	tests := []struct {
		name   string
		form   url.Values
		status int
		drafts int
	}{
		{"valid", url.Values{"question": {"New?"}, "trait": {"tr1"}, "type": {"ty2"}}, http.StatusOK, 1},
		{"blank question", url.Values{"question": {"  "}, "trait": {"tr1"}, "type": {"ty2"}}, http.StatusUnprocessableEntity, 0},
		{"missing trait", url.Values{"question": {"New?"}, "type": {"ty2"}}, http.StatusUnprocessableEntity, 0},
		{"unknown type", url.Values{"question": {"New?"}, "trait": {"tr1"}, "type": {"nope"}}, http.StatusUnprocessableEntity, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be := stubBackend(t)
			h := newTestHandler(t, be)
			admin := testutil.AdminUser()
			b := mount(t, h, admin)

			req := testutil.HTMX(testutil.NewFormRequest(basePath+"/pending", tt.form, admin))
			rec := testutil.Serve(t, h.HandleAddDraft, req)

			rec.AssertStatus(t, tt.status)
			if n := len(b.pending()); n != tt.drafts {
				t.Errorf("drafts = %d, want %d", n, tt.drafts)
			}
			if len(be.Requests()) != 3 {
				t.Errorf("draft changes must stay local, backend saw %d requests", len(be.Requests()))
			}
		})
	}
}

func TestHandleRemoveDraft(t *testing.T) {
	be := stubBackend(t)
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()
	b := mount(t, h, admin)
	b.drafts = []models.NewQuestion{
		{Question: "a", TraitID: "tr1", TypeID: "ty1"},
		{Question: "b", TraitID: "tr1", TypeID: "ty1"},
	}

	req := testutil.WithChiURLParam(testutil.HTMX(testutil.NewFormRequest(basePath+"/pending/0/remove", url.Values{}, admin)), "n", "0")
	rec := testutil.Serve(t, h.HandleRemoveDraft, req)
	rec.AssertStatus(t, http.StatusOK)
	if d := b.pending(); len(d) != 1 || d[0].Question != "b" {
		t.Errorf("drafts = %+v", d)
	}

	req = testutil.WithChiURLParam(testutil.HTMX(testutil.NewFormRequest(basePath+"/pending/5/remove", url.Values{}, admin)), "n", "5")
	rec = testutil.Serve(t, h.HandleRemoveDraft, req)
	rec.AssertStatus(t, http.StatusUnprocessableEntity)
}

func TestHandleBulkCreate_EmptyRejected(t *testing.T) {
	be := stubBackend(t)
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()
	mount(t, h, admin)

	rec := testutil.Serve(t, h.HandleBulkCreate, testutil.HTMX(testutil.NewFormRequest(basePath+"/bulk", url.Values{}, admin)))

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	if n := be.Count(http.MethodPost, "/questions/bulk-create-questions"); n != 0 {
		t.Errorf("bulk create called %d times", n)
	}
}

func TestHandleBulkCreate_AppendsLocallyAndClearsDrafts(t *testing.T) {
	be := stubBackend(t)
	be.JSON(http.MethodPost, "/questions/bulk-create-questions", http.StatusCreated, []map[string]any{
		{"_id": "q9", "question": "New?", "traitId": "tr2", "typeId": "ty2"},
	})
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()
	b := mount(t, h, admin)
	b.drafts = []models.NewQuestion{{Question: "New?", TraitID: "tr2", TypeID: "ty2"}}

	rec := testutil.Serve(t, h.HandleBulkCreate, testutil.NewFormRequest(basePath+"/bulk", url.Values{}, admin))

	rec.AssertRedirect(t, screens.Resume(basePath))
	testutil.Serve(t, h.ServeQuestions, testutil.NewAuthenticatedRequest(http.MethodGet, rec.Header().Get("Location"), admin))
	req, ok := be.Last(http.MethodPost, "/questions/bulk-create-questions")
	if !ok {
		t.Fatal("bulk create not sent")
	}
	var body struct {
		Questions []models.NewQuestion `json:"questions"`
	}
	req.DecodeJSON(t, &body)
	if len(body.Questions) != 1 || body.Questions[0].TraitID != "tr2" {
		t.Errorf("body = %+v", body)
	}
	if len(b.pending()) != 0 {
		t.Error("drafts should be cleared")
	}
	all := b.bank.All()
	if len(all) != 4 || all[3].TraitID.Trait != "Empathy" {
		t.Errorf("bank after append = %+v", all)
	}
	if n := be.Count(http.MethodGet, "/questions/"); n != 1 {
		t.Errorf("bulk create should not refetch, calls = %d", n)
	}
}

func TestHandleBulkCreate_FailureKeepsDrafts(t *testing.T) {
	be := stubBackend(t)
	be.Fail(http.MethodPost, "/questions/bulk-create-questions", http.StatusBadRequest, "Duplicate question")
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()
	b := mount(t, h, admin)
	b.drafts = []models.NewQuestion{{Question: "New?", TraitID: "tr2", TypeID: "ty2"}}

	rec := testutil.Serve(t, h.HandleBulkCreate, testutil.HTMX(testutil.NewFormRequest(basePath+"/bulk", url.Values{}, admin)))

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	if len(b.pending()) != 1 {
		t.Error("drafts must survive a failed submit")
	}
}
