package wordcloud

import (
	"net/http"
	"testing"

	"github.com/dalemusser/eventdash/internal/app/system/htmlsanitize"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/eventdash/internal/testutil"
	"go.uber.org/zap"
)

func TestServeCloud_PassesTypeAndFetchesComments(t *testing.T) {
	be := testutil.NewBackend(t)
	be.JSON(http.MethodGet, "/types/", http.StatusOK, []models.EventType{{ID: "ty1", EventType: "Music"}})
	be.JSON(http.MethodGet, "/events", http.StatusOK, []models.Event{{ID: "ev1", Name: "Jazz Night"}})
	be.JSON(http.MethodGet, "/events/ev1/comments", http.StatusOK, []models.Comment{
		{Text: "Great music"}, {Text: "great vibes"},
	})
	h := NewHandler(be.Client(t), zap.NewNop())

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard/wordcloud?type=ty1&event=ev1", testutil.AdminUser())
	testutil.Serve(t, h.ServeCloud, req)

	ev, ok := be.Last(http.MethodGet, "/events")
	if !ok || ev.Query != "type=ty1" {
		t.Errorf("events query = %q", ev.Query)
	}
	if n := be.Count(http.MethodGet, "/events/ev1/comments"); n != 1 {
		t.Errorf("comments calls = %d", n)
	}
}

func TestServeCloud_NoEventSkipsComments(t *testing.T) {
	be := testutil.NewBackend(t)
	be.JSON(http.MethodGet, "/types/", http.StatusOK, []models.EventType{})
	be.JSON(http.MethodGet, "/events", http.StatusOK, []models.Event{})
	h := NewHandler(be.Client(t), zap.NewNop())

	testutil.Serve(t, h.ServeCloud, testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard/wordcloud", testutil.AdminUser()))

	for _, r := range be.Requests() {
		if r.Path != "/events" && r.Path != "/types/" {
			t.Errorf("unexpected backend call %s %s", r.Method, r.Path)
		}
	}
}

func TestWordsJSON(t *testing.T) {
	if got := (pageData{}).WordsJSON(); got != "[]" {
		t.Errorf("empty = %q", got)
	}
	texts := commentTexts([]models.Comment{{Text: "<p>Great music</p>"}})
	if texts[0] != htmlsanitize.StripTags("<p>Great music</p>") {
		t.Errorf("texts = %q", texts)
	}
}
