package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/eventdash/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	if got := htmlsanitize.Sanitize("Bring water!"); got != "Bring water!" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestSanitize_SafeHTML(t *testing.T) {
	input := "<p><strong>Bold</strong> and <em>italic</em></p>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected safe HTML preserved, got %q", got)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	got := htmlsanitize.Sanitize("<p>Hello</p><script>alert('xss')</script>")
	if got != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesHandlersAndJavascriptHref(t *testing.T) {
	for _, input := range []string{
		`<a href="javascript:alert('xss')">Click</a>`,
		`<img src="x.png" onerror="alert(1)">`,
	} {
		got := htmlsanitize.Sanitize(input)
		if strings.Contains(got, "javascript:") || strings.Contains(got, "onerror") {
			t.Errorf("Sanitize(%q) = %q", input, got)
		}
	}
}

func TestSanitize_LinksGetNofollow(t *testing.T) {
	got := htmlsanitize.Sanitize(`<a href="https://example.com">Map</a>`)
	if !strings.Contains(got, "https://example.com") || !strings.Contains(got, "nofollow") {
		t.Errorf("got %q", got)
	}
}

func TestIsPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"Hello", true},
		{"5 < 10", true},
		{"5 > 3", true},
		{"<p>Hello</p>", false},
		{"a<br/>b", false},
	}
	for _, tt := range tests {
		if got := htmlsanitize.IsPlainText(tt.in); got != tt.want {
			t.Errorf("IsPlainText(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPlainTextToHTML(t *testing.T) {
	got := string(htmlsanitize.PlainTextToHTML("Line 1\nA & <b>"))
	if got != "Line 1<br>A &amp; &lt;b&gt;" {
		t.Errorf("got %q", got)
	}
}

func TestPrepareForDisplay(t *testing.T) {
	if got := string(htmlsanitize.PrepareForDisplay("Line 1\nLine 2")); got != "Line 1<br>Line 2" {
		t.Errorf("plain text = %q", got)
	}
	got := string(htmlsanitize.PrepareForDisplay("<p>Hi</p><script>x()</script>"))
	if got != "<p>Hi</p>" {
		t.Errorf("html = %q", got)
	}
}

func TestStripTagsAndExcerpt(t *testing.T) {
	if got := htmlsanitize.StripTags("<p>Fish &amp; chips</p>"); got != "Fish & chips" {
		t.Errorf("StripTags = %q", got)
	}
	if got := htmlsanitize.Excerpt("<p>one two three</p>", 7); got != "one two…" {
		t.Errorf("Excerpt = %q", got)
	}
	if got := htmlsanitize.Excerpt("short", 50); got != "short" {
		t.Errorf("Excerpt short = %q", got)
	}
}
