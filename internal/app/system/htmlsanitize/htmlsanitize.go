// internal/app/system/htmlsanitize/htmlsanitize.go
//
// Package htmlsanitize makes backend-supplied text (event descriptions,
// comments, feedback) safe to render. Rich text is filtered through a
// bluemonday UGC policy; plain text is escaped and its newlines kept.
package htmlsanitize

import (
	"html"
	"html/template"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
	stripOnce  sync.Once
	strict     *bluemonday.Policy
)

func ugc() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowElements("u", "s", "mark")
		p.AllowAttrs("class").OnElements("table", "tr", "td", "th", "span", "p")
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		policy = p
	})
	return policy
}

func strictPolicy() *bluemonday.Policy {
	stripOnce.Do(func() { strict = bluemonday.StrictPolicy() })
	return strict
}

var tagPattern = regexp.MustCompile(`<[a-zA-Z/!][^>]*>`)

// Sanitize removes scripts, event handlers and unsafe URLs from s.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugc().Sanitize(s)
}

// SanitizeToHTML is Sanitize typed for templates.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// StripTags returns s with every tag removed and entities decoded.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return html.UnescapeString(strictPolicy().Sanitize(s))
}

// IsPlainText reports whether s contains no markup. A lone "<" or ">" as in
// "5 < 10" is plain text.
func IsPlainText(s string) bool {
	return !tagPattern.MatchString(s)
}

// PlainTextToHTML escapes s and turns newlines into <br>.
func PlainTextToHTML(s string) template.HTML {
	if s == "" {
		return ""
	}
	esc := template.HTMLEscapeString(s)
	esc = strings.ReplaceAll(esc, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(esc, "\n", "<br>"))
}

// PrepareForDisplay renders s safely whether it is plain text or HTML.
func PrepareForDisplay(s string) template.HTML {
	if IsPlainText(s) {
		return PlainTextToHTML(s)
	}
	return SanitizeToHTML(s)
}

// Excerpt returns at most n runes of the plain text of s, with an ellipsis
// when truncated.
func Excerpt(s string, n int) string {
	txt := strings.Join(strings.Fields(StripTags(s)), " ")
	r := []rune(txt)
	if n <= 0 || len(r) <= n {
		return txt
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
