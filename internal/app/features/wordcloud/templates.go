// internal/app/features/wordcloud/templates.go
package wordcloud

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "wordcloud",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
