// Package templates holds the embedded HTML views. Every page is a
// standalone template sharing the "top"/"bottom" chrome from layout.html.
package templates

import (
	"embed"
	"html/template"
	"time"
)

//go:embed *.html
var files embed.FS

// New parses every embedded view into one template set. Pages are
// executed by file name.
func New() *template.Template {
	funcs := template.FuncMap{
		"date": func(t time.Time) string {
			return t.Format("02/01/2006")
		},
		"dateptr": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("02/01/2006")
		},
		"dateinput": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
	}
	return template.Must(template.New("biblioapp").Funcs(funcs).ParseFS(files, "*.html"))
}
