// Package web holds the server-rendered pages.
package web

import (
	"embed"
	"html/template"
	"strings"

	"github.com/limitless-club/booking/internal/thaidate"
)

//go:embed templates/*.html
var files embed.FS

// Funcs are the helpers available to every page.
var Funcs = template.FuncMap{
	"thaiDate": func(s string) string {
		t, err := thaidate.Parse(s)
		if err != nil {
			return s
		}
		return thaidate.Long(t)
	},
	"join": strings.Join,
}

// Templates parses every page. Names are the file names, e.g. "students.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files, "templates/*.html")
}
