// Package web holds the server-rendered pages.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names.
const (
	WelcomePage = "welcome.html"
	CatalogPage = "catalog.html"
	ViewerPage  = "viewer.html"
	ManagePage  = "manage.html"
	ScanPage    = "scan.html"
)

func Funcs() template.FuncMap {
	return template.FuncMap{
		"title": title,
		"join":  strings.Join,
		"isYes": func(v string) bool { return v == "yes" },
		"dict":  dict,
	}
}

// title builds a Caser per call; a Caser must not be shared between goroutines.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

// dict builds a map from alternating keys and values for sub-templates.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// Templates parses every embedded page.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
}
