// Package view renders server-side pages from embedded html/template files.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

//go:embed templates/*.html
var files embed.FS

type Templates struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"val":     display,
	"inputDT": inputDateTime,
	"is":      sameID,
}

// New parses every page against the shared layout.
func New() (*Templates, error) {
	names, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		return nil, err
	}
	t := &Templates{pages: make(map[string]*template.Template)}
	for _, name := range names {
		base := strings.TrimSuffix(path.Base(name), ".html")
		if base == "layout" {
			continue
		}
		page, err := template.New(base).Funcs(funcs).ParseFS(files, "templates/layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		t.pages[base] = page
	}
	return t, nil
}

// Render executes the named page into a buffer first so a template error
// never leaves a half-written response.
func (t *Templates) Render(w http.ResponseWriter, status int, name string, data map[string]any) error {
	page, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("view: no page %q", name)
	}
	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("view %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// display formats a possibly-NULL value for a table cell or input.
func display(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case *int64:
		if x == nil {
			return ""
		}
		return fmt.Sprint(*x)
	case float64:
		return fmt.Sprintf("%.2f", x)
	default:
		return fmt.Sprint(x)
	}
}

// inputDateTime turns a stored "2024-01-05 10:30" into datetime-local form.
func inputDateTime(v any) string {
	return strings.Replace(display(v), " ", "T", 1)
}

// sameID compares a stored reference (possibly nil) with a candidate id.
func sameID(ref any, id int64) bool {
	switch x := ref.(type) {
	case *int64:
		return x != nil && *x == id
	case int64:
		return x == id
	}
	return false
}
