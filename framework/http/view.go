package http

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// ViewEngine renders pages from a template filesystem. Every page is parsed
// together with the layout at construction; the layout executes the page's
// "content" block.
type ViewEngine struct {
	layout string
	pages  map[string]*template.Template
}

// NewViewEngine parses every *.html in fsys other than layout.
//
//	views, err := gohttp.NewViewEngine(resources.Views, "layout.html")
func NewViewEngine(fsys fs.FS, layout string) (*ViewEngine, error) {
	names, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, err
	}
	ve := &ViewEngine{layout: layout, pages: make(map[string]*template.Template)}
	for _, file := range names {
		if file == layout {
			continue
		}
		tmpl, err := template.ParseFS(fsys, layout, file)
		if err != nil {
			return nil, fmt.Errorf("view %s: %w", file, err)
		}
		ve.pages[strings.TrimSuffix(file, path.Ext(file))] = tmpl
	}
	return ve, nil
}

// Has reports whether a page exists.
func (ve *ViewEngine) Has(name string) bool {
	_, ok := ve.pages[name]
	return ok
}

// Render executes page name with data.
func (ve *ViewEngine) Render(name string, data any) (string, error) {
	tmpl, ok := ve.pages[name]
	if !ok {
		return "", fmt.Errorf("view %q not found", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, ve.layout, data); err != nil {
		return "", fmt.Errorf("view %s: %w", name, err)
	}
	return buf.String(), nil
}

// View renders page name to w with status.
//
//	views.View(w, http.StatusOK, "login", map[string]any{"Title": "Log in"})
func (ve *ViewEngine) View(w http.ResponseWriter, status int, name string, data any) {
	body, err := ve.Render(name, data)
	if err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	NewResponse(w).HTML(status, body)
}
