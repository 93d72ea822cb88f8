// Package web renderiza las páginas HTML del sitio a partir de templates embebidos.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"pet-adoption/internal/platform/flash"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page es lo que recibe cada template. Data depende de la página.
type Page struct {
	Title string
	Flash *flash.Notice
	Admin bool
	Data  any
}

type Renderer struct {
	pages map[string]*template.Template
}

var pageNames = []string{"index", "adopt", "login", "dashboard", "notfound"}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"uploadURL": func(ref string) string {
			if ref == "" {
				return ""
			}
			return "/uploads/" + ref
		},
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render consume el flash pendiente y escribe la página. Renderiza a buffer primero
// para no mandar un 200 a medias si el template falla.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, page Page) error {
	t, ok := rd.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	if n, ok := flash.ReadAndClear(w, r); ok {
		page.Flash = &n
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
