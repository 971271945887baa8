// Package render turns todos into the HTML fragments htmx swaps into the page.
package render

import (
	"html/template"
	"io"
	"io/fs"

	"github.com/icdts/todoapp/internal/models"
)

const DefaultHTMXSrc = "https://unpkg.com/htmx.org@1.9.3"

type Renderer struct {
	tmpl    *template.Template
	htmxSrc string
}

type pageData struct {
	HTMXSrc string
}

// New parses every views/*.html template in fsys. htmxSrc is the script URL
// the page shell loads htmx from; empty means the public CDN.
func New(fsys fs.FS, htmxSrc string) (*Renderer, error) {
	tmpl, err := template.ParseFS(fsys, "views/*.html")
	if err != nil {
		return nil, err
	}
	if htmxSrc == "" {
		htmxSrc = DefaultHTMXSrc
	}
	return &Renderer{tmpl: tmpl, htmxSrc: htmxSrc}, nil
}

// Page writes the full document. Its body fetches the list fragment on load.
func (r *Renderer) Page(w io.Writer) error {
	return r.tmpl.ExecuteTemplate(w, "page", pageData{HTMXSrc: r.htmxSrc})
}

func (r *Renderer) List(w io.Writer, todos []models.Todo) error {
	return r.tmpl.ExecuteTemplate(w, "todo-list", todos)
}

func (r *Renderer) Item(w io.Writer, todo models.Todo) error {
	return r.tmpl.ExecuteTemplate(w, "todo-item", todo)
}
