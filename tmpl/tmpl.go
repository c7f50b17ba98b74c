// Package tmpl renders the server-side HTML pages from an embedded template
// set. Every page is a full document named after its file and shares the
// partials defined in base.html.
package tmpl

import (
	"embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/*.html
var files embed.FS

var templates = template.Must(template.ParseFS(files, "templates/*.html"))

// Page is the context shared by every rendered page.
type Page struct {
	Title string
	Flash string
	User  string
}

type Renderer struct {
	t *template.Template
}

func New() *Renderer {
	return &Renderer{t: templates}
}

func (rn *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := rn.t.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}

// NotFound renders the 404 page.
func (rn *Renderer) NotFound(w http.ResponseWriter, page Page) {
	page.Title = "Not Found"
	rn.Render(w, http.StatusNotFound, "notfound.html", struct{ Page }{page})
}

// ServerError logs err and renders a bare 500.
func (rn *Renderer) ServerError(w http.ResponseWriter, err error) {
	log.Printf("server error: %v", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
