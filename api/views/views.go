package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names a renderable template.
type Page string

const (
	PageHome             Page = "home"
	PageHomePaid         Page = "home_paid"
	PageThanks           Page = "thanks"
	PageAdmin            Page = "admin"
	PageUnauthorized     Page = "unauthorized"
	PageIntake           Page = "intake"
	PagePaidConfirmation Page = "paid_confirmation"
	PageError            Page = "error"
)

var pages = []Page{
	PageHome,
	PageHomePaid,
	PageThanks,
	PageAdmin,
	PageUnauthorized,
	PageIntake,
	PagePaidConfirmation,
	PageError,
}

// Renderer executes the embedded page templates. Output is HTML-escaped by
// html/template.
type Renderer struct {
	templates map[Page]*template.Template
}

// New parses every page against the shared layout.
func New() (*Renderer, error) {
	templates := make(map[Page]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New(string(page)).ParseFS(templateFS, "templates/layout.html", fmt.Sprintf("templates/%s.html", page))
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		templates[page] = tmpl
	}
	return &Renderer{templates: templates}, nil
}

// Render writes page with the given status. The page is fully rendered before
// any byte reaches w.
func (r *Renderer) Render(w http.ResponseWriter, status int, page Page, data any) error {
	tmpl, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded stylesheet tree.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
