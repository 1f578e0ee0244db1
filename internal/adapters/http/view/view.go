// Package view renders the site's HTML pages from embedded templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names.
const (
	Home       = "home"
	About      = "about"
	Experience = "experience"
	Skills     = "skills"
	Projects   = "projects"
	Contact    = "contact"
	Feedback   = "feedback"
	Guestbook  = "guest"
	Thanks     = "thanks"
	Error      = "error"
)

var pageTitles = map[string]string{
	Home:       "Home",
	About:      "About",
	Experience: "Experience",
	Skills:     "Skills",
	Projects:   "Projects",
	Contact:    "Contact",
	Feedback:   "Feedback",
	Guestbook:  "Guestbook",
	Thanks:     "Thanks",
	Error:      "Error",
}

// Data is the value passed to every page template.
type Data struct {
	Title     string
	Error     string
	Name      string
	Email     string
	Comment   string
	ShowEmail bool
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page against the shared layout.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageTitles))}
	for name := range pageTitles {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %q: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// MustNew is New that panics on error. Templates are embedded, so a failure
// here is a build defect.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Has reports whether a page exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Render executes the page into a buffer and writes it with status. Nothing
// is written when execution fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data Data) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	if data.Title == "" {
		data.Title = pageTitles[name]
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render page %q: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}
