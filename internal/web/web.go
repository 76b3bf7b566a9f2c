// Package web renders the navigation shell pages.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/bz-technologies/helpdesk/internal/markup"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages served by the shell.
const (
	PageDashboard = "dashboard"
	PageNewTicket = "new_ticket"
	PageTickets   = "tickets"
	PageChat      = "chat"
)

var pages = []string{PageDashboard, PageNewTicket, PageTickets, PageChat}

var funcs = template.FuncMap{
	"bold": markup.Render,
	"date": func(t time.Time) string { return t.Format("02/01/2006") },
}

// Renderer executes the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page together with the layout.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Render writes page with data.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return tmpl.ExecuteTemplate(w, "layout.html", data)
}
