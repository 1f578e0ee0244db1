// Package site serves the portfolio's static pages and assets.
package site

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/folio/internal/adapters/http/middleware"
	"github.com/okian/folio/internal/adapters/http/view"
	"github.com/okian/folio/pkg/logger"
)

// Error constants
var (
	ErrServe = errors.New("site serve failed")
)

// Static pages keyed by route path.
var pages = []struct {
	path string
	page string
}{
	{"/{$}", view.Home},
	{"/about", view.About},
	{"/experience", view.Experience},
	{"/skills", view.Skills},
	{"/projects", view.Projects},
	{"/contact", view.Contact},
}

// Register attaches the static pages and /static/ assets to mux.
func Register(_ context.Context, mux *http.ServeMux, renderer *view.Renderer) {
	if mux == nil {
		panic("mux is nil")
	}
	if renderer == nil {
		panic("renderer is nil")
	}

	for _, p := range pages {
		h := NewPageHandler(renderer, p.page)
		mux.HandleFunc("GET "+p.path, middleware.Wrap(h.HandlePage, p.page))
	}

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(FS())))
}

// PageHandler renders one fixed page.
type PageHandler struct {
	renderer *view.Renderer
	page     string
}

// NewPageHandler creates a handler for page.
func NewPageHandler(renderer *view.Renderer, page string) *PageHandler {
	return &PageHandler{renderer: renderer, page: page}
}

// HandlePage handles GET requests for the page.
func (h *PageHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, http.StatusOK, h.page, view.Data{}); err != nil {
		logger.Get().Error(r.Context(), "rendering page failed",
			logger.String("page", h.page),
			logger.Error(errors.Join(ErrServe, err)),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
