// Package api wires the site's form handlers and operational endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/okian/folio/internal/adapters/http/middleware"
	"github.com/okian/folio/internal/adapters/http/view"
	"github.com/okian/folio/internal/domain/model"
	"github.com/okian/folio/pkg/logger"
)

// maxFormBytes caps a form body.
const maxFormBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	SubmitFeedback(ctx context.Context, form model.FeedbackForm) (model.FeedbackEntry, error)
	SubmitGuestbook(ctx context.Context, form model.GuestbookForm) (bool, error)
	ListEntries(ctx context.Context) ([]model.FeedbackEntry, error)
	Ping(ctx context.Context) error
}

// Server wires HTTP routes for the forms and operational endpoints.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	feedbackHandler  *FeedbackHandler
	guestbookHandler *GuestbookHandler
	usersHandler     *UsersHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, renderer *view.Renderer) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(deps),
		statsHandler:     NewStatsHandler(statsProvider),
		feedbackHandler:  NewFeedbackHandler(deps, renderer),
		guestbookHandler: NewGuestbookHandler(deps, renderer),
		usersHandler:     NewUsersHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /feedback", middleware.Wrap(s.feedbackHandler.HandleForm, "feedback"))
	mux.HandleFunc("POST /feedback", middleware.Wrap(s.feedbackHandler.HandleSubmit, "feedback"))
	mux.HandleFunc("GET /guestbook", middleware.Wrap(s.guestbookHandler.HandleForm, "guestbook"))
	mux.HandleFunc("POST /guestbook", middleware.Wrap(s.guestbookHandler.HandleSubmit, "guestbook"))
	mux.HandleFunc("GET /users", middleware.Wrap(s.usersHandler.HandleList, "users"))

	mux.HandleFunc("GET /healthz", middleware.Wrap(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("GET /stats", middleware.Wrap(s.statsHandler.HandleStats, "stats"))
}

// parseForm reads a urlencoded or multipart body into r.PostForm. Bad
// escapes and bodies over maxFormBytes are ErrBadRequest.
func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return errors.Join(ErrBadRequest, err)
	}

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct != "multipart/form-data" {
		return nil
	}
	if err := r.ParseMultipartForm(maxFormBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return errors.Join(ErrBadRequest, err)
	}
	return nil
}

// render writes page and falls back to a plain 500 when the template fails.
func render(w http.ResponseWriter, r *http.Request, renderer *view.Renderer, status int, page string, data view.Data) {
	if err := renderer.Render(w, status, page, data); err != nil {
		logger.Get().Error(r.Context(), "rendering page failed",
			logger.String("page", page),
			logger.Error(errors.Join(ErrRender, err)),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// renderServerError shows the generic error page.
func renderServerError(w http.ResponseWriter, r *http.Request, renderer *view.Renderer) {
	render(w, r, renderer, http.StatusInternalServerError, view.Error, view.Data{Error: serverErrorMessage})
}

const serverErrorMessage = "We could not save your submission. Please try again later."

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
