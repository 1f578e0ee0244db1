package api

import (
	"errors"
	"net/http"

	"github.com/okian/folio/internal/adapters/http/view"
	service "github.com/okian/folio/internal/app"
	"github.com/okian/folio/internal/domain/model"
	"github.com/okian/folio/pkg/logger"
)

// FeedbackHandler handles the feedback form.
type FeedbackHandler struct {
	deps     Dependencies
	renderer *view.Renderer
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(deps Dependencies, renderer *view.Renderer) *FeedbackHandler {
	return &FeedbackHandler{deps: deps, renderer: renderer}
}

// HandleForm handles GET /feedback.
func (h *FeedbackHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.renderer, http.StatusOK, view.Feedback, view.Data{})
}

// HandleSubmit handles POST /feedback.
func (h *FeedbackHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	form := model.DecodeFeedbackForm(r.PostForm)

	if _, err := h.deps.SubmitFeedback(r.Context(), form); err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			render(w, r, h.renderer, http.StatusUnprocessableEntity, view.Feedback, view.Data{
				Error:   model.MissingFieldsMessage,
				Name:    form.Name.Value,
				Comment: form.Comment.Value,
			})
			return
		}
		logger.Get().Error(r.Context(), "feedback submission failed", logger.Error(err))
		renderServerError(w, r, h.renderer)
		return
	}

	render(w, r, h.renderer, http.StatusOK, view.Thanks, view.Data{
		Name:    form.Name.Value,
		Comment: form.Comment.Value,
	})
}
