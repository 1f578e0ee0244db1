package api

import (
	"errors"
	"net/http"

	"github.com/okian/folio/internal/adapters/http/view"
	service "github.com/okian/folio/internal/app"
	"github.com/okian/folio/internal/domain/model"
	"github.com/okian/folio/pkg/logger"
)

// GuestbookHandler handles the guestbook form.
type GuestbookHandler struct {
	deps     Dependencies
	renderer *view.Renderer
}

// NewGuestbookHandler creates a new guestbook handler.
func NewGuestbookHandler(deps Dependencies, renderer *view.Renderer) *GuestbookHandler {
	return &GuestbookHandler{deps: deps, renderer: renderer}
}

// HandleForm handles GET /guestbook.
func (h *GuestbookHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.renderer, http.StatusOK, view.Guestbook, view.Data{})
}

// HandleSubmit handles POST /guestbook. The submission is echoed back; it is
// only stored when the service persists the guestbook.
func (h *GuestbookHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	form := model.DecodeGuestbookForm(r.PostForm)
	data := view.Data{
		Name:      form.Name.Value,
		Email:     form.Email.Value,
		Comment:   form.Comment.Value,
		ShowEmail: true,
	}

	if _, err := h.deps.SubmitGuestbook(r.Context(), form); err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			data.Error = model.MissingFieldsMessage
			render(w, r, h.renderer, http.StatusUnprocessableEntity, view.Guestbook, data)
			return
		}
		logger.Get().Error(r.Context(), "guestbook submission failed", logger.Error(err))
		renderServerError(w, r, h.renderer)
		return
	}

	render(w, r, h.renderer, http.StatusOK, view.Thanks, data)
}
