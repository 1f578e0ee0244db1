package api

import (
	"html"
	"net/http"
	"strings"

	"github.com/okian/folio/pkg/logger"
)

// lineSeparator joins entries in the listing.
const lineSeparator = "<br>"

// UsersHandler lists stored entries.
type UsersHandler struct {
	deps Dependencies
}

// NewUsersHandler creates a new listing handler.
func NewUsersHandler(deps Dependencies) *UsersHandler {
	return &UsersHandler{deps: deps}
}

// HandleList handles GET /users. Each entry renders as "name (comment)" and
// entries are joined with <br>. No entries yields an empty body.
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.deps.ListEntries(r.Context())
	if err != nil {
		logger.Get().Error(r.Context(), "listing entries failed", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, html.EscapeString(e.Line()))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(strings.Join(lines, lineSeparator)))
}
