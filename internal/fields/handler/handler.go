package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dummygen/internal/fields"
	"dummygen/pkg/platform/httputil"
	"dummygen/pkg/requestcontext"
)

// Catalog lists the supported field types.
type Catalog interface {
	ListFields() fields.Metadata
}

// Handler serves the field catalog.
type Handler struct {
	catalog Catalog
	logger  *slog.Logger
}

// New constructs a field catalog handler.
func New(catalog Catalog, logger *slog.Logger) *Handler {
	return &Handler{catalog: catalog, logger: logger}
}

// Register mounts field endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/fields", h.HandleListFields)
}

// HandleListFields handles GET /fields.
func (h *Handler) HandleListFields(w http.ResponseWriter, r *http.Request) {
	meta := h.catalog.ListFields()
	h.logger.DebugContext(r.Context(), "field catalog listed",
		"request_id", requestcontext.RequestID(r.Context()),
		"fields", len(meta.Fields),
	)
	httputil.WriteJSON(w, http.StatusOK, meta)
}
