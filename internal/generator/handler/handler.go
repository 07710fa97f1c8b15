package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"dummygen/internal/generator/format"
	"dummygen/internal/generator/service"
	dErrors "dummygen/pkg/domain-errors"
	"dummygen/pkg/platform/httputil"
	"dummygen/pkg/requestcontext"
)

// Service defines the interface for batch generation.
type Service interface {
	Generate(ctx context.Context, req service.GenerateRequest) (*service.Result, error)
}

// Handler wires the generate endpoint to the generator service.
type Handler struct {
	service    Service
	logger     *slog.Logger
	maxRecords int
}

// New constructs a generate handler. maxRecords bounds count per request.
func New(svc Service, logger *slog.Logger, maxRecords int) *Handler {
	return &Handler{
		service:    svc,
		logger:     logger,
		maxRecords: maxRecords,
	}
}

// Register mounts generation endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/generate", h.HandleGenerate)
}

// HandleGenerate handles POST /generate requests.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[GenerateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if h.maxRecords > 0 && *req.Count > h.maxRecords {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("count must be between 1 and %d", h.maxRecords)))
		return
	}

	result, err := h.service.Generate(ctx, service.GenerateRequest{
		Schema: req.ParsedSchema(),
		Count:  *req.Count,
		Seed:   req.Seed,
		Strict: req.StrictConstraints,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "generation failed",
			"request_id", requestID,
			"error", err,
		)
		var fe *service.FieldError
		if errors.As(err, &fe) {
			err = dErrors.New(dErrors.CodeOf(err), err.Error())
		}
		httputil.WriteError(w, err)
		return
	}

	f := req.ParsedFormat()
	h.logger.InfoContext(ctx, "generate request served",
		"request_id", requestID,
		"count", len(result.Records),
		"format", f,
		"download", req.Download,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if f == format.JSON && !req.Download {
		httputil.WriteJSON(w, http.StatusOK, FromRecords(result.Records))
		return
	}

	// Attachments are rendered fully before any header is written so an
	// encoding failure still produces a clean error response.
	var buf bytes.Buffer
	if err := format.Write(&buf, f, result.Records); err != nil {
		h.logger.ErrorContext(ctx, "failed to encode records",
			"request_id", requestID,
			"format", f,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode records"))
		return
	}
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", f.Filename()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
