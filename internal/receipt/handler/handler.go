package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"tally/internal/platform/metrics"
	"tally/internal/platform/middleware"
	dErrors "tally/pkg/domain-errors"
)

// Service defines the receipt operations the HTTP layer needs.
type Service interface {
	Process(ctx context.Context, payload map[string]any) (string, error)
	Points(ctx context.Context, id string) (int, error)
}

// Handler serves the receipt endpoints.
type Handler struct {
	logger   *slog.Logger
	receipts Service
	metrics  *metrics.Metrics
}

// New creates a receipt Handler.
func New(receipts Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:   logger,
		receipts: receipts,
		metrics:  m,
	}
}

// Register mounts the receipt routes behind the shared middleware chain.
func (h *Handler) Register(r chi.Router) {
	receiptRouter := chi.NewRouter()
	receiptRouter.Use(middleware.Recovery(h.logger))
	receiptRouter.Use(middleware.RequestID)
	receiptRouter.Use(middleware.Logger(h.logger))
	if h.metrics != nil {
		receiptRouter.Use(metrics.LatencyMiddleware(h.metrics))
	}
	receiptRouter.Post("/receipts/process", h.handleProcess)
	receiptRouter.Get("/receipts/{id}/points", h.handlePoints)

	r.Mount("/", receiptRouter)
}

// handleProcess accepts a receipt submission and responds with the identifier
// its content is stored under.
func (h *Handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !isJSONRequest(r) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Request must be JSON"})
		return
	}

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.WarnContext(ctx, "undecodable receipt body",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Request must be JSON"})
		return
	}

	id, err := h.receipts.Process(ctx, payload)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeBadRequest) {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "The receipt is invalid. " + err.Error(),
			})
			return
		}
		h.logger.ErrorContext(ctx, "failed to process receipt",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// handlePoints returns the score for a previously submitted receipt.
func (h *Handler) handlePoints(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	points, err := h.receipts.Points(ctx, id)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "No receipt found for that ID."})
			return
		}
		h.logger.ErrorContext(ctx, "failed to score receipt",
			"request_id", middleware.GetRequestID(ctx),
			"receipt_id", id,
			"error", err.Error(),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"points": points})
}

// isJSONRequest mirrors the transport contract: submissions must declare a
// JSON media type or they are rejected before the body is read.
func isJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
