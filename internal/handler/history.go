package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vaultpass/passgen/internal/middleware"
	"github.com/vaultpass/passgen/internal/service"
)

// HistoryHandler serves recent generation records.
type HistoryHandler struct {
	service *service.GeneratorService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(svc *service.GeneratorService) *HistoryHandler {
	return &HistoryHandler{service: svc}
}

// HandleList handles GET /api/v1/history?limit=N requests.
func (h *HistoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse("limit must be an integer"))
			return
		}
		limit = n
	}

	resp, err := h.service.History(r.Context(), limit)
	if err != nil {
		if errors.Is(err, service.ErrHistoryUnavailable) {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse(err.Error()))
			return
		}
		client, _ := middleware.ClientFromContext(r.Context())
		slog.Error("listing history failed", "client", client, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
