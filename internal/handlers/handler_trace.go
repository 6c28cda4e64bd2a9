package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AyurTrace/herb_trace_app/internal/apperrors"
	portssvc "github.com/AyurTrace/herb_trace_app/internal/core/ports/services"
	"github.com/AyurTrace/herb_trace_app/internal/dto"
	"github.com/AyurTrace/herb_trace_app/internal/middleware"
)

// traceHandler serves the consumer-facing custody chain view.
type traceHandler struct {
	traceService portssvc.TraceSvc
}

func newTraceHandler(ts portssvc.TraceSvc) *traceHandler {
	return &traceHandler{traceService: ts}
}

// registerTraceRoutes registers routes for the traceability view.
func registerTraceRoutes(rg *gin.RouterGroup, traceService portssvc.TraceSvc) {
	h := newTraceHandler(traceService)

	rg.GET("/trace/:id", h.traceBatch)
}

// traceBatch godoc
// @Summary Trace a batch from farm to retail
// @Description Rebuilds the full custody chain for a batch ID, the same lookup a QR code scan performs
// @Tags trace
// @Produce  json
// @Param   id path string true "Batch ID"
// @Success 200 {object} dto.TraceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Batch not found"
// @Failure 500 {object} map[string]string "Failed to trace batch"
// @Security BearerAuth
// @Router /trace/{id} [get]
func (h *traceHandler) traceBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("id")

	batch, points, err := h.traceService.TraceBatch(c.Request.Context(), batchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Batch not found for trace", slog.String("batch_id", batchID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Batch not found"})
			return
		}
		logger.Error("Failed to trace batch", slog.String("batch_id", batchID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to trace batch"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTraceResponse(batch, points))
}
