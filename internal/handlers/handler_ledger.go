package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AyurTrace/herb_trace_app/internal/apperrors"
	portssvc "github.com/AyurTrace/herb_trace_app/internal/core/ports/services"
	"github.com/AyurTrace/herb_trace_app/internal/dto"
	"github.com/AyurTrace/herb_trace_app/internal/middleware"
)

// ledgerHandler handles HTTP requests for the transaction ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerReaderSvc
}

func newLedgerHandler(ls portssvc.LedgerReaderSvc) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers routes related to the ledger.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerReaderSvc) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("", h.listRecentEntries)
		ledger.GET("/batch/:id", h.listEntriesForBatch)
	}
}

// listRecentEntries godoc
// @Summary List recent ledger entries
// @Description Retrieves the most recent ledger entries across all batches, newest first
// @Tags ledger
// @Produce  json
// @Param   limit query int false "Limit number of results" default(50)
// @Success 200 {object} dto.ListLedgerEntriesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list ledger entries"
// @Security BearerAuth
// @Router /ledger [get]
func (h *ledgerHandler) listRecentEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}

	entries, err := h.ledgerService.ListRecentEntries(c.Request.Context(), limit)
	if err != nil {
		logger.Error("Failed to list ledger entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list ledger entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListLedgerEntriesResponse(entries))
}

// listEntriesForBatch godoc
// @Summary List ledger entries for a batch
// @Description Retrieves all ledger entries recorded for one batch in append order
// @Tags ledger
// @Produce  json
// @Param   id path string true "Batch ID"
// @Success 200 {object} dto.ListLedgerEntriesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Batch not found"
// @Failure 500 {object} map[string]string "Failed to list ledger entries"
// @Security BearerAuth
// @Router /ledger/batch/{id} [get]
func (h *ledgerHandler) listEntriesForBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("id")

	entries, err := h.ledgerService.ListEntriesForBatch(c.Request.Context(), batchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Batch not found"})
			return
		}
		logger.Error("Failed to list ledger entries for batch", slog.String("batch_id", batchID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list ledger entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListLedgerEntriesResponse(entries))
}
