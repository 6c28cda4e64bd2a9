package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AyurTrace/herb_trace_app/internal/apperrors"
	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
	portssvc "github.com/AyurTrace/herb_trace_app/internal/core/ports/services"
	"github.com/AyurTrace/herb_trace_app/internal/dto"
	"github.com/AyurTrace/herb_trace_app/internal/middleware"
)

// batchHandler handles HTTP requests related to herb batches.
type batchHandler struct {
	batchService portssvc.BatchSvcFacade
	userService  portssvc.UserReaderSvc
}

// newBatchHandler creates a new batchHandler.
func newBatchHandler(bs portssvc.BatchSvcFacade, us portssvc.UserReaderSvc) *batchHandler {
	return &batchHandler{
		batchService: bs,
		userService:  us,
	}
}

// registerBatchRoutes registers routes related to batches.
func registerBatchRoutes(rg *gin.RouterGroup, batchService portssvc.BatchSvcFacade, userService portssvc.UserReaderSvc) {
	h := newBatchHandler(batchService, userService)

	batches := rg.Group("/batches")
	{
		batches.POST("", middleware.RequireRoles(domain.RoleFarmer), h.registerBatch)
		batches.GET("", h.listBatches)
		batches.GET("/mine", middleware.RequireRoles(domain.RoleFarmer), h.listMyBatches)
		batches.GET("/:id", h.getBatch)
		batches.PATCH("/:id/status", middleware.RequireRoles(domain.RoleDistributor), h.transitionBatch)
		batches.POST("/:id/lab-report", middleware.RequireRoles(domain.RoleDistributor), h.attachLabReport)
		batches.POST("/:id/transfer", middleware.RequireRoles(domain.RoleDistributor), h.transferBatch)
	}
}

// actingUser resolves the authenticated user from the directory. Services take
// the full domain.User so role checks happen against stored state, not just
// token claims.
func (h *batchHandler) actingUser(c *gin.Context) (*domain.User, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to load acting user", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return user, true
}

// registerBatch godoc
// @Summary Register a new herb batch
// @Description Registers a harvest as a new batch in pending status, appends the creation ledger entry and opens a provisional payment
// @Tags batches
// @Accept  json
// @Produce  json
// @Param   batch body dto.RegisterBatchRequest true "Batch details"
// @Success 201 {object} dto.BatchResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Only farmers may register batches"
// @Failure 500 {object} map[string]string "Failed to register batch"
// @Security BearerAuth
// @Router /batches [post]
func (h *batchHandler) registerBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	farmer, ok := h.actingUser(c)
	if !ok {
		return
	}

	logger.Info("Received request to register batch", slog.String("herb_type", req.HerbType))

	newBatch, err := h.batchService.RegisterBatch(c.Request.Context(), req, *farmer)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error registering batch", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to register batch")
			c.JSON(http.StatusForbidden, gin.H{"error": "Only farmers may register batches"})
		} else {
			logger.Error("Failed to register batch in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register batch"})
		}
		return
	}

	logger.Info("Batch registered successfully", slog.String("batch_id", newBatch.BatchID))
	c.JSON(http.StatusCreated, dto.ToBatchResponse(newBatch))
}

// getBatch godoc
// @Summary Get a batch by ID
// @Description Retrieves details for a specific batch by its batch ID
// @Tags batches
// @Produce  json
// @Param   id path string true "Batch ID"
// @Success 200 {object} dto.BatchResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Batch not found"
// @Failure 500 {object} map[string]string "Failed to retrieve batch"
// @Security BearerAuth
// @Router /batches/{id} [get]
func (h *batchHandler) getBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("id")

	logger = logger.With(slog.String("target_batch_id", batchID))
	logger.Info("Received request to get batch")

	batch, err := h.batchService.GetBatchByID(c.Request.Context(), batchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Batch not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Batch not found"})
		} else {
			logger.Error("Failed to get batch from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve batch"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBatchResponse(batch))
}

// listBatches godoc
// @Summary List batches
// @Description Retrieves batches, optionally filtered by status
// @Tags batches
// @Produce  json
// @Param   status query string false "Filter by status (pending, verified, rejected)"
// @Success 200 {object} dto.ListBatchesResponse
// @Failure 400 {object} map[string]string "Unknown status filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list batches"
// @Security BearerAuth
// @Router /batches [get]
func (h *batchHandler) listBatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	status := domain.BatchStatus(c.Query("status"))
	if status != "" && !status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter"})
		return
	}

	batches, err := h.batchService.ListBatchesByStatus(c.Request.Context(), status)
	if err != nil {
		logger.Error("Failed to list batches", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list batches"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBatchesResponse(batches))
}

// listMyBatches godoc
// @Summary List the logged-in farmer's batches
// @Description Retrieves batches registered by the logged-in farmer, newest first
// @Tags batches
// @Produce  json
// @Success 200 {object} dto.ListBatchesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list batches"
// @Security BearerAuth
// @Router /batches/mine [get]
func (h *batchHandler) listMyBatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	batches, err := h.batchService.ListBatchesByFarmer(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list farmer batches", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list batches"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBatchesResponse(batches))
}

// transitionBatch godoc
// @Summary Verify or reject a pending batch
// @Description Moves a pending batch to verified or rejected. Both outcomes are terminal.
// @Tags batches
// @Accept  json
// @Produce  json
// @Param   id path string true "Batch ID"
// @Param   transition body dto.TransitionBatchRequest true "Target status and details"
// @Success 200 {object} dto.BatchResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Only distributors may verify batches"
// @Failure 404 {object} map[string]string "Batch not found"
// @Failure 409 {object} map[string]string "Batch is not pending"
// @Failure 500 {object} map[string]string "Failed to update batch"
// @Security BearerAuth
// @Router /batches/{id}/status [patch]
func (h *batchHandler) transitionBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("id")

	var req dto.TransitionBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransitionBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	verifier, ok := h.actingUser(c)
	if !ok {
		return
	}

	logger = logger.With(slog.String("target_batch_id", batchID), slog.String("target_status", req.Status))
	logger.Info("Received request to transition batch")

	batch, err := h.batchService.TransitionBatch(c.Request.Context(), batchID, req, *verifier)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error transitioning batch", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only distributors may verify batches"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Batch not found"})
		case errors.Is(err, apperrors.ErrInvalidStatus):
			logger.Warn("Batch not in a transitionable state")
			c.JSON(http.StatusConflict, gin.H{"error": "Batch has already been verified or rejected"})
		default:
			logger.Error("Failed to transition batch in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update batch"})
		}
		return
	}

	logger.Info("Batch transitioned successfully", slog.String("new_status", string(batch.Status)))
	c.JSON(http.StatusOK, dto.ToBatchResponse(batch))
}

// attachLabReport godoc
// @Summary Attach a lab report to a verified batch
// @Description Adds or replaces the lab report summary on an already verified batch
// @Tags batches
// @Accept  json
// @Produce  json
// @Param   id path string true "Batch ID"
// @Param   report body dto.AttachLabReportRequest true "Lab report summary"
// @Success 200 {object} dto.BatchResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Batch not found"
// @Failure 409 {object} map[string]string "Batch is not verified"
// @Failure 500 {object} map[string]string "Failed to attach lab report"
// @Security BearerAuth
// @Router /batches/{id}/lab-report [post]
func (h *batchHandler) attachLabReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("id")

	var req dto.AttachLabReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AttachLabReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	verifier, ok := h.actingUser(c)
	if !ok {
		return
	}

	batch, err := h.batchService.AttachLabReport(c.Request.Context(), batchID, req.Summary, *verifier)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Batch not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only distributors may attach lab reports"})
		case errors.Is(err, apperrors.ErrInvalidStatus):
			c.JSON(http.StatusConflict, gin.H{"error": "Lab reports can only be attached to verified batches"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to attach lab report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach lab report"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBatchResponse(batch))
}

// transferBatch godoc
// @Summary Record a custody transfer for a batch
// @Description Appends a transfer ledger entry for the batch without changing its status
// @Tags batches
// @Accept  json
// @Produce  json
// @Param   id path string true "Batch ID"
// @Param   transfer body dto.TransferBatchRequest true "Transfer details"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Only distributors may transfer batches"
// @Failure 404 {object} map[string]string "Batch not found"
// @Failure 500 {object} map[string]string "Failed to record transfer"
// @Security BearerAuth
// @Router /batches/{id}/transfer [post]
func (h *batchHandler) transferBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("id")

	var req dto.TransferBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransferBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := h.actingUser(c)
	if !ok {
		return
	}

	batch, err := h.batchService.TransferBatch(c.Request.Context(), batchID, req, *actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Batch not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only distributors may transfer batches"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record transfer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record transfer"})
		}
		return
	}

	logger.Info("Batch transfer recorded", slog.String("batch_id", batch.BatchID))
	c.JSON(http.StatusOK, dto.ToBatchResponse(batch))
}
