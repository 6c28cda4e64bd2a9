package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/AyurTrace/herb_trace_app/internal/apperrors"
	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
	"github.com/AyurTrace/herb_trace_app/internal/core/ports"
	portsrepo "github.com/AyurTrace/herb_trace_app/internal/core/ports/repositories"
	portssvc "github.com/AyurTrace/herb_trace_app/internal/core/ports/services"
	"github.com/AyurTrace/herb_trace_app/internal/dto"
	"github.com/AyurTrace/herb_trace_app/internal/middleware"
	"github.com/AyurTrace/herb_trace_app/internal/utils"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownHerbType  = fmt.Errorf("%w: herb type is not in the known set", apperrors.ErrValidation)
	ErrPriceNotPositive = fmt.Errorf("%w: unit price must be positive", apperrors.ErrValidation)
	ErrHarvestInFuture  = fmt.Errorf("%w: harvest date must not be in the future", apperrors.ErrValidation)
	ErrLocationMissing  = fmt.Errorf("%w: at least one location source is required", apperrors.ErrValidation)
	ErrReasonRequired   = fmt.Errorf("%w: rejection requires a reason", apperrors.ErrValidation)
	ErrNotVerifiedBatch = fmt.Errorf("%w: lab reports attach to verified batches only", apperrors.ErrValidation)
)

// maxIDAttempts bounds retries when the random 3-digit id suffix collides.
const maxIDAttempts = 5

// transferActionLabels maps a recipient role to the recorded action label.
var transferActionLabels = map[string]string{
	"distributor": "Transferred to Distributor",
	"retailer":    "Transferred to Retailer",
	"consumer":    "Transferred to Consumer",
}

// batchService is the single source of truth for batch records and the only
// component that changes a batch's status.
type batchService struct {
	batchRepo  portsrepo.BatchRepositoryFacade
	ledgerSvc  portssvc.LedgerWriterSvc
	paymentSvc portssvc.PaymentWriterSvc
	anchorer   ports.LedgerAnchorer
	idPrefix   string
	currency   string
}

// NewBatchService creates a new batch registry service.
func NewBatchService(
	batchRepo portsrepo.BatchRepositoryFacade,
	ledgerSvc portssvc.LedgerWriterSvc,
	paymentSvc portssvc.PaymentWriterSvc,
	anchorer ports.LedgerAnchorer,
	idPrefix string,
	currency string,
) portssvc.BatchSvcFacade {
	return &batchService{
		batchRepo:  batchRepo,
		ledgerSvc:  ledgerSvc,
		paymentSvc: paymentSvc,
		anchorer:   anchorer,
		idPrefix:   idPrefix,
		currency:   currency,
	}
}

var _ portssvc.BatchSvcFacade = (*batchService)(nil)

// RegisterBatch validates the submission, persists a new pending batch,
// appends the "Batch Created" ledger entry and opens the provisional
// payment. Validation fully precedes any store write, so a rejected
// submission leaves no partial state behind.
func (s *batchService) RegisterBatch(ctx context.Context, req dto.RegisterBatchRequest, farmer domain.User) (*domain.Batch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if farmer.Role != domain.RoleFarmer {
		return nil, apperrors.ErrForbidden
	}
	if !domain.IsKnownHerbType(req.HerbType) {
		return nil, ErrUnknownHerbType
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	if req.UnitPrice != nil && !req.UnitPrice.IsPositive() {
		return nil, ErrPriceNotPositive
	}

	harvestDate, err := time.ParseInLocation("2006-01-02", req.HarvestDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid harvest date: %v", apperrors.ErrValidation, err)
	}
	if harvestDate.After(endOfToday()) {
		return nil, ErrHarvestInFuture
	}

	location := resolveLocation(req)
	if location == nil {
		return nil, ErrLocationMissing
	}

	anchorRef, err := s.anchorer.Anchor(ctx, domain.ActionBatchCreated)
	if err != nil {
		return nil, fmt.Errorf("failed to anchor batch creation: %w", err)
	}

	unitPrice := req.UnitPrice
	if unitPrice == nil {
		// Provisional price until the distributor sets one at verification.
		p := decimal.NewFromInt(int64(rand.Intn(1000)) + 500)
		unitPrice = &p
	}

	now := time.Now().UTC()
	batch := domain.Batch{
		FarmerID:      farmer.UserID,
		FarmerName:    farmer.Name,
		HerbType:      req.HerbType,
		Quantity:      req.Quantity,
		Unit:          domain.QuantityUnit(req.Unit),
		HarvestDate:   harvestDate,
		Location:      location,
		Photo:         req.Photo,
		Notes:         req.Notes,
		Status:        domain.BatchPending,
		UnitPrice:     unitPrice,
		AnchorRef:     anchorRef,
		PaymentStatus: domain.PaymentPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     farmer.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: farmer.UserID,
		},
	}

	// The random suffix makes uniqueness probabilistic; retry against the
	// store's uniqueness check.
	for attempt := 0; ; attempt++ {
		batch.BatchID, err = utils.GenerateBatchID(s.idPrefix, harvestDate)
		if err != nil {
			return nil, err
		}
		err = s.batchRepo.SaveBatch(ctx, batch)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrDuplicate) || attempt+1 >= maxIDAttempts {
			return nil, fmt.Errorf("failed to save batch: %w", err)
		}
	}

	if _, err := s.ledgerSvc.RecordEvent(ctx, batch.BatchID, farmer.Name, domain.LedgerCounterparty, domain.ActionBatchCreated, anchorRef); err != nil {
		return nil, fmt.Errorf("failed to record batch creation: %w", err)
	}

	if _, err := s.paymentSvc.CreateForBatch(ctx, batch.BatchID, *unitPrice, s.currency, farmer.UserID); err != nil {
		return nil, fmt.Errorf("failed to open payment for batch %s: %w", batch.BatchID, err)
	}

	logger.Info("Batch registered",
		slog.String("batch_id", batch.BatchID),
		slog.String("herb_type", batch.HerbType),
		slog.String("farmer_id", farmer.UserID))
	return &batch, nil
}

// GetBatchByID is a pure lookup; it never mutates registry or ledger state.
func (s *batchService) GetBatchByID(ctx context.Context, batchID string) (*domain.Batch, error) {
	// A malformed id was never issued; skip the store round trip.
	if !utils.IsValidBatchID(batchID) {
		return nil, fmt.Errorf("%w: malformed batch id %q", apperrors.ErrNotFound, batchID)
	}
	batch, err := s.batchRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get batch %s: %w", batchID, err)
	}
	return batch, nil
}

// ListBatchesByFarmer retrieves a farmer's batches, newest harvest first.
func (s *batchService) ListBatchesByFarmer(ctx context.Context, farmerID string) ([]domain.Batch, error) {
	batches, err := s.batchRepo.ListBatchesByFarmer(ctx, farmerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches for farmer %s: %w", farmerID, err)
	}
	return batches, nil
}

// ListBatchesByStatus retrieves batches filtered by status.
func (s *batchService) ListBatchesByStatus(ctx context.Context, status domain.BatchStatus) ([]domain.Batch, error) {
	batches, err := s.batchRepo.ListBatchesByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches by status %q: %w", status, err)
	}
	return batches, nil
}

// TransitionBatch moves a pending batch to verified or rejected. Terminal
// states never transition again; there is no path back to pending.
func (s *batchService) TransitionBatch(ctx context.Context, batchID string, req dto.TransitionBatchRequest, verifier domain.User) (*domain.Batch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if verifier.Role != domain.RoleDistributor {
		return nil, apperrors.ErrForbidden
	}

	batch, err := s.batchRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load batch %s for transition: %w", batchID, err)
	}
	if batch.Status != domain.BatchPending {
		return nil, apperrors.ErrInvalidStatus
	}

	newStatus := domain.BatchStatus(req.Status)
	if newStatus != domain.BatchVerified && newStatus != domain.BatchRejected {
		return nil, fmt.Errorf("%w: target status must be %s or %s", apperrors.ErrValidation, domain.BatchVerified, domain.BatchRejected)
	}
	if newStatus == domain.BatchRejected && req.Reason == "" {
		return nil, ErrReasonRequired
	}
	if req.UnitPrice != nil && !req.UnitPrice.IsPositive() {
		return nil, ErrPriceNotPositive
	}

	action := domain.ActionBatchVerified
	if newStatus == domain.BatchRejected {
		action = domain.ActionBatchRejected
	}

	anchorRef, err := s.anchorer.Anchor(ctx, action)
	if err != nil {
		return nil, fmt.Errorf("failed to anchor batch transition: %w", err)
	}

	now := time.Now().UTC()
	batch.Status = newStatus
	batch.LastUpdatedAt = now
	batch.LastUpdatedBy = verifier.UserID
	switch newStatus {
	case domain.BatchVerified:
		batch.VerifiedBy = verifier.Name
		batch.VerificationDate = &now
		if req.LabReport != "" {
			batch.LabReport = req.LabReport
		}
		if req.UnitPrice != nil {
			batch.UnitPrice = req.UnitPrice
		}
	case domain.BatchRejected:
		batch.RejectionReason = req.Reason
	}

	if err := s.batchRepo.UpdateBatch(ctx, *batch); err != nil {
		return nil, fmt.Errorf("failed to update batch %s: %w", batchID, err)
	}

	if _, err := s.ledgerSvc.RecordEvent(ctx, batchID, verifier.Name, domain.LedgerCounterparty, action, anchorRef); err != nil {
		return nil, fmt.Errorf("failed to record batch transition: %w", err)
	}

	logger.Info("Batch transitioned",
		slog.String("batch_id", batchID),
		slog.String("status", string(newStatus)),
		slog.String("verifier_id", verifier.UserID))
	return batch, nil
}

// AttachLabReport attaches a free-text lab summary to a verified batch.
func (s *batchService) AttachLabReport(ctx context.Context, batchID string, summary string, verifier domain.User) (*domain.Batch, error) {
	if verifier.Role != domain.RoleDistributor {
		return nil, apperrors.ErrForbidden
	}
	if summary == "" {
		return nil, fmt.Errorf("%w: lab report summary is required", apperrors.ErrValidation)
	}

	batch, err := s.batchRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load batch %s for lab report: %w", batchID, err)
	}
	if batch.Status != domain.BatchVerified {
		return nil, ErrNotVerifiedBatch
	}

	batch.LabReport = summary
	batch.LastUpdatedAt = time.Now().UTC()
	batch.LastUpdatedBy = verifier.UserID
	if err := s.batchRepo.UpdateBatch(ctx, *batch); err != nil {
		return nil, fmt.Errorf("failed to update batch %s: %w", batchID, err)
	}
	return batch, nil
}

// TransferBatch records a custody handoff. Status is untouched; the handoff
// lives entirely in the ledger.
func (s *batchService) TransferBatch(ctx context.Context, batchID string, req dto.TransferBatchRequest, actor domain.User) (*domain.Batch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if actor.Role != domain.RoleDistributor {
		return nil, apperrors.ErrForbidden
	}
	if req.RecipientName == "" {
		return nil, fmt.Errorf("%w: recipient name is required", apperrors.ErrValidation)
	}

	batch, err := s.batchRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load batch %s for transfer: %w", batchID, err)
	}

	action, ok := transferActionLabels[req.RecipientRole]
	if !ok {
		return nil, fmt.Errorf("%w: unknown recipient role %q", apperrors.ErrValidation, req.RecipientRole)
	}

	anchorRef, err := s.anchorer.Anchor(ctx, action)
	if err != nil {
		return nil, fmt.Errorf("failed to anchor batch transfer: %w", err)
	}

	if _, err := s.ledgerSvc.RecordEvent(ctx, batchID, actor.Name, req.RecipientName, action, anchorRef); err != nil {
		return nil, fmt.Errorf("failed to record batch transfer: %w", err)
	}

	logger.Info("Batch transferred",
		slog.String("batch_id", batchID),
		slog.String("recipient", req.RecipientName),
		slog.String("recipient_role", req.RecipientRole))
	return batch, nil
}

// resolveLocation picks the batch location from the submitted sources,
// preferring an explicit map pick or device reading over a photo geotag.
func resolveLocation(req dto.RegisterBatchRequest) *domain.Location {
	if req.Location != nil {
		return &domain.Location{Lat: req.Location.Lat, Lng: req.Location.Lng, Address: req.Location.Address}
	}
	if req.ExifLocation != nil {
		return &domain.Location{
			Lat:     req.ExifLocation.Lat,
			Lng:     req.ExifLocation.Lng,
			Address: fmt.Sprintf("Farm Location, %.4f, %.4f", req.ExifLocation.Lat, req.ExifLocation.Lng),
		}
	}
	return nil
}

// endOfToday returns the last instant of the current UTC day, so a harvest
// dated today is never treated as future.
func endOfToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)
}
