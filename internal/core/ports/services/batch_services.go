package services

import (
	"context"

	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
	"github.com/AyurTrace/herb_trace_app/internal/dto"
)

// BatchReaderSvc defines read operations for batch data
type BatchReaderSvc interface {
	// GetBatchByID retrieves a specific batch. Returns apperrors.ErrNotFound
	// when the id was never issued; lookup is side-effect free.
	GetBatchByID(ctx context.Context, batchID string) (*domain.Batch, error)

	// ListBatchesByFarmer retrieves all batches registered by a farmer.
	ListBatchesByFarmer(ctx context.Context, farmerID string) ([]domain.Batch, error)

	// ListBatchesByStatus retrieves batches filtered by status; empty status
	// means all batches.
	ListBatchesByStatus(ctx context.Context, status domain.BatchStatus) ([]domain.Batch, error)
}

// BatchWriterSvc defines the mutation operations of the batch registry.
// The registry is the only component permitted to change a batch's status.
type BatchWriterSvc interface {
	// RegisterBatch validates and persists a new harvest batch in state
	// pending, appends a "Batch Created" ledger entry and opens a provisional
	// payment. No partial batch is ever created on validation failure.
	RegisterBatch(ctx context.Context, req dto.RegisterBatchRequest, farmer domain.User) (*domain.Batch, error)

	// TransitionBatch moves a pending batch to verified or rejected, stamping
	// verifier identity and date (verified) or the rejection reason
	// (rejected), and appends the matching ledger entry. Terminal states do
	// not transition further.
	TransitionBatch(ctx context.Context, batchID string, req dto.TransitionBatchRequest, verifier domain.User) (*domain.Batch, error)

	// AttachLabReport attaches a free-text lab summary to a verified batch.
	AttachLabReport(ctx context.Context, batchID string, summary string, verifier domain.User) (*domain.Batch, error)

	// TransferBatch records a custody handoff without changing status and
	// appends a transfer ledger entry.
	TransferBatch(ctx context.Context, batchID string, req dto.TransferBatchRequest, actor domain.User) (*domain.Batch, error)
}

// BatchSvcFacade combines all batch-related service interfaces
type BatchSvcFacade interface {
	BatchReaderSvc
	BatchWriterSvc
}
