package repositories

import (
	"context"

	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
)

// BatchReader defines read operations for batch data
type BatchReader interface {
	// FindBatchByID retrieves a specific batch by its generated id.
	FindBatchByID(ctx context.Context, batchID string) (*domain.Batch, error)

	// ListBatchesByFarmer retrieves all batches registered by the given farmer,
	// newest harvest first.
	ListBatchesByFarmer(ctx context.Context, farmerID string) ([]domain.Batch, error)

	// ListBatchesByStatus retrieves all batches in the given status. An empty
	// status lists every batch.
	ListBatchesByStatus(ctx context.Context, status domain.BatchStatus) ([]domain.Batch, error)
}

// BatchWriter defines write operations for batch data
type BatchWriter interface {
	// SaveBatch persists a new batch. Returns apperrors.ErrDuplicate if the
	// batch id is already taken.
	SaveBatch(ctx context.Context, batch domain.Batch) error

	// UpdateBatch persists changes to an existing batch. Returns
	// apperrors.ErrNotFound if the batch does not exist.
	UpdateBatch(ctx context.Context, batch domain.Batch) error
}

// BatchRepositoryFacade combines all batch-related repository interfaces
type BatchRepositoryFacade interface {
	BatchReader
	BatchWriter
}
