// Package memory implements the repository ports over in-process maps. It is
// the default demo backend: single process, seeded with sample data, no
// persistence across restarts. All stores guard their maps with a RWMutex so
// mutations stay serialized and the ledger order matches transition order.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/AyurTrace/herb_trace_app/internal/apperrors"
	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
	portsrepo "github.com/AyurTrace/herb_trace_app/internal/core/ports/repositories"
)

type BatchRepository struct {
	mu      sync.RWMutex
	batches map[string]domain.Batch
}

// NewBatchRepository creates an empty in-memory batch store.
func NewBatchRepository() *BatchRepository {
	return &BatchRepository{batches: make(map[string]domain.Batch)}
}

var _ portsrepo.BatchRepositoryFacade = (*BatchRepository)(nil)

// SaveBatch persists a new batch, rejecting id collisions.
func (r *BatchRepository) SaveBatch(ctx context.Context, batch domain.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.batches[batch.BatchID]; exists {
		return apperrors.ErrDuplicate
	}
	r.batches[batch.BatchID] = batch
	return nil
}

// UpdateBatch persists changes to an existing batch.
func (r *BatchRepository) UpdateBatch(ctx context.Context, batch domain.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.batches[batch.BatchID]; !exists {
		return apperrors.ErrNotFound
	}
	r.batches[batch.BatchID] = batch
	return nil
}

// FindBatchByID retrieves a batch by id.
func (r *BatchRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	batch, exists := r.batches[batchID]
	if !exists {
		return nil, apperrors.ErrNotFound
	}
	// Return a copy so callers cannot mutate the store.
	return &batch, nil
}

// ListBatchesByFarmer retrieves a farmer's batches, newest harvest first.
func (r *BatchRepository) ListBatchesByFarmer(ctx context.Context, farmerID string) ([]domain.Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Batch, 0)
	for _, b := range r.batches {
		if b.FarmerID == farmerID {
			result = append(result, b)
		}
	}
	sortBatchesNewestFirst(result)
	return result, nil
}

// ListBatchesByStatus retrieves batches in the given status; empty status
// lists all.
func (r *BatchRepository) ListBatchesByStatus(ctx context.Context, status domain.BatchStatus) ([]domain.Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Batch, 0)
	for _, b := range r.batches {
		if status == "" || b.Status == status {
			result = append(result, b)
		}
	}
	sortBatchesNewestFirst(result)
	return result, nil
}

func sortBatchesNewestFirst(batches []domain.Batch) {
	sort.Slice(batches, func(i, j int) bool {
		if batches[i].HarvestDate.Equal(batches[j].HarvestDate) {
			return batches[i].BatchID > batches[j].BatchID
		}
		return batches[i].HarvestDate.After(batches[j].HarvestDate)
	})
}
