package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
	portsrepo "github.com/AyurTrace/herb_trace_app/internal/core/ports/repositories"
)

// LedgerRepository is an append-only in-memory event log. Entries are kept
// in append order; there is deliberately no update or delete.
type LedgerRepository struct {
	mu      sync.RWMutex
	entries []domain.LedgerEntry
}

// NewLedgerRepository creates an empty in-memory ledger.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{}
}

var _ portsrepo.LedgerRepositoryFacade = (*LedgerRepository)(nil)

// AppendEntry persists a new immutable entry.
func (r *LedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) error {
	if entry.BatchID == "" || entry.Action == "" {
		return fmt.Errorf("ledger entry requires batch id and action")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

// ListEntriesForBatch returns the batch's history oldest first.
func (r *LedgerRepository) ListEntriesForBatch(ctx context.Context, batchID string) ([]domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.LedgerEntry, 0)
	for _, e := range r.entries {
		if e.BatchID == batchID {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})
	return result, nil
}

// ListRecentEntries returns the newest entries across all batches.
func (r *LedgerRepository) ListRecentEntries(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.LedgerEntry, len(r.entries))
	copy(result, r.entries)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
