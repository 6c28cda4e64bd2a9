package repositories

import (
	"context"

	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
)

// LedgerReader defines read operations for the append-only event log
type LedgerReader interface {
	// ListEntriesForBatch retrieves every entry recorded against the batch,
	// oldest first. Unknown batch ids yield an empty slice, not an error.
	ListEntriesForBatch(ctx context.Context, batchID string) ([]domain.LedgerEntry, error)

	// ListRecentEntries retrieves the most recent entries across all batches,
	// newest first, capped at limit.
	ListRecentEntries(ctx context.Context, limit int) ([]domain.LedgerEntry, error)
}

// LedgerAppender defines the single write operation for the event log.
// There is no update or delete by design; immutability is the core invariant.
type LedgerAppender interface {
	// AppendEntry persists a new immutable entry.
	AppendEntry(ctx context.Context, entry domain.LedgerEntry) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerAppender
}
