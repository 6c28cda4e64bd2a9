package services

import (
	"context"

	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
)

// LedgerReaderSvc defines read operations over the append-only event log
type LedgerReaderSvc interface {
	// ListEntriesForBatch retrieves the ordered history of a batch, oldest
	// first.
	ListEntriesForBatch(ctx context.Context, batchID string) ([]domain.LedgerEntry, error)

	// ListRecentEntries retrieves the newest entries across all batches.
	ListRecentEntries(ctx context.Context, limit int) ([]domain.LedgerEntry, error)
}

// LedgerWriterSvc appends events to the log. Append is the only mutation;
// entries are never updated or deleted.
type LedgerWriterSvc interface {
	// RecordEvent appends one entry for an accepted batch mutation. BatchID
	// and action are required; anchorRef is stored verbatim.
	RecordEvent(ctx context.Context, batchID, from, to, action, anchorRef string) (*domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
