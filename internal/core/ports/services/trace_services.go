package services

import (
	"context"

	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
)

// TraceSvc assembles the custody chain for a batch. It is a pure projection
// over the batch registry and the ledger; it holds no state of its own.
type TraceSvc interface {
	// TraceBatch returns the batch and its ordered custody chain, origin
	// first, timestamps monotonically increasing.
	TraceBatch(ctx context.Context, batchID string) (*domain.Batch, []domain.TracePoint, error)
}
