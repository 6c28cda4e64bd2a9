package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AyurTrace/herb_trace_app/internal/apperrors"
	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
	portsrepo "github.com/AyurTrace/herb_trace_app/internal/core/ports/repositories"
	portssvc "github.com/AyurTrace/herb_trace_app/internal/core/ports/services"
	"github.com/google/uuid"
)

// defaultRecentLimit caps the explorer view when no limit is requested.
const defaultRecentLimit = 50

type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewLedgerService creates the append-only event log service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// RecordEvent appends one immutable entry. Entries are created only by
// components performing a batch mutation, never by the UI alone.
func (s *ledgerService) RecordEvent(ctx context.Context, batchID, from, to, action, anchorRef string) (*domain.LedgerEntry, error) {
	if batchID == "" {
		return nil, fmt.Errorf("%w: batch id is required", apperrors.ErrValidation)
	}
	if action == "" {
		return nil, fmt.Errorf("%w: action is required", apperrors.ErrValidation)
	}

	entry := domain.LedgerEntry{
		EntryID:   "TX-" + uuid.NewString(),
		BatchID:   batchID,
		From:      from,
		To:        to,
		Action:    action,
		Timestamp: time.Now().UTC(),
		AnchorRef: anchorRef,
	}
	if err := s.ledgerRepo.AppendEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return &entry, nil
}

// ListEntriesForBatch returns a batch's ordered history, oldest first.
func (s *ledgerService) ListEntriesForBatch(ctx context.Context, batchID string) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.ListEntriesForBatch(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries for batch %s: %w", batchID, err)
	}
	if entries == nil {
		return []domain.LedgerEntry{}, nil
	}
	return entries, nil
}

// ListRecentEntries returns the newest entries across all batches.
func (s *ledgerService) ListRecentEntries(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	entries, err := s.ledgerRepo.ListRecentEntries(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent ledger entries: %w", err)
	}
	if entries == nil {
		return []domain.LedgerEntry{}, nil
	}
	return entries, nil
}
