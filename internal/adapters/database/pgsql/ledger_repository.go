package pgsql

import (
	"context"
	"fmt"

	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
	portsrepo "github.com/AyurTrace/herb_trace_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

// NewPgxLedgerRepository creates a new repository for the append-only event
// log. There is no update or delete statement in this file by design.
func NewPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{pool: pool}
}

// AppendEntry inserts a new immutable entry.
func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) error {
	if entry.BatchID == "" || entry.Action == "" {
		return fmt.Errorf("ledger entry requires batch id and action")
	}
	query := `
		INSERT INTO ledger_entries (entry_id, batch_id, from_party, to_party, action, occurred_at, anchor_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		entry.EntryID,
		entry.BatchID,
		entry.From,
		entry.To,
		entry.Action,
		entry.Timestamp,
		entry.AnchorRef,
	)
	if err != nil {
		return fmt.Errorf("failed to append ledger entry for batch %s: %w", entry.BatchID, err)
	}
	return nil
}

// ListEntriesForBatch retrieves a batch's history, oldest first.
func (r *PgxLedgerRepository) ListEntriesForBatch(ctx context.Context, batchID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, batch_id, from_party, to_party, action, occurred_at, anchor_ref
		FROM ledger_entries
		WHERE batch_id = $1
		ORDER BY occurred_at ASC, entry_id ASC;
	`
	rows, err := r.pool.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for batch %s: %w", batchID, err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

// ListRecentEntries retrieves the newest entries across all batches.
func (r *PgxLedgerRepository) ListRecentEntries(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, batch_id, from_party, to_party, action, occurred_at, anchor_ref
		FROM ledger_entries
		ORDER BY occurred_at DESC, entry_id DESC
		LIMIT $1;
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent ledger entries: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	entries := make([]domain.LedgerEntry, 0)
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.EntryID, &e.BatchID, &e.From, &e.To, &e.Action, &e.Timestamp, &e.AnchorRef); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}
	return entries, nil
}
