package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/AyurTrace/herb_trace_app/internal/apperrors"
	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
	portsrepo "github.com/AyurTrace/herb_trace_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBatchRepository struct {
	pool *pgxpool.Pool
}

// NewPgxBatchRepository creates a new repository for batch data.
func NewPgxBatchRepository(pool *pgxpool.Pool) portsrepo.BatchRepositoryFacade {
	return &PgxBatchRepository{pool: pool}
}

const batchColumns = `
	batch_id, farmer_id, farmer_name, herb_type, quantity, unit, harvest_date,
	lat, lng, address, photo, notes, status,
	verified_by, verification_date, lab_report, rejection_reason, unit_price,
	anchor_ref, payment_status,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveBatch inserts a new batch row.
func (r *PgxBatchRepository) SaveBatch(ctx context.Context, batch domain.Batch) error {
	query := `
		INSERT INTO batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`
	var lat, lng *float64
	var address *string
	if batch.Location != nil {
		lat, lng, address = &batch.Location.Lat, &batch.Location.Lng, &batch.Location.Address
	}

	_, err := r.pool.Exec(ctx, query,
		batch.BatchID,
		batch.FarmerID,
		batch.FarmerName,
		batch.HerbType,
		batch.Quantity,
		batch.Unit,
		batch.HarvestDate,
		lat,
		lng,
		address,
		batch.Photo,
		batch.Notes,
		batch.Status,
		batch.VerifiedBy,
		batch.VerificationDate,
		batch.LabReport,
		batch.RejectionReason,
		batch.UnitPrice,
		batch.AnchorRef,
		batch.PaymentStatus,
		batch.CreatedAt,
		batch.CreatedBy,
		batch.LastUpdatedAt,
		batch.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save batch %s: %w", batch.BatchID, err)
	}
	return nil
}

// UpdateBatch updates the mutable fields of an existing batch.
func (r *PgxBatchRepository) UpdateBatch(ctx context.Context, batch domain.Batch) error {
	query := `
		UPDATE batches SET
			status = $2,
			verified_by = $3,
			verification_date = $4,
			lab_report = $5,
			rejection_reason = $6,
			unit_price = $7,
			payment_status = $8,
			last_updated_at = $9,
			last_updated_by = $10
		WHERE batch_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		batch.BatchID,
		batch.Status,
		batch.VerifiedBy,
		batch.VerificationDate,
		batch.LabReport,
		batch.RejectionReason,
		batch.UnitPrice,
		batch.PaymentStatus,
		batch.LastUpdatedAt,
		batch.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update batch %s: %w", batch.BatchID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindBatchByID retrieves a batch by its generated id.
func (r *PgxBatchRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE batch_id = $1;`
	row := r.pool.QueryRow(ctx, query, batchID)
	batch, err := scanBatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find batch by id %s: %w", batchID, err)
	}
	return batch, nil
}

// ListBatchesByFarmer retrieves a farmer's batches, newest harvest first.
func (r *PgxBatchRepository) ListBatchesByFarmer(ctx context.Context, farmerID string) ([]domain.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE farmer_id = $1 ORDER BY harvest_date DESC, batch_id DESC;`
	rows, err := r.pool.Query(ctx, query, farmerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query batches for farmer %s: %w", farmerID, err)
	}
	defer rows.Close()
	return collectBatches(rows)
}

// ListBatchesByStatus retrieves batches filtered by status; empty status
// lists all.
func (r *PgxBatchRepository) ListBatchesByStatus(ctx context.Context, status domain.BatchStatus) ([]domain.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE ($1 = '' OR status = $1) ORDER BY harvest_date DESC, batch_id DESC;`
	rows, err := r.pool.Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query batches by status %q: %w", status, err)
	}
	defer rows.Close()
	return collectBatches(rows)
}

func scanBatch(row pgx.Row) (*domain.Batch, error) {
	var b domain.Batch
	var lat, lng *float64
	var address *string
	err := row.Scan(
		&b.BatchID,
		&b.FarmerID,
		&b.FarmerName,
		&b.HerbType,
		&b.Quantity,
		&b.Unit,
		&b.HarvestDate,
		&lat,
		&lng,
		&address,
		&b.Photo,
		&b.Notes,
		&b.Status,
		&b.VerifiedBy,
		&b.VerificationDate,
		&b.LabReport,
		&b.RejectionReason,
		&b.UnitPrice,
		&b.AnchorRef,
		&b.PaymentStatus,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		loc := domain.Location{Lat: *lat, Lng: *lng}
		if address != nil {
			loc.Address = *address
		}
		b.Location = &loc
	}
	return &b, nil
}

func collectBatches(rows pgx.Rows) ([]domain.Batch, error) {
	batches := make([]domain.Batch, 0)
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch row: %w", err)
		}
		batches = append(batches, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating batch rows: %w", err)
	}
	return batches, nil
}
