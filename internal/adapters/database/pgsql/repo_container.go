package pgsql

import (
	portsrepo "github.com/AyurTrace/herb_trace_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryContainer builds the full pgx-backed repository set.
func NewRepositoryContainer(pool *pgxpool.Pool) *portsrepo.RepositoryContainer {
	return &portsrepo.RepositoryContainer{
		Batch:   NewPgxBatchRepository(pool),
		Ledger:  NewPgxLedgerRepository(pool),
		Payment: NewPgxPaymentRepository(pool),
		User:    NewPgxUserRepository(pool),
	}
}
