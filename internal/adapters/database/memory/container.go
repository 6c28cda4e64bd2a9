package memory

import (
	portsrepo "github.com/AyurTrace/herb_trace_app/internal/core/ports/repositories"
)

// NewRepositoryContainer builds a full in-memory repository set.
func NewRepositoryContainer() *portsrepo.RepositoryContainer {
	return &portsrepo.RepositoryContainer{
		Batch:   NewBatchRepository(),
		Ledger:  NewLedgerRepository(),
		Payment: NewPaymentRepository(),
		User:    NewUserRepository(),
	}
}
