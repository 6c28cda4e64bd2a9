package services

import (
	"github.com/AyurTrace/herb_trace_app/internal/core/ports"
	portsrepo "github.com/AyurTrace/herb_trace_app/internal/core/ports/repositories"
	portssvc "github.com/AyurTrace/herb_trace_app/internal/core/ports/services"
	"github.com/AyurTrace/herb_trace_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryContainer, anchorer ports.LedgerAnchorer) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Ledger and payment first since the batch service writes through both
	container.Ledger = NewLedgerService(repos.Ledger)
	container.Payment = NewPaymentService(repos.Payment, repos.Batch)

	container.Batch = NewBatchService(
		repos.Batch,
		container.Ledger,
		container.Payment,
		anchorer,
		cfg.BatchIDPrefix,
		cfg.Currency,
	)

	container.User = NewUserService(repos.User)
	container.Trace = NewTraceService(repos.Batch, repos.Ledger, DefaultTraceStages())

	return container
}
