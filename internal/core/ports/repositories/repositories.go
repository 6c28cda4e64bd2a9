package repositories

// RepositoryContainer holds one instance of every repository facade. Both
// storage backends (memory, pgsql) produce one of these for service wiring.
type RepositoryContainer struct {
	Batch   BatchRepositoryFacade
	Ledger  LedgerRepositoryFacade
	Payment PaymentRepositoryFacade
	User    UserRepositoryFacade
}
