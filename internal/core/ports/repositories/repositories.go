package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager      TransactionManager
	CommissionRepo CommissionRepositoryFacade
	ItemRepo       CommissionItemRepositoryFacade
	EventRepo      CommissionEventRepository
	ArticleRepo    ArticleRepository
	MovementRepo   StockMovementRepository
	SupplierRepo   SupplierReader
}
