package pgsql

import (
	portsrepo "github.com/SscSPs/commission_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	stockRepo := newPgxStockRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TxManager:      &BaseRepository{Pool: dbPool},
		CommissionRepo: newPgxCommissionRepository(dbPool),
		ItemRepo:       newPgxCommissionItemRepository(dbPool),
		EventRepo:      newPgxCommissionEventRepository(dbPool),
		ArticleRepo:    stockRepo,
		MovementRepo:   stockRepo,
		SupplierRepo:   stockRepo,
	}
}
