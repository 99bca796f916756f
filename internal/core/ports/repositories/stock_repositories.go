package repositories

import (
	"context"

	"github.com/SscSPs/commission_app/internal/core/domain"
)

// ArticleRepository is the slice of the article catalog this service needs.
type ArticleRepository interface {
	FindArticlesByIDs(ctx context.Context, articleIDs []string) (map[string]domain.Article, error)

	// FindArticleForUpdate locks the row for the running transaction.
	FindArticleForUpdate(ctx context.Context, articleID string) (*domain.Article, error)

	// SetArticleStock writes the new stock level.
	SetArticleStock(ctx context.Context, articleID string, stock int) error
}

// StockMovementRepository stores immutable ledger rows.
type StockMovementRepository interface {
	AppendMovement(ctx context.Context, movement domain.StockMovement) error
	ListMovementsByArticle(ctx context.Context, articleID string, limit int) ([]domain.StockMovement, error)
}

// SupplierReader resolves suppliers for return labels.
type SupplierReader interface {
	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
}
