package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/commission_app/internal/apperrors"
	"github.com/SscSPs/commission_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commission_app/internal/core/ports/repositories"
	"github.com/SscSPs/commission_app/internal/models"
	"github.com/SscSPs/commission_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxStockRepository reads articles and suppliers and writes the stock ledger.
type PgxStockRepository struct {
	BaseRepository
}

func newPgxStockRepository(pool *pgxpool.Pool) *PgxStockRepository {
	return &PgxStockRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.ArticleRepository       = (*PgxStockRepository)(nil)
	_ portsrepo.StockMovementRepository = (*PgxStockRepository)(nil)
	_ portsrepo.SupplierReader          = (*PgxStockRepository)(nil)
)

func (r *PgxStockRepository) FindArticlesByIDs(ctx context.Context, articleIDs []string) (map[string]domain.Article, error) {
	out := make(map[string]domain.Article, len(articleIDs))
	if len(articleIDs) == 0 {
		return out, nil
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT article_id, name, location, stock FROM articles WHERE article_id = ANY($1)`, articleIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query articles", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Article])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "failed to collect article rows", err)
	}
	for _, m := range ms {
		out[m.ArticleID] = mapping.ToDomainArticle(m)
	}
	return out, nil
}

func (r *PgxStockRepository) FindArticleForUpdate(ctx context.Context, articleID string) (*domain.Article, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT article_id, name, location, stock FROM articles WHERE article_id = $1 FOR UPDATE`, articleID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query article "+articleID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Article])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("article " + articleID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to read article "+articleID, err)
	}
	a := mapping.ToDomainArticle(m)
	return &a, nil
}

func (r *PgxStockRepository) SetArticleStock(ctx context.Context, articleID string, stock int) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE articles SET stock = $2 WHERE article_id = $1`, articleID, stock)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update stock of article "+articleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("article " + articleID + " not found")
	}
	return nil
}

func (r *PgxStockRepository) AppendMovement(ctx context.Context, mv domain.StockMovement) error {
	query := `
		INSERT INTO stock_movements (movement_id, article_id, user_id, amount, movement_type, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.conn(ctx).Exec(ctx, query, mv.MovementID, mv.ArticleID, mv.UserID, mv.Amount, mv.Type, mv.Reference, mv.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to record stock movement for article "+mv.ArticleID, err)
	}
	return nil
}

func (r *PgxStockRepository) ListMovementsByArticle(ctx context.Context, articleID string, limit int) ([]domain.StockMovement, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT movement_id, article_id, user_id, amount, movement_type, reference, created_at
		FROM stock_movements WHERE article_id = $1
		ORDER BY created_at DESC, movement_id DESC LIMIT $2`, articleID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query stock movements", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.StockMovement])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "failed to collect stock movement rows", err)
	}
	out := make([]domain.StockMovement, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainStockMovement(m)
	}
	return out, nil
}

func (r *PgxStockRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT supplier_id, name FROM suppliers WHERE supplier_id = $1`, supplierID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query supplier "+supplierID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Supplier])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("supplier " + supplierID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to read supplier "+supplierID, err)
	}
	s := mapping.ToDomainSupplier(m)
	return &s, nil
}
