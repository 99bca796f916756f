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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCommissionItemRepository struct {
	BaseRepository
}

func newPgxCommissionItemRepository(pool *pgxpool.Pool) portsrepo.CommissionItemRepositoryFacade {
	return &PgxCommissionItemRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CommissionItemRepositoryFacade = (*PgxCommissionItemRepository)(nil)

const itemSelectQuery = `
SELECT
	i.item_id, i.commission_id, i.item_type, i.article_id, i.custom_name,
	i.external_reference, i.amount, i.is_picked, i.is_backorder, i.notes, i.attachment_data
FROM commission_items i
`

func (r *PgxCommissionItemRepository) getItems(ctx context.Context, filterQuery string, args ...any) ([]domain.CommissionItem, error) {
	rows, err := r.conn(ctx).Query(ctx, itemSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query commission items", err)
	}
	defer rows.Close()
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.CommissionItem])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "failed to collect commission item rows", err)
	}
	items := make([]domain.CommissionItem, len(ms))
	for i, m := range ms {
		items[i] = mapping.ToDomainCommissionItem(m)
	}
	return items, nil
}

func (r *PgxCommissionItemRepository) FindItemByID(ctx context.Context, commissionID, itemID string) (*domain.CommissionItem, error) {
	items, err := r.getItems(ctx, `WHERE i.commission_id = $1 AND i.item_id = $2`, commissionID, itemID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.NewNotFoundError("item " + itemID + " not found")
	}
	return &items[0], nil
}

func (r *PgxCommissionItemRepository) FindItemsByCommissionID(ctx context.Context, commissionID string) ([]domain.CommissionItem, error) {
	return r.getItems(ctx, `WHERE i.commission_id = $1 ORDER BY i.position, i.item_id`, commissionID)
}

func (r *PgxCommissionItemRepository) SaveItem(ctx context.Context, item domain.CommissionItem) error {
	m := mapping.ToModelCommissionItem(item)
	query := `
		INSERT INTO commission_items (
			item_id, commission_id, item_type, article_id, custom_name,
			external_reference, amount, is_picked, is_backorder, notes, attachment_data
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.ItemID, m.CommissionID, m.ItemType, m.ArticleID, m.CustomName,
		m.ExternalReference, m.Amount, m.IsPicked, m.IsBackorder, m.Notes, m.AttachmentData,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewValidationFailedError("commission or article does not exist")
		}
		return apperrors.NewAppError(500, "failed to save item "+item.ItemID, err)
	}
	return nil
}

func (r *PgxCommissionItemRepository) UpdateItem(ctx context.Context, item domain.CommissionItem) error {
	m := mapping.ToModelCommissionItem(item)
	query := `
		UPDATE commission_items SET
			custom_name = $3, external_reference = $4, amount = $5, is_picked = $6,
			is_backorder = $7, notes = $8, attachment_data = $9
		WHERE commission_id = $1 AND item_id = $2;
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		m.CommissionID, m.ItemID, m.CustomName, m.ExternalReference, m.Amount,
		m.IsPicked, m.IsBackorder, m.Notes, m.AttachmentData,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update item "+item.ItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("item " + item.ItemID + " not found")
	}
	return nil
}

func (r *PgxCommissionItemRepository) DeleteItem(ctx context.Context, commissionID, itemID string) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM commission_items WHERE commission_id = $1 AND item_id = $2`, commissionID, itemID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete item "+itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("item " + itemID + " not found")
	}
	return nil
}
