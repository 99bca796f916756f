package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/commission_app/internal/apperrors"
	"github.com/SscSPs/commission_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commission_app/internal/core/ports/repositories"
	"github.com/SscSPs/commission_app/internal/models"
	"github.com/SscSPs/commission_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCommissionRepository struct {
	BaseRepository
}

func newPgxCommissionRepository(pool *pgxpool.Pool) portsrepo.CommissionRepositoryFacade {
	return &PgxCommissionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CommissionRepositoryFacade = (*PgxCommissionRepository)(nil)

const commissionSelectQuery = `
SELECT
	c.commission_id, c.name, c.order_number, c.notes, c.status, c.warehouse_id,
	c.supplier_id, c.supplier_order_number, c.withdrawn_at, c.deleted_at,
	c.needs_label, c.is_processed, c.office_notes, c.last_scanned_at,
	c.has_been_fulfilled, c.return_disposition, c.return_reason, c.return_requested_at,
	c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
FROM commissions c
`

func (r *PgxCommissionRepository) getCommissions(ctx context.Context, filterQuery string, args ...any) ([]domain.Commission, error) {
	rows, err := r.conn(ctx).Query(ctx, commissionSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query commissions", err)
	}
	defer rows.Close()
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Commission])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Commission{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect commission rows", err)
	}
	return mapping.ToDomainCommissions(ms), nil
}

func (r *PgxCommissionRepository) findOne(ctx context.Context, filterQuery, commissionID string) (*domain.Commission, error) {
	cs, err := r.getCommissions(ctx, filterQuery, commissionID)
	if err != nil {
		return nil, err
	}
	if len(cs) == 0 {
		return nil, apperrors.NewNotFoundError("commission " + commissionID + " not found")
	}
	return &cs[0], nil
}

func (r *PgxCommissionRepository) FindCommissionByID(ctx context.Context, commissionID string) (*domain.Commission, error) {
	return r.findOne(ctx, `WHERE c.commission_id = $1`, commissionID)
}

func (r *PgxCommissionRepository) FindCommissionForUpdate(ctx context.Context, commissionID string) (*domain.Commission, error) {
	return r.findOne(ctx, `WHERE c.commission_id = $1 FOR UPDATE`, commissionID)
}

func (r *PgxCommissionRepository) ListCommissions(ctx context.Context, filter domain.CommissionFilter) ([]domain.Commission, error) {
	conds := []string{"c.deleted_at IS NULL"}
	args := []any{}
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.WarehouseID != "" {
		conds = append(conds, "c.warehouse_id = "+next(filter.WarehouseID))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		conds = append(conds, "c.status = ANY("+next(statuses)+")")
	}
	if filter.NeedsLabel != nil {
		conds = append(conds, "c.needs_label = "+next(*filter.NeedsLabel))
	}
	if filter.Search != "" {
		p := next("%" + filter.Search + "%")
		conds = append(conds, "(c.name ILIKE "+p+" OR c.order_number ILIKE "+p+")")
	}
	query := "WHERE " + strings.Join(conds, " AND ") + " ORDER BY c.created_at DESC, c.commission_id"
	if filter.Limit > 0 {
		query += " LIMIT " + next(filter.Limit)
	}
	return r.getCommissions(ctx, query, args...)
}

func (r *PgxCommissionRepository) ListDeletedCommissions(ctx context.Context) ([]domain.Commission, error) {
	return r.getCommissions(ctx, `WHERE c.deleted_at IS NOT NULL ORDER BY c.deleted_at DESC`)
}

func (r *PgxCommissionRepository) SaveCommission(ctx context.Context, commission domain.Commission) error {
	m := mapping.ToModelCommission(commission)
	query := `
		INSERT INTO commissions (
			commission_id, name, order_number, notes, status, warehouse_id,
			supplier_id, supplier_order_number, withdrawn_at, deleted_at,
			needs_label, is_processed, office_notes, last_scanned_at,
			has_been_fulfilled, return_disposition, return_reason, return_requested_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.CommissionID, m.Name, m.OrderNumber, m.Notes, m.Status, m.WarehouseID,
		m.SupplierID, m.SupplierOrderNumber, m.WithdrawnAt, m.DeletedAt,
		m.NeedsLabel, m.IsProcessed, m.OfficeNotes, m.LastScannedAt,
		m.HasBeenFulfilled, m.ReturnDisposition, m.ReturnReason, m.ReturnRequestedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError("commission ID " + commission.CommissionID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save commission "+commission.CommissionID, err)
	}
	return nil
}

func (r *PgxCommissionRepository) UpdateCommission(ctx context.Context, commission domain.Commission) error {
	m := mapping.ToModelCommission(commission)
	query := `
		UPDATE commissions SET
			name = $2, order_number = $3, notes = $4, status = $5, warehouse_id = $6,
			supplier_id = $7, supplier_order_number = $8, withdrawn_at = $9, deleted_at = $10,
			needs_label = $11, is_processed = $12, office_notes = $13, last_scanned_at = $14,
			has_been_fulfilled = $15, return_disposition = $16, return_reason = $17, return_requested_at = $18,
			last_updated_at = $19, last_updated_by = $20
		WHERE commission_id = $1;
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		m.CommissionID, m.Name, m.OrderNumber, m.Notes, m.Status, m.WarehouseID,
		m.SupplierID, m.SupplierOrderNumber, m.WithdrawnAt, m.DeletedAt,
		m.NeedsLabel, m.IsProcessed, m.OfficeNotes, m.LastScannedAt,
		m.HasBeenFulfilled, m.ReturnDisposition, m.ReturnReason, m.ReturnRequestedAt,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update commission "+commission.CommissionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("commission " + commission.CommissionID + " not found")
	}
	return nil
}

func (r *PgxCommissionRepository) ClearLastScanned(ctx context.Context, warehouseID string) ([]string, error) {
	query := `
		UPDATE commissions SET last_scanned_at = NULL
		WHERE deleted_at IS NULL
			AND last_scanned_at IS NOT NULL
			AND status IN ('Ready', 'ReturnReady')
			AND ($1::text = '' OR warehouse_id = $1)
		RETURNING commission_id;
	`
	rows, err := r.conn(ctx).Query(ctx, query, warehouseID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to reset audit scans", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect reset commission ids", err)
	}
	return ids, nil
}

func (r *PgxCommissionRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	// commission_items cascade; commission_events have no foreign key and stay.
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM commissions WHERE deleted_at IS NOT NULL AND deleted_at < $1`, cutoff)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to purge deleted commissions", err)
	}
	return tag.RowsAffected(), nil
}
