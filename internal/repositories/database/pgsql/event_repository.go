package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/commission_app/internal/apperrors"
	"github.com/SscSPs/commission_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commission_app/internal/core/ports/repositories"
	"github.com/SscSPs/commission_app/internal/models"
	"github.com/SscSPs/commission_app/internal/utils/mapping"
	"github.com/SscSPs/commission_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCommissionEventRepository struct {
	BaseRepository
}

func newPgxCommissionEventRepository(pool *pgxpool.Pool) portsrepo.CommissionEventRepository {
	return &PgxCommissionEventRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CommissionEventRepository = (*PgxCommissionEventRepository)(nil)

const eventSelectQuery = `
SELECT e.event_id, e.commission_id, e.commission_name, e.user_id, e.action, e.details, e.created_at
FROM commission_events e
`

func (r *PgxCommissionEventRepository) getEvents(ctx context.Context, filterQuery string, args ...any) ([]domain.CommissionEvent, error) {
	rows, err := r.conn(ctx).Query(ctx, eventSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query commission events", err)
	}
	defer rows.Close()
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.CommissionEvent])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "failed to collect commission event rows", err)
	}
	events := make([]domain.CommissionEvent, len(ms))
	for i, m := range ms {
		events[i] = mapping.ToDomainCommissionEvent(m)
	}
	return events, nil
}

func (r *PgxCommissionEventRepository) AppendEvent(ctx context.Context, event domain.CommissionEvent) error {
	query := `
		INSERT INTO commission_events (event_id, commission_id, commission_name, user_id, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		event.EventID, event.CommissionID, event.CommissionName, event.UserID,
		string(event.Action), event.Details, event.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to append event for commission "+event.CommissionID, err)
	}
	return nil
}

func (r *PgxCommissionEventRepository) ListEventsByCommissionID(ctx context.Context, commissionID string, limit int, nextToken *string) ([]domain.CommissionEvent, *string, error) {
	var (
		events []domain.CommissionEvent
		err    error
	)
	if nextToken != nil && *nextToken != "" {
		cursor, decErr := pagination.DecodeToken(*nextToken)
		if decErr != nil {
			return nil, nil, apperrors.NewValidationFailedError(decErr.Error())
		}
		events, err = r.getEvents(ctx,
			`WHERE e.commission_id = $1 AND (e.created_at, e.event_id) < ($2, $3) ORDER BY e.created_at DESC, e.event_id DESC LIMIT $4`,
			commissionID, cursor.CreatedAt, cursor.ID, limit+1)
	} else {
		events, err = r.getEvents(ctx,
			`WHERE e.commission_id = $1 ORDER BY e.created_at DESC, e.event_id DESC LIMIT $2`,
			commissionID, limit+1)
	}
	if err != nil {
		return nil, nil, err
	}
	if len(events) <= limit {
		return events, nil, nil
	}
	events = events[:limit]
	last := events[len(events)-1]
	token := pagination.EncodeToken(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.EventID})
	return events, &token, nil
}

func (r *PgxCommissionEventRepository) ListRecentEventsByAction(ctx context.Context, action domain.EventAction, limit int) ([]domain.CommissionEvent, error) {
	return r.getEvents(ctx, `WHERE e.action = $1 ORDER BY e.created_at DESC, e.event_id DESC LIMIT $2`, string(action), limit)
}
