package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/commission_app/internal/apperrors"
	"github.com/SscSPs/commission_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_WithinTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	s.PutArticle(domain.Article{ArticleID: "a1", Name: "Kabel", Stock: 10})
	require.NoError(t, s.SaveCommission(ctx, domain.Commission{CommissionID: "c1", Status: domain.StatusDraft}))

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(txCtx context.Context) error {
		require.NoError(t, s.SetArticleStock(txCtx, "a1", 7))
		c, err := s.FindCommissionForUpdate(txCtx, "c1")
		require.NoError(t, err)
		c.Status = domain.StatusReady
		require.NoError(t, s.UpdateCommission(txCtx, *c))
		// nested calls join the outer transaction
		return s.WithinTx(txCtx, func(context.Context) error { return boom })
	})
	assert.ErrorIs(t, err, boom)

	a, _ := s.Article("a1")
	assert.Equal(t, 10, a.Stock)
	c, err := s.FindCommissionByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, c.Status)
}

func TestStore_PurgeDeletedBefore(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	old := time.Now().Add(-8 * 24 * time.Hour)
	recent := time.Now().Add(-time.Hour)
	require.NoError(t, s.SaveCommission(ctx, domain.Commission{CommissionID: "old", DeletedAt: &old}))
	require.NoError(t, s.SaveCommission(ctx, domain.Commission{CommissionID: "recent", DeletedAt: &recent}))
	require.NoError(t, s.SaveCommission(ctx, domain.Commission{CommissionID: "active"}))
	require.NoError(t, s.SaveItem(ctx, domain.CommissionItem{ItemID: "i1", CommissionID: "old", Type: domain.ItemTypeExternal, CustomName: "x", Amount: 1}))

	n, err := s.PurgeDeletedBefore(ctx, time.Now().Add(-7*24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = s.FindCommissionByID(ctx, "old")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	items, _ := s.FindItemsByCommissionID(ctx, "old")
	assert.Empty(t, items)

	trash, _ := s.ListDeletedCommissions(ctx)
	require.Len(t, trash, 1)
	assert.Equal(t, "recent", trash[0].CommissionID)
}

func TestStore_EventPagination(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	for i, id := range []string{"e1", "e2", "e3", "e4", "e5"} {
		require.NoError(t, s.AppendEvent(ctx, domain.CommissionEvent{
			EventID: id, CommissionID: "c1", Action: domain.ActionUpdated, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, s.AppendEvent(ctx, domain.CommissionEvent{EventID: "other", CommissionID: "c2", CreatedAt: base}))

	page1, token, err := s.ListEventsByCommissionID(ctx, "c1", 2, nil)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, []string{"e5", "e4"}, eventIDs(page1))

	page2, token, err := s.ListEventsByCommissionID(ctx, "c1", 2, token)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, []string{"e3", "e2"}, eventIDs(page2))

	page3, token, err := s.ListEventsByCommissionID(ctx, "c1", 2, token)
	require.NoError(t, err)
	assert.Nil(t, token)
	assert.Equal(t, []string{"e1"}, eventIDs(page3))

	bad := "%%%"
	_, _, err = s.ListEventsByCommissionID(ctx, "c1", 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestStore_ClearLastScanned(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now()
	require.NoError(t, s.SaveCommission(ctx, domain.Commission{CommissionID: "v", WarehouseID: "w1", Status: domain.StatusReady, LastScannedAt: &now}))
	require.NoError(t, s.SaveCommission(ctx, domain.Commission{CommissionID: "other-wh", WarehouseID: "w2", Status: domain.StatusReady, LastScannedAt: &now}))
	require.NoError(t, s.SaveCommission(ctx, domain.Commission{CommissionID: "open", WarehouseID: "w1", Status: domain.StatusReady}))

	ids, err := s.ClearLastScanned(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, []string{"v"}, ids)

	c, _ := s.FindCommissionByID(ctx, "other-wh")
	assert.NotNil(t, c.LastScannedAt)
}

func eventIDs(events []domain.CommissionEvent) []string {
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.EventID
	}
	return ids
}
