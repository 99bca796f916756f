// Package memory provides an in-memory commission store for tests and local
// development.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/commission_app/internal/apperrors"
	"github.com/SscSPs/commission_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commission_app/internal/core/ports/repositories"
	"github.com/SscSPs/commission_app/internal/utils/pagination"
)

// Store keeps every table in maps guarded by one RWMutex. WithinTx
// serialises transactions and restores a snapshot when fn fails; writes made
// outside a transaction while one is running are lost on rollback.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	commissions map[string]domain.Commission
	items       map[string][]domain.CommissionItem // by commission id, insertion ordered
	events      []domain.CommissionEvent
	articles    map[string]domain.Article
	movements   []domain.StockMovement
	suppliers   map[string]domain.Supplier
}

var (
	_ portsrepo.TransactionManager             = (*Store)(nil)
	_ portsrepo.CommissionRepositoryFacade     = (*Store)(nil)
	_ portsrepo.CommissionItemRepositoryFacade = (*Store)(nil)
	_ portsrepo.CommissionEventRepository      = (*Store)(nil)
	_ portsrepo.ArticleRepository              = (*Store)(nil)
	_ portsrepo.StockMovementRepository        = (*Store)(nil)
	_ portsrepo.SupplierReader                 = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		commissions: make(map[string]domain.Commission),
		items:       make(map[string][]domain.CommissionItem),
		articles:    make(map[string]domain.Article),
		suppliers:   make(map[string]domain.Supplier),
	}
}

// NewRepositoryProvider wires a single store into every repository slot.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:      s,
		CommissionRepo: s,
		ItemRepo:       s,
		EventRepo:      s,
		ArticleRepo:    s,
		MovementRepo:   s,
		SupplierRepo:   s,
	}
}

// PutArticle seeds or replaces a catalog article.
func (s *Store) PutArticle(a domain.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles[a.ArticleID] = a
}

// PutSupplier seeds or replaces a supplier.
func (s *Store) PutSupplier(sup domain.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers[sup.SupplierID] = sup
}

// Article returns the current article row, for assertions.
func (s *Store) Article(articleID string) (domain.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.articles[articleID]
	return a, ok
}

// --- transactions ---

type txKey struct{}

type snapshot struct {
	commissions map[string]domain.Commission
	items       map[string][]domain.CommissionItem
	events      []domain.CommissionEvent
	articles    map[string]domain.Article
	movements   []domain.StockMovement
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		commissions: make(map[string]domain.Commission, len(s.commissions)),
		items:       make(map[string][]domain.CommissionItem, len(s.items)),
		events:      append([]domain.CommissionEvent(nil), s.events...),
		articles:    make(map[string]domain.Article, len(s.articles)),
		movements:   append([]domain.StockMovement(nil), s.movements...),
	}
	for k, v := range s.commissions {
		snap.commissions[k] = v
	}
	for k, v := range s.items {
		snap.items[k] = append([]domain.CommissionItem(nil), v...)
	}
	for k, v := range s.articles {
		snap.articles[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commissions = snap.commissions
	s.items = snap.items
	s.events = snap.events
	s.articles = snap.articles
	s.movements = snap.movements
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// --- commissions ---

func (s *Store) FindCommissionByID(_ context.Context, commissionID string) (*domain.Commission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.commissions[commissionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("commission " + commissionID + " not found")
	}
	return &c, nil
}

func (s *Store) FindCommissionForUpdate(ctx context.Context, commissionID string) (*domain.Commission, error) {
	return s.FindCommissionByID(ctx, commissionID)
}

func (s *Store) ListCommissions(_ context.Context, filter domain.CommissionFilter) ([]domain.Commission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Commission{}
	for _, c := range s.commissions {
		if filter.Matches(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CommissionID < out[j].CommissionID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *Store) ListDeletedCommissions(_ context.Context) ([]domain.Commission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Commission{}
	for _, c := range s.commissions {
		if c.DeletedAt != nil {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeletedAt.After(*out[j].DeletedAt) })
	return out, nil
}

func (s *Store) SaveCommission(_ context.Context, commission domain.Commission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.commissions[commission.CommissionID]; exists {
		return apperrors.NewConflictError("commission ID " + commission.CommissionID + " already exists")
	}
	s.commissions[commission.CommissionID] = commission
	return nil
}

func (s *Store) UpdateCommission(_ context.Context, commission domain.Commission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.commissions[commission.CommissionID]; !exists {
		return apperrors.NewNotFoundError("commission " + commission.CommissionID + " not found")
	}
	s.commissions[commission.CommissionID] = commission
	return nil
}

func (s *Store) ClearLastScanned(_ context.Context, warehouseID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := []string{}
	for id, c := range s.commissions {
		if c.DeletedAt != nil || c.LastScannedAt == nil {
			continue
		}
		if c.Status != domain.StatusReady && c.Status != domain.StatusReturnReady {
			continue
		}
		if warehouseID != "" && c.WarehouseID != warehouseID {
			continue
		}
		c.LastScannedAt = nil
		s.commissions[id] = c
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) PurgeDeletedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, c := range s.commissions {
		if c.DeletedAt != nil && c.DeletedAt.Before(cutoff) {
			delete(s.commissions, id)
			delete(s.items, id)
			n++
		}
	}
	return n, nil
}

// --- items ---

func (s *Store) FindItemByID(_ context.Context, commissionID, itemID string) (*domain.CommissionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items[commissionID] {
		if it.ItemID == itemID {
			return &it, nil
		}
	}
	return nil, apperrors.NewNotFoundError("item " + itemID + " not found")
}

func (s *Store) FindItemsByCommissionID(_ context.Context, commissionID string) ([]domain.CommissionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.CommissionItem{}, s.items[commissionID]...), nil
}

func (s *Store) SaveItem(_ context.Context, item domain.CommissionItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.commissions[item.CommissionID]; !ok {
		return apperrors.NewValidationFailedError("commission or article does not exist")
	}
	if item.ArticleID != nil {
		if _, ok := s.articles[*item.ArticleID]; !ok {
			return apperrors.NewValidationFailedError("commission or article does not exist")
		}
	}
	s.items[item.CommissionID] = append(s.items[item.CommissionID], item)
	return nil
}

func (s *Store) UpdateItem(_ context.Context, item domain.CommissionItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.items[item.CommissionID]
	for i := range items {
		if items[i].ItemID == item.ItemID {
			items[i] = item
			return nil
		}
	}
	return apperrors.NewNotFoundError("item " + item.ItemID + " not found")
}

func (s *Store) DeleteItem(_ context.Context, commissionID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.items[commissionID]
	for i := range items {
		if items[i].ItemID == itemID {
			s.items[commissionID] = append(items[:i:i], items[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError("item " + itemID + " not found")
}

// --- events ---

func (s *Store) AppendEvent(_ context.Context, event domain.CommissionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// newestFirst returns the events matching keep, newest first.
func (s *Store) newestFirst(keep func(domain.CommissionEvent) bool) []domain.CommissionEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.CommissionEvent{}
	for _, e := range s.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return strings.Compare(out[i].EventID, out[j].EventID) > 0
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Store) ListEventsByCommissionID(_ context.Context, commissionID string, limit int, nextToken *string) ([]domain.CommissionEvent, *string, error) {
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationFailedError(err.Error())
		}
		cursor = &c
	}
	events := s.newestFirst(func(e domain.CommissionEvent) bool {
		if e.CommissionID != commissionID {
			return false
		}
		return cursor == nil || cursor.After(e.CreatedAt, e.EventID)
	})
	if len(events) <= limit {
		return events, nil, nil
	}
	events = events[:limit]
	last := events[len(events)-1]
	token := pagination.EncodeToken(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.EventID})
	return events, &token, nil
}

func (s *Store) ListRecentEventsByAction(_ context.Context, action domain.EventAction, limit int) ([]domain.CommissionEvent, error) {
	events := s.newestFirst(func(e domain.CommissionEvent) bool { return e.Action == action })
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// --- articles, movements, suppliers ---

func (s *Store) FindArticlesByIDs(_ context.Context, articleIDs []string) (map[string]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.Article, len(articleIDs))
	for _, id := range articleIDs {
		if a, ok := s.articles[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (s *Store) FindArticleForUpdate(_ context.Context, articleID string) (*domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.articles[articleID]
	if !ok {
		return nil, apperrors.NewNotFoundError("article " + articleID + " not found")
	}
	return &a, nil
}

func (s *Store) SetArticleStock(_ context.Context, articleID string, stock int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[articleID]
	if !ok {
		return apperrors.NewNotFoundError("article " + articleID + " not found")
	}
	a.Stock = stock
	s.articles[articleID] = a
	return nil
}

func (s *Store) AppendMovement(_ context.Context, movement domain.StockMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movements = append(s.movements, movement)
	return nil
}

func (s *Store) ListMovementsByArticle(_ context.Context, articleID string, limit int) ([]domain.StockMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.StockMovement{}
	for i := len(s.movements) - 1; i >= 0; i-- {
		if s.movements[i].ArticleID == articleID {
			out = append(out, s.movements[i])
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *Store) FindSupplierByID(_ context.Context, supplierID string) (*domain.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sup, ok := s.suppliers[supplierID]
	if !ok {
		return nil, apperrors.NewNotFoundError("supplier " + supplierID + " not found")
	}
	return &sup, nil
}
