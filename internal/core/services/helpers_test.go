package services_test

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/commission_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commission_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/internal/core/services"
	"github.com/SscSPs/commission_app/internal/dto"
	"github.com/SscSPs/commission_app/internal/notify"
	"github.com/SscSPs/commission_app/internal/platform/config"
	"github.com/SscSPs/commission_app/internal/repositories/memory"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	actorID      = "user-1"
	warehouseID  = "wh-1"
	screwsID     = "art-screws"
	drillBitsID  = "art-drill"
	supplierID   = "sup-1"
	supplierName = "Würth"
)

// lifecycleSuite runs the services against the in-memory store with a fixed clock.
type lifecycleSuite struct {
	suite.Suite
	ctx    context.Context
	store  *memory.Store
	repos  portsrepo.RepositoryProvider
	broker *notify.Broker
	now    time.Time
	cfg    *config.Config
	svc    *portssvc.ServiceContainer
}

func (s *lifecycleSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.store.PutArticle(domain.Article{ArticleID: screwsID, Name: "Schrauben M8", Location: "R1-F2", Stock: 10})
	s.store.PutArticle(domain.Article{ArticleID: drillBitsID, Name: "Bohrer 6mm", Location: "R2-F1", Stock: 1})
	s.store.PutSupplier(domain.Supplier{SupplierID: supplierID, Name: supplierName})
	s.repos = memory.NewRepositoryProvider(s.store)
	s.broker = notify.NewBroker()
	s.now = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	s.cfg = &config.Config{PrintHistoryLimit: 50, TrashRetention: 168 * time.Hour}
	s.rebuild()
}

// rebuild recreates the container, e.g. after s.repos was wrapped.
func (s *lifecycleSuite) rebuild() {
	s.svc = services.NewServiceContainer(s.cfg, s.repos, s.broker, s.options()...)
}

func (s *lifecycleSuite) options() []services.ServiceOption {
	return []services.ServiceOption{
		services.WithClock(func() time.Time { return s.now }),
		services.WithNotifier(s.broker),
	}
}

func (s *lifecycleSuite) advance(d time.Duration) {
	s.now = s.now.Add(d)
}

func strPtr(v string) *string { return &v }

func stockItem(articleID string, amount int) dto.CreateItemRequest {
	return dto.CreateItemRequest{Type: domain.ItemTypeStock, ArticleID: strPtr(articleID), Amount: amount}
}

func externalItem(name string) dto.CreateItemRequest {
	return dto.CreateItemRequest{Type: domain.ItemTypeExternal, CustomName: name, ExternalReference: "EXT-1", Amount: 1}
}

func (s *lifecycleSuite) createCommission(name string, items ...dto.CreateItemRequest) *domain.CommissionWithItems {
	c, err := s.svc.Commission.CreateCommission(s.ctx, dto.CreateCommissionRequest{
		Name:        name,
		OrderNumber: "ORD-" + name,
		WarehouseID: warehouseID,
		SupplierID:  strPtr(supplierID),
		Items:       items,
	}, actorID)
	s.Require().NoError(err)
	return c
}

func (s *lifecycleSuite) pickAll(c *domain.CommissionWithItems) {
	for _, it := range c.Items {
		_, item, err := s.svc.Transition.TogglePicked(s.ctx, c.CommissionID, it.ItemID, actorID)
		s.Require().NoError(err)
		s.Require().True(item.IsPicked)
	}
}

// readyCommission creates a commission with one stock line and sets it Ready.
func (s *lifecycleSuite) readyCommission(name string) *domain.CommissionWithItems {
	c := s.createCommission(name, stockItem(screwsID, 1))
	s.pickAll(c)
	_, err := s.svc.Transition.SetReady(s.ctx, c.CommissionID, actorID)
	s.Require().NoError(err)
	return c
}

func (s *lifecycleSuite) reload(commissionID string) domain.Commission {
	c, err := s.store.FindCommissionByID(s.ctx, commissionID)
	s.Require().NoError(err)
	return *c
}

func (s *lifecycleSuite) events(commissionID string) []domain.CommissionEvent {
	events, _, err := s.store.ListEventsByCommissionID(s.ctx, commissionID, 100, nil)
	s.Require().NoError(err)
	return events
}

func countAction(events []domain.CommissionEvent, action domain.EventAction) int {
	n := 0
	for _, e := range events {
		if e.Action == action {
			n++
		}
	}
	return n
}

// failingEventRepo fails AppendEvent for one commission and action.
type failingEventRepo struct {
	portsrepo.CommissionEventRepository
	commissionID string
	action       domain.EventAction
}

var errEventStore = errors.New("event store unavailable")

func (r *failingEventRepo) AppendEvent(ctx context.Context, event domain.CommissionEvent) error {
	if event.CommissionID == r.commissionID && event.Action == r.action {
		return errEventStore
	}
	return r.CommissionEventRepository.AppendEvent(ctx, event)
}

// --- Mock StockLedgerSvc ---
type MockStockLedger struct {
	mock.Mock
}

func (m *MockStockLedger) Deduct(ctx context.Context, articleID string, amount int, reference, actorID string) (domain.DeductionOutcome, error) {
	args := m.Called(ctx, articleID, amount, reference, actorID)
	return args.Get(0).(domain.DeductionOutcome), args.Error(1)
}

func (m *MockStockLedger) ListMovements(ctx context.Context, articleID string, limit int) ([]domain.StockMovement, error) {
	args := m.Called(ctx, articleID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}
