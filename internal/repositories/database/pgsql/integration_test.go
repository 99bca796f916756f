//go:build integration

package pgsql_test

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/commission_app/internal/apperrors"
	"github.com/SscSPs/commission_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commission_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/internal/core/services"
	"github.com/SscSPs/commission_app/internal/dto"
	"github.com/SscSPs/commission_app/internal/notify"
	"github.com/SscSPs/commission_app/internal/platform/config"
	"github.com/SscSPs/commission_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/commission_app/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const migrationsPath = "file://../../../../migrations"

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container testcontainers.Container
	pool      *pgxpool.Pool
	repos     portsrepo.RepositoryProvider
}

func TestPostgresIntegration(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "commission",
				"POSTGRES_PASSWORD": "commission",
				"POSTGRES_DB":       "commission",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(s.ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(s.ctx, "5432")
	s.Require().NoError(err)
	url := fmt.Sprintf("postgres://commission:commission@%s:%s/commission?sslmode=disable", host, port.Port())

	_, err = database.RunMigrations(url, migrationsPath, slog.Default())
	s.Require().NoError(err)

	s.pool, err = database.NewPgxPool(s.ctx, url, true)
	s.Require().NoError(err)
	s.repos = pgsql.NewRepositoryProvider(s.pool)
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	database.ClosePgxPool(s.pool)
	if s.container != nil {
		s.NoError(s.container.Terminate(s.ctx))
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE commission_events, stock_movements, commission_items, commissions, articles, suppliers CASCADE`)
	s.Require().NoError(err)
	_, err = s.pool.Exec(s.ctx, `INSERT INTO articles (article_id, name, location, stock) VALUES ('art-1', 'Schrauben M8', 'R1', 5)`)
	s.Require().NoError(err)
	_, err = s.pool.Exec(s.ctx, `INSERT INTO suppliers (supplier_id, name) VALUES ('sup-1', 'Würth')`)
	s.Require().NoError(err)
}

func (s *PostgresIntegrationSuite) services(now *time.Time) *portssvc.ServiceContainer {
	cfg := &config.Config{PrintHistoryLimit: 50, TrashRetention: 168 * time.Hour}
	broker := notify.NewBroker()
	opts := []services.ServiceOption{services.WithNotifier(broker)}
	if now != nil {
		opts = append(opts, services.WithClock(func() time.Time { return *now }))
	}
	return services.NewServiceContainer(cfg, s.repos, broker, opts...)
}

func (s *PostgresIntegrationSuite) TestLifecycleDeductsStockOnce() {
	svc := s.services(nil)
	articleID := "art-1"
	supplierID := "sup-1"

	c, err := svc.Commission.CreateCommission(s.ctx, dto.CreateCommissionRequest{
		Name:        "Integration",
		OrderNumber: "ORD-1",
		WarehouseID: "wh-1",
		SupplierID:  &supplierID,
		Items:       []dto.CreateItemRequest{{Type: domain.ItemTypeStock, ArticleID: &articleID, Amount: 3}},
	}, "user-1")
	s.Require().NoError(err)

	_, _, err = svc.Transition.TogglePicked(s.ctx, c.CommissionID, c.Items[0].ItemID, "user-1")
	s.Require().NoError(err)
	result, err := svc.Transition.SetReady(s.ctx, c.CommissionID, "user-1")
	s.Require().NoError(err)
	s.Require().Len(result.Deductions, 1)
	s.Equal(2, result.Deductions[0].StockAfter)

	_, err = svc.Transition.ResetToPreparing(s.ctx, c.CommissionID, "user-1")
	s.Require().NoError(err)
	_, err = svc.Transition.SetReady(s.ctx, c.CommissionID, "user-1")
	s.Require().NoError(err)

	movements, err := svc.StockLedger.ListMovements(s.ctx, articleID, 10)
	s.Require().NoError(err)
	s.Len(movements, 1)
	var stock int
	s.Require().NoError(s.pool.QueryRow(s.ctx, `SELECT stock FROM articles WHERE article_id = $1`, articleID).Scan(&stock))
	s.Equal(2, stock)

	events, next, err := svc.Commission.ListEvents(s.ctx, c.CommissionID, 3, nil)
	s.Require().NoError(err)
	s.Len(events, 3)
	s.Require().NotNil(next)
	rest, _, err := svc.Commission.ListEvents(s.ctx, c.CommissionID, 100, next)
	s.Require().NoError(err)
	s.NotEmpty(rest)
	s.NotEqual(events[len(events)-1].EventID, rest[0].EventID)
}

func (s *PostgresIntegrationSuite) TestRollbackLeavesNoTrace() {
	svc := s.services(nil)
	articleID := "art-1"
	c, err := svc.Commission.CreateCommission(s.ctx, dto.CreateCommissionRequest{
		Name:        "Rollback",
		WarehouseID: "wh-1",
		Items:       []dto.CreateItemRequest{{Type: domain.ItemTypeStock, ArticleID: &articleID, Amount: 1}},
	}, "user-1")
	s.Require().NoError(err)

	err = s.repos.TxManager.WithinTx(s.ctx, func(ctx context.Context) error {
		commission, err := s.repos.CommissionRepo.FindCommissionForUpdate(ctx, c.CommissionID)
		if err != nil {
			return err
		}
		commission.Name = "changed"
		if err := s.repos.CommissionRepo.UpdateCommission(ctx, *commission); err != nil {
			return err
		}
		return apperrors.NewConflictError("abort")
	})
	s.ErrorIs(err, apperrors.ErrConflict)

	got, err := s.repos.CommissionRepo.FindCommissionByID(s.ctx, c.CommissionID)
	s.Require().NoError(err)
	s.Equal("Rollback", got.Name)
}

func (s *PostgresIntegrationSuite) TestAuditResetAndPurge() {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	svc := s.services(&now)
	articleID := "art-1"

	c, err := svc.Commission.CreateCommission(s.ctx, dto.CreateCommissionRequest{
		Name:        "Audit",
		WarehouseID: "wh-1",
		Items:       []dto.CreateItemRequest{{Type: domain.ItemTypeStock, ArticleID: &articleID, Amount: 1}},
	}, "user-1")
	s.Require().NoError(err)
	_, _, err = svc.Transition.TogglePicked(s.ctx, c.CommissionID, c.Items[0].ItemID, "user-1")
	s.Require().NoError(err)
	_, err = svc.Transition.SetReady(s.ctx, c.CommissionID, "user-1")
	s.Require().NoError(err)
	_, err = svc.Audit.RecordScan(s.ctx, domain.QRPayload(c.CommissionID), "user-1")
	s.Require().NoError(err)

	n, err := svc.Audit.ResetAudit(s.ctx, "wh-1", "user-1")
	s.Require().NoError(err)
	s.Equal(1, n)
	report, err := svc.Audit.Overview(s.ctx, "wh-1")
	s.Require().NoError(err)
	s.Len(report.Open, 1)

	s.Require().NoError(svc.Trash.SoftDelete(s.ctx, c.CommissionID, "user-1"))
	now = now.Add(8 * 24 * time.Hour)
	purged, err := svc.Trash.PurgeExpired(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), purged)

	_, err = s.repos.CommissionRepo.FindCommissionByID(s.ctx, c.CommissionID)
	s.ErrorIs(err, apperrors.ErrNotFound)
	events, _, err := svc.Commission.ListEvents(s.ctx, c.CommissionID, 100, nil)
	s.Require().NoError(err)
	s.NotEmpty(events)
}

func (s *PostgresIntegrationSuite) TestLongActorIDIsStored() {
	svc := s.services(nil)
	articleID := "art-1"
	actor := "auth0|" + strings.Repeat("a", 60)

	c, err := svc.Commission.CreateCommission(s.ctx, dto.CreateCommissionRequest{
		Name:        "Langer Nutzer",
		WarehouseID: "wh-1",
		Items:       []dto.CreateItemRequest{{Type: domain.ItemTypeStock, ArticleID: &articleID, Amount: 1}},
	}, actor)
	s.Require().NoError(err)
	_, _, err = svc.Transition.TogglePicked(s.ctx, c.CommissionID, c.Items[0].ItemID, actor)
	s.Require().NoError(err)
	_, err = svc.Transition.SetReady(s.ctx, c.CommissionID, actor)
	s.Require().NoError(err)

	got, err := s.repos.CommissionRepo.FindCommissionByID(s.ctx, c.CommissionID)
	s.Require().NoError(err)
	s.Equal(actor, got.CreatedBy)
	events, _, err := svc.Commission.ListEvents(s.ctx, c.CommissionID, 1, nil)
	s.Require().NoError(err)
	s.Equal(actor, events[0].UserID)
	movements, err := svc.StockLedger.ListMovements(s.ctx, articleID, 1)
	s.Require().NoError(err)
	s.Equal(actor, movements[0].UserID)
}
