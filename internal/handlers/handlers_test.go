package handlers_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/commission_app/internal/apperrors"
	"github.com/SscSPs/commission_app/internal/core/domain"
	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/internal/dto"
	"github.com/SscSPs/commission_app/internal/export"
	"github.com/SscSPs/commission_app/internal/handlers"
	"github.com/SscSPs/commission_app/internal/middleware"
	"github.com/SscSPs/commission_app/internal/notify"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testUserID = "user-42"

type HandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	jwtSecret   string
	commissions *MockCommissionService
	transitions *MockTransitionService
	prints      *MockPrintQueueService
	audits      *MockAuditService
	trash       *MockTrashService
	returns     *MockReturnService
	stock       *MockStockLedgerService
	broker      *notify.Broker
}

func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "commission-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.commissions = new(MockCommissionService)
	suite.transitions = new(MockTransitionService)
	suite.prints = new(MockPrintQueueService)
	suite.audits = new(MockAuditService)
	suite.trash = new(MockTrashService)
	suite.returns = new(MockReturnService)
	suite.stock = new(MockStockLedgerService)
	suite.broker = notify.NewBroker()

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterV1Routes(v1, &portssvc.ServiceContainer{
		Commission:  suite.commissions,
		Transition:  suite.transitions,
		Return:      suite.returns,
		PrintQueue:  suite.prints,
		Audit:       suite.audits,
		Trash:       suite.trash,
		StockLedger: suite.stock,
		Changes:     suite.broker,
	})
}

func (suite *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(testUserID))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestMissingToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/commissions", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestCreateCommission_Success() {
	articleID := "art-1"
	req := dto.CreateCommissionRequest{
		Name:        "Baustelle",
		WarehouseID: "wh-1",
		Items:       []dto.CreateItemRequest{{Type: domain.ItemTypeStock, ArticleID: &articleID, Amount: 2}},
	}
	created := &domain.CommissionWithItems{
		Commission: domain.Commission{CommissionID: "c-1", Name: "Baustelle", Status: domain.StatusDraft, NeedsLabel: true},
		Items:      []domain.CommissionItem{{ItemID: "i-1", CommissionID: "c-1", Type: domain.ItemTypeStock, ArticleID: &articleID, Amount: 2}},
		Summary:    domain.PickSummary{Total: 1},
	}
	suite.commissions.On("CreateCommission", mock.Anything, req, testUserID).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/commissions", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.CommissionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("c-1", resp.CommissionID)
	suite.Equal("Entwurf", resp.StatusLabel)
	suite.Len(resp.Items, 1)
	suite.commissions.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateCommission_BindError() {
	w := suite.do(http.MethodPost, "/api/v1/commissions", map[string]any{"warehouseID": "wh-1"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.commissions.AssertNotCalled(suite.T(), "CreateCommission", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListCommissions_StatusFilter() {
	suite.commissions.On("ListCommissions", mock.Anything, domain.CommissionFilter{
		WarehouseID: "wh-1",
		Statuses:    []domain.CommissionStatus{domain.StatusReady, domain.StatusMissing},
	}).Return([]domain.Commission{{CommissionID: "c-1", Status: domain.StatusReady}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/commissions?warehouseID=wh-1&status=Ready&status=Missing", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListCommissionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Commissions, 1)

	w = suite.do(http.MethodGet, "/api/v1/commissions?status=Lost", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetCommission_NotFound() {
	suite.commissions.On("GetCommission", mock.Anything, "nope").
		Return(nil, apperrors.NewNotFoundError("commission nope not found")).Once()

	w := suite.do(http.MethodGet, "/api/v1/commissions/nope", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(suite.errorBody(w), "nope")
}

func (suite *HandlerTestSuite) TestSetReady_ErrorMapping() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"not all picked", domain.ErrNotAllPicked, http.StatusConflict, "not all items are picked"},
		{"backorder pending", domain.ErrBackorderPending, http.StatusConflict, "backordered"},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError, "Failed to set commission ready"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.transitions.On("SetReady", mock.Anything, "c-1", testUserID).Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/commissions/c-1/ready", nil)

			suite.Equal(tt.wantStatus, w.Code)
			body := suite.errorBody(w)
			suite.Contains(body, tt.wantBody)
			suite.NotContains(body, "connection reset")
		})
	}
}

func (suite *HandlerTestSuite) TestSetReady_Success() {
	result := &domain.TransitionResult{
		Commission: domain.Commission{CommissionID: "c-1", Status: domain.StatusReady, HasBeenFulfilled: true},
		OldStatus:  domain.StatusPreparing,
		NewStatus:  domain.StatusReady,
		Deductions: []domain.DeductionOutcome{{ArticleID: "art-1", Amount: 2, Result: domain.DeductionDeducted, StockBefore: 5, StockAfter: 3}},
	}
	suite.transitions.On("SetReady", mock.Anything, "c-1", testUserID).Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/commissions/c-1/ready", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TransitionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusReady, resp.NewStatus)
	suite.Require().Len(resp.Deductions, 1)
	suite.Equal(3, resp.Deductions[0].StockAfter)
}

func (suite *HandlerTestSuite) TestSimpleTransitions() {
	routes := map[string]string{
		"reset":             "ResetToPreparing",
		"withdraw":          "Withdraw",
		"revert-withdrawal": "RevertWithdrawal",
		"missing":           "MarkMissing",
	}
	for path, method := range routes {
		suite.transitions.On(method, mock.Anything, "c-1", testUserID).
			Return(&domain.Commission{CommissionID: "c-1"}, nil).Once()

		w := suite.do(http.MethodPost, "/api/v1/commissions/c-1/"+path, nil)

		suite.Equal(http.StatusOK, w.Code, path)
	}
	suite.transitions.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestTogglePicked_NotPickable() {
	suite.transitions.On("TogglePicked", mock.Anything, "c-1", "i-1", testUserID).
		Return(nil, nil, domain.ErrNotPickable).Once()

	w := suite.do(http.MethodPost, "/api/v1/commissions/c-1/items/i-1/pick", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestInitiateReturn() {
	suite.returns.On("InitiateReturn", mock.Anything, "c-1", domain.DispositionReturnSupplier, "defekt", testUserID).
		Return(nil, domain.ErrSupplierRequired).Once()

	w := suite.do(http.MethodPost, "/api/v1/commissions/c-1/return", dto.InitiateReturnRequest{Disposition: "return_supplier", Reason: "defekt"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/commissions/c-1/return", dto.InitiateReturnRequest{Disposition: "scrap"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.returns.AssertNumberOfCalls(suite.T(), "InitiateReturn", 1)
}

func (suite *HandlerTestSuite) TestMarkAsPrinted_StatusCodes() {
	label := domain.PickLabel{CommissionID: "c-1", QRPayload: domain.QRPayload("c-1")}
	missing := fmt.Errorf("commission c-9: %w", apperrors.NewNotFoundError("commission c-9 not found"))

	suite.prints.On("MarkAsPrinted", mock.Anything, []string{"c-1"}, testUserID).Return(&domain.PrintBatchResult{
		Labels: []domain.PickLabel{label}, Printed: []string{"c-1"},
	}, nil).Once()
	suite.prints.On("MarkAsPrinted", mock.Anything, []string{"c-1", "c-9"}, testUserID).Return(&domain.PrintBatchResult{
		Labels: []domain.PickLabel{label}, Printed: []string{"c-1"},
		Failed: []domain.BatchFailure{{CommissionID: "c-9", Error: missing.Error()}},
	}, errors.Join(missing)).Once()
	suite.prints.On("MarkAsPrinted", mock.Anything, []string{"c-9"}, testUserID).Return(&domain.PrintBatchResult{
		Failed: []domain.BatchFailure{{CommissionID: "c-9", Error: missing.Error()}},
	}, errors.Join(missing)).Once()

	w := suite.do(http.MethodPost, "/api/v1/print-queue/print", dto.MarkPrintedRequest{CommissionIDs: []string{"c-1"}})
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/print-queue/print", dto.MarkPrintedRequest{CommissionIDs: []string{"c-1", "c-9"}})
	suite.Equal(http.StatusMultiStatus, w.Code)
	var resp dto.PrintBatchResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal([]string{"c-1"}, resp.Printed)
	suite.Require().Len(resp.Failed, 1)
	suite.Equal("c-9", resp.Failed[0].CommissionID)

	w = suite.do(http.MethodPost, "/api/v1/print-queue/print", dto.MarkPrintedRequest{CommissionIDs: []string{"c-9"}})
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/print-queue/print", dto.MarkPrintedRequest{})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestAuditScanAndExport() {
	suite.audits.On("RecordScan", mock.Anything, "COMM:c-1", testUserID).
		Return(nil, domain.ErrNotScannable).Once()
	suite.audits.On("ExportReport", mock.Anything, "wh-1", mock.Anything).
		Run(func(args mock.Arguments) {
			_ = export.WriteAuditReport(args.Get(2).(io.Writer), domain.Classify("wh-1", nil))
		}).Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/audit/scan", dto.ScanRequest{Payload: "COMM:c-1"})
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/audit/export?warehouseID=wh-1", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(export.ContentTypeXLSX, w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), "audit-wh-1.xlsx")
	suite.NotZero(w.Body.Len())
}

func (suite *HandlerTestSuite) TestRestoreAfterRetention() {
	suite.trash.On("Restore", mock.Anything, "c-1", testUserID).Return(nil, domain.ErrRetentionExpired).Once()
	suite.trash.On("SoftDelete", mock.Anything, "c-2", testUserID).Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/commissions/c-1/restore", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodDelete, "/api/v1/commissions/c-2", nil)
	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestListMovements() {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	suite.stock.On("ListMovements", mock.Anything, "art-1", 10).
		Return([]domain.StockMovement{{MovementID: "m-1", ArticleID: "art-1", Amount: -3, Type: domain.StockMovementCommission, Reference: "ORD-1", CreatedAt: at}}, nil).Once()
	suite.stock.On("ListMovements", mock.Anything, "art-nope", 0).
		Return(nil, apperrors.NewNotFoundError("article art-nope not found")).Once()

	w := suite.do(http.MethodGet, "/api/v1/articles/art-1/movements?limit=10", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ListMovementsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("art-1", resp.ArticleID)
	suite.Require().Len(resp.Movements, 1)
	suite.Equal(-3, resp.Movements[0].Amount)

	w = suite.do(http.MethodGet, "/api/v1/articles/art-nope/movements", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/articles/art-1/movements?limit=9999", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.stock.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestChangeFeedStreamsEvents() {
	srv := httptest.NewServer(suite.router)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/changes?commissionID=c-1", nil)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(testUserID))

	resp, err := srv.Client().Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()
	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Contains(resp.Header.Get("Content-Type"), "text/event-stream")

	suite.Eventually(func() bool { return suite.broker.SubscriberCount() == 1 }, time.Second, 10*time.Millisecond)
	suite.Require().NoError(suite.broker.Publish(ctx, domain.ChangeEvent{CommissionID: "c-2", Action: domain.ActionUpdated}))
	suite.Require().NoError(suite.broker.Publish(ctx, domain.ChangeEvent{CommissionID: "c-1", Action: domain.ActionStatusChanged, Status: domain.StatusReady}))

	scanner := bufio.NewScanner(resp.Body)
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		lines = append(lines, line)
		if strings.HasPrefix(line, "data:") {
			break
		}
	}
	suite.Contains(lines, "event:change")
	data := strings.TrimPrefix(lines[len(lines)-1], "data:")
	var event domain.ChangeEvent
	suite.Require().NoError(json.Unmarshal([]byte(data), &event))
	suite.Equal("c-1", event.CommissionID)
	suite.Equal(domain.StatusReady, event.Status)
}
