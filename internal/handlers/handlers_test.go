package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/pos_posting_engine/internal/apperrors"
	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	portssvc "github.com/SscSPs/pos_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/pos_posting_engine/internal/dto"
	"github.com/SscSPs/pos_posting_engine/internal/handlers"
	"github.com/SscSPs/pos_posting_engine/internal/metrics"
	"github.com/SscSPs/pos_posting_engine/internal/middleware"
	"github.com/SscSPs/pos_posting_engine/internal/utils/accounting"
	"github.com/SscSPs/pos_posting_engine/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetJournalEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) Post(ctx context.Context, transactionID string, userID string) (*dto.PostResult, error) {
	args := m.Called(ctx, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostResult), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock RefundService ---
type MockRefundService struct {
	mock.Mock
}

func (m *MockRefundService) Reverse(ctx context.Context, req dto.RefundRequest, userID string) (*dto.RefundResult, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RefundResult), args.Error(1)
}

var _ portssvc.RefundSvc = (*MockRefundService)(nil)

// --- Mock StockLedgerService ---
type MockStockLedgerService struct {
	mock.Mock
}

func (m *MockStockLedgerService) Apply(ctx context.Context, req dto.StockMovementRequest, userID string) (*domain.StockMovement, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockMovement), args.Error(1)
}

func (m *MockStockLedgerService) ListMovements(ctx context.Context, productID string) ([]domain.StockMovement, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

var _ portssvc.StockLedgerSvcFacade = (*MockStockLedgerService)(nil)

// --- Mock LoanLedgerService ---
type MockLoanLedgerService struct {
	mock.Mock
}

func (m *MockLoanLedgerService) GetLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanLedgerService) ListRepayments(ctx context.Context, loanID string) ([]domain.LoanRepayment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanRepayment), args.Error(1)
}

func (m *MockLoanLedgerService) ComputeTerms(ctx context.Context, in accounting.LoanTermsInput) (accounting.LoanTerms, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(accounting.LoanTerms), args.Error(1)
}

func (m *MockLoanLedgerService) Disburse(ctx context.Context, loanID string, userID string) (*domain.Loan, *domain.LoanRepayment, error) {
	args := m.Called(ctx, loanID, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Loan), args.Get(1).(*domain.LoanRepayment), args.Error(2)
}

func (m *MockLoanLedgerService) ApplyPayment(ctx context.Context, req dto.PaymentRequest, userID string) (*domain.LoanRepayment, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanRepayment), args.Error(1)
}

func (m *MockLoanLedgerService) ReversePayment(ctx context.Context, repaymentID string, reason string, userID string) (*domain.LoanRepayment, error) {
	args := m.Called(ctx, repaymentID, reason, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanRepayment), args.Error(1)
}

func (m *MockLoanLedgerService) TransitionStatus(ctx context.Context, loanID string, to domain.LoanStatus, userID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID, to, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

var _ portssvc.LoanLedgerSvcFacade = (*MockLoanLedgerService)(nil)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	journal   *MockJournalService
	refunds   *MockRefundService
	stock     *MockStockLedgerService
	loans     *MockLoanLedgerService
	jwtSecret string
	userID    string
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	v, ok := binding.Validator.Engine().(*validator.Validate)
	suite.Require().True(ok)
	suite.Require().NoError(dto.RegisterValidators(v))
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = "user-42"
	suite.journal = new(MockJournalService)
	suite.refunds = new(MockRefundService)
	suite.stock = new(MockStockLedgerService)
	suite.loans = new(MockLoanLedgerService)

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterPostingRoutes(v1, suite.journal, suite.refunds)
	handlers.RegisterStockRoutes(v1, suite.stock)
	handlers.RegisterLoanRoutes(v1, suite.loans)
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.journal.AssertExpectations(suite.T())
	suite.refunds.AssertExpectations(suite.T())
	suite.stock.AssertExpectations(suite.T())
	suite.loans.AssertExpectations(suite.T())
}

// generateTestToken creates a signed JWT for testing.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "posting-engine-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) do(method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, url, http.NoBody)
	} else {
		req, _ = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) TestPostTransaction_CreatedThenNoOp() {
	entry := &domain.JournalEntry{EntryID: "e1", EntryNumber: "JE-1"}
	suite.journal.On("Post", mock.Anything, "t1", suite.userID).Return(&dto.PostResult{Entry: entry}, nil).Once()
	suite.journal.On("Post", mock.Anything, "t1", suite.userID).Return(&dto.PostResult{Entry: entry, NoOp: true}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions/t1/post", "")
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/transactions/t1/post", "")
	suite.Equal(http.StatusOK, w.Code)

	var result dto.PostResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &result))
	suite.True(result.NoOp)
	suite.Equal("JE-1", result.Entry.EntryNumber)
}

func (suite *HandlerTestSuite) TestPostTransaction_ErrorMapping() {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("wrap: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("wrap: %w", apperrors.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", apperrors.ErrInsufficientStock), http.StatusUnprocessableEntity},
		{fmt.Errorf("wrap: %w", apperrors.ErrInvalidState), http.StatusConflict},
		{fmt.Errorf("wrap: %w", apperrors.ErrUnsupportedTransaction), http.StatusConflict},
		{fmt.Errorf("wrap: %w", apperrors.ErrConcurrencyConflict), http.StatusConflict},
		{fmt.Errorf("wrap: %w", apperrors.ErrUnbalancedEntry), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		suite.journal.On("Post", mock.Anything, "t1", suite.userID).Return(nil, tt.err).Once()
		w := suite.do(http.MethodPost, "/api/v1/transactions/t1/post", "")
		suite.Equal(tt.status, w.Code, tt.err.Error())
	}
}

func (suite *HandlerTestSuite) TestPostTransaction_ConflictSetsRetryAfter() {
	suite.journal.On("Post", mock.Anything, "t1", suite.userID).Return(nil, apperrors.ErrConcurrencyConflict).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions/t1/post", "")
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("1", w.Header().Get("Retry-After"))
}

func (suite *HandlerTestSuite) TestPostTransaction_Unauthorized() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions/t1/post", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.journal.AssertNotCalled(suite.T(), "Post")
}

func (suite *HandlerTestSuite) TestRefund_PassesPathAndAmount() {
	suite.refunds.On("Reverse", mock.Anything, mock.MatchedBy(func(req dto.RefundRequest) bool {
		return req.TransactionID == "t1" && req.Amount != nil && req.Amount.Equal(decimal.RequireFromString("2000")) && req.Reason == "damaged"
	}), suite.userID).Return(&dto.RefundResult{
		ReturnTransaction: &domain.Transaction{TransactionID: "r1"},
		Entry:             &domain.JournalEntry{EntryNumber: "JE-2"},
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions/t1/refunds", `{"amount": "2000", "reason": "damaged"}`)
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/transactions/t1/refunds", `{"amount": "20.001"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestRefund_EmptyBodyRefundsRemainder() {
	suite.refunds.On("Reverse", mock.Anything, mock.MatchedBy(func(req dto.RefundRequest) bool {
		return req.TransactionID == "t1" && req.Amount == nil
	}), suite.userID).Return(&dto.RefundResult{
		ReturnTransaction: &domain.Transaction{TransactionID: "r1"},
		Entry:             &domain.JournalEntry{EntryNumber: "JE-2"},
		FullRefund:        true,
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions/t1/refunds", "")
	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *HandlerTestSuite) TestGetJournalEntry_NotFound() {
	suite.journal.On("GetJournalEntry", mock.Anything, "missing").Return(nil, apperrors.NewNotFoundError("journal entry missing not found")).Once()

	w := suite.do(http.MethodGet, "/api/v1/journal-entries/missing", "")
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestStockMovement_UsesPathProduct() {
	suite.stock.On("Apply", mock.Anything, mock.MatchedBy(func(req dto.StockMovementRequest) bool {
		return req.ProductID == "p1" && req.Quantity.Equal(decimal.NewFromInt(-2)) && req.MovementType == domain.MovementDamage
	}), suite.userID).Return(&domain.StockMovement{MovementID: "m1", ProductID: "p1"}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/products/p1/movements", `{"productID": "other", "quantity": "-2", "movementType": "damage"}`)
	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *HandlerTestSuite) TestStockMovement_InvalidBody() {
	w := suite.do(http.MethodPost, "/api/v1/products/p1/movements", `{"quantity": "0", "movementType": "damage"}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/products/p1/movements", `{"quantity": "1", "movementType": "theft"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.stock.AssertNotCalled(suite.T(), "Apply")
}

func (suite *HandlerTestSuite) TestListMovements_EmptyIsArray() {
	suite.stock.On("ListMovements", mock.Anything, "p1").Return([]domain.StockMovement(nil), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/products/p1/movements", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"movements": []}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestLoanTerms() {
	suite.loans.On("ComputeTerms", mock.Anything, mock.MatchedBy(func(in accounting.LoanTermsInput) bool {
		return in.TenureDays == 180 && in.InterestType == domain.InterestReducing && in.Principal.Equal(decimal.NewFromInt(100000))
	})).Return(accounting.LoanTerms{MonthlyInstallment: decimal.RequireFromString("17254.84")}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/loans/terms",
		`{"principal": "100000", "interestRate": "12", "tenureDays": 180, "interestType": "reducing", "processingFeeRate": "2"}`)
	suite.Equal(http.StatusOK, w.Code)

	var terms accounting.LoanTerms
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &terms))
	suite.Equal("17254.84", terms.MonthlyInstallment.String())

	w = suite.do(http.MethodPost, "/api/v1/loans/terms", `{"principal": "100000", "tenureDays": 0, "interestType": "reducing"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestApplyPayment() {
	suite.loans.On("ApplyPayment", mock.Anything, mock.MatchedBy(func(req dto.PaymentRequest) bool {
		return req.LoanID == "loan-1" && req.Amount.Equal(decimal.RequireFromString("500.50")) && req.Policy == "interest_first"
	}), suite.userID).Return(&domain.LoanRepayment{RepaymentID: "r1", PaymentReference: "PAY-1"}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/loans/loan-1/payments", `{"amount": "500.50", "policy": "interest_first", "paymentMethod": "cash"}`)
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/loans/loan-1/payments", `{"amount": "-1"}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/loans/loan-1/payments", `{"amount": "100.005"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDisburseAndStatus() {
	loan := &domain.Loan{LoanID: "loan-1", Status: domain.LoanDisbursed}
	suite.loans.On("Disburse", mock.Anything, "loan-1", suite.userID).Return(loan, &domain.LoanRepayment{RepaymentID: "s1"}, nil).Once()
	suite.loans.On("TransitionStatus", mock.Anything, "loan-1", domain.LoanDefaulted, suite.userID).Return(nil, apperrors.ErrInvalidState).Once()

	w := suite.do(http.MethodPost, "/api/v1/loans/loan-1/disburse", "")
	suite.Equal(http.StatusOK, w.Code)

	var resp dto.DisbursementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("s1", resp.ScheduledRepayment.RepaymentID)

	w = suite.do(http.MethodPost, "/api/v1/loans/loan-1/status", `{"status": "defaulted"}`)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestReversePayment() {
	suite.loans.On("ReversePayment", mock.Anything, "r1", "bounced", suite.userID).Return(&domain.LoanRepayment{RepaymentID: "r1", Status: domain.RepaymentReversed}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/loans/loan-1/payments/r1/reverse", `{"reason": "bounced"}`)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/loans/loan-1/payments/r1/reverse", `{}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestRegisterRoutes_HealthAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := &config.Config{JWTSecret: "secret", RateLimit: "10-S"}
	err := handlers.RegisterRoutes(r, cfg, &portssvc.ServiceContainer{}, metrics.New())
	if err != nil {
		t.Fatalf("RegisterRoutes: %v", err)
	}

	for path, want := range map[string]string{"/health": "OK", "/metrics": "go_goroutines"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), want) {
			t.Errorf("%s: status %d, body missing %q", path, w.Code, want)
		}
	}

	badCfg := &config.Config{JWTSecret: "secret", RateLimit: "lots"}
	if err := handlers.RegisterRoutes(gin.New(), badCfg, &portssvc.ServiceContainer{}, metrics.New()); err == nil {
		t.Error("expected an error for an invalid rate limit")
	}
}

func TestRegisterRoutes_SwaggerOnlyOutsideProduction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		production bool
		wantStatus int
	}{
		{"development", false, http.StatusOK},
		{"production", true, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			cfg := &config.Config{JWTSecret: "secret", RateLimit: "10-S", IsProduction: tt.production}
			if err := handlers.RegisterRoutes(r, cfg, &portssvc.ServiceContainer{}, metrics.New()); err != nil {
				t.Fatalf("RegisterRoutes: %v", err)
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
			r.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Fatalf("status %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.production {
				return
			}
			for _, path := range []string{"/transactions/{transactionID}/post", "/loans/{loanID}/payments", `"basePath": "/api/v1"`} {
				if !strings.Contains(w.Body.String(), path) {
					t.Errorf("swagger document is missing %s", path)
				}
			}
		})
	}
}
