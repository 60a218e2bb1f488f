package services_test

import (
	"testing"
	"time"

	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/pos_posting_engine/internal/core/services"
	"github.com/SscSPs/pos_posting_engine/internal/metrics"
	"github.com/SscSPs/pos_posting_engine/internal/repositories/memory"
	"github.com/SscSPs/pos_posting_engine/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	testOwner = "shop-1"
	testUser  = "user-1"
)

var fixedNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testConfig() *config.Config {
	return &config.Config{
		Posting: config.PostingConfig{MaxAttempts: 3},
		Loans: config.LoanConfig{
			FirstRepaymentAfterDays: 30,
			DefaultAllocationPolicy: services.PolicyFixedRatio,
			InterestShare:           "0.3",
		},
	}
}

type fixture struct {
	store    *memory.Store
	repos    portsrepo.RepositoryProvider
	services *portssvc.ServiceContainer
	metrics  *metrics.Recorder
}

func newFixture(t *testing.T, cfg *config.Config) fixture {
	t.Helper()
	store := memory.NewStore()
	repos := memory.NewRepositoryProvider(store)
	recorder := metrics.New()
	container, err := services.NewServiceContainer(cfg, repos, recorder, services.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return fixture{store: store, repos: repos, services: container, metrics: recorder}
}

func seedProduct(store *memory.Store, id string, stock string) {
	store.PutProduct(domain.Product{
		ProductID:      id,
		OwnerID:        testOwner,
		Name:           "Product " + id,
		CurrentStock:   dec(stock),
		TrackInventory: true,
	})
}

// seedSale stores a completed sale of qty units of productID.
func seedSale(store *memory.Store, id, productID, qty, unitPrice, unitCost string) domain.Transaction {
	pid := productID
	q, price := dec(qty), dec(unitPrice)
	txn := domain.Transaction{
		TransactionID:     id,
		TransactionNumber: "TXN-" + id,
		OwnerID:           testOwner,
		Type:              domain.TransactionSale,
		FlowDirection:     domain.FlowInward,
		Status:            domain.TransactionCompleted,
		TotalAmount:       q.Mul(price),
		RefundedAmount:    decimal.Zero,
		TransactionDate:   fixedNow,
		Items: []domain.TransactionItem{{
			ItemID:        id + "-item-1",
			TransactionID: id,
			ProductID:     &pid,
			ProductName:   "Product " + productID,
			Quantity:      q,
			UnitPrice:     price,
			UnitCost:      dec(unitCost),
		}},
		AuditFields: domain.NewAuditFields(testUser, fixedNow),
	}
	store.PutTransaction(txn)
	return txn
}

// seedApprovedLoan stores the 100000 at 12% over 180 days with a 2% fee loan.
func seedApprovedLoan(store *memory.Store, id string) {
	store.PutLoan(domain.Loan{
		LoanID:             id,
		LoanNumber:         "LOAN-" + id,
		BorrowerID:         "borrower-1",
		Principal:          dec("100000"),
		InterestRate:       dec("12"),
		TenureDays:         180,
		InterestType:       domain.InterestReducing,
		ProcessingFeeRate:  dec("2"),
		AmountPaid:         decimal.Zero,
		PrincipalPaid:      decimal.Zero,
		InterestPaid:       decimal.Zero,
		OutstandingBalance: decimal.Zero,
		Status:             domain.LoanApproved,
		AuditFields:        domain.NewAuditFields(testUser, fixedNow),
	})
}

// requireDecimal compares decimals by value so 5000 and 5000.00 match.
func requireDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	require.Truef(t, dec(expected).Equal(actual), "expected %s, got %s %v", expected, actual.String(), msgAndArgs)
}
