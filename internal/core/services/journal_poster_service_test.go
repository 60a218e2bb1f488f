package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/SscSPs/pos_posting_engine/internal/apperrors"
	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	"github.com/stretchr/testify/suite"
)

type JournalPosterTestSuite struct {
	suite.Suite
	fx  fixture
	ctx context.Context
}

func (suite *JournalPosterTestSuite) SetupTest() {
	suite.fx = newFixture(suite.T(), testConfig())
	suite.ctx = context.Background()
	seedProduct(suite.fx.store, "p1", "10")
}

func TestJournalPosterTestSuite(t *testing.T) {
	suite.Run(t, new(JournalPosterTestSuite))
}

func (suite *JournalPosterTestSuite) TestPost_SaleWithCost() {
	seedSale(suite.fx.store, "t1", "p1", "2", "2500", "1000")

	result, err := suite.fx.services.Journal.Post(suite.ctx, "t1", testUser)
	suite.Require().NoError(err)
	suite.False(result.NoOp)

	entry := result.Entry
	suite.Require().Len(entry.Lines, 4)
	suite.Equal(domain.ReferenceTypeTransaction, entry.ReferenceType)
	suite.Equal("t1", entry.ReferenceID)
	suite.Equal(domain.Posted, entry.Status)

	expected := []struct {
		code   string
		debit  string
		credit string
	}{
		{"1010", "5000", "0"},
		{"4000", "0", "5000"},
		{"5000", "2000", "0"},
		{"1200", "0", "2000"},
	}
	for i, want := range expected {
		line := entry.Lines[i]
		suite.Equal(want.code, line.AccountCode, "line %d", i)
		requireDecimal(suite.T(), want.debit, line.Debit, i)
		requireDecimal(suite.T(), want.credit, line.Credit, i)
	}

	debits, credits := entry.Totals()
	suite.True(debits.Equal(credits))

	suite.Require().Len(result.Movements, 1)
	mv := result.Movements[0]
	suite.Equal(domain.MovementSale, mv.MovementType)
	requireDecimal(suite.T(), "-2", mv.Quantity)
	requireDecimal(suite.T(), "10", mv.StockBefore)
	requireDecimal(suite.T(), "8", mv.StockAfter)
	suite.Equal("TXN-t1", mv.ReferenceNumber)

	txn, err := suite.fx.repos.Readers.Transactions.FindTransactionByID(suite.ctx, "t1")
	suite.Require().NoError(err)
	suite.True(txn.JournalEntryCreated)
	suite.Equal(entry.EntryNumber, txn.JournalEntryReference)
}

func (suite *JournalPosterTestSuite) TestPost_SaleWithoutCostHasSinglePair() {
	seedSale(suite.fx.store, "t1", "p1", "1", "300", "0")

	result, err := suite.fx.services.Journal.Post(suite.ctx, "t1", testUser)
	suite.Require().NoError(err)
	suite.Len(result.Entry.Lines, 2)
}

func (suite *JournalPosterTestSuite) TestPost_Purchase() {
	txn := seedSale(suite.fx.store, "t1", "p1", "5", "100", "100")
	txn.Type = domain.TransactionPurchase
	txn.FlowDirection = domain.FlowOutward
	suite.fx.store.PutTransaction(txn)

	result, err := suite.fx.services.Journal.Post(suite.ctx, "t1", testUser)
	suite.Require().NoError(err)
	suite.Require().Len(result.Entry.Lines, 2)
	suite.Equal("1200", result.Entry.Lines[0].AccountCode)
	requireDecimal(suite.T(), "500", result.Entry.Lines[0].Debit)
	suite.Equal("1010", result.Entry.Lines[1].AccountCode)
	requireDecimal(suite.T(), "500", result.Entry.Lines[1].Credit)

	suite.Require().Len(result.Movements, 1)
	requireDecimal(suite.T(), "15", result.Movements[0].StockAfter)
}

func (suite *JournalPosterTestSuite) TestPost_IsIdempotent() {
	seedSale(suite.fx.store, "t1", "p1", "2", "2500", "1000")

	first, err := suite.fx.services.Journal.Post(suite.ctx, "t1", testUser)
	suite.Require().NoError(err)
	second, err := suite.fx.services.Journal.Post(suite.ctx, "t1", testUser)
	suite.Require().NoError(err)

	suite.True(second.NoOp)
	suite.Equal(first.Entry.EntryID, second.Entry.EntryID)
	suite.Equal(1, suite.fx.store.EntryCount())

	movements, err := suite.fx.services.StockLedger.ListMovements(suite.ctx, "p1")
	suite.Require().NoError(err)
	suite.Len(movements, 1)
}

func (suite *JournalPosterTestSuite) TestPost_ConcurrentCallersPostOnce() {
	seedSale(suite.fx.store, "t1", "p1", "2", "2500", "1000")

	const callers = 16
	var (
		wg      sync.WaitGroup
		posted  atomic.Int32
		noOps   atomic.Int32
		failure atomic.Value
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := suite.fx.services.Journal.Post(suite.ctx, "t1", testUser)
			if err != nil {
				failure.Store(err)
				return
			}
			if result.NoOp {
				noOps.Add(1)
			} else {
				posted.Add(1)
			}
		}()
	}
	wg.Wait()

	suite.Nil(failure.Load())
	suite.Equal(int32(1), posted.Load())
	suite.Equal(int32(callers-1), noOps.Load())
	suite.Equal(1, suite.fx.store.EntryCount())
}

func (suite *JournalPosterTestSuite) TestPost_InsufficientStockRollsBackEverything() {
	seedSale(suite.fx.store, "t1", "p1", "11", "10", "5")

	_, err := suite.fx.services.Journal.Post(suite.ctx, "t1", testUser)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)

	suite.Equal(0, suite.fx.store.EntryCount())
	txn, err := suite.fx.repos.Readers.Transactions.FindTransactionByID(suite.ctx, "t1")
	suite.Require().NoError(err)
	suite.False(txn.JournalEntryCreated)

	movements, err := suite.fx.services.StockLedger.ListMovements(suite.ctx, "p1")
	suite.Require().NoError(err)
	suite.Empty(movements)
}

func (suite *JournalPosterTestSuite) TestPost_RejectsUnpostableTransactions() {
	pending := seedSale(suite.fx.store, "pending", "p1", "1", "10", "5")
	pending.Status = domain.TransactionPending
	suite.fx.store.PutTransaction(pending)

	adjustment := seedSale(suite.fx.store, "adj", "p1", "1", "10", "5")
	adjustment.Type = domain.TransactionAdjustment
	suite.fx.store.PutTransaction(adjustment)

	_, err := suite.fx.services.Journal.Post(suite.ctx, "pending", testUser)
	suite.ErrorIs(err, apperrors.ErrInvalidState)

	_, err = suite.fx.services.Journal.Post(suite.ctx, "adj", testUser)
	suite.ErrorIs(err, apperrors.ErrUnsupportedTransaction)

	_, err = suite.fx.services.Journal.Post(suite.ctx, "missing", testUser)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.fx.services.Journal.Post(suite.ctx, "", testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalPosterTestSuite) TestPost_UntrackedProductSkipsStock() {
	suite.fx.store.PutProduct(domain.Product{ProductID: "service", OwnerID: testOwner, CurrentStock: dec("0")})
	seedSale(suite.fx.store, "t1", "service", "1", "150", "0")

	result, err := suite.fx.services.Journal.Post(suite.ctx, "t1", testUser)
	suite.Require().NoError(err)
	suite.Empty(result.Movements)
}

func (suite *JournalPosterTestSuite) TestPost_RetriesTransientConflicts() {
	seedSale(suite.fx.store, "t1", "p1", "1", "10", "5")

	var calls atomic.Int32
	suite.fx.store.FaultHook = func(op string) error {
		if op == "SaveJournalEntry" && calls.Add(1) == 1 {
			return fmt.Errorf("%w: simulated serialization failure", apperrors.ErrRetryable)
		}
		return nil
	}

	result, err := suite.fx.services.Journal.Post(suite.ctx, "t1", testUser)
	suite.Require().NoError(err)
	suite.False(result.NoOp)
	suite.Equal(int32(2), calls.Load())
	suite.Equal(1, suite.fx.store.EntryCount())
}

func (suite *JournalPosterTestSuite) TestPost_GivesUpAfterMaxAttempts() {
	seedSale(suite.fx.store, "t1", "p1", "1", "10", "5")

	var calls atomic.Int32
	suite.fx.store.FaultHook = func(op string) error {
		if op == "SaveJournalEntry" {
			calls.Add(1)
			return fmt.Errorf("%w: simulated lock timeout", apperrors.ErrRetryable)
		}
		return nil
	}

	_, err := suite.fx.services.Journal.Post(suite.ctx, "t1", testUser)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConcurrencyConflict)
	suite.False(errors.Is(err, apperrors.ErrRetryable))
	suite.Equal(int32(3), calls.Load())
	suite.Equal(0, suite.fx.store.EntryCount())

	product, err := suite.fx.repos.Readers.Products.FindProductForUpdate(suite.ctx, "p1")
	suite.Require().NoError(err)
	requireDecimal(suite.T(), "10", product.CurrentStock)
}

func (suite *JournalPosterTestSuite) TestGetJournalEntry() {
	seedSale(suite.fx.store, "t1", "p1", "1", "10", "5")
	result, err := suite.fx.services.Journal.Post(suite.ctx, "t1", testUser)
	suite.Require().NoError(err)

	entry, err := suite.fx.services.Journal.GetJournalEntry(suite.ctx, result.Entry.EntryID)
	suite.Require().NoError(err)
	suite.Equal(result.Entry.EntryNumber, entry.EntryNumber)

	_, err = suite.fx.services.Journal.GetJournalEntry(suite.ctx, "nope")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}
