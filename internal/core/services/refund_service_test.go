package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/pos_posting_engine/internal/apperrors"
	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	"github.com/SscSPs/pos_posting_engine/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RefundServiceTestSuite struct {
	suite.Suite
	fx  fixture
	ctx context.Context
}

func (suite *RefundServiceTestSuite) SetupTest() {
	suite.setup(false)
}

func (suite *RefundServiceTestSuite) setup(reverseCOGS bool) {
	cfg := testConfig()
	cfg.Posting.ReverseCOGSOnFullRefund = reverseCOGS
	suite.fx = newFixture(suite.T(), cfg)
	suite.ctx = context.Background()

	seedProduct(suite.fx.store, "p1", "10")
	seedSale(suite.fx.store, "t1", "p1", "2", "2500", "1000")
	_, err := suite.fx.services.Journal.Post(suite.ctx, "t1", testUser)
	suite.Require().NoError(err)
}

func TestRefundServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RefundServiceTestSuite))
}

func amountPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func (suite *RefundServiceTestSuite) stock() decimal.Decimal {
	product, err := suite.fx.repos.Readers.Products.FindProductForUpdate(suite.ctx, "p1")
	suite.Require().NoError(err)
	return product.CurrentStock
}

func (suite *RefundServiceTestSuite) TestReverse_FullRefundKeepsCOGSByDefault() {
	result, err := suite.fx.services.Refund.Reverse(suite.ctx, dto.RefundRequest{
		TransactionID: "t1",
		Amount:        amountPtr("5000"),
		Reason:        "damaged",
	}, testUser)
	suite.Require().NoError(err)
	suite.True(result.FullRefund)

	ret := result.ReturnTransaction
	suite.Equal(domain.TransactionReturn, ret.Type)
	suite.Equal(domain.FlowOutward, ret.FlowDirection)
	suite.True(ret.JournalEntryCreated)
	suite.Require().NotNil(ret.OriginalTransactionID)
	suite.Equal("t1", *ret.OriginalTransactionID)
	suite.Equal("Refund for TXN-t1: damaged", ret.Notes)
	requireDecimal(suite.T(), "5000", ret.TotalAmount)

	lines := result.Entry.Lines
	suite.Require().Len(lines, 2)
	suite.Equal("4000", lines[0].AccountCode)
	requireDecimal(suite.T(), "5000", lines[0].Debit)
	suite.Equal("1010", lines[1].AccountCode)
	requireDecimal(suite.T(), "5000", lines[1].Credit)
	suite.Equal(ret.TransactionID, result.Entry.ReferenceID)

	suite.Require().Len(result.Movements, 1)
	suite.Equal(domain.MovementReturn, result.Movements[0].MovementType)
	requireDecimal(suite.T(), "2", result.Movements[0].Quantity)
	requireDecimal(suite.T(), "10", suite.stock())

	original, err := suite.fx.repos.Readers.Transactions.FindTransactionByID(suite.ctx, "t1")
	suite.Require().NoError(err)
	requireDecimal(suite.T(), "5000", original.RefundedAmount)
}

func (suite *RefundServiceTestSuite) TestReverse_FullRefundReversesCOGSWhenEnabled() {
	suite.setup(true)

	result, err := suite.fx.services.Refund.Reverse(suite.ctx, dto.RefundRequest{TransactionID: "t1"}, testUser)
	suite.Require().NoError(err)
	suite.True(result.FullRefund)

	lines := result.Entry.Lines
	suite.Require().Len(lines, 4)
	suite.Equal("1200", lines[2].AccountCode)
	requireDecimal(suite.T(), "2000", lines[2].Debit)
	suite.Equal("5000", lines[3].AccountCode)
	requireDecimal(suite.T(), "2000", lines[3].Credit)
}

func (suite *RefundServiceTestSuite) TestReverse_PartialRefundsNeverReverseCOGS() {
	suite.setup(true)

	first, err := suite.fx.services.Refund.Reverse(suite.ctx, dto.RefundRequest{TransactionID: "t1", Amount: amountPtr("2000")}, testUser)
	suite.Require().NoError(err)
	suite.False(first.FullRefund)
	suite.Len(first.Entry.Lines, 2)
	suite.Len(first.Movements, 1)
	requireDecimal(suite.T(), "10", suite.stock())

	// The remainder defaults to what is left and does not restock a second time.
	second, err := suite.fx.services.Refund.Reverse(suite.ctx, dto.RefundRequest{TransactionID: "t1"}, testUser)
	suite.Require().NoError(err)
	suite.False(second.FullRefund)
	requireDecimal(suite.T(), "3000", second.ReturnTransaction.TotalAmount)
	suite.Len(second.Entry.Lines, 2)
	suite.Empty(second.Movements)
	requireDecimal(suite.T(), "10", suite.stock())

	_, err = suite.fx.services.Refund.Reverse(suite.ctx, dto.RefundRequest{TransactionID: "t1"}, testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RefundServiceTestSuite) TestReverse_RejectsOverRefund() {
	_, err := suite.fx.services.Refund.Reverse(suite.ctx, dto.RefundRequest{TransactionID: "t1", Amount: amountPtr("5000.01")}, testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.fx.services.Refund.Reverse(suite.ctx, dto.RefundRequest{TransactionID: "t1", Amount: amountPtr("-1")}, testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.Equal(1, suite.fx.store.EntryCount())
	requireDecimal(suite.T(), "8", suite.stock())
}

func (suite *RefundServiceTestSuite) TestReverse_RejectsSubCentAmount() {
	_, err := suite.fx.services.Refund.Reverse(suite.ctx, dto.RefundRequest{TransactionID: "t1", Amount: amountPtr("1000.005")}, testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)

	original, err := suite.fx.repos.Readers.Transactions.FindTransactionByID(suite.ctx, "t1")
	suite.Require().NoError(err)
	suite.True(original.RefundedAmount.IsZero())
	suite.Equal(1, suite.fx.store.EntryCount())

	result, err := suite.fx.services.Refund.Reverse(suite.ctx, dto.RefundRequest{TransactionID: "t1", Amount: amountPtr("1000.50")}, testUser)
	suite.Require().NoError(err)
	requireDecimal(suite.T(), "1000.50", result.ReturnTransaction.TotalAmount)
}

func (suite *RefundServiceTestSuite) TestReverse_RejectsNonSalesAndUnposted() {
	seedSale(suite.fx.store, "unposted", "p1", "1", "10", "5")
	_, err := suite.fx.services.Refund.Reverse(suite.ctx, dto.RefundRequest{TransactionID: "unposted"}, testUser)
	suite.ErrorIs(err, apperrors.ErrInvalidState)

	purchase := seedSale(suite.fx.store, "purchase", "p1", "1", "10", "10")
	purchase.Type = domain.TransactionPurchase
	suite.fx.store.PutTransaction(purchase)
	_, err = suite.fx.services.Journal.Post(suite.ctx, "purchase", testUser)
	suite.Require().NoError(err)

	_, err = suite.fx.services.Refund.Reverse(suite.ctx, dto.RefundRequest{TransactionID: "purchase"}, testUser)
	suite.ErrorIs(err, apperrors.ErrUnsupportedTransaction)
}

func (suite *RefundServiceTestSuite) TestReverse_FailureLeavesNoTrace() {
	suite.fx.store.FaultHook = func(op string) error {
		if op == "AddRefundedAmount" {
			return apperrors.ErrValidation
		}
		return nil
	}

	_, err := suite.fx.services.Refund.Reverse(suite.ctx, dto.RefundRequest{TransactionID: "t1"}, testUser)
	suite.Require().Error(err)
	suite.Equal(1, suite.fx.store.EntryCount())
	requireDecimal(suite.T(), "8", suite.stock())

	movements, err := suite.fx.services.StockLedger.ListMovements(suite.ctx, "p1")
	suite.Require().NoError(err)
	suite.Len(movements, 1)
}
