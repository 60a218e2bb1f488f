package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/pos_posting_engine/internal/apperrors"
	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/pos_posting_engine/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// refundService composes the compensating records of a sale refund.
type refundService struct {
	BaseService
	uow         unitOfWork
	poster      *journalPosterService
	stock       *stockLedgerService
	validate    *validator.Validate
	reverseCOGS bool
}

// RefundOption configures the refund service.
type RefundOption func(*refundService)

// WithCOGSReversalOnFullRefund controls whether refunding a whole sale in one go
// also moves its cost of goods back into inventory. Partial refunds never do.
func WithCOGSReversalOnFullRefund(enabled bool) RefundOption {
	return func(s *refundService) {
		s.reverseCOGS = enabled
	}
}

func newRefundService(base BaseService, uow unitOfWork, poster *journalPosterService, stock *stockLedgerService, options ...RefundOption) *refundService {
	s := &refundService{
		BaseService: base,
		uow:         uow,
		poster:      poster,
		stock:       stock,
		validate:    dto.NewValidator(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.RefundSvc = (*refundService)(nil)

// Reverse refunds all or part of a posted sale. A nil amount refunds whatever
// has not been refunded yet.
func (s *refundService) Reverse(ctx context.Context, req dto.RefundRequest, userID string) (*dto.RefundResult, error) {
	if req.TransactionID == "" {
		return nil, apperrors.NewValidationError("transaction ID is required")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "invalid refund request", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("refund amount must be positive")
	}
	if req.Amount != nil && !dto.IsWholeCents(*req.Amount) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("refund amount %s has more than two decimal places", req.Amount.String()))
	}

	var result *dto.RefundResult
	err := s.uow.run(ctx, "refund_transaction", func(ctx context.Context, repos portsrepo.Store) error {
		var err error
		result, err = s.reverse(ctx, repos, req, userID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to refund transaction", slog.String("transaction_id", req.TransactionID))
		return nil, err
	}

	s.Metrics.ObserveRefund(result.FullRefund)
	s.LogInfo(ctx, "Transaction refunded",
		slog.String("transaction_id", req.TransactionID),
		slog.String("return_transaction_id", result.ReturnTransaction.TransactionID),
		slog.String("amount", result.ReturnTransaction.TotalAmount.StringFixed(2)),
		slog.Bool("full_refund", result.FullRefund))
	return result, nil
}

func (s *refundService) reverse(ctx context.Context, repos portsrepo.Store, req dto.RefundRequest, userID string) (*dto.RefundResult, error) {
	original, err := repos.Transactions.FindTransactionForUpdate(ctx, req.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction %s: %w", req.TransactionID, err)
	}
	if original.Type != domain.TransactionSale {
		return nil, fmt.Errorf("%w: only sale transactions can be refunded, %s is a %s", apperrors.ErrUnsupportedTransaction, original.TransactionID, original.Type)
	}
	if !original.JournalEntryCreated {
		return nil, fmt.Errorf("%w: transaction %s has not been posted yet", apperrors.ErrInvalidState, original.TransactionID)
	}

	refundable := original.RefundableAmount().RoundBank(2)
	amount := refundable
	if req.Amount != nil {
		amount = *req.Amount
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: transaction %s has nothing left to refund", apperrors.ErrValidation, original.TransactionID)
	}
	if amount.GreaterThan(refundable) {
		return nil, fmt.Errorf("%w: refund of %s exceeds the refundable %s of transaction %s",
			apperrors.ErrValidation, amount.StringFixed(2), refundable.StringFixed(2), original.TransactionID)
	}

	firstRefund := original.RefundedAmount.IsZero()
	fullRefund := firstRefund && amount.Equal(original.TotalAmount.RoundBank(2))

	now := s.Now()
	returnTxn := s.returnTransaction(original, amount, req.Reason, firstRefund, userID, now)
	if err := repos.Transactions.SaveTransaction(ctx, *returnTxn); err != nil {
		return nil, fmt.Errorf("failed to save return transaction for %s: %w", original.TransactionID, err)
	}

	// Goods come back once, with the first refund of the sale.
	var movements []domain.StockMovement
	if firstRefund {
		movements, err = s.stock.applyItems(ctx, repos, returnTxn, 1, domain.MovementReturn, userID)
		if err != nil {
			return nil, err
		}
	}

	var draft entryDraft
	revenue, cash, err := s.poster.resolvePair(ctx, repos, original.OwnerID, domain.RoleSalesRevenue, domain.RoleCash)
	if err != nil {
		return nil, err
	}
	draft.pair(revenue, cash, amount, "Refund "+original.TransactionNumber)

	if fullRefund && s.reverseCOGS {
		if cost := original.CostOfGoods().RoundBank(2); cost.IsPositive() {
			inventory, cogs, err := s.poster.resolvePair(ctx, repos, original.OwnerID, domain.RoleInventory, domain.RoleCOGS)
			if err != nil {
				return nil, err
			}
			draft.pair(inventory, cogs, cost, "Cost of goods returned "+original.TransactionNumber)
		}
	}

	entry, err := s.poster.saveEntry(ctx, repos, returnTxn, &draft, "Refund - "+original.TransactionNumber, userID)
	if err != nil {
		return nil, err
	}
	if err := repos.Transactions.AddRefundedAmount(ctx, original.TransactionID, amount, userID); err != nil {
		return nil, fmt.Errorf("failed to record refunded amount on transaction %s: %w", original.TransactionID, err)
	}

	returnTxn.JournalEntryCreated = true
	returnTxn.JournalEntryReference = entry.EntryNumber
	return &dto.RefundResult{
		ReturnTransaction: returnTxn,
		Entry:             entry,
		Movements:         movements,
		FullRefund:        fullRefund,
	}, nil
}

// returnTransaction builds the compensating return. It carries copies of the
// original items only when the goods are being restocked.
func (s *refundService) returnTransaction(original *domain.Transaction, amount decimal.Decimal, reason string, withItems bool, userID string, now time.Time) *domain.Transaction {
	if reason == "" {
		reason = "Refund"
	}
	originalID := original.TransactionID
	txn := &domain.Transaction{
		TransactionID:         uuid.NewString(),
		TransactionNumber:     "RTN-" + ulid.Make().String(),
		OwnerID:               original.OwnerID,
		Type:                  domain.TransactionReturn,
		FlowDirection:         domain.FlowOutward,
		Status:                domain.TransactionCompleted,
		TotalAmount:           amount,
		RefundedAmount:        decimal.Zero,
		OriginalTransactionID: &originalID,
		Notes:                 fmt.Sprintf("Refund for %s: %s", original.TransactionNumber, reason),
		TransactionDate:       now,
		AuditFields:           domain.NewAuditFields(userID, now),
	}
	if withItems {
		for _, item := range original.Items {
			item.ItemID = uuid.NewString()
			item.TransactionID = txn.TransactionID
			txn.Items = append(txn.Items, item)
		}
	}
	return txn
}
