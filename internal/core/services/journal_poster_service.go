package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/pos_posting_engine/internal/apperrors"
	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/pos_posting_engine/internal/dto"
)

// journalPosterService derives balanced journal entries from completed transactions.
type journalPosterService struct {
	BaseService
	repos    portsrepo.RepositoryProvider
	uow      unitOfWork
	accounts *chartOfAccountsService
	stock    *stockLedgerService
}

func newJournalPosterService(base BaseService, repos portsrepo.RepositoryProvider, uow unitOfWork, accounts *chartOfAccountsService, stock *stockLedgerService) *journalPosterService {
	return &journalPosterService{
		BaseService: base,
		repos:       repos,
		uow:         uow,
		accounts:    accounts,
		stock:       stock,
	}
}

var _ portssvc.JournalSvcFacade = (*journalPosterService)(nil)

// GetJournalEntry retrieves a posted entry with its lines.
func (s *journalPosterService) GetJournalEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	if entryID == "" {
		return nil, apperrors.NewValidationError("entry ID is required")
	}
	entry, err := s.repos.Readers.Journals.FindJournalEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entry %s: %w", entryID, err)
	}
	return entry, nil
}

// Post writes the journal entry and stock movements of a completed transaction.
func (s *journalPosterService) Post(ctx context.Context, transactionID string, userID string) (*dto.PostResult, error) {
	if transactionID == "" {
		return nil, apperrors.NewValidationError("transaction ID is required")
	}

	var (
		result  *dto.PostResult
		txnType domain.TransactionType
	)
	err := s.uow.run(ctx, "post_transaction", func(ctx context.Context, repos portsrepo.Store) error {
		txn, err := repos.Transactions.FindTransactionForUpdate(ctx, transactionID)
		if err != nil {
			return fmt.Errorf("failed to load transaction %s: %w", transactionID, err)
		}
		txnType = txn.Type

		if txn.JournalEntryCreated {
			entry, err := repos.Journals.FindJournalEntryByReference(ctx, domain.ReferenceTypeTransaction, txn.TransactionID)
			if err != nil {
				return fmt.Errorf("transaction %s is flagged as posted but its entry could not be read: %w", txn.TransactionID, err)
			}
			result = &dto.PostResult{Entry: entry, NoOp: true}
			return nil
		}

		result, err = s.post(ctx, repos, txn, userID)
		return err
	})
	s.Metrics.ObservePosting(string(txnType), result != nil && result.NoOp, err)
	if err != nil {
		s.LogError(ctx, err, "Failed to post transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	if result.NoOp {
		s.LogDebug(ctx, "Transaction already posted", slog.String("transaction_id", transactionID))
	} else {
		s.LogInfo(ctx, "Transaction posted",
			slog.String("transaction_id", transactionID),
			slog.String("entry_number", result.Entry.EntryNumber),
			slog.Int("stock_movements", len(result.Movements)))
	}
	return result, nil
}

// post runs inside the unit of work that holds the transaction row lock.
func (s *journalPosterService) post(ctx context.Context, repos portsrepo.Store, txn *domain.Transaction, userID string) (*dto.PostResult, error) {
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if txn.Status != domain.TransactionCompleted {
		return nil, fmt.Errorf("%w: transaction %s is %s, only completed transactions are posted", apperrors.ErrInvalidState, txn.TransactionID, txn.Status)
	}

	var (
		draft       entryDraft
		description string
		movements   []domain.StockMovement
		err         error
	)
	switch txn.Type {
	case domain.TransactionSale:
		description = "Sale - " + txn.TransactionNumber
		if err = s.saleLines(ctx, repos, txn, &draft); err != nil {
			return nil, err
		}
		movements, err = s.stock.applyItems(ctx, repos, txn, -1, domain.MovementSale, userID)
	case domain.TransactionPurchase:
		description = "Purchase - " + txn.TransactionNumber
		if err = s.purchaseLines(ctx, repos, txn, &draft); err != nil {
			return nil, err
		}
		movements, err = s.stock.applyItems(ctx, repos, txn, 1, domain.MovementPurchase, userID)
	default:
		return nil, fmt.Errorf("%w: %s transactions are not posted directly", apperrors.ErrUnsupportedTransaction, txn.Type)
	}
	if err != nil {
		return nil, err
	}

	entry, err := s.saveEntry(ctx, repos, txn, &draft, description, userID)
	if err != nil {
		return nil, err
	}
	return &dto.PostResult{Entry: entry, Movements: movements}, nil
}

// saveEntry persists the draft and flags txn as posted.
func (s *journalPosterService) saveEntry(ctx context.Context, repos portsrepo.Store, txn *domain.Transaction, draft *entryDraft, description, userID string) (*domain.JournalEntry, error) {
	entry, err := draft.build(txn, description, userID, s.Now())
	if err != nil {
		return nil, err
	}
	if err := repos.Journals.SaveJournalEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save journal entry for transaction %s: %w", txn.TransactionID, err)
	}
	if err := repos.Transactions.MarkJournalPosted(ctx, txn.TransactionID, entry.EntryNumber, userID); err != nil {
		return nil, fmt.Errorf("failed to flag transaction %s as posted: %w", txn.TransactionID, err)
	}
	return &entry, nil
}

// saleLines debits cash and credits revenue for the total, then moves the
// cost of the goods sold out of inventory when the items carry a cost.
func (s *journalPosterService) saleLines(ctx context.Context, repos portsrepo.Store, txn *domain.Transaction, draft *entryDraft) error {
	total := txn.TotalAmount.RoundBank(2)
	if total.IsPositive() {
		cash, revenue, err := s.resolvePair(ctx, repos, txn.OwnerID, domain.RoleCash, domain.RoleSalesRevenue)
		if err != nil {
			return err
		}
		draft.pair(cash, revenue, total, "Sale "+txn.TransactionNumber)
	}

	cost := txn.CostOfGoods().RoundBank(2)
	if cost.IsPositive() {
		cogs, inventory, err := s.resolvePair(ctx, repos, txn.OwnerID, domain.RoleCOGS, domain.RoleInventory)
		if err != nil {
			return err
		}
		draft.pair(cogs, inventory, cost, "Cost of goods sold "+txn.TransactionNumber)
	}
	return nil
}

// purchaseLines debits inventory and credits cash for the total.
func (s *journalPosterService) purchaseLines(ctx context.Context, repos portsrepo.Store, txn *domain.Transaction, draft *entryDraft) error {
	total := txn.TotalAmount.RoundBank(2)
	if !total.IsPositive() {
		return nil
	}
	inventory, cash, err := s.resolvePair(ctx, repos, txn.OwnerID, domain.RoleInventory, domain.RoleCash)
	if err != nil {
		return err
	}
	draft.pair(inventory, cash, total, "Purchase "+txn.TransactionNumber)
	return nil
}

func (s *journalPosterService) resolvePair(ctx context.Context, repos portsrepo.Store, ownerID string, debitRole, creditRole domain.AccountRole) (*domain.Account, *domain.Account, error) {
	debit, err := s.accounts.resolve(ctx, repos, ownerID, debitRole)
	if err != nil {
		return nil, nil, err
	}
	credit, err := s.accounts.resolve(ctx, repos, ownerID, creditRole)
	if err != nil {
		return nil, nil, err
	}
	return debit, credit, nil
}
