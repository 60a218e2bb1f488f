package repositories

import (
	"context"

	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for POS transactions.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with its items.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionForUpdate retrieves a transaction with its items and holds a
	// row lock on it until the surrounding unit of work ends.
	FindTransactionForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error)
}

// TransactionWriter defines the writes the engine makes to transactions.
type TransactionWriter interface {
	// SaveTransaction inserts a new transaction and its items.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// MarkJournalPosted sets the journal flag and entry reference.
	MarkJournalPosted(ctx context.Context, transactionID, entryNumber, userID string) error

	// AddRefundedAmount increases the cumulative refunded amount of a transaction.
	AddRefundedAmount(ctx context.Context, transactionID string, amount decimal.Decimal, userID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
