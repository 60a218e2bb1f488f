package repositories

import (
	"context"

	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
)

// AccountReader defines read operations for ledger accounts.
type AccountReader interface {
	// FindAccountByCode returns apperrors.ErrNotFound when the owner has no account with that code.
	FindAccountByCode(ctx context.Context, ownerID, code string) (*domain.Account, error)
}

// AccountWriter defines write operations for ledger accounts.
type AccountWriter interface {
	// InsertAccountIfAbsent creates the account unless (owner_id, code) already exists.
	// It never overwrites an existing row.
	InsertAccountIfAbsent(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
