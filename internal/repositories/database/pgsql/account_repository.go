package pgsql

import (
	"context"

	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_posting_engine/internal/core/ports/repositories"
)

// PgxAccountRepository stores ledger accounts.
type PgxAccountRepository struct {
	db DBTX
}

func newPgxAccountRepository(db DBTX) *PgxAccountRepository {
	return &PgxAccountRepository{db: db}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// InsertAccountIfAbsent relies on the (owner_id, code) unique constraint; a
// concurrent creator wins silently and the caller reads its row back.
func (r *PgxAccountRepository) InsertAccountIfAbsent(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (account_id, owner_id, code, name, account_type, category, is_system_account, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (owner_id, code) DO NOTHING;
	`
	_, err := r.db.Exec(ctx, query,
		account.AccountID, account.OwnerID, account.Code, account.Name,
		account.AccountType, account.Category, account.IsSystemAccount, account.CreatedAt,
	)
	return mapError(err, "failed to insert account")
}

// FindAccountByCode retrieves an owner's account by code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, ownerID, code string) (*domain.Account, error) {
	query := `
		SELECT account_id, owner_id, code, name, account_type, category, is_system_account, created_at
		FROM accounts
		WHERE owner_id = $1 AND code = $2;
	`
	var acc domain.Account
	err := r.db.QueryRow(ctx, query, ownerID, code).Scan(
		&acc.AccountID, &acc.OwnerID, &acc.Code, &acc.Name,
		&acc.AccountType, &acc.Category, &acc.IsSystemAccount, &acc.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err, "account "+code+" not found for owner "+ownerID)
	}
	return &acc, nil
}
