package memory

import (
	"context"

	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
)

func accountKey(ownerID, code string) string {
	return ownerID + "\x00" + code
}

func (v *view) FindAccountByCode(_ context.Context, ownerID, code string) (*domain.Account, error) {
	defer v.lock()()
	id, ok := v.s.accountByCode[accountKey(ownerID, code)]
	if !ok {
		return nil, notFound("account", code)
	}
	acc := v.s.accounts[id]
	return &acc, nil
}

func (v *view) InsertAccountIfAbsent(_ context.Context, account domain.Account) error {
	defer v.lock()()
	if err := v.fault("InsertAccountIfAbsent"); err != nil {
		return err
	}
	key := accountKey(account.OwnerID, account.Code)
	if _, exists := v.s.accountByCode[key]; exists {
		return nil
	}
	v.s.accounts[account.AccountID] = account
	v.s.accountByCode[key] = account.AccountID
	v.onRollback(func() {
		delete(v.s.accounts, account.AccountID)
		delete(v.s.accountByCode, key)
	})
	return nil
}
