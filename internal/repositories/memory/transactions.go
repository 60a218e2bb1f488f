package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/pos_posting_engine/internal/apperrors"
	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (v *view) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	defer v.lock()()
	return v.transaction(transactionID)
}

// FindTransactionForUpdate needs no extra locking: the unit of work already owns the store.
func (v *view) FindTransactionForUpdate(_ context.Context, transactionID string) (*domain.Transaction, error) {
	defer v.lock()()
	return v.transaction(transactionID)
}

func (v *view) transaction(id string) (*domain.Transaction, error) {
	txn, ok := v.s.transactions[id]
	if !ok {
		return nil, notFound("transaction", id)
	}
	out := cloneTransaction(txn)
	return &out, nil
}

func (v *view) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	defer v.lock()()
	if err := v.fault("SaveTransaction"); err != nil {
		return err
	}
	if _, exists := v.s.transactions[txn.TransactionID]; exists {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
	}
	v.s.transactions[txn.TransactionID] = cloneTransaction(txn)
	v.onRollback(func() { delete(v.s.transactions, txn.TransactionID) })
	return nil
}

func (v *view) MarkJournalPosted(_ context.Context, transactionID, entryNumber, userID string) error {
	defer v.lock()()
	if err := v.fault("MarkJournalPosted"); err != nil {
		return err
	}
	return v.updateTransaction(transactionID, func(txn *domain.Transaction) error {
		txn.JournalEntryCreated = true
		txn.JournalEntryReference = entryNumber
		txn.Touch(userID, now())
		return nil
	})
}

func (v *view) AddRefundedAmount(_ context.Context, transactionID string, amount decimal.Decimal, userID string) error {
	defer v.lock()()
	if err := v.fault("AddRefundedAmount"); err != nil {
		return err
	}
	return v.updateTransaction(transactionID, func(txn *domain.Transaction) error {
		refunded := txn.RefundedAmount.Add(amount)
		if refunded.GreaterThan(txn.TotalAmount) {
			return fmt.Errorf("%w: refunded amount %s would exceed total %s", apperrors.ErrValidation, refunded, txn.TotalAmount)
		}
		txn.RefundedAmount = refunded
		txn.Touch(userID, now())
		return nil
	})
}

func (v *view) updateTransaction(id string, mutate func(*domain.Transaction) error) error {
	prev, ok := v.s.transactions[id]
	if !ok {
		return notFound("transaction", id)
	}
	next := cloneTransaction(prev)
	if err := mutate(&next); err != nil {
		return err
	}
	v.s.transactions[id] = next
	v.onRollback(func() { v.s.transactions[id] = prev })
	return nil
}
