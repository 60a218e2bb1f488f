package services

import (
	"fmt"
	"time"

	"github.com/SscSPs/pos_posting_engine/internal/apperrors"
	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	"github.com/SscSPs/pos_posting_engine/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// entryDraft collects journal lines before they become an entry.
type entryDraft struct {
	lines []domain.JournalEntryLine
}

// pair adds a debit line and a matching credit line for amount.
func (d *entryDraft) pair(debit, credit *domain.Account, amount decimal.Decimal, memo string) {
	d.lines = append(d.lines,
		domain.JournalEntryLine{
			AccountID:   debit.AccountID,
			AccountCode: debit.Code,
			Debit:       amount,
			Credit:      decimal.Zero,
			Memo:        memo,
		},
		domain.JournalEntryLine{
			AccountID:   credit.AccountID,
			AccountCode: credit.Code,
			Debit:       decimal.Zero,
			Credit:      amount,
			Memo:        memo,
		},
	)
}

func (d *entryDraft) empty() bool {
	return len(d.lines) == 0
}

// build verifies the lines balance and stamps identifiers on the entry and its lines.
func (d *entryDraft) build(txn *domain.Transaction, description, userID string, now time.Time) (domain.JournalEntry, error) {
	if d.empty() {
		return domain.JournalEntry{}, fmt.Errorf("%w: transaction %s has no amount to post", apperrors.ErrValidation, txn.TransactionID)
	}
	if err := accounting.ValidateEntryBalance(d.lines); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("refusing to post transaction %s: %w", txn.TransactionID, err)
	}

	entry := domain.JournalEntry{
		EntryID:       uuid.NewString(),
		EntryNumber:   "JE-" + ulid.Make().String(),
		OwnerID:       txn.OwnerID,
		EntryDate:     entryDate(txn, now),
		Description:   description,
		ReferenceType: domain.ReferenceTypeTransaction,
		ReferenceID:   txn.TransactionID,
		Status:        domain.Posted,
		Lines:         make([]domain.JournalEntryLine, len(d.lines)),
		AuditFields:   domain.NewAuditFields(userID, now),
	}
	for i, line := range d.lines {
		line.LineID = uuid.NewString()
		line.EntryID = entry.EntryID
		entry.Lines[i] = line
	}
	return entry, nil
}

func entryDate(txn *domain.Transaction, now time.Time) time.Time {
	if txn.TransactionDate.IsZero() {
		return now
	}
	return txn.TransactionDate.UTC()
}
