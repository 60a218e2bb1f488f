package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted JournalStatus = "POSTED"
	Void   JournalStatus = "VOID"
)

// ReferenceTypeTransaction is the reference type used for entries derived from POS transactions.
const ReferenceTypeTransaction = "Transaction"

// JournalEntry is a balanced set of lines derived from a single business event.
// (ReferenceType, ReferenceID) is unique across all entries.
type JournalEntry struct {
	EntryID       string             `json:"entryID"`
	EntryNumber   string             `json:"entryNumber"`
	OwnerID       string             `json:"ownerID"`
	EntryDate     time.Time          `json:"entryDate"`
	Description   string             `json:"description"`
	ReferenceType string             `json:"referenceType"`
	ReferenceID   string             `json:"referenceID"`
	Status        JournalStatus      `json:"status"`
	Lines         []JournalEntryLine `json:"lines"`
	AuditFields
}

// JournalEntryLine is one side of a journal entry against a single account.
// Exactly one of Debit and Credit is non-zero.
type JournalEntryLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Memo        string          `json:"memo"`
}

// IsDebit reports whether the line carries a debit amount.
func (l JournalEntryLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Amount returns the non-zero side of the line.
func (l JournalEntryLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}

// Totals returns the sums of debits and credits across all lines.
func (e JournalEntry) Totals() (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits, credits
}
