package memory

import (
	"time"

	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func cloneEntry(e domain.JournalEntry) domain.JournalEntry {
	e.Lines = append([]domain.JournalEntryLine(nil), e.Lines...)
	return e
}

func cloneTransaction(t domain.Transaction) domain.Transaction {
	t.OriginalTransactionID = cloneString(t.OriginalTransactionID)
	items := make([]domain.TransactionItem, len(t.Items))
	for i, item := range t.Items {
		item.ProductID = cloneString(item.ProductID)
		items[i] = item
	}
	t.Items = items
	return t
}

func cloneMovement(m domain.StockMovement) domain.StockMovement {
	m.UnitCost = cloneDecimal(m.UnitCost)
	return m
}

func cloneLoan(l domain.Loan) domain.Loan {
	l.DisbursedAt = cloneTime(l.DisbursedAt)
	l.FirstRepaymentDate = cloneTime(l.FirstRepaymentDate)
	l.FinalRepaymentDate = cloneTime(l.FinalRepaymentDate)
	return l
}

func cloneRepayment(r domain.LoanRepayment) domain.LoanRepayment {
	r.DueDate = cloneTime(r.DueDate)
	r.PaymentDate = cloneTime(r.PaymentDate)
	return r
}
