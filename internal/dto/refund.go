package dto

import (
	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RefundRequest asks for a full or partial refund of a posted sale.
// A nil Amount refunds whatever has not been refunded yet.
type RefundRequest struct {
	TransactionID string           `json:"-"`
	Amount        *decimal.Decimal `json:"amount,omitempty" binding:"omitempty,decimal_cents"`
	Reason        string           `json:"reason" binding:"max=500"`
}

// RefundResult describes what a refund produced.
type RefundResult struct {
	ReturnTransaction *domain.Transaction    `json:"returnTransaction"`
	Entry             *domain.JournalEntry   `json:"entry"`
	Movements         []domain.StockMovement `json:"movements,omitempty"`
	FullRefund        bool                   `json:"fullRefund"`
}
