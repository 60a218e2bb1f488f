package dto

import "github.com/SscSPs/pos_posting_engine/internal/core/domain"

// PostResult is the outcome of posting a transaction to the ledger.
// NoOp is true when the transaction had already been posted; Entry is then the existing entry.
type PostResult struct {
	Entry     *domain.JournalEntry   `json:"entry"`
	NoOp      bool                   `json:"noOp"`
	Movements []domain.StockMovement `json:"movements,omitempty"`
}
