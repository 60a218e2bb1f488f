package dto

import (
	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StockMovementRequest asks the stock ledger to apply a signed quantity change.
type StockMovementRequest struct {
	ProductID    string              `json:"productID" binding:"required"`
	Quantity     decimal.Decimal     `json:"quantity" binding:"decimal_nonzero"`
	MovementType domain.MovementType `json:"movementType" binding:"required,oneof=purchase sale return adjustment damage transfer"`
	Reference    string              `json:"reference"`
	UnitCost     *decimal.Decimal    `json:"unitCost,omitempty"`
	Notes        string              `json:"notes"`
}

// StockMovementResponse wraps the movements of a product.
type StockMovementResponse struct {
	Movements []domain.StockMovement `json:"movements"`
}
