package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType classifies a stock movement.
type MovementType string

const (
	MovementPurchase   MovementType = "purchase"
	MovementSale       MovementType = "sale"
	MovementReturn     MovementType = "return"
	MovementAdjustment MovementType = "adjustment"
	MovementDamage     MovementType = "damage"
	MovementTransfer   MovementType = "transfer"
)

// IsValid reports whether m is a known movement type.
func (m MovementType) IsValid() bool {
	switch m {
	case MovementPurchase, MovementSale, MovementReturn, MovementAdjustment, MovementDamage, MovementTransfer:
		return true
	}
	return false
}

// Product is the slice of a catalog product the stock ledger needs.
// Only CurrentStock is ever written by the engine.
type Product struct {
	ProductID          string          `json:"productID"`
	OwnerID            string          `json:"ownerID"`
	Name               string          `json:"name"`
	CurrentStock       decimal.Decimal `json:"currentStock"`
	TrackInventory     bool            `json:"trackInventory"`
	AllowNegativeStock bool            `json:"allowNegativeStock"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
}

// StockMovement is one immutable entry in a product's quantity ledger.
// StockAfter always equals StockBefore + Quantity.
type StockMovement struct {
	MovementID      string           `json:"movementID"`
	ProductID       string           `json:"productID"`
	MovementType    MovementType     `json:"movementType"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitCost        *decimal.Decimal `json:"unitCost,omitempty"`
	StockBefore     decimal.Decimal  `json:"stockBefore"`
	StockAfter      decimal.Decimal  `json:"stockAfter"`
	ReferenceNumber string           `json:"referenceNumber"`
	Notes           string           `json:"notes"`
	CreatedBy       string           `json:"createdBy"`
	CreatedAt       time.Time        `json:"createdAt"`
}
