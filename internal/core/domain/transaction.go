package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a POS business event.
type TransactionType string

const (
	TransactionSale       TransactionType = "sale"
	TransactionPurchase   TransactionType = "purchase"
	TransactionReturn     TransactionType = "return"
	TransactionAdjustment TransactionType = "adjustment"
)

// FlowDirection records whether money flows into or out of the business.
type FlowDirection string

const (
	FlowInward  FlowDirection = "inward"
	FlowOutward FlowDirection = "outward"
)

// TransactionStatus is the lifecycle state of a recorded transaction.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionCancelled TransactionStatus = "cancelled"
)

// Transaction is a recorded POS event. Posting only reads it, except for the
// journal flag, the journal reference and the refunded amount.
type Transaction struct {
	TransactionID         string            `json:"transactionID"`
	TransactionNumber     string            `json:"transactionNumber"`
	OwnerID               string            `json:"ownerID"`
	Type                  TransactionType   `json:"type"`
	FlowDirection         FlowDirection     `json:"flowDirection"`
	Status                TransactionStatus `json:"status"`
	TotalAmount           decimal.Decimal   `json:"totalAmount"`
	RefundedAmount        decimal.Decimal   `json:"refundedAmount"`
	OriginalTransactionID *string           `json:"originalTransactionID,omitempty"`
	Notes                 string            `json:"notes"`
	TransactionDate       time.Time         `json:"transactionDate"`
	JournalEntryCreated   bool              `json:"journalEntryCreated"`
	JournalEntryReference string            `json:"journalEntryReference"`
	Items                 []TransactionItem `json:"items"`
	AuditFields
}

// TransactionItem is a single line of a transaction.
type TransactionItem struct {
	ItemID        string          `json:"itemID"`
	TransactionID string          `json:"transactionID"`
	ProductID     *string         `json:"productID,omitempty"`
	ProductName   string          `json:"productName"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	UnitCost      decimal.Decimal `json:"unitCost"`
}

// LineTotal is the selling value of the item.
func (i TransactionItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(i.Quantity)
}

// CostTotal is the cost value of the item.
func (i TransactionItem) CostTotal() decimal.Decimal {
	return i.UnitCost.Mul(i.Quantity)
}

// CostOfGoods sums unit_cost × quantity over every item.
func (t Transaction) CostOfGoods() decimal.Decimal {
	total := decimal.Zero
	for _, item := range t.Items {
		total = total.Add(item.CostTotal())
	}
	return total
}

// RefundableAmount is what remains of the total after earlier refunds.
func (t Transaction) RefundableAmount() decimal.Decimal {
	return t.TotalAmount.Sub(t.RefundedAmount)
}

// Validate checks the fields posting relies on.
func (t Transaction) Validate() error {
	if t.TransactionID == "" {
		return fmt.Errorf("transaction ID is required")
	}
	if t.OwnerID == "" {
		return fmt.Errorf("owner ID is required")
	}
	switch t.Type {
	case TransactionSale, TransactionPurchase, TransactionReturn, TransactionAdjustment:
	default:
		return fmt.Errorf("unknown transaction type '%s'", t.Type)
	}
	if t.TotalAmount.IsNegative() {
		return fmt.Errorf("total amount cannot be negative")
	}
	for _, item := range t.Items {
		if item.Quantity.IsNegative() {
			return fmt.Errorf("item %s has a negative quantity", item.ItemID)
		}
		if item.UnitCost.IsNegative() || item.UnitPrice.IsNegative() {
			return fmt.Errorf("item %s has a negative price or cost", item.ItemID)
		}
	}
	return nil
}
