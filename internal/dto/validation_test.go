package dto_test

import (
	"testing"

	"github.com/SscSPs/pos_posting_engine/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidator_DecimalRules(t *testing.T) {
	v := dto.NewValidator()

	ok := dto.PaymentRequest{LoanID: "loan-1", Amount: decimal.RequireFromString("10.50")}
	assert.NoError(t, v.Struct(ok))

	zero := dto.PaymentRequest{LoanID: "loan-1", Amount: decimal.Zero}
	assert.Error(t, v.Struct(zero))

	negative := dto.PaymentRequest{LoanID: "loan-1", Amount: decimal.NewFromInt(-5)}
	assert.Error(t, v.Struct(negative))

	badPolicy := dto.PaymentRequest{LoanID: "loan-1", Amount: decimal.NewFromInt(5), Policy: "random"}
	assert.Error(t, v.Struct(badPolicy))

	subCent := dto.PaymentRequest{LoanID: "loan-1", Amount: decimal.RequireFromString("100.005")}
	assert.Error(t, v.Struct(subCent))

	trailingZero := dto.PaymentRequest{LoanID: "loan-1", Amount: decimal.RequireFromString("100.500")}
	assert.NoError(t, v.Struct(trailingZero))
}

func TestValidator_RefundAmount(t *testing.T) {
	v := dto.NewValidator()

	assert.NoError(t, v.Struct(dto.RefundRequest{TransactionID: "t1"}))

	amount := decimal.RequireFromString("12.34")
	assert.NoError(t, v.Struct(dto.RefundRequest{TransactionID: "t1", Amount: &amount}))

	subCent := decimal.RequireFromString("12.345")
	assert.Error(t, v.Struct(dto.RefundRequest{TransactionID: "t1", Amount: &subCent}))
}

func TestIsWholeCents(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"100", true},
		{"100.5", true},
		{"100.50", true},
		{"100.500", true},
		{"100.005", false},
		{"-0.001", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dto.IsWholeCents(decimal.RequireFromString(tt.in)), tt.in)
	}
}

func TestValidator_StockMovement(t *testing.T) {
	v := dto.NewValidator()

	req := dto.StockMovementRequest{ProductID: "p1", Quantity: decimal.NewFromInt(-3), MovementType: "damage"}
	assert.NoError(t, v.Struct(req))

	req.Quantity = decimal.Zero
	assert.Error(t, v.Struct(req))

	req.Quantity = decimal.NewFromInt(1)
	req.MovementType = "theft"
	assert.Error(t, v.Struct(req))
}
