package services_test

import (
	"testing"

	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	"github.com/SscSPs/pos_posting_engine/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAllocationPolicies_Split(t *testing.T) {
	loan := domain.Loan{
		Principal:     dec("100000"),
		TotalInterest: dec("3529.02"),
	}
	paidInterest := loan
	paidInterest.InterestPaid = dec("3529.02")

	tests := []struct {
		name          string
		policy        services.AllocationPolicy
		loan          domain.Loan
		paid          string
		wantPrincipal string
		wantInterest  string
	}{
		{"fixed ratio", services.FixedRatioAllocation{InterestShare: services.DefaultInterestShare}, loan, "17254.84", "12078.39", "5176.45"},
		{"fixed ratio zero share", services.FixedRatioAllocation{InterestShare: decimal.Zero}, loan, "100", "100", "0"},
		{"proportional", services.ProportionalAllocation{}, loan, "10000", "9659.13", "340.87"},
		{"proportional without balance", services.ProportionalAllocation{}, domain.Loan{}, "50", "50", "0"},
		{"interest first covers interest", services.InterestFirstAllocation{}, loan, "5000", "1470.98", "3529.02"},
		{"interest first below interest", services.InterestFirstAllocation{}, loan, "1000", "0", "1000"},
		{"interest first after interest paid", services.InterestFirstAllocation{}, paidInterest, "1000", "1000", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, interest := tt.policy.Split(tt.loan, dec(tt.paid))
			requireDecimal(t, tt.wantPrincipal, principal)
			requireDecimal(t, tt.wantInterest, interest)
			assert.True(t, principal.Add(interest).Equal(dec(tt.paid)))
		})
	}
}
