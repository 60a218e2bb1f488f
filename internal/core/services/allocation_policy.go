package services

import (
	"fmt"

	"github.com/SscSPs/pos_posting_engine/internal/apperrors"
	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Allocation policy names accepted in payment requests and configuration.
const (
	PolicyFixedRatio    = "fixed_ratio"
	PolicyProportional  = "proportional"
	PolicyInterestFirst = "interest_first"
)

// DefaultInterestShare is the interest part of every payment under the fixed ratio policy.
var DefaultInterestShare = decimal.RequireFromString("0.3")

// AllocationPolicy splits a payment into its principal and interest parts.
// The parts always add up to paid exactly.
type AllocationPolicy interface {
	Split(loan domain.Loan, paid decimal.Decimal) (principal, interest decimal.Decimal)
}

// FixedRatioAllocation books a fixed share of every payment as interest.
type FixedRatioAllocation struct {
	InterestShare decimal.Decimal
}

func (p FixedRatioAllocation) Split(_ domain.Loan, paid decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	interest := paid.Mul(p.InterestShare).RoundBank(2)
	return paid.Sub(interest), interest
}

// ProportionalAllocation splits payments in the loan's own interest to principal mix.
type ProportionalAllocation struct{}

func (ProportionalAllocation) Split(loan domain.Loan, paid decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	base := loan.Principal.Add(loan.TotalInterest)
	if !base.IsPositive() {
		return paid, decimal.Zero
	}
	interest := paid.Mul(loan.TotalInterest).Div(base).RoundBank(2)
	return paid.Sub(interest), interest
}

// InterestFirstAllocation settles outstanding interest before any principal.
type InterestFirstAllocation struct{}

func (InterestFirstAllocation) Split(loan domain.Loan, paid decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	interest := decimal.Min(paid, loan.RemainingInterest())
	return paid.Sub(interest), interest
}

// allocationPolicies resolves policy names to strategies.
type allocationPolicies struct {
	fallback string
	byName   map[string]AllocationPolicy
}

func newAllocationPolicies(fallback string, interestShare decimal.Decimal) (allocationPolicies, error) {
	if interestShare.IsNegative() || interestShare.GreaterThan(decimal.NewFromInt(1)) {
		return allocationPolicies{}, fmt.Errorf("%w: fixed ratio interest share must be between 0 and 1, got %s", apperrors.ErrValidation, interestShare.String())
	}
	p := allocationPolicies{
		fallback: fallback,
		byName: map[string]AllocationPolicy{
			PolicyFixedRatio:    FixedRatioAllocation{InterestShare: interestShare},
			PolicyProportional:  ProportionalAllocation{},
			PolicyInterestFirst: InterestFirstAllocation{},
		},
	}
	if fallback == "" {
		p.fallback = PolicyFixedRatio
	}
	if _, ok := p.byName[p.fallback]; !ok {
		return allocationPolicies{}, fmt.Errorf("%w: unknown allocation policy '%s'", apperrors.ErrValidation, fallback)
	}
	return p, nil
}

func (p allocationPolicies) lookup(name string) (AllocationPolicy, error) {
	if name == "" {
		name = p.fallback
	}
	policy, ok := p.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown allocation policy '%s'", apperrors.ErrValidation, name)
	}
	return policy, nil
}
