package accounting

import (
	"fmt"
	"math"

	"github.com/SscSPs/pos_posting_engine/internal/apperrors"
	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DaysPerMonth is the month length used to turn a tenure in days into installments.
const DaysPerMonth = 30

var (
	hundred        = decimal.NewFromInt(100)
	twelveHundred  = decimal.NewFromInt(1200)
	daysPerYearPct = decimal.NewFromInt(36500)
)

// LoanTermsInput carries the contractual inputs of a loan.
// InterestRate and ProcessingFeeRate are percentages (12 means 12%).
type LoanTermsInput struct {
	Principal         decimal.Decimal
	InterestRate      decimal.Decimal
	TenureDays        int
	InterestType      domain.InterestType
	ProcessingFeeRate decimal.Decimal
}

// LoanTerms is the computed repayment structure, rounded to 2 dp half-even.
type LoanTerms struct {
	ProcessingFee      decimal.Decimal `json:"processingFee"`
	TotalInterest      decimal.Decimal `json:"totalInterest"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	MonthlyInstallment decimal.Decimal `json:"monthlyInstallment"`
	Months             decimal.Decimal `json:"months"`
}

// Months converts a tenure in days to a (possibly fractional) number of months.
func Months(tenureDays int) decimal.Decimal {
	return decimal.NewFromInt(int64(tenureDays)).Div(decimal.NewFromInt(DaysPerMonth))
}

// ComputeTerms derives fee, interest, total and installment for a loan.
// Intermediates are kept unrounded; fee, total and installment are rounded
// exactly once and the interest is what remains of the total.
func ComputeTerms(in LoanTermsInput) (LoanTerms, error) {
	if err := validateTermsInput(in); err != nil {
		return LoanTerms{}, err
	}

	months := Months(in.TenureDays)
	fee := in.Principal.Mul(in.ProcessingFeeRate).Div(hundred)

	var interest, installment decimal.Decimal
	switch in.InterestType {
	case domain.InterestFlat:
		interest = in.Principal.Mul(in.InterestRate).Mul(decimal.NewFromInt(int64(in.TenureDays))).Div(daysPerYearPct)
		installment = in.Principal.Add(interest).Add(fee).Div(months)
	case domain.InterestReducing, domain.InterestFixed, "":
		installment = reducingInstallment(in.Principal, in.InterestRate.Div(twelveHundred), months)
		interest = installment.Mul(months).Sub(in.Principal)
	default:
		return LoanTerms{}, fmt.Errorf("%w: unknown interest type '%s'", apperrors.ErrValidation, in.InterestType)
	}

	// Interest absorbs the rounding so fee, interest and principal add up to the total.
	roundedFee := fee.RoundBank(2)
	total := in.Principal.Add(interest).Add(fee).RoundBank(2)
	return LoanTerms{
		ProcessingFee:      roundedFee,
		TotalInterest:      total.Sub(in.Principal).Sub(roundedFee),
		TotalAmount:        total,
		MonthlyInstallment: installment.RoundBank(2),
		Months:             months,
	}, nil
}

func validateTermsInput(in LoanTermsInput) error {
	if in.TenureDays < 1 {
		return fmt.Errorf("%w: tenure must be at least one day, got %d", apperrors.ErrValidation, in.TenureDays)
	}
	if !in.Principal.IsPositive() {
		return fmt.Errorf("%w: principal must be positive, got %s", apperrors.ErrValidation, in.Principal)
	}
	if !in.Principal.Equal(in.Principal.Truncate(2)) {
		return fmt.Errorf("%w: principal %s has more than two decimal places", apperrors.ErrValidation, in.Principal)
	}
	if in.InterestRate.IsNegative() {
		return fmt.Errorf("%w: interest rate cannot be negative, got %s", apperrors.ErrValidation, in.InterestRate)
	}
	if in.ProcessingFeeRate.IsNegative() {
		return fmt.Errorf("%w: processing fee rate cannot be negative, got %s", apperrors.ErrValidation, in.ProcessingFeeRate)
	}
	return nil
}

// reducingInstallment is P*r*(1+r)^n / ((1+r)^n - 1), or P/n when r is zero.
func reducingInstallment(principal, monthlyRate, months decimal.Decimal) decimal.Decimal {
	if monthlyRate.IsZero() {
		return principal.Div(months)
	}
	growth := growthFactor(monthlyRate, months)
	return principal.Mul(monthlyRate).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
}

// growthFactor computes (1+r)^n exactly for whole months and in float64 otherwise.
func growthFactor(monthlyRate, months decimal.Decimal) decimal.Decimal {
	base := decimal.NewFromInt(1).Add(monthlyRate)
	if months.IsInteger() {
		return base.Pow(months)
	}
	r, _ := monthlyRate.Float64()
	n, _ := months.Float64()
	return decimal.NewFromFloat(math.Pow(1+r, n))
}
