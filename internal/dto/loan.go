package dto

import (
	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LoanTermsRequest carries the inputs for a terms quote.
type LoanTermsRequest struct {
	Principal         decimal.Decimal     `json:"principal" binding:"decimal_positive"`
	InterestRate      decimal.Decimal     `json:"interestRate"`
	TenureDays        int                 `json:"tenureDays" binding:"required,min=1"`
	InterestType      domain.InterestType `json:"interestType" binding:"required,oneof=flat reducing fixed"`
	ProcessingFeeRate decimal.Decimal     `json:"processingFeeRate"`
}

// PaymentRequest records a repayment received against a loan.
type PaymentRequest struct {
	LoanID        string          `json:"-"`
	Amount        decimal.Decimal `json:"amount" binding:"decimal_positive,decimal_cents"`
	Policy        string          `json:"policy,omitempty" binding:"omitempty,oneof=fixed_ratio proportional interest_first"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes"`
}

// StatusTransitionRequest moves a loan to another lifecycle state.
type StatusTransitionRequest struct {
	Status domain.LoanStatus `json:"status" binding:"required,oneof=applied under_review approved rejected disbursed active completed defaulted written_off"`
}

// ReversePaymentRequest reverses a completed repayment.
type ReversePaymentRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// DisbursementResponse is returned when a loan is disbursed.
type DisbursementResponse struct {
	Loan               *domain.Loan          `json:"loan"`
	ScheduledRepayment *domain.LoanRepayment `json:"scheduledRepayment"`
}

// RepaymentListResponse wraps the repayments of a loan.
type RepaymentListResponse struct {
	Repayments []domain.LoanRepayment `json:"repayments"`
}
