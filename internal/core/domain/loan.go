package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus is the lifecycle state of a loan.
type LoanStatus string

const (
	LoanApplied     LoanStatus = "applied"
	LoanUnderReview LoanStatus = "under_review"
	LoanApproved    LoanStatus = "approved"
	LoanRejected    LoanStatus = "rejected"
	LoanDisbursed   LoanStatus = "disbursed"
	LoanActive      LoanStatus = "active"
	LoanCompleted   LoanStatus = "completed"
	LoanDefaulted   LoanStatus = "defaulted"
	LoanWrittenOff  LoanStatus = "written_off"
)

var loanTransitions = map[LoanStatus][]LoanStatus{
	LoanApplied:     {LoanUnderReview, LoanApproved, LoanRejected},
	LoanUnderReview: {LoanApproved, LoanRejected},
	LoanApproved:    {LoanDisbursed, LoanRejected},
	LoanDisbursed:   {LoanActive, LoanCompleted, LoanDefaulted},
	LoanActive:      {LoanCompleted, LoanDefaulted},
	LoanCompleted:   {LoanActive},
	LoanDefaulted:   {LoanActive, LoanWrittenOff},
}

// IsValid reports whether s is a known loan status.
func (s LoanStatus) IsValid() bool {
	switch s {
	case LoanApplied, LoanUnderReview, LoanApproved, LoanRejected, LoanDisbursed,
		LoanActive, LoanCompleted, LoanDefaulted, LoanWrittenOff:
		return true
	}
	return false
}

// CanTransition reports whether a loan may move from s to next.
func (s LoanStatus) CanTransition(next LoanStatus) bool {
	for _, allowed := range loanTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AcceptsPayments reports whether repayments can be applied in this state.
func (s LoanStatus) AcceptsPayments() bool {
	return s == LoanDisbursed || s == LoanActive
}

// InterestType selects the amortization formula.
type InterestType string

const (
	InterestFlat     InterestType = "flat"
	InterestReducing InterestType = "reducing"
	// InterestFixed is amortized with the reducing-balance formula.
	InterestFixed InterestType = "fixed"
)

// Loan holds the terms and running balances of a micro-loan.
// Once disbursed, OutstandingBalance = TotalAmount - AmountPaid and never goes below zero.
type Loan struct {
	LoanID             string          `json:"loanID"`
	LoanNumber         string          `json:"loanNumber"`
	BorrowerID         string          `json:"borrowerID"`
	Principal          decimal.Decimal `json:"principal"`
	InterestRate       decimal.Decimal `json:"interestRate"` // annual percent
	TenureDays         int             `json:"tenureDays"`
	InterestType       InterestType    `json:"interestType"`
	ProcessingFeeRate  decimal.Decimal `json:"processingFeeRate"` // percent of principal
	ProcessingFee      decimal.Decimal `json:"processingFee"`
	TotalInterest      decimal.Decimal `json:"totalInterest"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	MonthlyInstallment decimal.Decimal `json:"monthlyInstallment"`
	AmountPaid         decimal.Decimal `json:"amountPaid"`
	PrincipalPaid      decimal.Decimal `json:"principalPaid"`
	InterestPaid       decimal.Decimal `json:"interestPaid"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	Status             LoanStatus      `json:"status"`
	DisbursedAt        *time.Time      `json:"disbursedAt,omitempty"`
	FirstRepaymentDate *time.Time      `json:"firstRepaymentDate,omitempty"`
	FinalRepaymentDate *time.Time      `json:"finalRepaymentDate,omitempty"`
	Version            int64           `json:"version"`
	AuditFields
}

// RemainingInterest is the part of TotalInterest not yet collected.
func (l Loan) RemainingInterest() decimal.Decimal {
	rem := l.TotalInterest.Sub(l.InterestPaid)
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

// RepaymentType classifies a repayment record.
type RepaymentType string

const (
	RepaymentScheduled     RepaymentType = "scheduled"
	RepaymentManual        RepaymentType = "manual"
	RepaymentEarly         RepaymentType = "early"
	RepaymentAutoDeduction RepaymentType = "auto_deduction"
	RepaymentPenalty       RepaymentType = "penalty"
)

// RepaymentStatus is the state of a repayment record.
type RepaymentStatus string

const (
	RepaymentPending   RepaymentStatus = "pending"
	RepaymentCompleted RepaymentStatus = "completed"
	RepaymentFailed    RepaymentStatus = "failed"
	RepaymentReversed  RepaymentStatus = "reversed"
)

// LoanRepayment is a scheduled or received payment against a loan.
type LoanRepayment struct {
	RepaymentID      string          `json:"repaymentID"`
	LoanID           string          `json:"loanID"`
	PaymentReference string          `json:"paymentReference"`
	RepaymentType    RepaymentType   `json:"repaymentType"`
	ScheduledAmount  decimal.Decimal `json:"scheduledAmount"`
	PaidAmount       decimal.Decimal `json:"paidAmount"`
	PrincipalAmount  decimal.Decimal `json:"principalAmount"`
	InterestAmount   decimal.Decimal `json:"interestAmount"`
	PenaltyAmount    decimal.Decimal `json:"penaltyAmount"`
	PaymentMethod    string          `json:"paymentMethod"`
	DueDate          *time.Time      `json:"dueDate,omitempty"`
	PaymentDate      *time.Time      `json:"paymentDate,omitempty"`
	Status           RepaymentStatus `json:"status"`
	DaysLate         int             `json:"daysLate"`
	Notes            string          `json:"notes"`
	ReversalReason   string          `json:"reversalReason,omitempty"`
	AuditFields
}
