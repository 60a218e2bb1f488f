package services

import (
	"context"

	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	"github.com/SscSPs/pos_posting_engine/internal/dto"
	"github.com/SscSPs/pos_posting_engine/internal/utils/accounting"
)

// LoanReaderSvc defines read operations for loans.
type LoanReaderSvc interface {
	GetLoan(ctx context.Context, loanID string) (*domain.Loan, error)
	ListRepayments(ctx context.Context, loanID string) ([]domain.LoanRepayment, error)
}

// LoanTermsSvc quotes loan terms without touching storage.
type LoanTermsSvc interface {
	ComputeTerms(ctx context.Context, in accounting.LoanTermsInput) (accounting.LoanTerms, error)
}

// LoanLedgerWriterSvc defines the balance-changing loan operations.
type LoanLedgerWriterSvc interface {
	Disburse(ctx context.Context, loanID string, userID string) (*domain.Loan, *domain.LoanRepayment, error)
	ApplyPayment(ctx context.Context, req dto.PaymentRequest, userID string) (*domain.LoanRepayment, error)
	ReversePayment(ctx context.Context, repaymentID string, reason string, userID string) (*domain.LoanRepayment, error)
	TransitionStatus(ctx context.Context, loanID string, to domain.LoanStatus, userID string) (*domain.Loan, error)
}

// LoanLedgerSvcFacade combines all loan service interfaces.
type LoanLedgerSvcFacade interface {
	LoanReaderSvc
	LoanTermsSvc
	LoanLedgerWriterSvc
}
