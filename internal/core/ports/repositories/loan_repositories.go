package repositories

import (
	"context"

	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
)

// LoanReader defines read operations for loans and repayments.
type LoanReader interface {
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// FindLoanForUpdate retrieves a loan and locks its row for the rest of the unit of work.
	FindLoanForUpdate(ctx context.Context, loanID string) (*domain.Loan, error)

	// FindRepaymentForUpdate retrieves a repayment and locks its row.
	FindRepaymentForUpdate(ctx context.Context, repaymentID string) (*domain.LoanRepayment, error)

	// ListRepayments returns the repayments of a loan oldest first.
	ListRepayments(ctx context.Context, loanID string) ([]domain.LoanRepayment, error)

	// CountRepayments returns how many repayment records a loan has.
	CountRepayments(ctx context.Context, loanID string) (int, error)
}

// LoanWriter defines write operations for loans and repayments.
type LoanWriter interface {
	// UpdateLoan saves balances and status. loan.Version must be the version
	// that was read; a mismatch fails with a retryable conflict.
	UpdateLoan(ctx context.Context, loan domain.Loan) error

	InsertRepayment(ctx context.Context, repayment domain.LoanRepayment) error
	UpdateRepayment(ctx context.Context, repayment domain.LoanRepayment) error
}

// LoanRepositoryFacade combines all loan repository interfaces.
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
}
