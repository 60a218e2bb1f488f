package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/pos_posting_engine/internal/apperrors"
	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
)

func (v *view) FindLoanByID(_ context.Context, loanID string) (*domain.Loan, error) {
	defer v.lock()()
	return v.loan(loanID)
}

func (v *view) FindLoanForUpdate(_ context.Context, loanID string) (*domain.Loan, error) {
	defer v.lock()()
	return v.loan(loanID)
}

func (v *view) loan(id string) (*domain.Loan, error) {
	l, ok := v.s.loans[id]
	if !ok {
		return nil, notFound("loan", id)
	}
	out := cloneLoan(l)
	return &out, nil
}

func (v *view) FindRepaymentForUpdate(_ context.Context, repaymentID string) (*domain.LoanRepayment, error) {
	defer v.lock()()
	r, ok := v.s.repayments[repaymentID]
	if !ok {
		return nil, notFound("repayment", repaymentID)
	}
	out := cloneRepayment(r)
	return &out, nil
}

func (v *view) ListRepayments(_ context.Context, loanID string) ([]domain.LoanRepayment, error) {
	defer v.lock()()
	ids := v.s.loanPayments[loanID]
	out := make([]domain.LoanRepayment, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneRepayment(v.s.repayments[id]))
	}
	return out, nil
}

func (v *view) CountRepayments(_ context.Context, loanID string) (int, error) {
	defer v.lock()()
	return len(v.s.loanPayments[loanID]), nil
}

func (v *view) UpdateLoan(_ context.Context, loan domain.Loan) error {
	defer v.lock()()
	if err := v.fault("UpdateLoan"); err != nil {
		return err
	}
	prev, ok := v.s.loans[loan.LoanID]
	if !ok {
		return notFound("loan", loan.LoanID)
	}
	if prev.Version != loan.Version {
		return fmt.Errorf("%w: loan %s changed since it was read (version %d, have %d)", apperrors.ErrRetryable, loan.LoanID, prev.Version, loan.Version)
	}
	next := cloneLoan(loan)
	next.Version = prev.Version + 1
	v.s.loans[loan.LoanID] = next
	v.onRollback(func() { v.s.loans[loan.LoanID] = prev })
	return nil
}

func (v *view) InsertRepayment(_ context.Context, repayment domain.LoanRepayment) error {
	defer v.lock()()
	if err := v.fault("InsertRepayment"); err != nil {
		return err
	}
	if _, ok := v.s.loans[repayment.LoanID]; !ok {
		return notFound("loan", repayment.LoanID)
	}
	if _, exists := v.s.repayments[repayment.RepaymentID]; exists {
		return fmt.Errorf("%w: repayment %s", apperrors.ErrDuplicate, repayment.RepaymentID)
	}
	// Payment references are unique across all loans, like the Postgres constraint.
	for _, existing := range v.s.repayments {
		if existing.PaymentReference == repayment.PaymentReference {
			return fmt.Errorf("%w: %w: payment reference %s", apperrors.ErrRetryable, apperrors.ErrDuplicate, repayment.PaymentReference)
		}
	}
	loanID := repayment.LoanID
	n := len(v.s.loanPayments[loanID])
	v.s.repayments[repayment.RepaymentID] = cloneRepayment(repayment)
	v.s.loanPayments[loanID] = append(v.s.loanPayments[loanID], repayment.RepaymentID)
	v.onRollback(func() {
		delete(v.s.repayments, repayment.RepaymentID)
		v.s.loanPayments[loanID] = v.s.loanPayments[loanID][:n]
	})
	return nil
}

func (v *view) UpdateRepayment(_ context.Context, repayment domain.LoanRepayment) error {
	defer v.lock()()
	if err := v.fault("UpdateRepayment"); err != nil {
		return err
	}
	prev, ok := v.s.repayments[repayment.RepaymentID]
	if !ok {
		return notFound("repayment", repayment.RepaymentID)
	}
	v.s.repayments[repayment.RepaymentID] = cloneRepayment(repayment)
	v.onRollback(func() { v.s.repayments[repayment.RepaymentID] = prev })
	return nil
}
