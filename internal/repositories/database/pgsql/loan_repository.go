package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/pos_posting_engine/internal/apperrors"
	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_posting_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// PgxLoanRepository stores loan balances and repayment records.
type PgxLoanRepository struct {
	db DBTX
}

func newPgxLoanRepository(db DBTX) *PgxLoanRepository {
	return &PgxLoanRepository{db: db}
}

var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

const selectLoan = `
	SELECT loan_id, loan_number, borrower_id, principal, interest_rate, tenure_days, interest_type,
	       processing_fee_rate, processing_fee, total_interest, total_amount, monthly_installment,
	       amount_paid, principal_paid, interest_paid, outstanding_balance, status,
	       disbursed_at, first_repayment_date, final_repayment_date, version,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM loans
	WHERE loan_id = $1
`

const selectRepayment = `
	SELECT repayment_id, loan_id, payment_reference, repayment_type, scheduled_amount, paid_amount,
	       principal_amount, interest_amount, penalty_amount, payment_method, due_date, payment_date,
	       status, days_late, notes, reversal_reason,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM loan_repayments
`

// FindLoanByID retrieves a loan without locking it.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	return r.findLoan(ctx, selectLoan+";", loanID)
}

// FindLoanForUpdate locks the loan row until the unit of work ends.
func (r *PgxLoanRepository) FindLoanForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	return r.findLoan(ctx, selectLoan+" FOR UPDATE;", loanID)
}

func (r *PgxLoanRepository) findLoan(ctx context.Context, query, loanID string) (*domain.Loan, error) {
	var l domain.Loan
	err := r.db.QueryRow(ctx, query, loanID).Scan(
		&l.LoanID, &l.LoanNumber, &l.BorrowerID, &l.Principal, &l.InterestRate, &l.TenureDays, &l.InterestType,
		&l.ProcessingFeeRate, &l.ProcessingFee, &l.TotalInterest, &l.TotalAmount, &l.MonthlyInstallment,
		&l.AmountPaid, &l.PrincipalPaid, &l.InterestPaid, &l.OutstandingBalance, &l.Status,
		&l.DisbursedAt, &l.FirstRepaymentDate, &l.FinalRepaymentDate, &l.Version,
		&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapError(err, "loan "+loanID+" not found")
	}
	return &l, nil
}

// UpdateLoan writes balances and status guarded by the version that was read.
func (r *PgxLoanRepository) UpdateLoan(ctx context.Context, l domain.Loan) error {
	query := `
		UPDATE loans
		SET processing_fee = $3, total_interest = $4, total_amount = $5, monthly_installment = $6,
		    amount_paid = $7, principal_paid = $8, interest_paid = $9, outstanding_balance = $10, status = $11,
		    disbursed_at = $12, first_repayment_date = $13, final_repayment_date = $14,
		    last_updated_at = $15, last_updated_by = $16, version = version + 1
		WHERE loan_id = $1 AND version = $2;
	`
	tag, err := r.db.Exec(ctx, query,
		l.LoanID, l.Version,
		l.ProcessingFee, l.TotalInterest, l.TotalAmount, l.MonthlyInstallment,
		l.AmountPaid, l.PrincipalPaid, l.InterestPaid, l.OutstandingBalance, l.Status,
		l.DisbursedAt, l.FirstRepaymentDate, l.FinalRepaymentDate,
		l.LastUpdatedAt, l.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to update loan")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: loan %s was modified concurrently or does not exist", apperrors.ErrRetryable, l.LoanID)
	}
	return nil
}

// FindRepaymentForUpdate locks a repayment row.
func (r *PgxLoanRepository) FindRepaymentForUpdate(ctx context.Context, repaymentID string) (*domain.LoanRepayment, error) {
	row := r.db.QueryRow(ctx, selectRepayment+" WHERE repayment_id = $1 FOR UPDATE;", repaymentID)
	rp, err := scanRepayment(row)
	if err != nil {
		return nil, mapError(err, "repayment "+repaymentID+" not found")
	}
	return rp, nil
}

// ListRepayments returns a loan's repayments oldest first.
func (r *PgxLoanRepository) ListRepayments(ctx context.Context, loanID string) ([]domain.LoanRepayment, error) {
	rows, err := r.db.Query(ctx, selectRepayment+" WHERE loan_id = $1 ORDER BY created_at, payment_reference;", loanID)
	if err != nil {
		return nil, mapError(err, "failed to query repayments")
	}
	defer rows.Close()

	repayments := []domain.LoanRepayment{}
	for rows.Next() {
		rp, err := scanRepayment(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan repayment")
		}
		repayments = append(repayments, *rp)
	}
	return repayments, mapError(rows.Err(), "failed to iterate repayments")
}

// CountRepayments counts every repayment record of a loan, whatever its status.
func (r *PgxLoanRepository) CountRepayments(ctx context.Context, loanID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM loan_repayments WHERE loan_id = $1;`, loanID).Scan(&n); err != nil {
		return 0, mapError(err, "failed to count repayments")
	}
	return n, nil
}

// InsertRepayment appends a repayment record.
func (r *PgxLoanRepository) InsertRepayment(ctx context.Context, rp domain.LoanRepayment) error {
	query := `
		INSERT INTO loan_repayments (repayment_id, loan_id, payment_reference, repayment_type, scheduled_amount, paid_amount,
		                             principal_amount, interest_amount, penalty_amount, payment_method, due_date, payment_date,
		                             status, days_late, notes, reversal_reason,
		                             created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.db.Exec(ctx, query,
		rp.RepaymentID, rp.LoanID, rp.PaymentReference, rp.RepaymentType, rp.ScheduledAmount, rp.PaidAmount,
		rp.PrincipalAmount, rp.InterestAmount, rp.PenaltyAmount, rp.PaymentMethod, rp.DueDate, rp.PaymentDate,
		rp.Status, rp.DaysLate, rp.Notes, rp.ReversalReason,
		rp.CreatedAt, rp.CreatedBy, rp.LastUpdatedAt, rp.LastUpdatedBy,
	)
	return mapError(err, "failed to insert repayment")
}

// UpdateRepayment saves the mutable fields of a repayment.
func (r *PgxLoanRepository) UpdateRepayment(ctx context.Context, rp domain.LoanRepayment) error {
	query := `
		UPDATE loan_repayments
		SET paid_amount = $2, principal_amount = $3, interest_amount = $4, payment_date = $5, status = $6,
		    days_late = $7, notes = $8, reversal_reason = $9, last_updated_at = $10, last_updated_by = $11
		WHERE repayment_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		rp.RepaymentID, rp.PaidAmount, rp.PrincipalAmount, rp.InterestAmount, rp.PaymentDate, rp.Status,
		rp.DaysLate, rp.Notes, rp.ReversalReason, rp.LastUpdatedAt, rp.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to update repayment")
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "repayment "+rp.RepaymentID+" not found")
	}
	return nil
}

func scanRepayment(row pgx.Row) (*domain.LoanRepayment, error) {
	var rp domain.LoanRepayment
	err := row.Scan(
		&rp.RepaymentID, &rp.LoanID, &rp.PaymentReference, &rp.RepaymentType, &rp.ScheduledAmount, &rp.PaidAmount,
		&rp.PrincipalAmount, &rp.InterestAmount, &rp.PenaltyAmount, &rp.PaymentMethod, &rp.DueDate, &rp.PaymentDate,
		&rp.Status, &rp.DaysLate, &rp.Notes, &rp.ReversalReason,
		&rp.CreatedAt, &rp.CreatedBy, &rp.LastUpdatedAt, &rp.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rp, nil
}
