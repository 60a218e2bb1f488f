package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/pos_posting_engine/internal/apperrors"
	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/pos_posting_engine/internal/dto"
	"github.com/SscSPs/pos_posting_engine/internal/utils/accounting"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultFirstRepaymentAfterDays is the gap between disbursement and the first due date.
const DefaultFirstRepaymentAfterDays = 30

// loanLedgerService keeps loan balances and repayment records consistent.
type loanLedgerService struct {
	BaseService
	repos                   portsrepo.RepositoryProvider
	uow                     unitOfWork
	validate                *validator.Validate
	policies                allocationPolicies
	firstRepaymentAfterDays int
}

// LoanLedgerOption configures the loan ledger service.
type LoanLedgerOption func(*loanLedgerService)

// WithFirstRepaymentAfterDays sets how many days after disbursement the first installment is due.
func WithFirstRepaymentAfterDays(days int) LoanLedgerOption {
	return func(s *loanLedgerService) {
		if days > 0 {
			s.firstRepaymentAfterDays = days
		}
	}
}

// withAllocationPolicies replaces the default allocation policy and the fixed ratio interest share.
func withAllocationPolicies(policies allocationPolicies) LoanLedgerOption {
	return func(s *loanLedgerService) {
		s.policies = policies
	}
}

func newLoanLedgerService(base BaseService, repos portsrepo.RepositoryProvider, uow unitOfWork, options ...LoanLedgerOption) *loanLedgerService {
	// The built-in defaults are always valid.
	policies, _ := newAllocationPolicies(PolicyFixedRatio, DefaultInterestShare)
	s := &loanLedgerService{
		BaseService:             base,
		repos:                   repos,
		uow:                     uow,
		validate:                dto.NewValidator(),
		policies:                policies,
		firstRepaymentAfterDays: DefaultFirstRepaymentAfterDays,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.LoanLedgerSvcFacade = (*loanLedgerService)(nil)

// ComputeTerms quotes the repayment structure of a loan.
func (s *loanLedgerService) ComputeTerms(_ context.Context, in accounting.LoanTermsInput) (accounting.LoanTerms, error) {
	return accounting.ComputeTerms(in)
}

func (s *loanLedgerService) GetLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	if loanID == "" {
		return nil, apperrors.NewValidationError("loan ID is required")
	}
	loan, err := s.repos.Readers.Loans.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loan %s: %w", loanID, err)
	}
	return loan, nil
}

func (s *loanLedgerService) ListRepayments(ctx context.Context, loanID string) ([]domain.LoanRepayment, error) {
	if _, err := s.GetLoan(ctx, loanID); err != nil {
		return nil, err
	}
	repayments, err := s.repos.Readers.Loans.ListRepayments(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list repayments of loan %s: %w", loanID, err)
	}
	return repayments, nil
}

// Disburse fixes the loan terms, opens the outstanding balance and schedules
// the first installment.
func (s *loanLedgerService) Disburse(ctx context.Context, loanID string, userID string) (*domain.Loan, *domain.LoanRepayment, error) {
	if loanID == "" {
		return nil, nil, apperrors.NewValidationError("loan ID is required")
	}

	var (
		loan      *domain.Loan
		scheduled *domain.LoanRepayment
	)
	err := s.uow.run(ctx, "disburse_loan", func(ctx context.Context, repos portsrepo.Store) error {
		l, err := repos.Loans.FindLoanForUpdate(ctx, loanID)
		if err != nil {
			return fmt.Errorf("failed to load loan %s: %w", loanID, err)
		}
		if l.Status != domain.LoanApproved {
			return fmt.Errorf("%w: loan %s is %s, only approved loans can be disbursed", apperrors.ErrInvalidState, l.LoanID, l.Status)
		}

		terms, err := accounting.ComputeTerms(accounting.LoanTermsInput{
			Principal:         l.Principal,
			InterestRate:      l.InterestRate,
			TenureDays:        l.TenureDays,
			InterestType:      l.InterestType,
			ProcessingFeeRate: l.ProcessingFeeRate,
		})
		if err != nil {
			return fmt.Errorf("loan %s has invalid terms: %w", l.LoanID, err)
		}

		now := s.Now()
		firstDue := now.AddDate(0, 0, s.firstRepaymentAfterDays)
		finalDue := now.AddDate(0, 0, l.TenureDays)

		l.ProcessingFee = terms.ProcessingFee
		l.TotalInterest = terms.TotalInterest
		l.TotalAmount = terms.TotalAmount
		l.MonthlyInstallment = terms.MonthlyInstallment
		l.AmountPaid = decimal.Zero
		l.PrincipalPaid = decimal.Zero
		l.InterestPaid = decimal.Zero
		l.OutstandingBalance = terms.TotalAmount
		l.Status = domain.LoanDisbursed
		l.DisbursedAt = &now
		l.FirstRepaymentDate = &firstDue
		l.FinalRepaymentDate = &finalDue
		l.Touch(userID, now)

		if err := repos.Loans.UpdateLoan(ctx, *l); err != nil {
			return fmt.Errorf("failed to disburse loan %s: %w", l.LoanID, err)
		}
		l.Version++

		ref, err := s.paymentReference(ctx, repos, l.LoanID, now)
		if err != nil {
			return err
		}
		rep := domain.LoanRepayment{
			RepaymentID:      uuid.NewString(),
			LoanID:           l.LoanID,
			PaymentReference: ref,
			RepaymentType:    domain.RepaymentScheduled,
			ScheduledAmount:  terms.MonthlyInstallment,
			PaidAmount:       decimal.Zero,
			PrincipalAmount:  decimal.Zero,
			InterestAmount:   decimal.Zero,
			PenaltyAmount:    decimal.Zero,
			DueDate:          &firstDue,
			Status:           domain.RepaymentPending,
			AuditFields:      domain.NewAuditFields(userID, now),
		}
		if err := repos.Loans.InsertRepayment(ctx, rep); err != nil {
			return fmt.Errorf("failed to schedule first repayment of loan %s: %w", l.LoanID, err)
		}

		loan, scheduled = l, &rep
		return nil
	})
	s.Metrics.ObserveLoanOperation("disburse", err)
	if err != nil {
		s.LogError(ctx, err, "Failed to disburse loan", slog.String("loan_id", loanID))
		return nil, nil, err
	}

	s.LogInfo(ctx, "Loan disbursed",
		slog.String("loan_id", loan.LoanID),
		slog.String("total_amount", loan.TotalAmount.StringFixed(2)),
		slog.String("monthly_installment", loan.MonthlyInstallment.StringFixed(2)))
	return loan, scheduled, nil
}

// ApplyPayment books a received payment. The outstanding balance drops by
// exactly the paid amount and amount paid plus outstanding stays equal to the total.
func (s *loanLedgerService) ApplyPayment(ctx context.Context, req dto.PaymentRequest, userID string) (*domain.LoanRepayment, error) {
	if req.LoanID == "" {
		return nil, apperrors.NewValidationError("loan ID is required")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "invalid payment request", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}
	policy, err := s.policies.lookup(req.Policy)
	if err != nil {
		return nil, err
	}
	amount := req.Amount
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("payment amount must be positive")
	}
	if !dto.IsWholeCents(amount) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("payment amount %s has more than two decimal places", amount.String()))
	}

	var repayment *domain.LoanRepayment
	err = s.uow.run(ctx, "apply_payment", func(ctx context.Context, repos portsrepo.Store) error {
		l, err := repos.Loans.FindLoanForUpdate(ctx, req.LoanID)
		if err != nil {
			return fmt.Errorf("failed to load loan %s: %w", req.LoanID, err)
		}
		if !l.Status.AcceptsPayments() {
			return fmt.Errorf("%w: loan %s is %s and does not accept payments", apperrors.ErrInvalidState, l.LoanID, l.Status)
		}
		if amount.GreaterThan(l.OutstandingBalance) {
			return fmt.Errorf("%w: payment of %s exceeds the outstanding balance %s of loan %s",
				apperrors.ErrValidation, amount.StringFixed(2), l.OutstandingBalance.StringFixed(2), l.LoanID)
		}

		now := s.Now()
		dueDate, err := s.nextDueDate(ctx, repos, l)
		if err != nil {
			return err
		}
		ref, err := s.paymentReference(ctx, repos, l.LoanID, now)
		if err != nil {
			return err
		}

		principal, interest := policy.Split(*l, amount)
		rep := domain.LoanRepayment{
			RepaymentID:      uuid.NewString(),
			LoanID:           l.LoanID,
			PaymentReference: ref,
			RepaymentType:    domain.RepaymentManual,
			ScheduledAmount:  decimal.Zero,
			PaidAmount:       amount,
			PrincipalAmount:  principal,
			InterestAmount:   interest,
			PenaltyAmount:    decimal.Zero,
			PaymentMethod:    req.PaymentMethod,
			DueDate:          dueDate,
			PaymentDate:      &now,
			Status:           domain.RepaymentCompleted,
			DaysLate:         daysLate(dueDate, now),
			Notes:            req.Notes,
			AuditFields:      domain.NewAuditFields(userID, now),
		}
		if err := repos.Loans.InsertRepayment(ctx, rep); err != nil {
			return fmt.Errorf("failed to record repayment for loan %s: %w", l.LoanID, err)
		}

		l.AmountPaid = l.AmountPaid.Add(amount)
		l.PrincipalPaid = l.PrincipalPaid.Add(principal)
		l.InterestPaid = l.InterestPaid.Add(interest)
		l.OutstandingBalance = l.OutstandingBalance.Sub(amount)
		switch {
		case l.OutstandingBalance.IsZero():
			l.Status = domain.LoanCompleted
		case l.Status == domain.LoanDisbursed:
			l.Status = domain.LoanActive
		}
		l.Touch(userID, now)
		if err := repos.Loans.UpdateLoan(ctx, *l); err != nil {
			return fmt.Errorf("failed to update balances of loan %s: %w", l.LoanID, err)
		}
		if err := s.reconcileSchedule(ctx, repos, l, ref, userID, now); err != nil {
			return err
		}

		repayment = &rep
		return nil
	})
	s.Metrics.ObserveLoanOperation("apply_payment", err)
	if err != nil {
		s.LogError(ctx, err, "Failed to apply loan payment", slog.String("loan_id", req.LoanID))
		return nil, err
	}

	s.LogInfo(ctx, "Loan payment applied",
		slog.String("loan_id", req.LoanID),
		slog.String("payment_reference", repayment.PaymentReference),
		slog.String("amount", repayment.PaidAmount.StringFixed(2)))
	return repayment, nil
}

// ReversePayment undoes a completed repayment and restores the loan balances.
func (s *loanLedgerService) ReversePayment(ctx context.Context, repaymentID string, reason string, userID string) (*domain.LoanRepayment, error) {
	if repaymentID == "" {
		return nil, apperrors.NewValidationError("repayment ID is required")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.NewValidationError("a reason is required to reverse a payment")
	}

	var repayment *domain.LoanRepayment
	err := s.uow.run(ctx, "reverse_payment", func(ctx context.Context, repos portsrepo.Store) error {
		rep, err := repos.Loans.FindRepaymentForUpdate(ctx, repaymentID)
		if err != nil {
			return fmt.Errorf("failed to load repayment %s: %w", repaymentID, err)
		}
		if rep.Status != domain.RepaymentCompleted {
			return fmt.Errorf("%w: repayment %s is %s, only completed repayments can be reversed", apperrors.ErrInvalidState, rep.RepaymentID, rep.Status)
		}
		if rep.RepaymentType == domain.RepaymentScheduled {
			return fmt.Errorf("%w: repayment %s is a scheduled installment, reverse the payment that settled it", apperrors.ErrInvalidState, rep.RepaymentID)
		}

		l, err := repos.Loans.FindLoanForUpdate(ctx, rep.LoanID)
		if err != nil {
			return fmt.Errorf("failed to load loan %s: %w", rep.LoanID, err)
		}

		now := s.Now()
		l.AmountPaid = l.AmountPaid.Sub(rep.PaidAmount)
		l.PrincipalPaid = l.PrincipalPaid.Sub(rep.PrincipalAmount)
		l.InterestPaid = l.InterestPaid.Sub(rep.InterestAmount)
		l.OutstandingBalance = l.OutstandingBalance.Add(rep.PaidAmount)
		if l.Status == domain.LoanCompleted {
			l.Status = domain.LoanActive
		}
		l.Touch(userID, now)

		rep.Status = domain.RepaymentReversed
		rep.ReversalReason = reason
		rep.Touch(userID, now)

		if err := repos.Loans.UpdateRepayment(ctx, *rep); err != nil {
			return fmt.Errorf("failed to reverse repayment %s: %w", rep.RepaymentID, err)
		}
		if err := repos.Loans.UpdateLoan(ctx, *l); err != nil {
			return fmt.Errorf("failed to restore balances of loan %s: %w", l.LoanID, err)
		}
		if err := s.reconcileSchedule(ctx, repos, l, rep.PaymentReference, userID, now); err != nil {
			return err
		}

		repayment = rep
		return nil
	})
	s.Metrics.ObserveLoanOperation("reverse_payment", err)
	if err != nil {
		s.LogError(ctx, err, "Failed to reverse loan payment", slog.String("repayment_id", repaymentID))
		return nil, err
	}

	s.LogInfo(ctx, "Loan payment reversed",
		slog.String("loan_id", repayment.LoanID),
		slog.String("repayment_id", repayment.RepaymentID))
	return repayment, nil
}

// TransitionStatus moves a loan through its lifecycle. Disbursement and
// completion carry balance effects and are guarded accordingly.
func (s *loanLedgerService) TransitionStatus(ctx context.Context, loanID string, to domain.LoanStatus, userID string) (*domain.Loan, error) {
	if loanID == "" {
		return nil, apperrors.NewValidationError("loan ID is required")
	}
	if !to.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown loan status '%s'", to))
	}
	if to == domain.LoanDisbursed {
		return nil, fmt.Errorf("%w: loans are disbursed through the disbursement operation", apperrors.ErrInvalidState)
	}

	var loan *domain.Loan
	err := s.uow.run(ctx, "transition_loan", func(ctx context.Context, repos portsrepo.Store) error {
		l, err := repos.Loans.FindLoanForUpdate(ctx, loanID)
		if err != nil {
			return fmt.Errorf("failed to load loan %s: %w", loanID, err)
		}
		if !l.Status.CanTransition(to) {
			return fmt.Errorf("%w: loan %s cannot move from %s to %s", apperrors.ErrInvalidState, l.LoanID, l.Status, to)
		}
		if to == domain.LoanCompleted && l.OutstandingBalance.IsPositive() {
			return fmt.Errorf("%w: loan %s still has %s outstanding", apperrors.ErrInvalidState, l.LoanID, l.OutstandingBalance.StringFixed(2))
		}

		l.Status = to
		l.Touch(userID, s.Now())
		if err := repos.Loans.UpdateLoan(ctx, *l); err != nil {
			return fmt.Errorf("failed to update status of loan %s: %w", l.LoanID, err)
		}
		l.Version++
		loan = l
		return nil
	})
	s.Metrics.ObserveLoanOperation("transition_status", err)
	if err != nil {
		s.LogError(ctx, err, "Failed to change loan status", slog.String("loan_id", loanID), slog.String("to", string(to)))
		return nil, err
	}

	s.LogInfo(ctx, "Loan status changed", slog.String("loan_id", loanID), slog.String("status", string(to)))
	return loan, nil
}

// paymentReference numbers repayments per loan: PAY-YYYYMMDD-<loan id>-NNN.
// The full loan ID keeps references of different loans apart, and the loan
// row is locked by the caller, so the count cannot move underneath it.
func (s *loanLedgerService) paymentReference(ctx context.Context, repos portsrepo.Store, loanID string, now time.Time) (string, error) {
	count, err := repos.Loans.CountRepayments(ctx, loanID)
	if err != nil {
		return "", fmt.Errorf("failed to count repayments of loan %s: %w", loanID, err)
	}
	return fmt.Sprintf("PAY-%s-%s-%03d", now.Format("20060102"), loanID, count+1), nil
}

// nextDueDate is the due date of the earliest pending installment. Without one
// it follows the monthly schedule from the first repayment date, skipping the
// installments the amount paid so far already covers.
func (s *loanLedgerService) nextDueDate(ctx context.Context, repos portsrepo.Store, l *domain.Loan) (*time.Time, error) {
	repayments, err := repos.Loans.ListRepayments(ctx, l.LoanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list repayments of loan %s: %w", l.LoanID, err)
	}
	var due *time.Time
	for _, r := range repayments {
		if r.Status != domain.RepaymentPending || r.DueDate == nil {
			continue
		}
		if due == nil || r.DueDate.Before(*due) {
			d := *r.DueDate
			due = &d
		}
	}
	if due != nil || l.FirstRepaymentDate == nil {
		return due, nil
	}

	next := *l.FirstRepaymentDate
	if l.MonthlyInstallment.IsPositive() {
		covered := l.AmountPaid.Div(l.MonthlyInstallment).Floor().IntPart()
		next = next.AddDate(0, 0, int(covered)*accounting.DaysPerMonth)
	}
	if l.FinalRepaymentDate != nil && next.After(*l.FinalRepaymentDate) {
		next = *l.FinalRepaymentDate
	}
	return &next, nil
}

// reconcileSchedule completes scheduled installments, in due order, while the
// loan's amount paid covers them, and reopens the ones it no longer covers.
// Every installment counts as covered once the loan is completed.
func (s *loanLedgerService) reconcileSchedule(ctx context.Context, repos portsrepo.Store, l *domain.Loan, settledBy string, userID string, now time.Time) error {
	repayments, err := repos.Loans.ListRepayments(ctx, l.LoanID)
	if err != nil {
		return fmt.Errorf("failed to list repayments of loan %s: %w", l.LoanID, err)
	}

	var scheduled []domain.LoanRepayment
	for _, r := range repayments {
		if r.RepaymentType != domain.RepaymentScheduled {
			continue
		}
		if r.Status == domain.RepaymentPending || r.Status == domain.RepaymentCompleted {
			scheduled = append(scheduled, r)
		}
	}
	sort.SliceStable(scheduled, func(i, j int) bool {
		a, b := scheduled[i].DueDate, scheduled[j].DueDate
		return a != nil && (b == nil || a.Before(*b))
	})

	covered := decimal.Zero
	for _, r := range scheduled {
		covered = covered.Add(r.ScheduledAmount)
		settled := l.Status == domain.LoanCompleted || !covered.GreaterThan(l.AmountPaid)
		switch {
		case settled && r.Status == domain.RepaymentPending:
			paidAt := now
			r.Status = domain.RepaymentCompleted
			r.PaymentDate = &paidAt
			r.Notes = "Settled by " + settledBy
		case !settled && r.Status == domain.RepaymentCompleted:
			r.Status = domain.RepaymentPending
			r.PaymentDate = nil
			r.Notes = ""
		default:
			continue
		}
		r.Touch(userID, now)
		if err := repos.Loans.UpdateRepayment(ctx, r); err != nil {
			return fmt.Errorf("failed to update installment %s of loan %s: %w", r.RepaymentID, l.LoanID, err)
		}
	}
	return nil
}

func daysLate(due *time.Time, paidAt time.Time) int {
	if due == nil || !paidAt.After(*due) {
		return 0
	}
	return int(paidAt.Sub(*due).Hours() / 24)
}
