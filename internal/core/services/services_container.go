package services

import (
	"fmt"
	"time"

	portsrepo "github.com/SscSPs/pos_posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/pos_posting_engine/internal/metrics"
	"github.com/SscSPs/pos_posting_engine/pkg/config"
	"github.com/shopspring/decimal"
)

// ContainerOption tweaks how the service container is assembled.
type ContainerOption func(*BaseService)

// WithClock overrides the time source used by every service.
func WithClock(clock func() time.Time) ContainerOption {
	return func(b *BaseService) {
		b.Clock = clock
	}
}

// NewServiceContainer creates a new service container with all services initialized.
// Services that post together share one chart of accounts and stock ledger so a
// single unit of work can drive all of them.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, recorder *metrics.Recorder, options ...ContainerOption) (*portssvc.ServiceContainer, error) {
	base := BaseService{Metrics: recorder}
	for _, opt := range options {
		opt(&base)
	}

	share := DefaultInterestShare
	if cfg.Loans.InterestShare != "" {
		parsed, err := decimal.NewFromString(cfg.Loans.InterestShare)
		if err != nil {
			return nil, fmt.Errorf("invalid fixed ratio interest share '%s': %w", cfg.Loans.InterestShare, err)
		}
		share = parsed
	}
	policies, err := newAllocationPolicies(cfg.Loans.DefaultAllocationPolicy, share)
	if err != nil {
		return nil, err
	}

	uow := newUnitOfWork(repos.TxManager, cfg.Posting.MaxAttempts, recorder)

	accounts := newChartOfAccountsService(base, repos, uow, WithChartOfAccounts(cfg.ChartOfAccounts))
	stock := newStockLedgerService(base, repos, uow)
	poster := newJournalPosterService(base, repos, uow, accounts, stock)
	refunds := newRefundService(base, uow, poster, stock, WithCOGSReversalOnFullRefund(cfg.Posting.ReverseCOGSOnFullRefund))
	loans := newLoanLedgerService(base, repos, uow,
		WithFirstRepaymentAfterDays(cfg.Loans.FirstRepaymentAfterDays),
		withAllocationPolicies(policies),
	)

	return &portssvc.ServiceContainer{
		ChartOfAccounts: accounts,
		StockLedger:     stock,
		Journal:         poster,
		Refund:          refunds,
		LoanLedger:      loans,
	}, nil
}
