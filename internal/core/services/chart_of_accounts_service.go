package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/pos_posting_engine/internal/apperrors"
	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/pos_posting_engine/pkg/config"
	"github.com/google/uuid"
)

// DefaultChartOfAccounts is used for every role a configuration does not override.
var DefaultChartOfAccounts = map[domain.AccountRole]config.AccountDefinition{
	domain.RoleCash:         {Code: "1010", Name: "Cash", AccountType: string(domain.Asset), Category: "cash"},
	domain.RoleSalesRevenue: {Code: "4000", Name: "Sales Revenue", AccountType: string(domain.Revenue), Category: "sales"},
	domain.RoleCOGS:         {Code: "5000", Name: "Cost of Goods Sold", AccountType: string(domain.Expense), Category: "cogs"},
	domain.RoleInventory:    {Code: "1200", Name: "Inventory", AccountType: string(domain.Asset), Category: "inventory"},
}

// chartOfAccountsService resolves posting roles to owner accounts and
// creates the account the first time a role is used.
type chartOfAccountsService struct {
	BaseService
	repos     portsrepo.RepositoryProvider
	uow       unitOfWork
	roles     map[domain.AccountRole]config.AccountDefinition
	overrides map[string]map[domain.AccountRole]config.AccountDefinition
}

// ChartOfAccountsOption configures the chart of accounts service.
type ChartOfAccountsOption func(*chartOfAccountsService)

// WithChartOfAccounts layers a configured chart over the defaults.
func WithChartOfAccounts(coa config.ChartOfAccounts) ChartOfAccountsOption {
	return func(s *chartOfAccountsService) {
		for role, def := range coa.Roles {
			s.roles[domain.AccountRole(strings.ToLower(role))] = def
		}
		for owner, roles := range coa.Overrides {
			byRole := make(map[domain.AccountRole]config.AccountDefinition, len(roles))
			for role, def := range roles {
				byRole[domain.AccountRole(strings.ToLower(role))] = def
			}
			s.overrides[strings.ToLower(owner)] = byRole
		}
	}
}

func newChartOfAccountsService(base BaseService, repos portsrepo.RepositoryProvider, uow unitOfWork, options ...ChartOfAccountsOption) *chartOfAccountsService {
	s := &chartOfAccountsService{
		BaseService: base,
		repos:       repos,
		uow:         uow,
		roles:       make(map[domain.AccountRole]config.AccountDefinition, len(DefaultChartOfAccounts)),
		overrides:   make(map[string]map[domain.AccountRole]config.AccountDefinition),
	}
	for role, def := range DefaultChartOfAccounts {
		s.roles[role] = def
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.ChartOfAccountsSvc = (*chartOfAccountsService)(nil)

// definition returns the account definition for role, preferring the owner's override.
func (s *chartOfAccountsService) definition(ownerID string, role domain.AccountRole) (config.AccountDefinition, error) {
	if byRole, ok := s.overrides[strings.ToLower(ownerID)]; ok {
		if def, ok := byRole[role]; ok {
			return def, nil
		}
	}
	def, ok := s.roles[role]
	if !ok {
		return config.AccountDefinition{}, fmt.Errorf("%w: no account is configured for role '%s'", apperrors.ErrValidation, role)
	}
	return def, nil
}

// ResolveAccount returns the owner's account for role in its own unit of work.
func (s *chartOfAccountsService) ResolveAccount(ctx context.Context, ownerID string, role domain.AccountRole) (*domain.Account, error) {
	if ownerID == "" {
		return nil, apperrors.NewValidationError("owner ID is required")
	}

	var account *domain.Account
	err := s.uow.run(ctx, "resolve_account", func(ctx context.Context, repos portsrepo.Store) error {
		var err error
		account, err = s.resolve(ctx, repos, ownerID, role)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve account", slog.String("owner_id", ownerID), slog.String("role", string(role)))
		return nil, err
	}
	return account, nil
}

// resolve finds or creates the account inside an existing unit of work.
// Racing creators converge on the same row: the insert is a no-op when the
// code already exists and the read afterwards returns the winner.
func (s *chartOfAccountsService) resolve(ctx context.Context, repos portsrepo.Store, ownerID string, role domain.AccountRole) (*domain.Account, error) {
	def, err := s.definition(ownerID, role)
	if err != nil {
		return nil, err
	}

	existing, err := repos.Accounts.FindAccountByCode(ctx, ownerID, def.Code)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up account %s for owner %s: %w", def.Code, ownerID, err)
	}

	accountType := domain.AccountType(strings.ToUpper(def.AccountType))
	if !accountType.IsValid() {
		return nil, fmt.Errorf("%w: role '%s' is configured with invalid account type '%s'", apperrors.ErrValidation, role, def.AccountType)
	}

	account := domain.Account{
		AccountID:       uuid.NewString(),
		OwnerID:         ownerID,
		Code:            def.Code,
		Name:            def.Name,
		AccountType:     accountType,
		Category:        def.Category,
		IsSystemAccount: true,
		CreatedAt:       s.Now(),
	}
	if err := repos.Accounts.InsertAccountIfAbsent(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account %s for owner %s: %w", def.Code, ownerID, err)
	}

	created, err := repos.Accounts.FindAccountByCode(ctx, ownerID, def.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to read back account %s for owner %s: %w", def.Code, ownerID, err)
	}
	if created.AccountID == account.AccountID {
		s.LogInfo(ctx, "Created ledger account for role",
			slog.String("owner_id", ownerID),
			slog.String("role", string(role)),
			slog.String("code", created.Code))
	}
	return created, nil
}
