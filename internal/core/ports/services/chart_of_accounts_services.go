package services

import (
	"context"

	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
)

// ChartOfAccountsSvc resolves the ledger account that plays a posting role for an owner.
type ChartOfAccountsSvc interface {
	// ResolveAccount returns the owner's account for role, creating it on first use.
	ResolveAccount(ctx context.Context, ownerID string, role domain.AccountRole) (*domain.Account, error)
}
