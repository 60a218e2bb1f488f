package services

import (
	"context"

	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	"github.com/SscSPs/pos_posting_engine/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries.
type JournalReaderSvc interface {
	GetJournalEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}

// JournalPosterSvc turns completed transactions into balanced journal entries.
type JournalPosterSvc interface {
	// Post is idempotent: posting an already posted transaction returns the
	// existing entry with NoOp set.
	Post(ctx context.Context, transactionID string, userID string) (*dto.PostResult, error)
}

// JournalSvcFacade combines all journal service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalPosterSvc
}

// RefundSvc composes refunds of posted sales.
type RefundSvc interface {
	Reverse(ctx context.Context, req dto.RefundRequest, userID string) (*dto.RefundResult, error)
}
