package repositories

import (
	"context"

	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
)

// JournalReader defines read operations for journal entries.
type JournalReader interface {
	// FindJournalEntryByID retrieves an entry and its lines.
	FindJournalEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindJournalEntryByReference retrieves the entry derived from a business record.
	FindJournalEntryByReference(ctx context.Context, referenceType, referenceID string) (*domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal entries.
type JournalWriter interface {
	// SaveJournalEntry persists an entry and all of its lines.
	// A second entry for the same reference fails with a retryable duplicate error.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
