package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/pos_posting_engine/internal/apperrors"
	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
)

func refKey(refType, refID string) string {
	return refType + "\x00" + refID
}

func (v *view) FindJournalEntryByID(_ context.Context, entryID string) (*domain.JournalEntry, error) {
	defer v.lock()()
	entry, ok := v.s.entries[entryID]
	if !ok {
		return nil, notFound("journal entry", entryID)
	}
	out := cloneEntry(entry)
	return &out, nil
}

func (v *view) FindJournalEntryByReference(_ context.Context, referenceType, referenceID string) (*domain.JournalEntry, error) {
	defer v.lock()()
	id, ok := v.s.entryByRef[refKey(referenceType, referenceID)]
	if !ok {
		return nil, notFound("journal entry for", referenceType+"/"+referenceID)
	}
	out := cloneEntry(v.s.entries[id])
	return &out, nil
}

func (v *view) SaveJournalEntry(_ context.Context, entry domain.JournalEntry) error {
	defer v.lock()()
	if err := v.fault("SaveJournalEntry"); err != nil {
		return err
	}
	key := refKey(entry.ReferenceType, entry.ReferenceID)
	if _, exists := v.s.entryByRef[key]; exists {
		return fmt.Errorf("%w: %w: journal entry for %s/%s", apperrors.ErrRetryable, apperrors.ErrDuplicate, entry.ReferenceType, entry.ReferenceID)
	}
	for _, line := range entry.Lines {
		if _, ok := v.s.accounts[line.AccountID]; !ok {
			return fmt.Errorf("journal line references unknown account %s", line.AccountID)
		}
	}
	v.s.entries[entry.EntryID] = cloneEntry(entry)
	v.s.entryByRef[key] = entry.EntryID
	v.onRollback(func() {
		delete(v.s.entries, entry.EntryID)
		delete(v.s.entryByRef, key)
	})
	return nil
}
