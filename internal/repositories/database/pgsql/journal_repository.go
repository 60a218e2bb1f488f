package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_posting_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// PgxJournalRepository stores journal entries and their lines.
type PgxJournalRepository struct {
	db DBTX
}

func newPgxJournalRepository(db DBTX) *PgxJournalRepository {
	return &PgxJournalRepository{db: db}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const selectJournalEntry = `
	SELECT entry_id, entry_number, owner_id, entry_date, description, reference_type, reference_id, status,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM journal_entries
`

// SaveJournalEntry inserts the header and batches the lines.
// Callers run it inside a unit of work so header and lines commit together.
func (r *PgxJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	headerQuery := `
		INSERT INTO journal_entries (entry_id, entry_number, owner_id, entry_date, description, reference_type, reference_id,
		                             status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, headerQuery,
		entry.EntryID, entry.EntryNumber, entry.OwnerID, entry.EntryDate, entry.Description,
		entry.ReferenceType, entry.ReferenceID, entry.Status,
		entry.CreatedAt, entry.CreatedBy, entry.LastUpdatedAt, entry.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to insert journal entry")
	}

	lineQuery := `
		INSERT INTO journal_entry_lines (line_id, entry_id, line_no, account_id, account_code, debit, credit, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for i, line := range entry.Lines {
		batch.Queue(lineQuery, line.LineID, entry.EntryID, i+1, line.AccountID, line.AccountCode, line.Debit, line.Credit, line.Memo)
	}

	br := r.db.SendBatch(ctx, batch)
	for i := range entry.Lines {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return mapError(err, fmt.Sprintf("failed to insert journal line %d", i+1))
		}
	}
	return mapError(br.Close(), "failed to close journal line batch")
}

// FindJournalEntryByID retrieves an entry with its lines.
func (r *PgxJournalRepository) FindJournalEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return r.findOne(ctx, selectJournalEntry+" WHERE entry_id = $1;", "journal entry "+entryID+" not found", entryID)
}

// FindJournalEntryByReference retrieves the entry derived from a business record.
func (r *PgxJournalRepository) FindJournalEntryByReference(ctx context.Context, referenceType, referenceID string) (*domain.JournalEntry, error) {
	return r.findOne(ctx, selectJournalEntry+" WHERE reference_type = $1 AND reference_id = $2;",
		"journal entry for "+referenceType+" "+referenceID+" not found", referenceType, referenceID)
}

func (r *PgxJournalRepository) findOne(ctx context.Context, query, notFoundMsg string, args ...any) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&e.EntryID, &e.EntryNumber, &e.OwnerID, &e.EntryDate, &e.Description,
		&e.ReferenceType, &e.ReferenceID, &e.Status,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapError(err, notFoundMsg)
	}

	lines, err := r.findLines(ctx, e.EntryID)
	if err != nil {
		return nil, err
	}
	e.Lines = lines
	return &e, nil
}

func (r *PgxJournalRepository) findLines(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, account_code, debit, credit, memo
		FROM journal_entry_lines
		WHERE entry_id = $1
		ORDER BY line_no;
	`
	rows, err := r.db.Query(ctx, query, entryID)
	if err != nil {
		return nil, mapError(err, "failed to query journal lines")
	}
	defer rows.Close()

	var lines []domain.JournalEntryLine
	for rows.Next() {
		var l domain.JournalEntryLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.AccountID, &l.AccountCode, &l.Debit, &l.Credit, &l.Memo); err != nil {
			return nil, mapError(err, "failed to scan journal line")
		}
		lines = append(lines, l)
	}
	return lines, mapError(rows.Err(), "failed to iterate journal lines")
}
