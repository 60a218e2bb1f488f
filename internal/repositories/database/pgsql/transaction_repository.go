package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_posting_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PgxTransactionRepository reads POS transactions and records posting state on them.
type PgxTransactionRepository struct {
	db DBTX
}

func newPgxTransactionRepository(db DBTX) *PgxTransactionRepository {
	return &PgxTransactionRepository{db: db}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const selectTransaction = `
	SELECT transaction_id, transaction_number, owner_id, transaction_type, flow_direction, status,
	       total_amount, refunded_amount, original_transaction_id, notes, transaction_date,
	       journal_entry_created, journal_entry_reference,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM transactions
	WHERE transaction_id = $1
`

// FindTransactionByID retrieves a transaction with its items.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return r.find(ctx, selectTransaction+";", transactionID)
}

// FindTransactionForUpdate locks the transaction row until the unit of work ends.
func (r *PgxTransactionRepository) FindTransactionForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return r.find(ctx, selectTransaction+" FOR UPDATE;", transactionID)
}

func (r *PgxTransactionRepository) find(ctx context.Context, query, transactionID string) (*domain.Transaction, error) {
	var t domain.Transaction
	err := r.db.QueryRow(ctx, query, transactionID).Scan(
		&t.TransactionID, &t.TransactionNumber, &t.OwnerID, &t.Type, &t.FlowDirection, &t.Status,
		&t.TotalAmount, &t.RefundedAmount, &t.OriginalTransactionID, &t.Notes, &t.TransactionDate,
		&t.JournalEntryCreated, &t.JournalEntryReference,
		&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapError(err, "transaction "+transactionID+" not found")
	}

	items, err := r.findItems(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	t.Items = items
	return &t, nil
}

func (r *PgxTransactionRepository) findItems(ctx context.Context, transactionID string) ([]domain.TransactionItem, error) {
	query := `
		SELECT item_id, transaction_id, product_id, product_name, quantity, unit_price, unit_cost
		FROM transaction_items
		WHERE transaction_id = $1
		ORDER BY item_id;
	`
	rows, err := r.db.Query(ctx, query, transactionID)
	if err != nil {
		return nil, mapError(err, "failed to query transaction items")
	}
	defer rows.Close()

	var items []domain.TransactionItem
	for rows.Next() {
		var it domain.TransactionItem
		if err := rows.Scan(&it.ItemID, &it.TransactionID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.UnitCost); err != nil {
			return nil, mapError(err, "failed to scan transaction item")
		}
		items = append(items, it)
	}
	return items, mapError(rows.Err(), "failed to iterate transaction items")
}

// SaveTransaction inserts a transaction header and its items.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, transaction_number, owner_id, transaction_type, flow_direction, status,
		                          total_amount, refunded_amount, original_transaction_id, notes, transaction_date,
		                          journal_entry_created, journal_entry_reference,
		                          created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.db.Exec(ctx, query,
		txn.TransactionID, txn.TransactionNumber, txn.OwnerID, txn.Type, txn.FlowDirection, txn.Status,
		txn.TotalAmount, txn.RefundedAmount, txn.OriginalTransactionID, txn.Notes, txn.TransactionDate,
		txn.JournalEntryCreated, txn.JournalEntryReference,
		txn.CreatedAt, txn.CreatedBy, txn.LastUpdatedAt, txn.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to insert transaction")
	}
	if len(txn.Items) == 0 {
		return nil
	}

	itemQuery := `
		INSERT INTO transaction_items (item_id, transaction_id, product_id, product_name, quantity, unit_price, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, it := range txn.Items {
		batch.Queue(itemQuery, it.ItemID, txn.TransactionID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, it.UnitCost)
	}
	br := r.db.SendBatch(ctx, batch)
	for i := range txn.Items {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return mapError(err, fmt.Sprintf("failed to insert transaction item %d", i+1))
		}
	}
	return mapError(br.Close(), "failed to close transaction item batch")
}

// MarkJournalPosted flips the journal flag and stores the entry number.
func (r *PgxTransactionRepository) MarkJournalPosted(ctx context.Context, transactionID, entryNumber, userID string) error {
	query := `
		UPDATE transactions
		SET journal_entry_created = TRUE, journal_entry_reference = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, transactionID, entryNumber, time.Now().UTC(), userID)
	if err != nil {
		return mapError(err, "failed to mark transaction posted")
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "transaction "+transactionID+" not found")
	}
	return nil
}

// AddRefundedAmount increments refunded_amount; the table's check constraint
// rejects increments that would exceed total_amount.
func (r *PgxTransactionRepository) AddRefundedAmount(ctx context.Context, transactionID string, amount decimal.Decimal, userID string) error {
	query := `
		UPDATE transactions
		SET refunded_amount = refunded_amount + $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, transactionID, amount, time.Now().UTC(), userID)
	if err != nil {
		return mapError(err, "failed to record refunded amount")
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "transaction "+transactionID+" not found")
	}
	return nil
}
