package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_posting_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PgxProductRepository maintains product stock and the stock movement ledger.
type PgxProductRepository struct {
	db DBTX
}

func newPgxProductRepository(db DBTX) *PgxProductRepository {
	return &PgxProductRepository{db: db}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

// FindProductForUpdate locks the product row so concurrent movements serialize.
func (r *PgxProductRepository) FindProductForUpdate(ctx context.Context, productID string) (*domain.Product, error) {
	query := `
		SELECT product_id, owner_id, name, current_stock, track_inventory, allow_negative_stock, last_updated_at
		FROM products
		WHERE product_id = $1
		FOR UPDATE;
	`
	var p domain.Product
	err := r.db.QueryRow(ctx, query, productID).Scan(
		&p.ProductID, &p.OwnerID, &p.Name, &p.CurrentStock, &p.TrackInventory, &p.AllowNegativeStock, &p.LastUpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, "product "+productID+" not found")
	}
	return &p, nil
}

// UpdateProductStock overwrites current_stock with the value computed under lock.
func (r *PgxProductRepository) UpdateProductStock(ctx context.Context, productID string, stock decimal.Decimal, updatedAt time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE products SET current_stock = $2, last_updated_at = $3 WHERE product_id = $1;`, productID, stock, updatedAt)
	if err != nil {
		return mapError(err, "failed to update product stock")
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "product "+productID+" not found")
	}
	return nil
}

// InsertStockMovement appends a movement to the product's ledger.
func (r *PgxProductRepository) InsertStockMovement(ctx context.Context, m domain.StockMovement) error {
	query := `
		INSERT INTO stock_movements (movement_id, product_id, movement_type, quantity, unit_cost, stock_before, stock_after,
		                             reference_number, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	unitCost := decimal.NullDecimal{}
	if m.UnitCost != nil {
		unitCost = decimal.NewNullDecimal(*m.UnitCost)
	}
	_, err := r.db.Exec(ctx, query,
		m.MovementID, m.ProductID, m.MovementType, m.Quantity, unitCost, m.StockBefore, m.StockAfter,
		m.ReferenceNumber, m.Notes, m.CreatedBy, m.CreatedAt,
	)
	return mapError(err, "failed to insert stock movement")
}

// ListStockMovements returns movements oldest first. ULID ids sort by creation time.
func (r *PgxProductRepository) ListStockMovements(ctx context.Context, productID string) ([]domain.StockMovement, error) {
	query := `
		SELECT movement_id, product_id, movement_type, quantity, unit_cost, stock_before, stock_after,
		       reference_number, notes, created_by, created_at
		FROM stock_movements
		WHERE product_id = $1
		ORDER BY movement_id;
	`
	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, mapError(err, "failed to query stock movements")
	}
	defer rows.Close()

	movements := []domain.StockMovement{}
	for rows.Next() {
		var m domain.StockMovement
		var unitCost decimal.NullDecimal
		if err := rows.Scan(
			&m.MovementID, &m.ProductID, &m.MovementType, &m.Quantity, &unitCost, &m.StockBefore, &m.StockAfter,
			&m.ReferenceNumber, &m.Notes, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, mapError(err, "failed to scan stock movement")
		}
		if unitCost.Valid {
			m.UnitCost = &unitCost.Decimal
		}
		movements = append(movements, m)
	}
	return movements, mapError(rows.Err(), "failed to iterate stock movements")
}
