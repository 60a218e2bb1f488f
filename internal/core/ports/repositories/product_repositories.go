package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProductReader defines read operations for products and their stock ledger.
type ProductReader interface {
	// FindProductForUpdate retrieves a product and locks its row for the rest of the unit of work.
	FindProductForUpdate(ctx context.Context, productID string) (*domain.Product, error)

	// ListStockMovements returns the movements of a product oldest first.
	ListStockMovements(ctx context.Context, productID string) ([]domain.StockMovement, error)
}

// ProductWriter defines the stock writes the engine makes.
type ProductWriter interface {
	UpdateProductStock(ctx context.Context, productID string, stock decimal.Decimal, updatedAt time.Time) error
	InsertStockMovement(ctx context.Context, movement domain.StockMovement) error
}

// ProductRepositoryFacade combines all product repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
