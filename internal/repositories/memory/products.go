package memory

import (
	"context"
	"time"

	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (v *view) FindProductForUpdate(_ context.Context, productID string) (*domain.Product, error) {
	defer v.lock()()
	p, ok := v.s.products[productID]
	if !ok {
		return nil, notFound("product", productID)
	}
	return &p, nil
}

func (v *view) ListStockMovements(_ context.Context, productID string) ([]domain.StockMovement, error) {
	defer v.lock()()
	stored := v.s.movements[productID]
	out := make([]domain.StockMovement, len(stored))
	for i, m := range stored {
		out[i] = cloneMovement(m)
	}
	return out, nil
}

func (v *view) UpdateProductStock(_ context.Context, productID string, stock decimal.Decimal, updatedAt time.Time) error {
	defer v.lock()()
	if err := v.fault("UpdateProductStock"); err != nil {
		return err
	}
	prev, ok := v.s.products[productID]
	if !ok {
		return notFound("product", productID)
	}
	next := prev
	next.CurrentStock = stock
	next.LastUpdatedAt = updatedAt
	v.s.products[productID] = next
	v.onRollback(func() { v.s.products[productID] = prev })
	return nil
}

func (v *view) InsertStockMovement(_ context.Context, movement domain.StockMovement) error {
	defer v.lock()()
	if err := v.fault("InsertStockMovement"); err != nil {
		return err
	}
	if _, ok := v.s.products[movement.ProductID]; !ok {
		return notFound("product", movement.ProductID)
	}
	pid := movement.ProductID
	n := len(v.s.movements[pid])
	v.s.movements[pid] = append(v.s.movements[pid], cloneMovement(movement))
	v.onRollback(func() { v.s.movements[pid] = v.s.movements[pid][:n] })
	return nil
}
