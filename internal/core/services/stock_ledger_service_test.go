package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/pos_posting_engine/internal/apperrors"
	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	"github.com/SscSPs/pos_posting_engine/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockLedger_ChainIsContinuous(t *testing.T) {
	fx := newFixture(t, testConfig())
	ctx := context.Background()
	seedProduct(fx.store, "p1", "0")

	for _, qty := range []string{"10", "-3", "-4", "2.5"} {
		_, err := fx.services.StockLedger.Apply(ctx, dto.StockMovementRequest{
			ProductID:    "p1",
			Quantity:     dec(qty),
			MovementType: domain.MovementAdjustment,
			Reference:    "count",
		}, testUser)
		require.NoError(t, err)
	}

	movements, err := fx.services.StockLedger.ListMovements(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, movements, 4)

	requireDecimal(t, "0", movements[0].StockBefore)
	for i, mv := range movements {
		assert.True(t, mv.StockBefore.Add(mv.Quantity).Equal(mv.StockAfter), "movement %d", i)
		if i > 0 {
			assert.True(t, movements[i-1].StockAfter.Equal(mv.StockBefore), "movement %d", i)
		}
		assert.Equal(t, testUser, mv.CreatedBy)
		assert.NotEmpty(t, mv.MovementID)
	}
	requireDecimal(t, "5.5", movements[3].StockAfter)
}

func TestStockLedger_Rejections(t *testing.T) {
	fx := newFixture(t, testConfig())
	ctx := context.Background()
	seedProduct(fx.store, "p1", "1")
	fx.store.PutProduct(domain.Product{ProductID: "untracked", OwnerID: testOwner, CurrentStock: dec("0")})
	fx.store.PutProduct(domain.Product{ProductID: "loose", OwnerID: testOwner, CurrentStock: dec("0"), TrackInventory: true, AllowNegativeStock: true})

	tests := []struct {
		name    string
		req     dto.StockMovementRequest
		wantErr error
	}{
		{
			name:    "zero quantity",
			req:     dto.StockMovementRequest{ProductID: "p1", Quantity: dec("0"), MovementType: domain.MovementAdjustment},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "unknown type",
			req:     dto.StockMovementRequest{ProductID: "p1", Quantity: dec("1"), MovementType: "theft"},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "below zero",
			req:     dto.StockMovementRequest{ProductID: "p1", Quantity: dec("-2"), MovementType: domain.MovementDamage},
			wantErr: apperrors.ErrInsufficientStock,
		},
		{
			name:    "untracked product",
			req:     dto.StockMovementRequest{ProductID: "untracked", Quantity: dec("1"), MovementType: domain.MovementPurchase},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "missing product",
			req:     dto.StockMovementRequest{ProductID: "ghost", Quantity: dec("1"), MovementType: domain.MovementPurchase},
			wantErr: apperrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.services.StockLedger.Apply(ctx, tt.req, testUser)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	movements, err := fx.services.StockLedger.ListMovements(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, movements)

	mv, err := fx.services.StockLedger.Apply(ctx, dto.StockMovementRequest{ProductID: "loose", Quantity: dec("-3"), MovementType: domain.MovementSale}, testUser)
	require.NoError(t, err)
	requireDecimal(t, "-3", mv.StockAfter)
}
