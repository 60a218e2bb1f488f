package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/pos_posting_engine/internal/apperrors"
	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/pos_posting_engine/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// stockLedgerService keeps product quantities and their movement history in step.
type stockLedgerService struct {
	BaseService
	repos    portsrepo.RepositoryProvider
	uow      unitOfWork
	validate *validator.Validate
}

func newStockLedgerService(base BaseService, repos portsrepo.RepositoryProvider, uow unitOfWork) *stockLedgerService {
	return &stockLedgerService{
		BaseService: base,
		repos:       repos,
		uow:         uow,
		validate:    dto.NewValidator(),
	}
}

var _ portssvc.StockLedgerSvcFacade = (*stockLedgerService)(nil)

// Apply records a single stock movement in its own unit of work.
func (s *stockLedgerService) Apply(ctx context.Context, req dto.StockMovementRequest, userID string) (*domain.StockMovement, error) {
	if err := s.validate.Struct(req); err != nil {
		s.LogWarn(ctx, "Rejected stock movement request", slog.String("product_id", req.ProductID), slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(http.StatusBadRequest, "invalid stock movement", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}

	var movement *domain.StockMovement
	err := s.uow.run(ctx, "stock_movement", func(ctx context.Context, repos portsrepo.Store) error {
		var err error
		movement, err = s.apply(ctx, repos, req, userID)
		return err
	})
	s.Metrics.ObserveStockMovement(string(req.MovementType), err)
	if err != nil {
		s.LogError(ctx, err, "Failed to apply stock movement", slog.String("product_id", req.ProductID))
		return nil, err
	}

	s.LogInfo(ctx, "Stock movement applied",
		slog.String("product_id", movement.ProductID),
		slog.String("movement_id", movement.MovementID),
		slog.String("stock_after", movement.StockAfter.String()))
	return movement, nil
}

// ListMovements returns the movement history of a product oldest first.
func (s *stockLedgerService) ListMovements(ctx context.Context, productID string) ([]domain.StockMovement, error) {
	if productID == "" {
		return nil, apperrors.NewValidationError("product ID is required")
	}
	movements, err := s.repos.Readers.Products.ListStockMovements(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements of product %s: %w", productID, err)
	}
	return movements, nil
}

// apply changes the product row and appends the movement inside an existing unit of work.
// The product row stays locked until the unit ends, so movements of one product form a
// gapless chain: every movement's StockBefore is the previous movement's StockAfter.
func (s *stockLedgerService) apply(ctx context.Context, repos portsrepo.Store, req dto.StockMovementRequest, userID string) (*domain.StockMovement, error) {
	if req.Quantity.IsZero() {
		return nil, fmt.Errorf("%w: stock movement quantity cannot be zero", apperrors.ErrValidation)
	}
	if !req.MovementType.IsValid() {
		return nil, fmt.Errorf("%w: unknown movement type '%s'", apperrors.ErrValidation, req.MovementType)
	}

	product, err := repos.Products.FindProductForUpdate(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %s: %w", req.ProductID, err)
	}
	if !product.TrackInventory {
		return nil, fmt.Errorf("%w: product %s does not track inventory", apperrors.ErrValidation, product.ProductID)
	}

	before := product.CurrentStock
	after := before.Add(req.Quantity)
	if after.IsNegative() && !product.AllowNegativeStock {
		return nil, fmt.Errorf("%w: product %s has %s in stock, movement needs %s",
			apperrors.ErrInsufficientStock, product.ProductID, before.String(), req.Quantity.Neg().String())
	}

	now := s.Now()
	if err := repos.Products.UpdateProductStock(ctx, product.ProductID, after, now); err != nil {
		return nil, fmt.Errorf("failed to update stock of product %s: %w", product.ProductID, err)
	}

	movement := domain.StockMovement{
		MovementID:      ulid.Make().String(),
		ProductID:       product.ProductID,
		MovementType:    req.MovementType,
		Quantity:        req.Quantity,
		UnitCost:        req.UnitCost,
		StockBefore:     before,
		StockAfter:      after,
		ReferenceNumber: req.Reference,
		Notes:           req.Notes,
		CreatedBy:       userID,
		CreatedAt:       now,
	}
	if err := repos.Products.InsertStockMovement(ctx, movement); err != nil {
		return nil, fmt.Errorf("failed to record stock movement for product %s: %w", product.ProductID, err)
	}
	return &movement, nil
}

// tracksInventory reports whether movements should be recorded for a product.
// Items without a product and products that do not track inventory are skipped.
func (s *stockLedgerService) tracksInventory(ctx context.Context, repos portsrepo.Store, productID *string) (bool, error) {
	if productID == nil || *productID == "" {
		return false, nil
	}
	product, err := repos.Products.FindProductForUpdate(ctx, *productID)
	if err != nil {
		return false, fmt.Errorf("failed to load product %s: %w", *productID, err)
	}
	return product.TrackInventory, nil
}

// applyItems records one movement per tracked item of txn. Quantities are
// multiplied by sign, so sales pass -1 and purchases or restocks pass +1.
func (s *stockLedgerService) applyItems(ctx context.Context, repos portsrepo.Store, txn *domain.Transaction, sign int64, movementType domain.MovementType, userID string) ([]domain.StockMovement, error) {
	var movements []domain.StockMovement
	for _, item := range txn.Items {
		if item.Quantity.IsZero() {
			continue
		}
		tracked, err := s.tracksInventory(ctx, repos, item.ProductID)
		if err != nil {
			return nil, err
		}
		if !tracked {
			continue
		}

		unitCost := item.UnitCost
		movement, err := s.apply(ctx, repos, dto.StockMovementRequest{
			ProductID:    *item.ProductID,
			Quantity:     item.Quantity.Mul(decimal.NewFromInt(sign)),
			MovementType: movementType,
			Reference:    txn.TransactionNumber,
			UnitCost:     &unitCost,
			Notes:        item.ProductName,
		}, userID)
		if err != nil {
			return nil, err
		}
		movements = append(movements, *movement)
	}
	return movements, nil
}
