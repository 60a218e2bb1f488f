package services

import (
	"context"

	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	"github.com/SscSPs/pos_posting_engine/internal/dto"
)

// StockLedgerReaderSvc defines read operations on the stock ledger.
type StockLedgerReaderSvc interface {
	ListMovements(ctx context.Context, productID string) ([]domain.StockMovement, error)
}

// StockLedgerWriterSvc defines write operations on the stock ledger.
type StockLedgerWriterSvc interface {
	Apply(ctx context.Context, req dto.StockMovementRequest, userID string) (*domain.StockMovement, error)
}

// StockLedgerSvcFacade combines all stock ledger service interfaces.
type StockLedgerSvcFacade interface {
	StockLedgerReaderSvc
	StockLedgerWriterSvc
}
