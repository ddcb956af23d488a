package repository

import (
	"context"

	"github.com/fardsis/fsis-api/internal/domain/entity"
)

// StockMovementRepository puerto del ledger de movimientos de stock (append-only).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByTransaction(ctx context.Context, transactionID string) ([]*entity.StockMovement, error)
}
