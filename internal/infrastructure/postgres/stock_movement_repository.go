package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fardsis/fsis-api/internal/domain/entity"
	"github.com/fardsis/fsis-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del ledger de movimientos (append-only).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento. No hay Update ni Delete: el ledger es inmutable.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, transaction_id, item_id, movement_type, quantity, unit_cost, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.TransactionID, m.ItemID, m.Type, m.Quantity, m.UnitCost,
		nullIfEmpty(m.UserID), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByTransaction devuelve los movimientos originados por una compra o pedido.
func (r *StockMovementRepo) ListByTransaction(ctx context.Context, transactionID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, transaction_id, item_id, movement_type, quantity, unit_cost, COALESCE(user_id, ''), created_at
		FROM stock_movements
		WHERE transaction_id = $1
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.ItemID, &m.Type, &m.Quantity, &m.UnitCost, &m.UserID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
