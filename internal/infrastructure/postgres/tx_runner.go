package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fardsis/fsis-api/internal/application/purchasing"
	"github.com/fardsis/fsis-api/internal/domain/repository"
)

// Ensure TxRunner implements purchasing.TxRunner.
var _ purchasing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Un error en cualquier paso deshace todos los anteriores:
// cabecera, líneas, movimientos de stock e incrementos quedan todo-o-nada.
func (r *TxRunner) Run(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	movRepo repository.StockMovementRepository,
	itemRepo repository.ItemRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	purchaseRepo := NewPurchaseRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	itemRepo := NewItemRepository(tx)

	if err := fn(purchaseRepo, movRepo, itemRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
