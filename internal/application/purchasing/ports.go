package purchasing

import (
	"context"

	"github.com/fardsis/fsis-api/internal/domain/repository"
)

// TxRunner puerto de transacciones: ejecuta fn con repos atados a una misma
// tx. Si fn falla, todo lo escrito dentro se deshace.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		movRepo repository.StockMovementRepository,
		itemRepo repository.ItemRepository,
	) error) error
}
