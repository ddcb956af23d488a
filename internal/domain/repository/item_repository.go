package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fardsis/fsis-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para artículos del catálogo.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetByIDs carga un lote de artículos en una sola consulta (precios base
	// para el fallback de costo unitario). Los IDs inexistentes se omiten.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Item, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	// IncrementStock suma delta al stock del artículo (UPDATE atómico).
	IncrementStock(ctx context.Context, itemID string, delta decimal.Decimal) error
}
