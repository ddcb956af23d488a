package repository

import (
	"context"

	"github.com/fardsis/fsis-api/internal/domain/entity"
)

// DistributorRepository define el puerto de persistencia para distribuidores.
type DistributorRepository interface {
	Create(ctx context.Context, distributor *entity.Distributor) error
	GetByID(ctx context.Context, id string) (*entity.Distributor, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Distributor, error)
}
