package repository

import (
	"context"

	"github.com/fardsis/fsis-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para clientes.
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
}
