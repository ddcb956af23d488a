package repository

import (
	"context"
	"time"

	"github.com/fardsis/fsis-api/internal/domain/entity"
)

// OrderFilter filtros del reporte de pedidos de clientes.
type OrderFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CustomerID string
	Status     entity.OrderStatus
	Search     string
	Limit      int
	Offset     int
}

// OrderRepository puerto de lectura de pedidos de clientes (lado de reportes;
// la captura de pedidos vive en el front de ventas, no en esta API).
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, int, error)
}
