package repository

import (
	"context"
	"time"

	"github.com/fardsis/fsis-api/internal/domain/entity"
)

// PurchaseFilter filtros del reporte de compras. Los campos en cero se ignoran.
type PurchaseFilter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	DistributorID string
	Status        entity.PurchaseStatus
	Search        string // contra nombre de distribuidor o nombre de artículo
	Limit         int
	Offset        int
}

// PurchaseRepository define el puerto de persistencia para compras.
type PurchaseRepository interface {
	// Create persiste la cabecera y todas sus líneas.
	Create(ctx context.Context, purchase *entity.Purchase) error
	// GetByID devuelve la compra con todas sus líneas, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	// List devuelve cabeceras con líneas y el total de filas sin paginar.
	List(ctx context.Context, filter PurchaseFilter) ([]*entity.Purchase, int, error)
	// UpdateStatus persiste una transición ya validada por el dominio.
	UpdateStatus(ctx context.Context, id string, status entity.PurchaseStatus) error
}
