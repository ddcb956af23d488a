package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryVolume volumen movido por categoría en una ventana de tiempo.
type CategoryVolume struct {
	Category string
	Quantity decimal.Decimal
}

// CustomerSpend gasto acumulado de un cliente en una ventana de tiempo.
type CustomerSpend struct {
	CustomerID   string
	CustomerName string
	Total        decimal.Decimal
}

// AnalyticsRepository consultas agregadas del dashboard. Cada método es una
// consulta independiente; el caso de uso las ejecuta en paralelo.
type AnalyticsRepository interface {
	ItemsMoved(ctx context.Context, since time.Time) (decimal.Decimal, error)
	NewPurchases(ctx context.Context, since time.Time) (int, error)
	TopCategories(ctx context.Context, since time.Time, limit int) ([]CategoryVolume, error)
	TopCustomers(ctx context.Context, since time.Time, limit int) ([]CustomerSpend, error)
}
