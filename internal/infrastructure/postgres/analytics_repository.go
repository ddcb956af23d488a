package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fardsis/fsis-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas del dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// ItemsMoved suma las cantidades del ledger de movimientos desde una fecha.
func (r *AnalyticsRepo) ItemsMoved(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_movements
		WHERE created_at >= $1`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, since).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("items moved: %w", err)
	}
	return total, nil
}

// NewPurchases cuenta compras registradas desde una fecha.
func (r *AnalyticsRepo) NewPurchases(ctx context.Context, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM purchases
		WHERE created_at >= $1`
	var count int
	if err := r.q.QueryRow(ctx, query, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("new purchases: %w", err)
	}
	return count, nil
}

// TopCategories categorías con mayor volumen movido desde una fecha.
func (r *AnalyticsRepo) TopCategories(ctx context.Context, since time.Time, limit int) ([]repository.CategoryVolume, error) {
	query := `
		SELECT COALESCE(c.name, 'Sin categoría'), SUM(sm.quantity) AS volume
		FROM stock_movements sm
		JOIN items i ON i.id = sm.item_id
		LEFT JOIN categories c ON c.id = i.category_id
		WHERE sm.created_at >= $1
		GROUP BY c.name
		ORDER BY volume DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("top categories: %w", err)
	}
	defer rows.Close()
	var out []repository.CategoryVolume
	for rows.Next() {
		var cv repository.CategoryVolume
		if err := rows.Scan(&cv.Category, &cv.Quantity); err != nil {
			return nil, fmt.Errorf("scan category volume: %w", err)
		}
		out = append(out, cv)
	}
	return out, rows.Err()
}

// TopCustomers clientes con mayor gasto acumulado desde una fecha.
func (r *AnalyticsRepo) TopCustomers(ctx context.Context, since time.Time, limit int) ([]repository.CustomerSpend, error) {
	query := `
		SELECT c.id, c.name, SUM(oi.quantity * oi.unit_price) AS spend
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		JOIN order_items oi ON oi.order_id = o.id
		WHERE o.order_date >= $1
		GROUP BY c.id, c.name
		ORDER BY spend DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("top customers: %w", err)
	}
	defer rows.Close()
	var out []repository.CustomerSpend
	for rows.Next() {
		var cs repository.CustomerSpend
		if err := rows.Scan(&cs.CustomerID, &cs.CustomerName, &cs.Total); err != nil {
			return nil, fmt.Errorf("scan customer spend: %w", err)
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}
