package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/fardsis/fsis-api/internal/domain/entity"
	"github.com/fardsis/fsis-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo lectura de pedidos de clientes (lado de reportes).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// GetByID devuelve el pedido con sus líneas, o (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `
		SELECT o.id, o.customer_id, COALESCE(c.name, ''), o.order_date, o.status
		FROM orders o
		LEFT JOIN customers c ON c.id = o.customer_id
		WHERE o.id = $1`
	var o entity.Order
	var status string
	err := r.q.QueryRow(ctx, query, id).Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.OrderDate, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	parsed, err := entity.ParseOrderStatus(status)
	if err != nil {
		return nil, fmt.Errorf("order %s: estado %q: %w", o.ID, status, err)
	}
	o.Status = parsed
	items, err := r.loadItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

// List devuelve cabeceras con líneas y el total de filas sin paginar.
func (r *OrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, int, error) {
	conds := []string{"1=1"}
	args := []any{}
	n := 0
	add := func(cond string, arg any) {
		n++
		conds = append(conds, fmt.Sprintf(cond, n))
		args = append(args, arg)
	}
	if filter.StartDate != nil {
		add("o.order_date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("o.order_date <= $%d", *filter.EndDate)
	}
	if filter.CustomerID != "" {
		add("o.customer_id = $%d", filter.CustomerID)
	}
	if filter.Status != "" {
		add("o.status = $%d", filter.Status.String())
	}
	if filter.Search != "" {
		n++
		conds = append(conds, fmt.Sprintf(`(c.name ILIKE '%%' || $%d || '%%' OR EXISTS (
			SELECT 1 FROM order_items oi
			JOIN items i ON i.id = oi.item_id
			WHERE oi.order_id = o.id AND i.name ILIKE '%%' || $%d || '%%'))`, n, n))
		args = append(args, filter.Search)
	}
	where := strings.Join(conds, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM orders o
		LEFT JOIN customers c ON c.id = o.customer_id
		WHERE ` + where
	var total int
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT o.id, o.customer_id, COALESCE(c.name, ''), o.order_date, o.status
		FROM orders o
		LEFT JOIN customers c ON c.id = o.customer_id
		WHERE %s
		ORDER BY o.order_date DESC, o.id DESC
		LIMIT $%d OFFSET $%d`, where, n+1, n+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	var ids []string
	for rows.Next() {
		var o entity.Order
		var status string
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.OrderDate, &status); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		parsed, err := entity.ParseOrderStatus(status)
		if err != nil {
			return nil, 0, fmt.Errorf("order %s: estado %q: %w", o.ID, status, err)
		}
		o.Status = parsed
		orders = append(orders, &o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	itemsByOrder, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, o := range orders {
		o.Items = itemsByOrder[o.ID]
	}
	return orders, total, nil
}

func (r *OrderRepo) loadItems(ctx context.Context, orderIDs []string) (map[string][]*entity.OrderItem, error) {
	out := make(map[string][]*entity.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT oi.id, oi.order_id, oi.item_id, COALESCE(i.name, ''), oi.quantity, oi.unit_price
		FROM order_items oi
		LEFT JOIN items i ON i.id = oi.item_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id`
	rows, err := r.q.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ItemID, &it.ItemName, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out[it.OrderID] = append(out[it.OrderID], &it)
	}
	return out, rows.Err()
}
