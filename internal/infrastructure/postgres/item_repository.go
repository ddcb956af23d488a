package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fardsis/fsis-api/internal/domain"
	"github.com/fardsis/fsis-api/internal/domain/entity"
	"github.com/fardsis/fsis-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un artículo del catálogo.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO items (id, name, category_id, base_price, stock_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, nullIfEmpty(item.CategoryID),
		item.BasePrice, item.StockQuantity, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo con su categoría, o (nil, nil) si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `
		SELECT i.id, i.name, COALESCE(i.category_id, ''), COALESCE(c.name, ''),
		       i.base_price, i.stock_quantity, i.created_at, i.updated_at
		FROM items i
		LEFT JOIN categories c ON c.id = i.category_id
		WHERE i.id = $1`
	var it entity.Item
	err := r.q.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.Name, &it.CategoryID, &it.CategoryName,
		&it.BasePrice, &it.StockQuantity, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// GetByIDs carga un lote de artículos en una sola consulta. IDs inexistentes se omiten.
func (r *ItemRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Item, error) {
	result := make(map[string]*entity.Item, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	query := `
		SELECT i.id, i.name, COALESCE(i.category_id, ''), COALESCE(c.name, ''),
		       i.base_price, i.stock_quantity, i.created_at, i.updated_at
		FROM items i
		LEFT JOIN categories c ON c.id = i.category_id
		WHERE i.id = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get items by ids: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(
			&it.ID, &it.Name, &it.CategoryID, &it.CategoryName,
			&it.BasePrice, &it.StockQuantity, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		result[it.ID] = &it
	}
	return result, rows.Err()
}

// List devuelve artículos paginados; search filtra por nombre (ILIKE).
func (r *ItemRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT i.id, i.name, COALESCE(i.category_id, ''), COALESCE(c.name, ''),
		       i.base_price, i.stock_quantity, i.created_at, i.updated_at
		FROM items i
		LEFT JOIN categories c ON c.id = i.category_id
		WHERE ($1 = '' OR i.name ILIKE '%' || $1 || '%')
		ORDER BY i.name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var items []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(
			&it.ID, &it.Name, &it.CategoryID, &it.CategoryName,
			&it.BasePrice, &it.StockQuantity, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// Update actualiza nombre, categoría y precio base. El stock solo se mueve
// vía IncrementStock para que el ledger y el saldo no se desincronicen.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $2, category_id = $3, base_price = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.Name, nullIfEmpty(item.CategoryID), item.BasePrice, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementStock suma delta al stock del artículo en un solo UPDATE.
func (r *ItemRepo) IncrementStock(ctx context.Context, itemID string, delta decimal.Decimal) error {
	query := `
		UPDATE items
		SET stock_quantity = stock_quantity + $2, updated_at = NOW()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, itemID, delta)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
