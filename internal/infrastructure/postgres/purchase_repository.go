package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fardsis/fsis-api/internal/domain"
	"github.com/fardsis/fsis-api/internal/domain/entity"
	"github.com/fardsis/fsis-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste la cabecera y todas sus líneas. Debe llamarse dentro de
// una transacción (vía TxRunner) para que cabecera y líneas sean atómicas.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO purchases (id, distributor_id, purchase_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.DistributorID, p.PurchaseDate, p.Status.String(), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	for _, it := range p.Items {
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.PurchaseID = p.ID
		lineQuery := `
			INSERT INTO purchase_items (id, purchase_id, item_id, quantity, unit_cost)
			VALUES ($1, $2, $3, $4, $5)`
		if _, err := r.q.Exec(ctx, lineQuery, it.ID, it.PurchaseID, it.ItemID, it.Quantity, it.UnitCost); err != nil {
			return fmt.Errorf("insert purchase item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la compra con todas sus líneas, o (nil, nil) si no existe.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	query := `
		SELECT p.id, p.distributor_id, COALESCE(d.name, ''), p.purchase_date, p.status, p.created_at, p.updated_at
		FROM purchases p
		LEFT JOIN distributors d ON d.id = p.distributor_id
		WHERE p.id = $1`
	var p entity.Purchase
	var status string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.DistributorID, &p.DistributorName, &p.PurchaseDate, &status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	parsed, err := entity.ParsePurchaseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("purchase %s: estado %q: %w", p.ID, status, err)
	}
	p.Status = parsed
	items, err := r.loadItems(ctx, []string{p.ID})
	if err != nil {
		return nil, err
	}
	p.Items = items[p.ID]
	return &p, nil
}

// purchaseListWhere construye el WHERE dinámico del reporte de compras.
// La búsqueda libre cubre ID de compra, nombre del distribuidor y nombre de
// artículo en las líneas (contabilidad busca por el ID que aparece en el recibo).
func purchaseListWhere(filter repository.PurchaseFilter) (string, []any) {
	conds := []string{"1=1"}
	args := []any{}
	n := 0
	add := func(cond string, arg any) {
		n++
		conds = append(conds, fmt.Sprintf(cond, n))
		args = append(args, arg)
	}
	if filter.StartDate != nil {
		add("p.purchase_date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("p.purchase_date <= $%d", *filter.EndDate)
	}
	if filter.DistributorID != "" {
		add("p.distributor_id = $%d", filter.DistributorID)
	}
	if filter.Status != "" {
		add("p.status = $%d", filter.Status.String())
	}
	if filter.Search != "" {
		n++
		conds = append(conds, fmt.Sprintf(`(p.id::text ILIKE '%%' || $%d || '%%'
			OR d.name ILIKE '%%' || $%d || '%%' OR EXISTS (
			SELECT 1 FROM purchase_items pi
			JOIN items i ON i.id = pi.item_id
			WHERE pi.purchase_id = p.id AND i.name ILIKE '%%' || $%d || '%%'))`, n, n, n))
		args = append(args, filter.Search)
	}
	return strings.Join(conds, " AND "), args
}

// List devuelve cabeceras con líneas y el total de filas sin paginar.
// La paginación se aplica sobre cabeceras; cada cabecera sale con sus líneas completas.
func (r *PurchaseRepo) List(ctx context.Context, filter repository.PurchaseFilter) ([]*entity.Purchase, int, error) {
	where, args := purchaseListWhere(filter)
	n := len(args)

	countQuery := `
		SELECT COUNT(*)
		FROM purchases p
		LEFT JOIN distributors d ON d.id = p.distributor_id
		WHERE ` + where
	var total int
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchases: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.distributor_id, COALESCE(d.name, ''), p.purchase_date, p.status, p.created_at, p.updated_at
		FROM purchases p
		LEFT JOIN distributors d ON d.id = p.distributor_id
		WHERE %s
		ORDER BY p.purchase_date DESC, p.created_at DESC
		LIMIT $%d OFFSET $%d`, where, n+1, n+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var purchases []*entity.Purchase
	var ids []string
	for rows.Next() {
		var p entity.Purchase
		var status string
		if err := rows.Scan(&p.ID, &p.DistributorID, &p.DistributorName, &p.PurchaseDate, &status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan purchase: %w", err)
		}
		parsed, err := entity.ParsePurchaseStatus(status)
		if err != nil {
			return nil, 0, fmt.Errorf("purchase %s: estado %q: %w", p.ID, status, err)
		}
		p.Status = parsed
		purchases = append(purchases, &p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	itemsByPurchase, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, p := range purchases {
		p.Items = itemsByPurchase[p.ID]
	}
	return purchases, total, nil
}

// UpdateStatus persiste una transición ya validada por el dominio.
func (r *PurchaseRepo) UpdateStatus(ctx context.Context, id string, status entity.PurchaseStatus) error {
	query := `
		UPDATE purchases
		SET status = $2, updated_at = NOW()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status.String())
	if err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// loadItems carga las líneas de un lote de compras en una sola consulta,
// con nombre y precio base del artículo para el fallback de costo unitario.
func (r *PurchaseRepo) loadItems(ctx context.Context, purchaseIDs []string) (map[string][]*entity.PurchaseItem, error) {
	out := make(map[string][]*entity.PurchaseItem, len(purchaseIDs))
	if len(purchaseIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT pi.id, pi.purchase_id, pi.item_id, COALESCE(i.name, ''), COALESCE(i.base_price, 0),
		       pi.quantity, pi.unit_cost
		FROM purchase_items pi
		LEFT JOIN items i ON i.id = pi.item_id
		WHERE pi.purchase_id = ANY($1)
		ORDER BY pi.id`
	rows, err := r.q.Query(ctx, query, purchaseIDs)
	if err != nil {
		return nil, fmt.Errorf("load purchase items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ItemID, &it.ItemName, &it.ItemBasePrice, &it.Quantity, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		out[it.PurchaseID] = append(out[it.PurchaseID], &it)
	}
	return out, rows.Err()
}
