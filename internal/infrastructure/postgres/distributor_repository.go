package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fardsis/fsis-api/internal/domain"
	"github.com/fardsis/fsis-api/internal/domain/entity"
	"github.com/fardsis/fsis-api/internal/domain/repository"
)

var _ repository.DistributorRepository = (*DistributorRepo)(nil)

// DistributorRepo implementación de DistributorRepository.
type DistributorRepo struct {
	q Querier
}

// NewDistributorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDistributorRepository(q Querier) *DistributorRepo {
	return &DistributorRepo{q: q}
}

// Create persiste un distribuidor.
func (r *DistributorRepo) Create(ctx context.Context, d *entity.Distributor) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	query := `
		INSERT INTO distributors (id, name, contact_info, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, d.ID, d.Name, nullIfEmpty(d.ContactInfo), d.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert distributor: %w", err)
	}
	return nil
}

// GetByID obtiene un distribuidor, o (nil, nil) si no existe.
func (r *DistributorRepo) GetByID(ctx context.Context, id string) (*entity.Distributor, error) {
	query := `
		SELECT id, name, COALESCE(contact_info, ''), created_at
		FROM distributors WHERE id = $1`
	var d entity.Distributor
	err := r.q.QueryRow(ctx, query, id).Scan(&d.ID, &d.Name, &d.ContactInfo, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get distributor: %w", err)
	}
	return &d, nil
}

// List devuelve distribuidores paginados ordenados por nombre.
func (r *DistributorRepo) List(ctx context.Context, limit, offset int) ([]*entity.Distributor, error) {
	query := `
		SELECT id, name, COALESCE(contact_info, ''), created_at
		FROM distributors
		ORDER BY name
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list distributors: %w", err)
	}
	defer rows.Close()
	var out []*entity.Distributor
	for rows.Next() {
		var d entity.Distributor
		if err := rows.Scan(&d.ID, &d.Name, &d.ContactInfo, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan distributor: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
