package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-cocina/internal/domain"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
)

var _ repository.IntakeRequestRepository = (*IntakeRequestRepo)(nil)

// IntakeRequestRepo implementación sobre PostgreSQL (usable con pool o tx).
type IntakeRequestRepo struct {
	q Querier
}

// NewIntakeRequestRepository construye el adaptador de solicitudes. Pasar pool o tx (Querier).
func NewIntakeRequestRepository(q Querier) *IntakeRequestRepo {
	return &IntakeRequestRepo{q: q}
}

const intakeRequestColumns = `id, product_name, quantity, unit, status, request_date, created_at, updated_at`

// Create persiste una nueva solicitud.
func (r *IntakeRequestRepo) Create(ctx context.Context, req *entity.IntakeRequest) error {
	query := `
		INSERT INTO requests (` + intakeRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		req.ID, req.ProductName, req.Quantity, string(req.Unit), string(req.Status),
		req.RequestDate, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return storeError("create intake request", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID; (nil, nil) si no existe.
func (r *IntakeRequestRepo) GetByID(ctx context.Context, id string) (*entity.IntakeRequest, error) {
	query := `SELECT ` + intakeRequestColumns + ` FROM requests WHERE id = $1`
	req, err := scanIntakeRequest(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return req, nil
}

// List lista solicitudes de la más reciente a la más antigua.
func (r *IntakeRequestRepo) List(ctx context.Context, limit, offset int) ([]*entity.IntakeRequest, error) {
	query := `SELECT ` + intakeRequestColumns + ` FROM requests
		ORDER BY request_date DESC, created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, storeError("list intake requests", err)
	}
	defer rows.Close()
	list := make([]*entity.IntakeRequest, 0)
	for rows.Next() {
		req, err := scanIntakeRequest(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, req)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list intake requests", err)
	}
	return list, nil
}

// UpdateStatus cambia el estado solo si sigue siendo from (compare-and-set).
func (r *IntakeRequestRepo) UpdateStatus(ctx context.Context, id string, from, to entity.RequestStatus) error {
	query := `UPDATE requests SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(ctx, query, id, string(from), string(to))
	if err != nil {
		return storeError("update intake request status", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update intake request %s: %w", id, domain.ErrConflict)
	}
	return nil
}

func scanIntakeRequest(row pgx.Row) (*entity.IntakeRequest, error) {
	var (
		req          entity.IntakeRequest
		unit, status string
	)
	err := row.Scan(&req.ID, &req.ProductName, &req.Quantity, &unit, &status,
		&req.RequestDate, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, storeError("scan intake request", err)
	}
	if req.Unit, err = entity.ParseUnit(unit); err != nil {
		return nil, fmt.Errorf("request %s: unit %q: %w", req.ID, unit, err)
	}
	if req.Status, err = entity.ParseRequestStatus(status); err != nil {
		return nil, fmt.Errorf("request %s: status %q: %w", req.ID, status, err)
	}
	return &req, nil
}
