package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
	"github.com/jhoicas/reservas-canchas/internal/domain/repository"
)

var _ repository.CourtTypeRepository = (*CourtTypeRepo)(nil)

// CourtTypeRepo catálogo tipos_cancha.
type CourtTypeRepo struct {
	q Querier
}

// NewCourtTypeRepository construye el adaptador.
func NewCourtTypeRepository(q Querier) *CourtTypeRepo {
	return &CourtTypeRepo{q: q}
}

// List devuelve los tipos ordenados por nombre.
func (r *CourtTypeRepo) List(ctx context.Context) ([]*entity.CourtType, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre FROM tipos_cancha ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list tipos_cancha: %w", err)
	}
	defer rows.Close()
	var list []*entity.CourtType
	for rows.Next() {
		var t entity.CourtType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan tipo_cancha: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// GetByID obtiene un tipo por ID.
func (r *CourtTypeRepo) GetByID(ctx context.Context, id int64) (*entity.CourtType, error) {
	var t entity.CourtType
	err := r.q.QueryRow(ctx, `SELECT id, nombre FROM tipos_cancha WHERE id = $1`, id).Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tipo_cancha: %w", err)
	}
	return &t, nil
}

// Upsert crea el tipo por nombre si no existe y devuelve su ID.
func (r *CourtTypeRepo) Upsert(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO tipos_cancha (nombre) VALUES ($1)
		ON CONFLICT (nombre) DO UPDATE SET nombre = EXCLUDED.nombre
		RETURNING id`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert tipo_cancha: %w", err)
	}
	return id, nil
}
