package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/reservas-canchas/internal/domain"
	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
	"github.com/jhoicas/reservas-canchas/internal/domain/repository"
)

var _ repository.CourtRepository = (*CourtRepo)(nil)

// CourtRepo implementación de CourtRepository sobre canchas + tipos_cancha + horarios_disponibles.
type CourtRepo struct {
	q Querier
}

// NewCourtRepository construye el adaptador. Acepta pool o tx (Querier).
func NewCourtRepository(q Querier) *CourtRepo {
	return &CourtRepo{q: q}
}

const selectCourts = `
	SELECT c.id, c.nombre, c.disponible, c.id_tipo, COALESCE(t.nombre, '')
	FROM canchas c
	LEFT JOIN tipos_cancha t ON t.id = c.id_tipo`

// List devuelve todas las canchas con tipo y horarios.
func (r *CourtRepo) List(ctx context.Context) ([]*entity.Court, error) {
	rows, err := r.q.Query(ctx, selectCourts+` ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("list canchas: %w", err)
	}
	defer rows.Close()
	var (
		list []*entity.Court
		byID = map[int64]*entity.Court{}
	)
	for rows.Next() {
		var c entity.Court
		if err := rows.Scan(&c.ID, &c.Name, &c.Available, &c.TypeID, &c.TypeName); err != nil {
			return nil, fmt.Errorf("scan cancha: %w", err)
		}
		list = append(list, &c)
		byID[c.ID] = &c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}
	schedules, err := r.schedules(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, s := range schedules {
		if c, ok := byID[s.CourtID]; ok {
			c.Schedules = append(c.Schedules, s)
		}
	}
	return list, nil
}

// GetByID obtiene una cancha con tipo y horarios.
func (r *CourtRepo) GetByID(ctx context.Context, id int64) (*entity.Court, error) {
	var c entity.Court
	err := r.q.QueryRow(ctx, selectCourts+` WHERE c.id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Available, &c.TypeID, &c.TypeName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cancha: %w", err)
	}
	c.Schedules, err = r.schedules(ctx, &id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserta la cancha y completa su ID.
func (r *CourtRepo) Create(ctx context.Context, court *entity.Court) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO canchas (nombre, id_tipo, disponible) VALUES ($1, $2, $3) RETURNING id`,
		court.Name, court.TypeID, court.Available,
	).Scan(&court.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewValidationError(entity.CourtFieldType, "el tipo de cancha no existe")
		}
		return fmt.Errorf("insert cancha: %w", err)
	}
	return nil
}

// Update aplica los campos no nulos del patch.
func (r *CourtRepo) Update(ctx context.Context, id int64, patch repository.CourtPatch) (*entity.Court, error) {
	query := `
		UPDATE canchas SET
			nombre     = COALESCE($2, nombre),
			disponible = COALESCE($3, disponible),
			id_tipo    = COALESCE($4, id_tipo)
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, patch.Name, patch.Available, patch.TypeID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewValidationError(entity.CourtFieldType, "el tipo de cancha no existe")
		}
		return nil, fmt.Errorf("update cancha: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// Delete elimina la cancha (los horarios caen por ON DELETE CASCADE).
func (r *CourtRepo) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM canchas WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete cancha: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// AddSchedule inserta una franja horaria.
func (r *CourtRepo) AddSchedule(ctx context.Context, s *entity.Schedule) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO horarios_disponibles (cancha_id, dia_semana, hora_inicio, hora_fin)
		VALUES ($1, $2, $3::text::time, $4::text::time)
		RETURNING id`,
		s.CourtID, s.Day, s.StartTime, s.EndTime,
	).Scan(&s.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert horario: %w", err)
	}
	return nil
}

// DeleteSchedule elimina una franja de la cancha indicada.
func (r *CourtRepo) DeleteSchedule(ctx context.Context, courtID, scheduleID int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM horarios_disponibles WHERE id = $1 AND cancha_id = $2`, scheduleID, courtID)
	if err != nil {
		return false, fmt.Errorf("delete horario: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *CourtRepo) schedules(ctx context.Context, courtID *int64) ([]entity.Schedule, error) {
	query := `
		SELECT id, cancha_id, dia_semana, to_char(hora_inicio, 'HH24:MI'), to_char(hora_fin, 'HH24:MI')
		FROM horarios_disponibles
		WHERE ($1::bigint IS NULL OR cancha_id = $1)
		ORDER BY cancha_id, id`
	rows, err := r.q.Query(ctx, query, courtID)
	if err != nil {
		return nil, fmt.Errorf("list horarios: %w", err)
	}
	defer rows.Close()
	var out []entity.Schedule
	for rows.Next() {
		var s entity.Schedule
		if err := rows.Scan(&s.ID, &s.CourtID, &s.Day, &s.StartTime, &s.EndTime); err != nil {
			return nil, fmt.Errorf("scan horario: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
