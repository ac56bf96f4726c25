package repository

import (
	"context"

	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
)

// CourtPatch campos a modificar de una cancha; nil significa "sin cambio".
type CourtPatch struct {
	Name      *string
	Available *bool
	TypeID    *int64
}

// CourtRepository define el puerto de persistencia para canchas y sus horarios.
type CourtRepository interface {
	// List devuelve las canchas con su tipo y horarios.
	List(ctx context.Context) ([]*entity.Court, error)
	GetByID(ctx context.Context, id int64) (*entity.Court, error)
	Create(ctx context.Context, court *entity.Court) error
	// Update aplica patch y devuelve la cancha resultante, o nil si no existe.
	Update(ctx context.Context, id int64, patch CourtPatch) (*entity.Court, error)
	// Delete elimina la cancha y sus horarios. Devuelve false si no existía.
	Delete(ctx context.Context, id int64) (bool, error)
	AddSchedule(ctx context.Context, s *entity.Schedule) error
	DeleteSchedule(ctx context.Context, courtID, scheduleID int64) (bool, error)
}

// CourtTypeRepository catálogo tipos_cancha.
type CourtTypeRepository interface {
	List(ctx context.Context) ([]*entity.CourtType, error)
	GetByID(ctx context.Context, id int64) (*entity.CourtType, error)
	// Upsert crea el tipo si no existe (por nombre) y devuelve su ID.
	Upsert(ctx context.Context, name string) (int64, error)
}
