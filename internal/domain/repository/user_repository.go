package repository

import (
	"context"

	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (tabla usuarios).
// Las búsquedas devuelven (nil, nil) cuando no hay fila.
type UserRepository interface {
	// Create inserta el usuario y completa ID y CreatedAt asignados por el almacén.
	// Devuelve domain.ErrEmailAlreadyExists si el email ya existe.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
