package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/reservas-canchas/internal/application/dto"
	"github.com/jhoicas/reservas-canchas/internal/domain"
	"github.com/jhoicas/reservas-canchas/internal/domain/authz"
	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
	"github.com/jhoicas/reservas-canchas/internal/domain/repository"
)

// UserUseCase consultas de usuarios para el visor de bitácora.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario por ID. Devuelve domain.ErrNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, actor entity.AuthenticatedUser, id string) (*dto.UserResponse, error) {
	if err := authz.Authorize(actor.Role, authz.ResourceUser, authz.OpView); err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewValidationError("id", "el id de usuario es obligatorio")
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: usuario: %w", domain.ErrStore, err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return entityToUserResponse(user), nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
