package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/reservas-canchas/internal/domain"
	"github.com/jhoicas/reservas-canchas/internal/domain/credentials"
	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
	"github.com/jhoicas/reservas-canchas/internal/domain/repository"
	"github.com/jhoicas/reservas-canchas/pkg/password"
)

// seedAdmin valida con las reglas del registro y crea el usuario con rol admin.
func seedAdmin(ctx context.Context, users repository.UserRepository, hasher *password.Hasher, name, email, plain string) (*entity.User, error) {
	name = credentials.NormalizeName(name)
	email = credentials.NormalizeEmail(email)
	if err := credentials.ValidateRegistration(name, email, plain); err != nil {
		return nil, err
	}
	existing, err := users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := hasher.Hash(plain)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
	}
	if err := users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func seedCourtTypes(ctx context.Context, types repository.CourtTypeRepository, names []string) ([]int64, error) {
	ids := make([]int64, 0, len(names))
	for _, n := range names {
		id, err := types.Upsert(ctx, n)
		if err != nil {
			return nil, fmt.Errorf("tipo %q: %w", n, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
