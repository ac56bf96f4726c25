// Package session modela el estado de sesión por contexto de usuario/navegador.
//
// Cada request trae (o no) su propia *Session, cargada desde un Store por el id del token.
// No hay estado global: dos sesiones nunca comparten datos mutables.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
)

// ErrNotFound la sesión no existe o ya fue cerrada.
var ErrNotFound = errors.New("sesión no encontrada")

// Session estado de un contexto autenticado: copia del usuario al momento del login y el
// handle de la entrada LOGIN abierta en la bitácora.
type Session struct {
	ID            string                   `json:"id"`
	User          entity.AuthenticatedUser `json:"user"`
	Authenticated bool                     `json:"authenticated"`
	AuditHandle   int64                    `json:"audit_handle"`
	CreatedAt     time.Time                `json:"created_at"`
	ExpiresAt     time.Time                `json:"expires_at"`
}

// New crea una sesión anónima con id nuevo.
func New() *Session {
	return &Session{ID: uuid.NewString()}
}

// IsAuthenticated informa si hay un usuario ligado. Acepta nil (contexto sin sesión).
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Authenticated && s.User.ID != ""
}

func (s *Session) bind(user entity.AuthenticatedUser, handle int64, now time.Time, ttl time.Duration) {
	s.User = user
	s.Authenticated = true
	s.AuditHandle = handle
	s.CreatedAt = now
	s.ExpiresAt = now.Add(ttl)
}

func (s *Session) clear() {
	s.User = entity.AuthenticatedUser{}
	s.Authenticated = false
	s.AuditHandle = 0
}

// Store persiste las sesiones activas por id, con expiración.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error) // ErrNotFound si no existe
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
