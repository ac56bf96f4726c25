package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
)

// AuditRecorder es lo que el Manager necesita de la bitácora.
type AuditRecorder interface {
	RecordLogin(ctx context.Context, userID, userName string, client entity.ClientContext) (int64, error)
	RecordLogout(ctx context.Context, userID string, handle int64) error
}

// Manager liga y libera sesiones, disparando las entradas de bitácora correspondientes.
type Manager struct {
	store Store
	audit AuditRecorder
	ttl   time.Duration
	log   zerolog.Logger
	now   func() time.Time
}

// NewManager construye el gestor de sesiones. ttl es la vida máxima de una sesión.
func NewManager(store Store, audit AuditRecorder, ttl time.Duration, log zerolog.Logger) *Manager {
	return &Manager{store: store, audit: audit, ttl: ttl, log: log, now: time.Now}
}

// Load obtiene la sesión por id. Devuelve ErrNotFound si fue cerrada o expiró; una sesión expirada
// se elimina y su entrada LOGIN se sella.
func (m *Manager) Load(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.ExpiresAt.IsZero() && m.now().After(s.ExpiresAt) {
		if s.IsAuthenticated() {
			m.sealLogin(ctx, s.User.ID, s.AuditHandle)
		}
		_ = m.store.Delete(ctx, id)
		return nil, ErrNotFound
	}
	return s, nil
}

// Bind liga user a s, abre la entrada LOGIN en la bitácora y guarda la sesión.
// Un fallo de bitácora no impide el login (la sesión queda sin handle); un fallo del Store sí.
func (m *Manager) Bind(ctx context.Context, s *Session, user entity.AuthenticatedUser, client entity.ClientContext) error {
	handle, err := m.audit.RecordLogin(ctx, user.ID, user.Name, client)
	if err != nil {
		handle = 0
	}
	s.bind(user, handle, m.now(), m.ttl)
	if err := m.store.Save(ctx, s, m.ttl); err != nil {
		s.clear()
		// la entrada LOGIN ya quedó abierta; se sella para no dejar una sesión fantasma
		m.sealLogin(ctx, user.ID, handle)
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

// Clear sella la entrada LOGIN de la sesión y la elimina. Sin sesión autenticada no hace nada.
func (m *Manager) Clear(ctx context.Context, s *Session) {
	if !s.IsAuthenticated() {
		return
	}
	m.sealLogin(ctx, s.User.ID, s.AuditHandle)
	if err := m.store.Delete(ctx, s.ID); err != nil && !errors.Is(err, ErrNotFound) {
		m.log.Warn().Err(err).Str("session_id", s.ID).Msg("no se pudo eliminar la sesión del almacén")
	}
	s.clear()
}

// sealLogin sella la entrada LOGIN de una sesión. Sin handle la sesión nunca abrió entrada y no se
// sella nada: la entrada abierta del usuario pertenece a otra sesión.
func (m *Manager) sealLogin(ctx context.Context, userID string, handle int64) {
	if handle == 0 {
		return
	}
	_ = m.audit.RecordLogout(ctx, userID, handle)
}
