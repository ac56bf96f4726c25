// Package cache implementa session.Store en memoria (go-cache) y en Redis.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jhoicas/reservas-canchas/internal/application/session"
)

var _ session.Store = (*MemoryStore)(nil)

// MemoryStore sesiones en el proceso. Sirve para una sola instancia del API.
type MemoryStore struct {
	c *gocache.Cache
}

// NewMemoryStore construye el almacén; defaultTTL aplica cuando Save recibe ttl 0.
func NewMemoryStore(defaultTTL time.Duration) *MemoryStore {
	return &MemoryStore{c: gocache.New(defaultTTL, time.Minute)}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*session.Session, error) {
	v, ok := m.c.Get(id)
	if !ok {
		return nil, session.ErrNotFound
	}
	s, ok := v.(session.Session)
	if !ok {
		return nil, session.ErrNotFound
	}
	return &s, nil
}

// Save guarda una copia; mutar s después no afecta lo almacenado.
func (m *MemoryStore) Save(_ context.Context, s *session.Session, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.c.Set(s.ID, *s, ttl)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.c.Delete(id)
	return nil
}
