package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/reservas-canchas/internal/application/session"
)

var _ session.Store = (*RedisStore)(nil)

const sessionKeyPrefix = "session:"

// RedisStore sesiones compartidas entre instancias del API.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore construye el almacén sobre un cliente existente.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (r *RedisStore) Get(ctx context.Context, id string) (*session.Session, error) {
	raw, err := r.rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("redis get sesión: %w", err)
	}
	var s session.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decodificar sesión: %w", err)
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *session.Session, ttl time.Duration) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("codificar sesión: %w", err)
	}
	if err := r.rdb.Set(ctx, sessionKeyPrefix+s.ID, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set sesión: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis del sesión: %w", err)
	}
	return nil
}
