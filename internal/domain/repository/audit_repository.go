package repository

import (
	"context"
	"time"

	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
)

// AuditRepository define el puerto de persistencia de la bitácora.
type AuditRepository interface {
	// OpenSession sella las entradas LOGIN abiertas del usuario (con entry.EntryTime como salida)
	// e inserta entry en una sola transacción. Completa entry.ID.
	OpenSession(ctx context.Context, entry *entity.AuditEntry) error
	// SealOpen fija la hora de salida en la entrada LOGIN abierta más reciente del usuario.
	// Si entryID != 0 solo considera esa entrada. Devuelve false si no había nada que sellar.
	SealOpen(ctx context.Context, userID string, entryID int64, at time.Time) (bool, error)
	// Append agrega una entrada de acción. Nunca modifica filas previas.
	Append(ctx context.Context, entry *entity.AuditEntry) error
	// List devuelve las entradas ordenadas por hora de ingreso descendente y el total.
	List(ctx context.Context, filter AuditFilter) ([]*entity.AuditEntry, int, error)
}

// AuditFilter filtros del visor de bitácora.
type AuditFilter struct {
	UserID     string
	ActionKind string
	Limit      int
	Offset     int
}
