// Package audit es el servicio de bitácora: abre y sella las entradas de sesión y agrega acciones.
//
// Toda escritura es best-effort. Los métodos devuelven el error para diagnóstico, pero ya lo
// registraron en el log y en métricas; quien los llama debe seguir con su operación de negocio
// sin importar el resultado.
package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/reservas-canchas/internal/domain"
	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
	"github.com/jhoicas/reservas-canchas/internal/domain/repository"
	"github.com/jhoicas/reservas-canchas/pkg/metrics"
)

// Service casos de uso de la bitácora.
type Service struct {
	repo    repository.AuditRepository
	log     zerolog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewService construye el servicio de bitácora.
func NewService(repo repository.AuditRepository, log zerolog.Logger, m *metrics.Metrics) *Service {
	return &Service{repo: repo, log: log, metrics: m, now: time.Now}
}

// WithClock reemplaza el reloj (pruebas).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// RecordLogin inserta la entrada LOGIN abierta y devuelve su ID (el "audit handle" de la sesión).
// Cualquier entrada LOGIN previa aún abierta del mismo usuario queda sellada.
func (s *Service) RecordLogin(ctx context.Context, userID, userName string, client entity.ClientContext) (int64, error) {
	client = client.Normalized()
	entry := &entity.AuditEntry{
		UserID:      userID,
		UserName:    userName,
		EntryTime:   s.now(),
		ActionKind:  entity.ActionLogin,
		Description: fmt.Sprintf("Inicio de sesión del usuario %s", userName),
		Browser:     client.Browser,
		ClientIP:    client.IP,
		MachineName: client.MachineName,
	}
	if err := s.repo.OpenSession(ctx, entry); err != nil {
		return 0, s.fail("login", userID, err)
	}
	return entry.ID, nil
}

// RecordLogout sella la entrada abierta más reciente del usuario. handle, si no es 0, limita el
// sellado a esa entrada. Sin entrada abierta no hace nada.
func (s *Service) RecordLogout(ctx context.Context, userID string, handle int64) error {
	sealed, err := s.repo.SealOpen(ctx, userID, handle, s.now())
	if err != nil {
		return s.fail("logout", userID, err)
	}
	if !sealed {
		s.log.Debug().Str("user_id", userID).Int64("audit_handle", handle).Msg("logout sin entrada abierta en bitácora")
	}
	return nil
}

// ValidateAction verifica una acción antes de escribirla. LOGIN queda reservado a RecordLogin:
// una acción con ese tipo se contaría como sesión abierta.
func ValidateAction(action, description string) error {
	action = strings.TrimSpace(action)
	if action == "" {
		return domain.NewValidationError("tipo_accion", "el tipo de acción es obligatorio")
	}
	if strings.EqualFold(action, entity.ActionLogin) {
		return domain.NewValidationError("tipo_accion", "LOGIN está reservado para el inicio de sesión")
	}
	if strings.TrimSpace(description) == "" {
		return domain.NewValidationError("descripcion", "la descripción es obligatoria")
	}
	return nil
}

// RecordAction agrega una entrada de acción; nunca modifica entradas previas.
func (s *Service) RecordAction(ctx context.Context, userID, userName, table, action, description string) error {
	if err := ValidateAction(action, description); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("acción de bitácora rechazada")
		return err
	}
	action = strings.TrimSpace(action)
	entry := &entity.AuditEntry{
		UserID:      userID,
		UserName:    userName,
		EntryTime:   s.now(),
		ActionKind:  action,
		Description: description,
	}
	if table != "" {
		entry.TableAffected = &table
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		return s.fail("action", userID, err)
	}
	return nil
}

// List devuelve la bitácora más reciente primero. Los errores de lectura sí se propagan.
func (s *Service) List(ctx context.Context, filter repository.AuditFilter) ([]*entity.AuditEntry, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) fail(op, userID string, err error) error {
	s.metrics.AuditWriteFailures.WithLabelValues(op).Inc()
	s.log.Warn().Err(err).Str("op", op).Str("user_id", userID).Msg("no se pudo escribir en la bitácora")
	return fmt.Errorf("bitacora %s: %w", op, err)
}
