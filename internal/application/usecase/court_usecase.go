package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/jhoicas/reservas-canchas/internal/application/dto"
	"github.com/jhoicas/reservas-canchas/internal/domain"
	"github.com/jhoicas/reservas-canchas/internal/domain/authz"
	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
	"github.com/jhoicas/reservas-canchas/internal/domain/repository"
)

const maxCourtNameLength = 100

// ActionRecorder registra en bitácora las escrituras exitosas.
type ActionRecorder interface {
	RecordAction(ctx context.Context, userID, userName, table, action, description string) error
}

// CourtUseCase CRUD de canchas, tipos y horarios con la política de autorización aplicada
// en cada escritura.
type CourtUseCase struct {
	courts repository.CourtRepository
	types  repository.CourtTypeRepository
	audit  ActionRecorder
	log    zerolog.Logger
}

// NewCourtUseCase construye el caso de uso.
func NewCourtUseCase(courts repository.CourtRepository, types repository.CourtTypeRepository, audit ActionRecorder, log zerolog.Logger) *CourtUseCase {
	return &CourtUseCase{courts: courts, types: types, audit: audit, log: log}
}

// List lista las canchas con tipo y horarios.
func (uc *CourtUseCase) List(ctx context.Context, actor entity.AuthenticatedUser) ([]dto.CourtResponse, error) {
	if err := authz.Authorize(actor.Role, authz.ResourceCourt, authz.OpView); err != nil {
		return nil, err
	}
	list, err := uc.courts.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CourtResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCourtResponse(c))
	}
	return out, nil
}

// GetByID obtiene una cancha. Devuelve domain.ErrNotFound si no existe.
func (uc *CourtUseCase) GetByID(ctx context.Context, actor entity.AuthenticatedUser, id int64) (*dto.CourtResponse, error) {
	if err := authz.Authorize(actor.Role, authz.ResourceCourt, authz.OpView); err != nil {
		return nil, err
	}
	c, err := uc.courts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCourtResponse(c), nil
}

// Permissions campos editables para el rol de actor; la capa de presentación los usa para
// decidir qué controles mostrar.
func (uc *CourtUseCase) Permissions(actor entity.AuthenticatedUser) dto.PermissionsResponse {
	return dto.PermissionsResponse{
		Role:           actor.Role,
		EditableFields: authz.EditableFields(actor.Role),
		CanCreate:      authz.Can(actor.Role, authz.ResourceCourt, authz.OpCreate),
		CanDelete:      authz.Can(actor.Role, authz.ResourceCourt, authz.OpDelete),
	}
}

// Create crea una cancha disponible.
func (uc *CourtUseCase) Create(ctx context.Context, actor entity.AuthenticatedUser, in dto.CreateCourtRequest) (*dto.CourtResponse, error) {
	if err := authz.Authorize(actor.Role, authz.ResourceCourt, authz.OpCreate); err != nil {
		return nil, err
	}
	name, err := validateCourtName(in.Name)
	if err != nil {
		return nil, err
	}
	court := &entity.Court{Name: name, Available: true, TypeID: in.TypeID}
	if err := uc.courts.Create(ctx, court); err != nil {
		return nil, err
	}
	uc.record(ctx, actor, authz.ResourceCourt, entity.ActionCreate, fmt.Sprintf("Cancha creada: %s", name))

	created, err := uc.courts.GetByID(ctx, court.ID)
	if err != nil || created == nil {
		return toCourtResponse(court), nil
	}
	return toCourtResponse(created), nil
}

// Update aplica una actualización parcial. Cada campo presente debe estar permitido para el rol;
// basta uno negado para rechazar toda la escritura con *domain.ForbiddenError.
func (uc *CourtUseCase) Update(ctx context.Context, actor entity.AuthenticatedUser, id int64, in dto.UpdateCourtRequest) (*dto.CourtResponse, error) {
	var fields []string
	patch := repository.CourtPatch{Available: in.Available, TypeID: in.TypeID}
	if in.Name != nil {
		fields = append(fields, entity.CourtFieldName)
	}
	if in.Available != nil {
		fields = append(fields, entity.CourtFieldAvailable)
	}
	if in.TypeID != nil {
		fields = append(fields, entity.CourtFieldType)
	}
	if len(fields) == 0 {
		return nil, domain.NewValidationError("body", "no se indicó ningún campo a modificar")
	}
	if err := authz.AuthorizeFields(actor.Role, fields); err != nil {
		return nil, err
	}
	if in.Name != nil {
		name, err := validateCourtName(*in.Name)
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}

	updated, err := uc.courts.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	uc.record(ctx, actor, authz.ResourceCourt, entity.ActionUpdate,
		fmt.Sprintf("Cancha %d actualizada (%s)", id, strings.Join(fields, ", ")))
	return toCourtResponse(updated), nil
}

// SetAvailability cambia solo el campo disponible.
func (uc *CourtUseCase) SetAvailability(ctx context.Context, actor entity.AuthenticatedUser, id int64, available bool) (*dto.CourtResponse, error) {
	return uc.Update(ctx, actor, id, dto.UpdateCourtRequest{Available: &available})
}

// Delete elimina una cancha y sus horarios.
func (uc *CourtUseCase) Delete(ctx context.Context, actor entity.AuthenticatedUser, id int64) error {
	if err := authz.Authorize(actor.Role, authz.ResourceCourt, authz.OpDelete); err != nil {
		return err
	}
	ok, err := uc.courts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	uc.record(ctx, actor, authz.ResourceCourt, entity.ActionDelete, fmt.Sprintf("Cancha %d eliminada", id))
	return nil
}

// ListTypes catálogo de tipos de cancha.
func (uc *CourtUseCase) ListTypes(ctx context.Context, actor entity.AuthenticatedUser) ([]dto.CourtTypeResponse, error) {
	if err := authz.Authorize(actor.Role, authz.ResourceCourtType, authz.OpView); err != nil {
		return nil, err
	}
	list, err := uc.types.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CourtTypeResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.CourtTypeResponse{ID: t.ID, Name: t.Name})
	}
	return out, nil
}

// AddSchedule agrega una franja horaria a la cancha.
func (uc *CourtUseCase) AddSchedule(ctx context.Context, actor entity.AuthenticatedUser, courtID int64, in dto.ScheduleRequest) (*dto.ScheduleResponse, error) {
	if err := authz.AuthorizeFields(actor.Role, []string{entity.CourtFieldSchedules}); err != nil {
		return nil, err
	}
	s, err := validateSchedule(courtID, in)
	if err != nil {
		return nil, err
	}
	if err := uc.courts.AddSchedule(ctx, s); err != nil {
		return nil, err
	}
	uc.record(ctx, actor, authz.ResourceSchedule, entity.ActionCreate,
		fmt.Sprintf("Horario %s %s-%s agregado a la cancha %d", s.Day, s.StartTime, s.EndTime, courtID))
	out := toScheduleResponse(*s)
	return &out, nil
}

// DeleteSchedule elimina una franja horaria.
func (uc *CourtUseCase) DeleteSchedule(ctx context.Context, actor entity.AuthenticatedUser, courtID, scheduleID int64) error {
	if err := authz.AuthorizeFields(actor.Role, []string{entity.CourtFieldSchedules}); err != nil {
		return err
	}
	ok, err := uc.courts.DeleteSchedule(ctx, courtID, scheduleID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	uc.record(ctx, actor, authz.ResourceSchedule, entity.ActionDelete,
		fmt.Sprintf("Horario %d eliminado de la cancha %d", scheduleID, courtID))
	return nil
}

// record escribe la acción en bitácora; el resultado no afecta la operación.
func (uc *CourtUseCase) record(ctx context.Context, actor entity.AuthenticatedUser, table, action, description string) {
	_ = uc.audit.RecordAction(ctx, actor.ID, actor.Name, table, action, description)
}

func validateCourtName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.NewValidationError(entity.CourtFieldName, "el nombre es obligatorio")
	}
	if utf8.RuneCountInString(name) > maxCourtNameLength {
		return "", domain.NewValidationError(entity.CourtFieldName, "el nombre no puede superar 100 caracteres")
	}
	return name, nil
}

func validateSchedule(courtID int64, in dto.ScheduleRequest) (*entity.Schedule, error) {
	day, ok := entity.NormalizeDay(in.Day)
	if !ok {
		return nil, domain.NewValidationError("dia_semana", "día inválido (lunes a domingo)")
	}
	start, err := time.Parse("15:04", strings.TrimSpace(in.StartTime))
	if err != nil {
		return nil, domain.NewValidationError("hora_inicio", "formato de hora inválido (HH:MM)")
	}
	end, err := time.Parse("15:04", strings.TrimSpace(in.EndTime))
	if err != nil {
		return nil, domain.NewValidationError("hora_fin", "formato de hora inválido (HH:MM)")
	}
	if !start.Before(end) {
		return nil, domain.NewValidationError("hora_fin", "la hora de fin debe ser posterior a la de inicio")
	}
	return &entity.Schedule{
		CourtID:   courtID,
		Day:       day,
		StartTime: start.Format("15:04"),
		EndTime:   end.Format("15:04"),
	}, nil
}

func toCourtResponse(c *entity.Court) *dto.CourtResponse {
	out := &dto.CourtResponse{
		ID:        c.ID,
		Name:      c.Name,
		Available: c.Available,
		TypeID:    c.TypeID,
		TypeName:  c.TypeName,
		Schedules: make([]dto.ScheduleResponse, 0, len(c.Schedules)),
	}
	for _, s := range c.Schedules {
		out.Schedules = append(out.Schedules, toScheduleResponse(s))
	}
	return out
}

func toScheduleResponse(s entity.Schedule) dto.ScheduleResponse {
	return dto.ScheduleResponse{ID: s.ID, Day: s.Day, StartTime: s.StartTime, EndTime: s.EndTime}
}
