// Package authz es la política única de autorización por rol. La consultan tanto la capa de
// presentación (qué controles mostrar editables) como los casos de uso antes de aceptar una escritura.
package authz

import (
	"github.com/jhoicas/reservas-canchas/internal/domain"
	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
)

// Operation operación sobre un recurso.
type Operation string

const (
	OpView   Operation = "view"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Recursos (coinciden con el nombre de la tabla, que es lo que se registra en la bitácora).
const (
	ResourceCourt     = "canchas"
	ResourceCourtType = "tipos_cancha"
	ResourceSchedule  = "horarios_disponibles"
	ResourceAudit     = "bitacora"
	ResourceUser      = "usuarios"
)

// courtFieldGrants campos de canchas editables por rol distinto de admin.
// Un rol ausente es de solo lectura.
var courtFieldGrants = map[string]map[string]bool{
	entity.RoleConsultor: {entity.CourtFieldAvailable: true},
}

// CanEditField informa si role puede modificar field de una cancha.
func CanEditField(role, field string) bool {
	if !entity.IsValidRole(role) || !isCourtField(field) {
		return false
	}
	if role == entity.RoleAdmin {
		return true
	}
	return courtFieldGrants[role][field]
}

// EditableFields devuelve los campos de cancha que role puede modificar, en el orden de entity.CourtFields.
func EditableFields(role string) []string {
	out := make([]string, 0, len(entity.CourtFields))
	for _, f := range entity.CourtFields {
		if CanEditField(role, f) {
			out = append(out, f)
		}
	}
	return out
}

// Can informa si role puede ejecutar op sobre resource.
func Can(role, resource string, op Operation) bool {
	if !entity.IsValidRole(role) {
		return false
	}
	if role == entity.RoleAdmin {
		return true
	}
	switch resource {
	case ResourceCourt:
		switch op {
		case OpView:
			return true
		case OpUpdate:
			return len(EditableFields(role)) > 0
		}
	case ResourceCourtType, ResourceSchedule:
		return op == OpView
	}
	return false
}

// AuthorizeFields verifica que role pueda escribir todos los campos. Devuelve un
// *domain.ForbiddenError por el primer campo negado.
func AuthorizeFields(role string, fields []string) error {
	for _, f := range fields {
		if !CanEditField(role, f) {
			return &domain.ForbiddenError{Role: role, Resource: ResourceCourt, Target: f}
		}
	}
	return nil
}

// Authorize como Can pero devolviendo un *domain.ForbiddenError.
func Authorize(role, resource string, op Operation) error {
	if !Can(role, resource, op) {
		return &domain.ForbiddenError{Role: role, Resource: resource, Target: string(op)}
	}
	return nil
}

func isCourtField(field string) bool {
	for _, f := range entity.CourtFields {
		if f == field {
			return true
		}
	}
	return false
}
