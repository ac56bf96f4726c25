package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidPassword    = errors.New("contraseña incorrecta")
	ErrEmailAlreadyExists = errors.New("ya existe un usuario con ese correo")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrStore              = errors.New("error del almacén de datos")
)

// ValidationError describe un campo que no cumple la política de entrada.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError construye un ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ForbiddenError indica qué campo u operación negó la política de autorización.
type ForbiddenError struct {
	Role     string
	Resource string
	Target   string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("el rol %q no puede modificar %s.%s", e.Role, e.Resource, e.Target)
}

// Is permite errors.Is(err, ErrForbidden).
func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}
