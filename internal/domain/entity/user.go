package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin              = "admin"
	RoleConsultor          = "consultor"
	RoleOperadorReservas   = "operador_reservas"
	RoleRegistradorEventos = "registrador_eventos"
	RoleRegistrador        = "registrador"
)

var validRoles = map[string]bool{
	RoleAdmin:              true,
	RoleConsultor:          true,
	RoleOperadorReservas:   true,
	RoleRegistradorEventos: true,
	RoleRegistrador:        true,
}

// IsValidRole informa si role pertenece al catálogo.
func IsValidRole(role string) bool {
	return validRoles[role]
}

// IsSelfAssignable informa si role puede elegirse en el registro público.
// admin solo se asigna manualmente (cmd/seed).
func IsSelfAssignable(role string) bool {
	return IsValidRole(role) && role != RoleAdmin
}

// User representa un usuario del sistema (tabla usuarios).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt; el texto plano nunca llega al almacén
	Role         string
	CreatedAt    time.Time
}

// Snapshot captura id/nombre/email/rol al momento del login.
func (u *User) Snapshot() AuthenticatedUser {
	return AuthenticatedUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// AuthenticatedUser es la copia del usuario que vive en la sesión; no se vuelve a consultar por acción.
type AuthenticatedUser struct {
	ID    string `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"email"`
	Role  string `json:"rol"`
}
