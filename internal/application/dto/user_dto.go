package dto

import "time"

// RegisterRequest entrada para registro. Rol vacío usa el rol por defecto configurado.
type RegisterRequest struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"rol,omitempty"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	Email     string    `json:"email"`
	Role      string    `json:"rol"`
	CreatedAt time.Time `json:"fecha_registro"`
}

// LoginResponse token firmado y copia del usuario autenticado.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
	SessionID string       `json:"-"`
}

// SessionResponse estado de la sesión actual (GET /api/auth/me).
type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          UserResponse `json:"user"`
	ExpiresAt     time.Time    `json:"expires_at"`
}
