package entity

import "time"

// ActionLogin tipo_accion de las entradas que abren una sesión.
const ActionLogin = "LOGIN"

// Acciones estándar sobre recursos.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// UnknownValue se usa cuando el contexto de la máquina no se puede determinar.
const UnknownValue = "Desconocido"

// AuditEntry es una fila de la bitácora. Solo se agrega; las entradas LOGIN se sellan una vez
// (ExitTime) al cerrar sesión y nunca se borran.
type AuditEntry struct {
	ID            int64
	UserID        string
	UserName      string // desnormalizado al escribir
	EntryTime     time.Time
	ExitTime      *time.Time
	ActionKind    string
	TableAffected *string
	Description   string
	Browser       string
	ClientIP      string
	MachineName   string
}

// IsOpen informa si es una entrada de sesión sin hora de salida.
func (e *AuditEntry) IsOpen() bool {
	return e.ActionKind == ActionLogin && e.ExitTime == nil
}

// ClientContext datos best-effort de la máquina/navegador para las entradas LOGIN.
type ClientContext struct {
	IP          string
	MachineName string
	Browser     string
}

// Normalized reemplaza los valores vacíos por UnknownValue.
func (c ClientContext) Normalized() ClientContext {
	if c.IP == "" {
		c.IP = UnknownValue
	}
	if c.MachineName == "" {
		c.MachineName = UnknownValue
	}
	if c.Browser == "" {
		c.Browser = UnknownValue
	}
	return c
}
