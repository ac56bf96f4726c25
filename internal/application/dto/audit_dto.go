package dto

import "time"

// RecordActionRequest acción reportada por la capa de presentación.
type RecordActionRequest struct {
	Table       string `json:"tabla_afectada"`
	Action      string `json:"tipo_accion"`
	Description string `json:"descripcion"`
}

// AuditEntryResponse entrada de bitácora.
type AuditEntryResponse struct {
	ID            int64      `json:"id"`
	UserID        string     `json:"usuario_id"`
	UserName      string     `json:"nombre_usuario"`
	EntryTime     time.Time  `json:"fecha_hora_ingreso"`
	ExitTime      *time.Time `json:"fecha_hora_salida,omitempty"`
	ActionKind    string     `json:"tipo_accion"`
	TableAffected *string    `json:"tabla_afectada,omitempty"`
	Description   string     `json:"descripcion"`
	Browser       string     `json:"navegador"`
	ClientIP      string     `json:"ip_cliente"`
	MachineName   string     `json:"nombre_maquina"`
}

// AuditListResponse página de la bitácora.
type AuditListResponse struct {
	Items []AuditEntryResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
