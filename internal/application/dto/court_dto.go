package dto

// CreateCourtRequest alta de cancha (solo admin). Toda cancha nueva queda disponible.
type CreateCourtRequest struct {
	Name   string `json:"nombre"`
	TypeID *int64 `json:"tipo_id,omitempty"`
}

// UpdateCourtRequest actualización parcial: solo se tocan los campos presentes.
type UpdateCourtRequest struct {
	Name      *string `json:"nombre,omitempty"`
	Available *bool   `json:"disponible,omitempty"`
	TypeID    *int64  `json:"tipo_id,omitempty"`
}

// AvailabilityRequest cambio de disponibilidad.
type AvailabilityRequest struct {
	Available *bool `json:"disponible"`
}

// ScheduleRequest franja horaria nueva.
type ScheduleRequest struct {
	Day       string `json:"dia_semana"` // lunes..domingo, con o sin tilde
	StartTime string `json:"hora_inicio"`
	EndTime   string `json:"hora_fin"`
}

// ScheduleResponse franja horaria.
type ScheduleResponse struct {
	ID        int64  `json:"id"`
	Day       string `json:"dia_semana"`
	StartTime string `json:"hora_inicio"`
	EndTime   string `json:"hora_fin"`
}

// CourtResponse cancha con su tipo y horarios.
type CourtResponse struct {
	ID        int64              `json:"id"`
	Name      string             `json:"nombre"`
	Available bool               `json:"disponible"`
	TypeID    *int64             `json:"tipo_id,omitempty"`
	TypeName  string             `json:"tipo,omitempty"`
	Schedules []ScheduleResponse `json:"horarios"`
}

// CourtTypeResponse tipo de cancha.
type CourtTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

// PermissionsResponse campos editables para el rol del usuario actual.
type PermissionsResponse struct {
	Role           string   `json:"rol"`
	EditableFields []string `json:"campos_editables"`
	CanCreate      bool     `json:"puede_crear"`
	CanDelete      bool     `json:"puede_eliminar"`
}
