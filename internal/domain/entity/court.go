package entity

// Campos editables de una cancha (nombres tal como llegan en la API y en la tabla canchas).
const (
	CourtFieldName      = "nombre"
	CourtFieldAvailable = "disponible"
	CourtFieldType      = "tipo_id"
	CourtFieldSchedules = "horarios"
)

// CourtFields lista todos los campos editables de Court.
var CourtFields = []string{CourtFieldName, CourtFieldAvailable, CourtFieldType, CourtFieldSchedules}

// Court representa una cancha (tabla canchas).
type Court struct {
	ID        int64
	Name      string
	Available bool
	TypeID    *int64
	TypeName  string // tipos_cancha.nombre, vacío si no tiene tipo
	Schedules []Schedule
}

// CourtType tipo de cancha (Fútbol, Pádel, ...).
type CourtType struct {
	ID   int64
	Name string
}

// DefaultCourtTypes catálogo inicial de tipos de cancha.
var DefaultCourtTypes = []string{"Fútbol", "Fútbol 5", "Pádel", "Tenis", "Básquet", "Vóley"}
