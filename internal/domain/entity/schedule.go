package entity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Days válidos para horarios_disponibles.dia_semana, en la forma en que se guardan.
var Days = []string{"lunes", "martes", "miercoles", "jueves", "viernes", "sabado", "domingo"}

// Schedule franja horaria disponible de una cancha (tabla horarios_disponibles).
type Schedule struct {
	ID        int64
	CourtID   int64
	Day       string
	StartTime string // HH:MM
	EndTime   string // HH:MM
}

// NormalizeDay lleva day a su forma de Days: minúsculas y sin tildes, así "Miércoles" y
// "miercoles" son el mismo día. ok es false si no es un día de la semana.
func NormalizeDay(day string) (string, bool) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(day)))
	if err != nil {
		return "", false
	}
	for _, d := range Days {
		if d == plain {
			return d, true
		}
	}
	return "", false
}
