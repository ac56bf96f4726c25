// Package credentials concentra la política de nombre, email y contraseña.
// Registro, login y cmd/seed usan exactamente estas funciones.
package credentials

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/reservas-canchas/internal/domain"
)

const (
	MinNameLength     = 3
	MinPasswordLength = 8
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// NormalizeName recorta espacios y lleva el nombre a NFC para que el conteo de caracteres
// no dependa de cómo llegaron las tildes.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// NormalizeEmail recorta y pasa a minúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateName exige al menos MinNameLength caracteres.
func ValidateName(name string) error {
	if utf8.RuneCountInString(NormalizeName(name)) < MinNameLength {
		return domain.NewValidationError("nombre", "el nombre debe tener al menos 3 caracteres")
	}
	return nil
}

// ValidateEmail exige la forma local@dominio.tld.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return domain.NewValidationError("email", "el formato del correo electrónico no es válido")
	}
	return nil
}

// ValidatePassword exige longitud mínima, una mayúscula, una minúscula y un número.
// Los mensajes se evalúan en ese orden y se devuelve el primero que falla.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return domain.NewValidationError("password", "la contraseña debe tener al menos 8 caracteres")
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		return domain.NewValidationError("password", "la contraseña debe contener al menos una mayúscula")
	}
	if !lower {
		return domain.NewValidationError("password", "la contraseña debe contener al menos una minúscula")
	}
	if !digit {
		return domain.NewValidationError("password", "la contraseña debe contener al menos un número")
	}
	return nil
}

// ValidateRegistration aplica las tres reglas en el orden del formulario: nombre, email, contraseña.
func ValidateRegistration(name, email, password string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidatePassword(password)
}
