package credentials_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reservas-canchas/internal/domain"
	"github.com/jhoicas/reservas-canchas/internal/domain/credentials"
)

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name string
		pass string
		ok   bool
	}{
		{"válida", "Passw0rd", true},
		{"larga válida", "UnaClaveMuyLarga123", true},
		{"siete caracteres", "Pass0rd", false},
		{"sin mayúscula", "passw0rd", false},
		{"sin minúscula", "PASSW0RD", false},
		{"sin número", "Password", false},
		{"vacía", "", false},
		{"ocho con símbolos", "Ab1!@#$%", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := credentials.ValidatePassword(tc.pass)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}

// La propiedad: válida si y solo si len>=8, mayúscula, minúscula y dígito.
func TestValidatePassword_Propiedad(t *testing.T) {
	alphabet := []rune("aB3x")
	var gen func(prefix []rune, depth int)
	checked := 0
	gen = func(prefix []rune, depth int) {
		if depth == 0 {
			s := string(prefix)
			var up, lo, di bool
			for _, r := range prefix {
				up = up || (r >= 'A' && r <= 'Z')
				lo = lo || (r >= 'a' && r <= 'z')
				di = di || (r >= '0' && r <= '9')
			}
			want := len(prefix) >= 8 && up && lo && di
			assert.Equal(t, want, credentials.ValidatePassword(s) == nil, "password %q", s)
			checked++
			return
		}
		for _, r := range alphabet {
			gen(append(prefix, r), depth-1)
		}
	}
	for n := 6; n <= 8; n++ {
		gen(nil, n)
	}
	assert.Greater(t, checked, 0)
}

func TestValidatePassword_MensajeEnOrden(t *testing.T) {
	err := credentials.ValidatePassword("abc")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)
	assert.Contains(t, verr.Message, "8 caracteres")

	err = credentials.ValidatePassword("password1")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "mayúscula")
}

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"ana@example.com",
		"a.b_c%d+e-f@sub.dominio.co",
		"X9@a-b.io",
	}
	invalid := []string{
		"",
		"ana",
		"ana@",
		"@example.com",
		"ana@example",
		"ana@example.c",
		"ana@example.c0m",
		"ana lopez@example.com",
		"ana@exa mple.com",
		"ana@@example.com",
		"ana@example.com\n",
	}
	for _, e := range valid {
		assert.NoError(t, credentials.ValidateEmail(e), e)
	}
	for _, e := range invalid {
		assert.Error(t, credentials.ValidateEmail(e), e)
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, credentials.ValidateName("Ana"))
	assert.NoError(t, credentials.ValidateName("Ana Lopez"))
	assert.Error(t, credentials.ValidateName("Al"))
	assert.Error(t, credentials.ValidateName("   Al   "))
	// "Íñe" son tres caracteres aunque ocupen más bytes
	assert.NoError(t, credentials.ValidateName("Íñe"))
	// forma descompuesta: I + acento combinante, n + tilde combinante
	assert.NoError(t, credentials.ValidateName("I\u0301n\u0303e"))
	// "Ál" descompuesto son tres runas pero dos caracteres
	assert.Error(t, credentials.ValidateName("A\u0301l"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", credentials.NormalizeEmail("  Ana@Example.COM "))
}

func TestValidateRegistration_Orden(t *testing.T) {
	var verr *domain.ValidationError

	require.ErrorAs(t, credentials.ValidateRegistration("A", "malo", "x"), &verr)
	assert.Equal(t, "nombre", verr.Field)

	require.ErrorAs(t, credentials.ValidateRegistration("Ana", "malo", "x"), &verr)
	assert.Equal(t, "email", verr.Field)

	require.ErrorAs(t, credentials.ValidateRegistration("Ana", "ana@example.com", "x"), &verr)
	assert.Equal(t, "password", verr.Field)

	assert.NoError(t, credentials.ValidateRegistration("Ana", "ana@example.com", "Passw0rd"))
}
