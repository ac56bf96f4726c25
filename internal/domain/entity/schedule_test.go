package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
)

func TestNormalizeDay(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"lunes", "lunes", true},
		{" Martes ", "martes", true},
		{"miércoles", "miercoles", true},
		{"Miercoles", "miercoles", true},
		{"SÁBADO", "sabado", true},
		{"sa\u0301bado", "sabado", true}, // tilde combinante (NFD)
		{"domingo", "domingo", true},
		{"feriado", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := entity.NormalizeDay(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}
