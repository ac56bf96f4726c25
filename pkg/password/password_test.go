package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/reservas-canchas/pkg/password"
)

func TestHasher_HashYVerify(t *testing.T) {
	h := password.NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("Passw0rd")
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd", hash, "el hash nunca debe ser el texto plano")

	assert.NoError(t, h.Verify(hash, "Passw0rd"))
	assert.ErrorIs(t, h.Verify(hash, "passw0rd"), password.ErrMismatch)
}

func TestHasher_SalDistintaPorHash(t *testing.T) {
	h := password.NewHasher(bcrypt.MinCost)

	a, err := h.Hash("Passw0rd")
	require.NoError(t, err)
	b, err := h.Hash("Passw0rd")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "dos hashes de la misma contraseña deben diferir por la sal")
}

func TestHasher_HashCorrupto(t *testing.T) {
	h := password.NewHasher(bcrypt.MinCost)
	err := h.Verify("no-es-bcrypt", "Passw0rd")
	require.Error(t, err)
	assert.NotErrorIs(t, err, password.ErrMismatch)
}
