package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reservas-canchas/pkg/jwt"
)

const secret = "secreto-de-prueba"

func TestGenerateParse(t *testing.T) {
	tok, err := jwt.Generate(secret, "u-1", "s-1", "consultor", "reservas", 5)
	require.NoError(t, err)

	userID, sid, role, err := jwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "s-1", sid)
	assert.Equal(t, "consultor", role)
}

func TestParse_SinSesion(t *testing.T) {
	tok, err := jwt.Generate(secret, "u-1", "", "consultor", "reservas", 5)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse(secret, tok)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestParse_OtroAlgoritmo(t *testing.T) {
	claims := jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "u-1",
		SessionID:        "s-1",
		Role:             "admin",
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, _, _, err = jwt.Parse(secret, tok)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestParse_SinExpiracion(t *testing.T) {
	claims := jwt.Claims{UserID: "u-1", SessionID: "s-1", Role: "admin"}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, _, _, err = jwt.Parse(secret, tok)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestSecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "u-1", "s-1", "admin", "reservas", 5)
	assert.Error(t, err)
	_, _, _, err = jwt.Parse("", "x.y.z")
	assert.Error(t, err)
}
