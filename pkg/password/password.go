// Package password encapsula el hash unidireccional de contraseñas (bcrypt, con sal por hash).
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch la contraseña no corresponde al hash.
var ErrMismatch = errors.New("password: no coincide")

// Hasher genera y verifica hashes bcrypt. Cost 0 usa bcrypt.DefaultCost.
type Hasher struct {
	Cost int
}

// NewHasher construye un Hasher con el costo indicado.
func NewHasher(cost int) *Hasher {
	return &Hasher{Cost: cost}
}

// Hash devuelve el hash bcrypt de plain. El texto plano nunca se conserva.
func (h *Hasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(hash), nil
}

// Verify compara plain contra hash. Devuelve ErrMismatch si no coinciden.
func (h *Hasher) Verify(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return fmt.Errorf("password: verify: %w", err)
}
