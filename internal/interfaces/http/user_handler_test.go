package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/reservas-canchas/internal/application/dto"
	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
)

func TestUsers_GetByID(t *testing.T) {
	s := newTestServer(t)
	s.seedUser(t, "Admin", "admin@example.com", "Adm1nPass", entity.RoleAdmin)
	ana := s.seedUser(t, "Ana Lopez", "ana@example.com", "Passw0rd", entity.RoleConsultor)
	admin := s.login(t, "admin@example.com", "Adm1nPass")
	consultor := s.login(t, "ana@example.com", "Passw0rd")

	resp := s.do(t, http.MethodGet, "/api/users/"+ana.ID, admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.UserResponse
	decode(t, resp, &out)
	assert.Equal(t, "ana@example.com", out.Email)
	assert.Equal(t, entity.RoleConsultor, out.Role)

	resp = s.do(t, http.MethodGet, "/api/users/no-existe", admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/users/"+ana.ID, consultor, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))
}
