package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reservas-canchas/internal/application/dto"
	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
)

func TestAudit_RegistrarAccion(t *testing.T) {
	s := newTestServer(t)
	u := s.seedUser(t, "Ana Lopez", "ana@example.com", "Passw0rd", entity.RoleConsultor)
	tok := s.login(t, "ana@example.com", "Passw0rd")

	resp := s.do(t, http.MethodPost, "/api/audit/actions", tok,
		dto.RecordActionRequest{Table: "reservas", Action: "RESERVA", Description: "Reserva de la cancha 1"})
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	entries := s.audit.Entries(u.ID)
	require.Len(t, entries, 2)
	assert.Equal(t, "RESERVA", entries[1].ActionKind)
	assert.Equal(t, "Ana Lopez", entries[1].UserName)
	assert.Equal(t, 1, s.audit.OpenCount(u.ID))

	resp = s.do(t, http.MethodPost, "/api/audit/actions", tok,
		dto.RecordActionRequest{Action: "LOGIN", Description: "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 1, s.audit.OpenCount(u.ID))

	resp = s.do(t, http.MethodPost, "/api/audit/actions", "", dto.RecordActionRequest{Action: "X", Description: "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAudit_VisorSoloAdmin(t *testing.T) {
	s := newTestServer(t)
	s.seedUser(t, "Admin", "admin@example.com", "Adm1nPass", entity.RoleAdmin)
	s.seedUser(t, "Ana Lopez", "ana@example.com", "Passw0rd", entity.RoleConsultor)
	consultor := s.login(t, "ana@example.com", "Passw0rd")
	admin := s.login(t, "admin@example.com", "Adm1nPass")

	resp := s.do(t, http.MethodGet, "/api/audit", consultor, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/audit?limit=1", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page dto.AuditListResponse
	decode(t, resp, &page)
	assert.Equal(t, 2, page.Page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Admin", page.Items[0].UserName, "más reciente primero")
	assert.Equal(t, 1, page.Page.Limit)

	resp = s.do(t, http.MethodGet, "/api/audit/export.pdf", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "bitacora-")

	resp = s.do(t, http.MethodGet, "/api/audit/export.pdf", consultor, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
