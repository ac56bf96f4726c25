package authz_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reservas-canchas/internal/domain"
	"github.com/jhoicas/reservas-canchas/internal/domain/authz"
	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
)

func TestCanEditField_Admin(t *testing.T) {
	for _, f := range entity.CourtFields {
		assert.True(t, authz.CanEditField(entity.RoleAdmin, f), f)
	}
	assert.False(t, authz.CanEditField(entity.RoleAdmin, "id"), "id no es editable por nadie")
}

func TestCanEditField_ConsultorSoloDisponible(t *testing.T) {
	assert.True(t, authz.CanEditField(entity.RoleConsultor, entity.CourtFieldAvailable))
	assert.False(t, authz.CanEditField(entity.RoleConsultor, entity.CourtFieldName))
	assert.False(t, authz.CanEditField(entity.RoleConsultor, entity.CourtFieldType))
	assert.False(t, authz.CanEditField(entity.RoleConsultor, entity.CourtFieldSchedules))
}

func TestCanEditField_RolesSoloLectura(t *testing.T) {
	for _, role := range []string{entity.RoleOperadorReservas, entity.RoleRegistradorEventos, entity.RoleRegistrador, "", "cliente"} {
		assert.Empty(t, authz.EditableFields(role), "rol %q debe ser de solo lectura", role)
	}
}

func TestEditableFields(t *testing.T) {
	assert.Equal(t, entity.CourtFields, authz.EditableFields(entity.RoleAdmin))
	assert.Equal(t, []string{entity.CourtFieldAvailable}, authz.EditableFields(entity.RoleConsultor))
}

func TestAuthorizeFields_ConsultorNombreForbidden(t *testing.T) {
	err := authz.AuthorizeFields(entity.RoleConsultor, []string{entity.CourtFieldAvailable, entity.CourtFieldName})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	var ferr *domain.ForbiddenError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, entity.CourtFieldName, ferr.Target)

	assert.NoError(t, authz.AuthorizeFields(entity.RoleConsultor, []string{entity.CourtFieldAvailable}))
}

func TestCan(t *testing.T) {
	cases := []struct {
		role     string
		resource string
		op       authz.Operation
		want     bool
	}{
		{entity.RoleAdmin, authz.ResourceAudit, authz.OpView, true},
		{entity.RoleConsultor, authz.ResourceAudit, authz.OpView, false},
		{entity.RoleAdmin, authz.ResourceUser, authz.OpView, true},
		{entity.RoleRegistrador, authz.ResourceUser, authz.OpView, false},
		{entity.RoleConsultor, authz.ResourceCourt, authz.OpView, true},
		{entity.RoleConsultor, authz.ResourceCourt, authz.OpUpdate, true},
		{entity.RoleConsultor, authz.ResourceCourt, authz.OpCreate, false},
		{entity.RoleConsultor, authz.ResourceCourt, authz.OpDelete, false},
		{entity.RoleRegistrador, authz.ResourceCourt, authz.OpView, true},
		{entity.RoleRegistrador, authz.ResourceCourt, authz.OpUpdate, false},
		{entity.RoleOperadorReservas, authz.ResourceSchedule, authz.OpView, true},
		{entity.RoleOperadorReservas, authz.ResourceSchedule, authz.OpCreate, false},
		{entity.RoleAdmin, authz.ResourceCourt, authz.OpDelete, true},
		{"desconocido", authz.ResourceCourt, authz.OpView, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, authz.Can(tc.role, tc.resource, tc.op), "%s %s %s", tc.role, tc.op, tc.resource)
	}
}

func TestAuthorize_Error(t *testing.T) {
	err := authz.Authorize(entity.RoleConsultor, authz.ResourceCourt, authz.OpDelete)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.NoError(t, authz.Authorize(entity.RoleAdmin, authz.ResourceCourt, authz.OpDelete))
}
