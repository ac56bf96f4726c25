package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
	"github.com/jhoicas/reservas-canchas/internal/infrastructure/pdf"
)

func TestGenerateAuditPDF(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	exit := now.Add(-time.Hour)
	table := "canchas"
	entries := []*entity.AuditEntry{
		{ID: 3, UserID: "u-1", UserName: "Ana Lopez", EntryTime: now.Add(-30 * time.Minute), ActionKind: entity.ActionLogin,
			Description: "Inicio de sesión del usuario Ana Lopez", ClientIP: "10.0.0.1"},
		{ID: 2, UserID: "u-1", UserName: "Ana Lopez", EntryTime: now.Add(-90 * time.Minute), ActionKind: entity.ActionUpdate,
			TableAffected: &table, Description: "Cancha 1 actualizada (disponible)"},
		{ID: 1, UserID: "u-1", UserName: "Ana Lopez", EntryTime: now.Add(-2 * time.Hour), ExitTime: &exit,
			ActionKind: entity.ActionLogin, Description: "Inicio de sesión del usuario Ana Lopez"},
	}

	gen := pdf.NewAuditReportGenerator(nil)
	out, err := gen.GenerateAuditPDF(context.Background(), entries, now, "Admin")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateAuditPDF_SinEntradas(t *testing.T) {
	out, err := pdf.NewAuditReportGenerator(time.UTC).GenerateAuditPDF(context.Background(), nil, time.Now(), "")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
