package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
	"github.com/jhoicas/reservas-canchas/internal/domain/repository"
	"github.com/jhoicas/reservas-canchas/internal/infrastructure/postgres"
)

var (
	sealOpenSQL = regexp.QuoteMeta(`UPDATE bitacora SET fecha_hora_salida = $2`) +
		`\s+` + regexp.QuoteMeta(`WHERE usuario_id::text = $1 AND tipo_accion = 'LOGIN' AND fecha_hora_salida IS NULL`)
	insertSQL     = regexp.QuoteMeta(`INSERT INTO bitacora`)
	sealOneSQL    = regexp.QuoteMeta(`AND ($2::bigint = 0 OR id = $2)`)
	listSQL       = `(?s)` + regexp.QuoteMeta(`FROM bitacora`) + `.*` + regexp.QuoteMeta(`ORDER BY fecha_hora_ingreso DESC, id DESC`)
	countSQL      = regexp.QuoteMeta(`SELECT count(*) FROM bitacora`)
	readCommitted = pgx.TxOptions{IsoLevel: pgx.ReadCommitted}
)

func newAuditRepo(t *testing.T) (*postgres.AuditRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return postgres.NewAuditRepository(mock, postgres.NewTxRunner(mock)), mock
}

func loginEntry() *entity.AuditEntry {
	return &entity.AuditEntry{
		UserID:     "5b3c0f7e-1111-4c4c-9a9a-000000000001",
		UserName:   "Ana Lopez",
		EntryTime:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		ActionKind: entity.ActionLogin,
		ClientIP:   "203.0.113.7",
	}
}

func TestOpenSession_SellaEInsertaEnUnaTransaccion(t *testing.T) {
	repo, mock := newAuditRepo(t)
	e := loginEntry()

	mock.ExpectBeginTx(readCommitted)
	mock.ExpectExec(sealOpenSQL).
		WithArgs(e.UserID, e.EntryTime).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(insertSQL).
		WithArgs(e.UserID, e.UserName, e.EntryTime, entity.ActionLogin,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectCommit()

	require.NoError(t, repo.OpenSession(context.Background(), e))
	assert.Equal(t, int64(42), e.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenSession_FalloAlInsertarHaceRollback(t *testing.T) {
	repo, mock := newAuditRepo(t)
	e := loginEntry()

	mock.ExpectBeginTx(readCommitted)
	mock.ExpectExec(sealOpenSQL).
		WithArgs(e.UserID, e.EntryTime).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(insertSQL).WillReturnError(errors.New("duplicate key value violates unique constraint"))
	mock.ExpectRollback()

	err := repo.OpenSession(context.Background(), e)

	require.Error(t, err)
	assert.Zero(t, e.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSealOpen_FiltraPorHandle(t *testing.T) {
	repo, mock := newAuditRepo(t)
	at := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)

	mock.ExpectExec(sealOneSQL).
		WithArgs("u-1", int64(7), at).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(sealOneSQL).
		WithArgs("u-1", int64(7), at).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	sealed, err := repo.SealOpen(context.Background(), "u-1", 7, at)
	require.NoError(t, err)
	assert.True(t, sealed)

	sealed, err = repo.SealOpen(context.Background(), "u-1", 7, at)
	require.NoError(t, err)
	assert.False(t, sealed, "ya sellada: no hay entrada abierta con ese handle")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func listColumns() []string {
	return []string{"id", "usuario_id", "nombre_usuario", "fecha_hora_ingreso", "fecha_hora_salida",
		"tipo_accion", "tabla_afectada", "descripcion", "navegador", "ip_acceso", "nombre_maquina", "count"}
}

func TestList_PaginaConTotal(t *testing.T) {
	repo, mock := newAuditRepo(t)
	in := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	out := in.Add(time.Hour)
	table := "canchas"

	mock.ExpectQuery(listSQL).
		WithArgs("u-1", 2, 0).
		WillReturnRows(pgxmock.NewRows(listColumns()).
			AddRow(int64(2), "u-1", "Ana", in, (*time.Time)(nil), "UPDATE", &table, "Cancha 1", "", "", "", 3).
			AddRow(int64(1), "u-1", "Ana", in, &out, entity.ActionLogin, (*string)(nil), "", "Firefox 120", "203.0.113.7", "srv-1", 3))

	list, total, err := repo.List(context.Background(), repository.AuditFilter{UserID: "u-1", Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 2)
	assert.Equal(t, "canchas", *list[0].TableAffected)
	assert.Equal(t, "203.0.113.7", list[1].ClientIP)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_FueraDeLaUltimaPaginaConservaElTotal(t *testing.T) {
	repo, mock := newAuditRepo(t)

	mock.ExpectQuery(listSQL).
		WithArgs(entity.ActionLogin, 50, 100).
		WillReturnRows(pgxmock.NewRows(listColumns()))
	mock.ExpectQuery(countSQL).
		WithArgs(entity.ActionLogin).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	list, total, err := repo.List(context.Background(), repository.AuditFilter{ActionKind: entity.ActionLogin, Limit: 50, Offset: 100})

	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 3, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
