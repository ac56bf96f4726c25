package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
	"github.com/jhoicas/reservas-canchas/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación de AuditRepository sobre la tabla bitacora.
type AuditRepo struct {
	q  Querier
	tx *TxRunner
}

// NewAuditRepository construye el adaptador de bitácora. tx se usa para abrir sesión
// (sellar + insertar) de forma atómica.
func NewAuditRepository(q Querier, tx *TxRunner) *AuditRepo {
	return &AuditRepo{q: q, tx: tx}
}

const sealOpenByUser = `
	UPDATE bitacora SET fecha_hora_salida = $2
	WHERE usuario_id::text = $1 AND tipo_accion = 'LOGIN' AND fecha_hora_salida IS NULL`

// OpenSession sella las entradas LOGIN abiertas del usuario e inserta la nueva en una transacción.
func (r *AuditRepo) OpenSession(ctx context.Context, entry *entity.AuditEntry) error {
	return r.tx.Run(ctx, func(q Querier) error {
		if _, err := q.Exec(ctx, sealOpenByUser, entry.UserID, entry.EntryTime); err != nil {
			return fmt.Errorf("sellar sesiones abiertas: %w", err)
		}
		return insertEntry(ctx, q, entry)
	})
}

// SealOpen fija fecha_hora_salida en la entrada LOGIN abierta más reciente del usuario.
func (r *AuditRepo) SealOpen(ctx context.Context, userID string, entryID int64, at time.Time) (bool, error) {
	query := `
		UPDATE bitacora SET fecha_hora_salida = $3
		WHERE id = (
			SELECT id FROM bitacora
			WHERE usuario_id::text = $1 AND tipo_accion = 'LOGIN' AND fecha_hora_salida IS NULL
			  AND ($2::bigint = 0 OR id = $2)
			ORDER BY fecha_hora_ingreso DESC
			LIMIT 1
		)`
	cmd, err := r.q.Exec(ctx, query, userID, entryID, at)
	if err != nil {
		return false, fmt.Errorf("sellar bitacora: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Append inserta una entrada de acción.
func (r *AuditRepo) Append(ctx context.Context, entry *entity.AuditEntry) error {
	return insertEntry(ctx, r.q, entry)
}

// List devuelve la bitácora ordenada por fecha_hora_ingreso descendente.
func (r *AuditRepo) List(ctx context.Context, f repository.AuditFilter) ([]*entity.AuditEntry, int, error) {
	var (
		conds []string
		args  []any
	)
	if f.UserID != "" {
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("usuario_id::text = $%d", len(args)))
	}
	if f.ActionKind != "" {
		args = append(args, f.ActionKind)
		conds = append(conds, fmt.Sprintf("tipo_accion = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}
	filterArgs := len(args)
	args = append(args, limitOrAll(f.Limit), f.Offset)
	query := fmt.Sprintf(`
		SELECT id, usuario_id::text, nombre_usuario, fecha_hora_ingreso, fecha_hora_salida,
		       tipo_accion, tabla_afectada, COALESCE(descripcion, ''),
		       COALESCE(navegador, ''), COALESCE(ip_acceso, ''), COALESCE(nombre_maquina, ''),
		       count(*) OVER()
		FROM bitacora %s
		ORDER BY fecha_hora_ingreso DESC, id DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bitacora: %w", err)
	}
	defer rows.Close()
	list := []*entity.AuditEntry{}
	total := 0
	for rows.Next() {
		var e entity.AuditEntry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.UserName, &e.EntryTime, &e.ExitTime,
			&e.ActionKind, &e.TableAffected, &e.Description,
			&e.Browser, &e.ClientIP, &e.MachineName, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan bitacora: %w", err)
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list bitacora: %w", err)
	}
	// fuera de la última página count(*) OVER() no llega a evaluarse
	if len(list) == 0 && f.Offset > 0 {
		countQuery := "SELECT count(*) FROM bitacora " + where
		if err := r.q.QueryRow(ctx, countQuery, args[:filterArgs]...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("contar bitacora: %w", err)
		}
	}
	return list, total, nil
}

// limitOrAll traduce Limit <= 0 a LIMIT NULL (sin tope), igual que el almacén en memoria.
func limitOrAll(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}

func insertEntry(ctx context.Context, q Querier, e *entity.AuditEntry) error {
	query := `
		INSERT INTO bitacora (usuario_id, nombre_usuario, fecha_hora_ingreso, tipo_accion,
		                      tabla_afectada, descripcion, navegador, ip_acceso, nombre_maquina)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := q.QueryRow(ctx, query,
		e.UserID, e.UserName, e.EntryTime, e.ActionKind,
		e.TableAffected, e.Description,
		nullIfEmpty(e.Browser), nullIfEmpty(e.ClientIP), nullIfEmpty(e.MachineName),
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert bitacora: %w", err)
	}
	return nil
}
