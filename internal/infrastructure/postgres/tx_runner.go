package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TxStarter abre transacciones; lo cumplen *pgxpool.Pool y *pgx.Conn.
type TxStarter interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// TxRunner agrupa escrituras que deben aplicarse juntas, como cerrar la sesión abierta de un
// usuario y abrir la nueva en la bitácora.
type TxRunner struct {
	db   TxStarter
	opts pgx.TxOptions
}

// NewTxRunner construye el runner con el pool. Las transacciones usan READ COMMITTED; el índice
// único parcial de bitácora resuelve la carrera entre dos logins simultáneos.
func NewTxRunner(db TxStarter) *TxRunner {
	return &TxRunner{db: db, opts: pgx.TxOptions{IsoLevel: pgx.ReadCommitted}}
}

// Run ejecuta fn con la tx como Querier. Commit si fn no falla; rollback en cualquier otro caso,
// incluido un panic (tras el commit el rollback diferido no hace nada).
func (r *TxRunner) Run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.db.BeginTx(ctx, r.opts)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("confirmar transacción: %w", err)
	}
	return nil
}
