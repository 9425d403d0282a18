package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-jet/jet/v2/qrm"
)

// Transactor runs fn inside a single transaction, committing only when fn
// returns nil. Repositories accept the *sql.Tx it hands out; a nil tx
// means "use the plain connection".
type Transactor interface {
	WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type transactorHandler struct {
	Db *sql.DB
}

func NewTransactor(db *sql.DB) Transactor {
	return transactorHandler{Db: db}
}

func (h transactorHandler) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := h.Db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// queryable prefers the tx when one is given. qrm.DB covers both
// Query and Exec statements.
func queryable(db *sql.DB, tx *sql.Tx) qrm.DB {
	if tx != nil {
		return tx
	}
	return db
}
