package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Serializable makes concurrent admissions over the same interval abort instead of interleave.
var Serializable = &sql.TxOptions{Isolation: sql.LevelSerializable}

type TxFunc func(ctx context.Context, tx *sqlx.Tx) error

type Transactor interface {
	// WithTransaction runs fn inside one transaction on the write pool.
	// fn's error or panic rolls everything back; otherwise the transaction commits.
	WithTransaction(ctx context.Context, opts *sql.TxOptions, fn TxFunc) error
}

type transactorImpl struct {
	db *Connection
}

func NewTransactor(db *Connection) Transactor {
	return &transactorImpl{db: db}
}

func (t *transactorImpl) WithTransaction(ctx context.Context, opts *sql.TxOptions, fn TxFunc) (err error) {
	tx, err := t.db.Write.BeginTxx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback(tx)
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		rollback(tx)

		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func rollback(tx *sqlx.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		log.Error().Err(err).Msg("Failed rolling back transaction")
	}
}
