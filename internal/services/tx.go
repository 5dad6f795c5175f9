package services

import (
	"context"
	"database/sql"
	"errors"
)

// withTx runs fn inside a transaction and commits only if fn returns nil.
// Any error or panic rolls the transaction back, so no branch of fn has to
// call Rollback itself.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Join(ErrStore, err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Join(ErrStore, err)
	}

	return nil
}
