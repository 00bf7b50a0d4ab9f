package postgres

import (
	"context"
	"database/sql"

	"fundledger-backend/internal/repository"
)

type txManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) repository.TransactionManager {
	return &txManager{db: db}
}

// RunInTx begins a transaction, injects it into the context for the
// repositories to pick up, and commits if fn returns nil.
func (tm *txManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := tm.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		}
	}()

	ctx = context.WithValue(ctx, txKey{}, tx)

	if err = fn(ctx); err != nil {
		return err
	}
	return tx.Commit()
}
