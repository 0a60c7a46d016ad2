package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/upb/blog-platform/repositories"
	"go.uber.org/zap"
)

type txKey struct{}

// Executor is satisfied by both *sql.DB and *sql.Tx
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TransactionManager binds a *sql.Tx to the callback context so the user and
// blog repositories join it through GetExecutor.
type TransactionManager struct {
	db     *DB
	logger *zap.Logger
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(db *DB, logger *zap.Logger) repositories.TransactionManager {
	return &TransactionManager{db: db, logger: logger}
}

// InTransaction runs fn inside a transaction. A nested call reuses the
// outer transaction. A panic in fn rolls back before propagating.
func (tm *TransactionManager) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := tm.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tm.rollback(tx, nil)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		tm.rollback(tx, err)
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (tm *TransactionManager) rollback(tx *sql.Tx, cause error) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		tm.logger.Error("failed to rollback transaction",
			zap.Error(err),
			zap.NamedError("original_error", cause),
		)
	}
}

func txFromContext(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return tx, ok
}

// GetExecutor returns the transaction bound to ctx, or the pool
func GetExecutor(ctx context.Context, db *DB) Executor {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return db.DB
}
