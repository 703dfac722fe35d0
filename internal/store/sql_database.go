package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/YabaiTech/YAPM/internal/logger"
	"github.com/YabaiTech/YAPM/migrations"
)

// DB is a database handle together with the dialect it speaks and the
// classifier used to decide whether a failed call may be retried.
type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Dialect returns the SQL dialect of db.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate brings the account directory schema up to date.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect.gooseDialect())
}

// retryDelays are the pauses between attempts of a retryable call.
var retryDelays = []time.Duration{100 * time.Millisecond, 300 * time.Millisecond}

// withRetry runs fn and repeats it while the error is classified as
// [Retryable] and attempts remain.
func (db *DB) withRetry(ctx context.Context, fn func() error) error {
	err := fn()
	for _, delay := range retryDelays {
		if err == nil || db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		db.logger.Warn().Err(err).Dur("delay", delay).Msg("retrying database call")
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", err, ctx.Err())
		case <-time.After(delay):
		}
		err = fn()
	}

	return err
}

// WithTx begins a transaction, runs fn with it, and commits on success or
// rolls back on error or panic. Panics are re-raised after the rollback.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
		}
	}()

	return fn(ctx, tx)
}
