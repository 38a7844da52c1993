package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/cityinfohq/cityinfo-api/internal/platform/logger"
)

// TxFn is a function that executes within a database transaction. The
// transaction is committed if the function returns nil and rolled back
// otherwise.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// Stores bundles the transactional view of the persistence layer handed to a
// TxRunner callback. All operations performed through it share one
// transaction.
type Stores struct {
	Cities           CityStore
	PointsOfInterest PointOfInterestStore
}

// TxRunner executes a function against the stores within a single atomic
// unit: exactly one commit if fn returns nil, a rollback otherwise. The
// SQL-backed implementation maps this onto a database transaction; the
// in-memory one simulates it under a lock.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}

// RunInTransaction executes fn within a transaction on db. A panic inside fn
// rolls the transaction back and is re-raised. Commit failures are wrapped
// with ErrTransactionFailed so callers can report them as store failures
// rather than partial successes.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	log := logger.FromContextOrDefault(ctx, slog.Default())

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTransactionFailed, err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to roll back transaction after panic",
					slog.String("error", rbErr.Error()),
					slog.Any("panic", p))
			}
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("failed to roll back transaction",
				slog.String("rollback_error", rbErr.Error()),
				slog.String("original_error", err.Error()))
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrTransactionFailed, err)
	}

	return nil
}
