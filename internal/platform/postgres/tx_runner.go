package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/cityinfohq/cityinfo-api/internal/store"
)

// TxRunner runs store operations inside a single database transaction.
type TxRunner struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewTxRunner creates a TxRunner over the given database handle. If logger is
// nil, the default logger is used.
func NewTxRunner(db *sql.DB, logger *slog.Logger) *TxRunner {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TxRunner{db: db, logger: logger}
}

// Ensure TxRunner implements store.TxRunner interface
var _ store.TxRunner = (*TxRunner)(nil)

// RunInTransaction implements store.TxRunner.RunInTransaction
// The stores handed to fn are bound to one transaction, so everything fn
// does commits atomically.
func (r *TxRunner) RunInTransaction(
	ctx context.Context,
	fn func(ctx context.Context, stores store.Stores) error,
) error {
	return store.RunInTransaction(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		stores := store.Stores{
			Cities:           NewPostgresCityStore(tx, r.logger),
			PointsOfInterest: NewPostgresPointOfInterestStore(tx, r.logger),
		}
		return fn(ctx, stores)
	})
}
