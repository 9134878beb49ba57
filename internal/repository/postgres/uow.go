package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fleetflow/internal/repository"
)

// TxRunner implements repository.UnitOfWork on top of *sql.DB transactions.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner creates a TxRunner.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// WithinTx begins a transaction, hands transaction-scoped repositories to fn,
// and commits if fn succeeds. Any error rolls the whole unit back.
func (r *TxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepos) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	repos := repository.TxRepos{
		Vehicles:    NewVehicleRepositoryWithTx(tx),
		Drivers:     NewDriverRepositoryWithTx(tx),
		Trips:       NewTripRepositoryWithTx(tx),
		Maintenance: NewMaintenanceRepositoryWithTx(tx),
	}

	if err := fn(ctx, repos); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Ensure TxRunner implements repository.UnitOfWork.
var _ repository.UnitOfWork = (*TxRunner)(nil)
