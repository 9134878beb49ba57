package repository

import "context"

// TxRepos bundles the transaction-scoped repositories visible inside one unit
// of work. Every read taken through them with a ForUpdate method holds its row
// lock until the unit commits or aborts.
type TxRepos struct {
	Vehicles    VehicleRepository
	Drivers     DriverRepository
	Trips       TripRepository
	Maintenance MaintenanceRepository
}

// UnitOfWork executes a function as a single atomic transaction. If fn
// returns an error the transaction is rolled back and no writes are visible.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}
