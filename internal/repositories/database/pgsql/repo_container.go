package pgsql

import (
	portsrepo "github.com/istafrica-dennw/trucks-app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql-backed repository to the pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		JourneyRepo:  newPgxJourneyRepository(dbPool),
		DriverRepo:   newPgxDriverRepository(dbPool),
		TruckRepo:    newPgxTruckRepository(dbPool),
		CustomerRepo: newPgxCustomerRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
		SettingsRepo: newPgxSettingsRepository(dbPool),
	}
}
