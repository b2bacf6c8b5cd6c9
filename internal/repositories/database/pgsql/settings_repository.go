package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	portsrepo "github.com/istafrica-dennw/trucks-app/internal/core/ports/repositories"
)

type PgxSettingsRepository struct {
	BaseRepository
}

// newPgxSettingsRepository creates a new repository for application settings.
func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

// GetSettings loads the per-currency default rates. The rows are seeded by
// the schema migration, so the map is never empty.
func (r *PgxSettingsRepository) GetSettings(ctx context.Context) (*domain.Settings, error) {
	query := `
		SELECT currency, rate, updated_at, COALESCE(updated_by, '')
		FROM settings_exchange_rates
		ORDER BY currency;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	settings := &domain.Settings{ExchangeRates: make(map[domain.Currency]decimal.Decimal)}
	for rows.Next() {
		var (
			currency  string
			rate      decimal.Decimal
			updatedAt time.Time
			updatedBy string
		)
		if err := rows.Scan(&currency, &rate, &updatedAt, &updatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate row: %w", err)
		}
		settings.ExchangeRates[domain.Currency(currency)] = rate
		if updatedAt.After(settings.LastUpdatedAt) {
			settings.LastUpdatedAt = updatedAt
			settings.LastUpdatedBy = updatedBy
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading exchange rate rows: %w", err)
	}
	return settings, nil
}

// UpsertExchangeRates writes the listed rates in one transaction so a partial
// update is never observable.
func (r *PgxSettingsRepository) UpsertExchangeRates(ctx context.Context, rates map[domain.Currency]decimal.Decimal, updatedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO settings_exchange_rates (currency, rate, updated_at, updated_by)
		VALUES ($1, $2, NOW(), $3)
		ON CONFLICT (currency) DO UPDATE
		SET rate = EXCLUDED.rate, updated_at = EXCLUDED.updated_at, updated_by = EXCLUDED.updated_by;
	`
	for currency, rate := range rates {
		if _, err := tx.Exec(ctx, query, string(currency), rate, updatedBy); err != nil {
			return fmt.Errorf("failed to upsert exchange rate for %s: %w", currency, err)
		}
	}
	return r.Commit(ctx, tx)
}
