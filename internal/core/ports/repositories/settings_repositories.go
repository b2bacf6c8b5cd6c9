package repositories

import (
	"context"

	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettingsReader defines read operations for application settings.
type SettingsReader interface {
	// GetSettings returns the stored default exchange rates. The row set is
	// seeded by the schema migration, so the settings always exist.
	GetSettings(ctx context.Context) (*domain.Settings, error)
}

// SettingsWriter defines write operations for application settings.
type SettingsWriter interface {
	// UpsertExchangeRates replaces the default rate of each listed currency,
	// leaving the others untouched.
	UpsertExchangeRates(ctx context.Context, rates map[domain.Currency]decimal.Decimal, updatedBy string) error
}

// SettingsRepositoryFacade combines settings read and write operations.
type SettingsRepositoryFacade interface {
	SettingsReader
	SettingsWriter
}
