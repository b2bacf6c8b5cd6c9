package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings holds the database-backed application configuration: the default
// exchange rate per supported currency, applied when a journey is recorded
// without an explicit rate. The canonical currency always maps to 1.
type Settings struct {
	ExchangeRates map[Currency]decimal.Decimal `json:"exchangeRates"`
	LastUpdatedAt time.Time                    `json:"lastUpdatedAt"`
	LastUpdatedBy string                       `json:"lastUpdatedBy,omitempty"`
}

// Rate returns the default rate for the given currency. The canonical
// currency is always 1; an unset currency reports ok false.
func (s *Settings) Rate(currency Currency) (decimal.Decimal, bool) {
	if currency.IsCanonical() {
		return decimal.NewFromInt(1), true
	}
	rate, ok := s.ExchangeRates[currency]
	return rate, ok
}
