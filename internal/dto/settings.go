package dto

import "github.com/shopspring/decimal"

// UpdateExchangeRatesRequest replaces the default rate of each listed
// currency. Currencies not listed keep their stored rate.
type UpdateExchangeRatesRequest struct {
	ExchangeRates map[string]decimal.Decimal `json:"exchangeRates" binding:"required"`
}
