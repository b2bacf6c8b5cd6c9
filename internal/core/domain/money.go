package domain

import "github.com/shopspring/decimal"

// ToCanonical converts an amount recorded in the given currency to the
// canonical base currency using the supplied exchange rate (units of
// canonical currency per one unit of currency). Amounts already in the
// canonical currency are returned unchanged and the rate is ignored.
// Pure and total: callers are expected to have validated the inputs.
func ToCanonical(amount decimal.Decimal, currency Currency, exchangeRate decimal.Decimal) decimal.Decimal {
	if amount.IsZero() {
		return decimal.Zero
	}
	if currency.IsCanonical() {
		return amount
	}
	return amount.Mul(exchangeRate)
}
