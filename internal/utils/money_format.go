package utils

import "github.com/shopspring/decimal"

// FormatMoney renders an amount with two decimal places, the display
// precision shared by every supported currency.
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
