package domain

// Currency is an ISO-style code of a currency supported for journey payments.
type Currency string

const (
	USD Currency = "USD"
	RWF Currency = "RWF"
	UGX Currency = "UGX"
	TZX Currency = "TZX"
)

// CanonicalCurrency is the base currency every amount is normalized to for
// balance computation and report aggregation.
const CanonicalCurrency = RWF

// SupportedCurrencies lists every currency a payment may be recorded in.
var SupportedCurrencies = []Currency{USD, RWF, UGX, TZX}

// IsSupported reports whether c is one of the supported currencies.
func (c Currency) IsSupported() bool {
	for _, s := range SupportedCurrencies {
		if c == s {
			return true
		}
	}
	return false
}

// IsCanonical reports whether c is the canonical base currency.
func (c Currency) IsCanonical() bool {
	return c == CanonicalCurrency
}
