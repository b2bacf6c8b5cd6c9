package domain

import (
	"fmt"

	"github.com/istafrica-dennw/trucks-app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Expense is one itemized cost line of a journey, recorded directly in the
// canonical currency.
type Expense struct {
	Title      string          `json:"title"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note,omitempty"`
	Attachment *Attachment     `json:"attachment,omitempty"`
}

// Validate checks a single expense line.
func (e *Expense) Validate() error {
	if e.Title == "" {
		return fmt.Errorf("%w: expense title is required", apperrors.ErrValidation)
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("%w: expense amount cannot be negative", apperrors.ErrValidation)
	}
	return nil
}

// TotalExpenses sums the amounts of a journey's expense lines.
func TotalExpenses(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
