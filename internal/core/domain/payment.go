package domain

import (
	"fmt"
	"time"

	"github.com/istafrica-dennw/trucks-app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PaidOption indicates how a journey's charge is settled.
type PaidOption string

const (
	PaidFull        PaidOption = "full"
	PaidInstallment PaidOption = "installment"
)

// Installment is one partial payment toward a journey's total charge.
type Installment struct {
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	Note       string          `json:"note,omitempty"`
	Attachment *Attachment     `json:"attachment,omitempty"`
}

// Payment is the payment ledger embedded in a Journey. It owns the agreed
// charge, the currency it was negotiated in, the exchange rate fixed at
// recording time, and the installment entries.
type Payment struct {
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Currency     Currency        `json:"currency"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	PaidOption   PaidOption      `json:"paidOption"`
	Attachment   *Attachment     `json:"attachment,omitempty"` // full-payment proof only
	Installments []Installment   `json:"installments"`
}

// TotalPaid returns the amount paid so far in the ledger's own currency:
// the full total for full payments, the installment sum otherwise.
func (p *Payment) TotalPaid() decimal.Decimal {
	if p.PaidOption == PaidFull {
		return p.TotalAmount
	}
	sum := decimal.Zero
	for _, inst := range p.Installments {
		sum = sum.Add(inst.Amount)
	}
	return sum
}

// InstallmentSum returns the sum of all installment amounts.
func (p *Payment) InstallmentSum() decimal.Decimal {
	sum := decimal.Zero
	for _, inst := range p.Installments {
		sum = sum.Add(inst.Amount)
	}
	return sum
}

// TotalPaidCanonical returns TotalPaid converted to the canonical currency
// using the rate fixed when the journey was recorded.
func (p *Payment) TotalPaidCanonical() decimal.Decimal {
	return ToCanonical(p.TotalPaid(), p.Currency, p.ExchangeRate)
}

// TotalAmountCanonical returns the agreed charge in the canonical currency.
func (p *Payment) TotalAmountCanonical() decimal.Decimal {
	return ToCanonical(p.TotalAmount, p.Currency, p.ExchangeRate)
}

// IsFullyPaid reports whether the amount paid covers the agreed total.
func (p *Payment) IsFullyPaid() bool {
	return p.TotalPaid().GreaterThanOrEqual(p.TotalAmount)
}

// Remaining returns the outstanding amount in the ledger's currency,
// never below zero.
func (p *Payment) Remaining() decimal.Decimal {
	remaining := p.TotalAmount.Sub(p.TotalPaid())
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// AddInstallment appends a partial payment. It fails with ErrInvalidOperation
// when the ledger is not in installment mode and with ErrPaymentExceeded when
// the new installment sum would pass the agreed total. Amounts are exact
// decimals, so the headroom comparison needs no tolerance.
func (p *Payment) AddInstallment(inst Installment, now time.Time) error {
	if p.PaidOption != PaidInstallment {
		return fmt.Errorf("%w: cannot add installment to a %s payment", apperrors.ErrInvalidOperation, p.PaidOption)
	}
	if inst.Amount.IsNegative() {
		return fmt.Errorf("%w: installment amount cannot be negative", apperrors.ErrValidation)
	}
	if inst.Date.After(now) {
		return fmt.Errorf("%w: installment date cannot be in the future", apperrors.ErrValidation)
	}
	if p.InstallmentSum().Add(inst.Amount).GreaterThan(p.TotalAmount) {
		return fmt.Errorf("%w: headroom is %s", apperrors.ErrPaymentExceeded, p.Remaining().String())
	}
	p.Installments = append(p.Installments, inst)
	return nil
}

// SwitchToFull converts the ledger to a single full payment, discarding any
// installments. The optional attachment becomes the full-payment proof.
func (p *Payment) SwitchToFull(attachment *Attachment) {
	p.PaidOption = PaidFull
	p.Installments = nil
	if attachment.IsComplete() {
		p.Attachment = attachment
	}
}

// SwitchToInstallment converts the ledger to installment mode. A stored
// full-payment proof blocks the switch unless the caller explicitly discards
// it, since the proof would otherwise be silently orphaned.
func (p *Payment) SwitchToInstallment(discardProof bool) error {
	if p.Attachment != nil && !discardProof {
		return fmt.Errorf("%w: full payment proof must be discarded before switching to installments", apperrors.ErrInvalidOperation)
	}
	p.PaidOption = PaidInstallment
	p.Attachment = nil
	if p.Installments == nil {
		p.Installments = []Installment{}
	}
	return nil
}

// Normalize enforces the structural invariant between the paid option and
// the installment list: full payments carry no installments. Ledgers in the
// canonical currency always carry a rate of 1 so every aggregation path
// agrees with ToCanonical.
func (p *Payment) Normalize() {
	if p.PaidOption == PaidFull {
		p.Installments = nil
	}
	if p.Currency == "" {
		p.Currency = CanonicalCurrency
	}
	if p.ExchangeRate.IsZero() || p.Currency.IsCanonical() {
		p.ExchangeRate = decimal.NewFromInt(1)
	}
}

// Validate checks the ledger's invariants. It is called before any persist.
func (p *Payment) Validate(now time.Time) error {
	if p.TotalAmount.IsNegative() {
		return fmt.Errorf("%w: total amount cannot be negative", apperrors.ErrValidation)
	}
	if !p.Currency.IsSupported() {
		return fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, p.Currency)
	}
	if p.ExchangeRate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	switch p.PaidOption {
	case PaidFull:
		if len(p.Installments) != 0 {
			return fmt.Errorf("%w: full payment cannot carry installments", apperrors.ErrValidation)
		}
	case PaidInstallment:
		for _, inst := range p.Installments {
			if inst.Amount.IsNegative() {
				return fmt.Errorf("%w: installment amount cannot be negative", apperrors.ErrValidation)
			}
			if inst.Date.After(now) {
				return fmt.Errorf("%w: installment date cannot be in the future", apperrors.ErrValidation)
			}
		}
		if p.InstallmentSum().GreaterThan(p.TotalAmount) {
			return fmt.Errorf("%w: installment sum %s exceeds total %s", apperrors.ErrPaymentExceeded,
				p.InstallmentSum().String(), p.TotalAmount.String())
		}
	default:
		return fmt.Errorf("%w: payment option must be full or installment", apperrors.ErrValidation)
	}
	return nil
}
