package domain_test

import (
	"testing"
	"time"

	"github.com/istafrica-dennw/trucks-app/internal/apperrors"
	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func installmentPayment(total int64, installments ...int64) domain.Payment {
	p := domain.Payment{
		TotalAmount:  decimal.NewFromInt(total),
		Currency:     domain.RWF,
		ExchangeRate: decimal.NewFromInt(1),
		PaidOption:   domain.PaidInstallment,
	}
	for _, amt := range installments {
		p.Installments = append(p.Installments, domain.Installment{
			Amount: decimal.NewFromInt(amt),
			Date:   time.Now().Add(-time.Hour),
		})
	}
	return p
}

func TestPayment_TotalPaid(t *testing.T) {
	tests := []struct {
		name    string
		payment domain.Payment
		want    string
	}{
		{
			name: "full payment equals total amount",
			payment: domain.Payment{
				TotalAmount: decimal.NewFromInt(1000),
				Currency:    domain.RWF,
				PaidOption:  domain.PaidFull,
			},
			want: "1000",
		},
		{
			name:    "installment payment sums installments",
			payment: installmentPayment(1000, 400, 600),
			want:    "1000",
		},
		{
			name:    "no installments yet",
			payment: installmentPayment(1000),
			want:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.payment.TotalPaid().String())
		})
	}
}

func TestPayment_IsFullyPaid(t *testing.T) {
	paid := installmentPayment(1000, 400, 600)
	assert.True(t, paid.IsFullyPaid())

	partial := installmentPayment(1000, 400)
	assert.False(t, partial.IsFullyPaid())
	assert.Equal(t, "600", partial.Remaining().String())
}

func TestPayment_AddInstallment(t *testing.T) {
	p := installmentPayment(1000, 400)

	now := time.Now()
	err := p.AddInstallment(domain.Installment{Amount: decimal.NewFromInt(700), Date: now}, now)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPaymentExceeded)
	assert.Len(t, p.Installments, 1)

	err = p.AddInstallment(domain.Installment{Amount: decimal.NewFromInt(600), Date: now}, now)
	require.NoError(t, err)
	assert.True(t, p.IsFullyPaid())
}

func TestPayment_AddInstallment_FutureDate(t *testing.T) {
	p := installmentPayment(1000, 400)
	now := time.Now()

	err := p.AddInstallment(domain.Installment{Amount: decimal.NewFromInt(100), Date: now.Add(72 * time.Hour)}, now)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Len(t, p.Installments, 1)
}

func TestPayment_AddInstallment_FullPayment(t *testing.T) {
	p := domain.Payment{
		TotalAmount: decimal.NewFromInt(500),
		Currency:    domain.RWF,
		PaidOption:  domain.PaidFull,
	}

	err := p.AddInstallment(domain.Installment{Amount: decimal.NewFromInt(100), Date: time.Now()}, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
}

func TestPayment_TotalPaidCanonical(t *testing.T) {
	p := domain.Payment{
		TotalAmount:  decimal.NewFromInt(100),
		Currency:     domain.USD,
		ExchangeRate: decimal.NewFromInt(1200),
		PaidOption:   domain.PaidFull,
	}
	assert.Equal(t, "120000", p.TotalPaidCanonical().String())
	assert.Equal(t, "120000", p.TotalAmountCanonical().String())

	// Canonical currency ignores the exchange rate entirely.
	p.Currency = domain.RWF
	assert.Equal(t, "100", p.TotalPaidCanonical().String())
}

func TestPayment_SwitchToInstallment(t *testing.T) {
	proof := &domain.Attachment{Filename: "proof.pdf", Path: "uploads/proof.pdf", MimeType: "application/pdf", Size: 1024}
	p := domain.Payment{
		TotalAmount: decimal.NewFromInt(500),
		Currency:    domain.RWF,
		PaidOption:  domain.PaidFull,
		Attachment:  proof,
	}

	err := p.SwitchToInstallment(false)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
	assert.Equal(t, domain.PaidFull, p.PaidOption)

	require.NoError(t, p.SwitchToInstallment(true))
	assert.Equal(t, domain.PaidInstallment, p.PaidOption)
	assert.Nil(t, p.Attachment)
	assert.NotNil(t, p.Installments)
}

func TestPayment_Normalize(t *testing.T) {
	p := installmentPayment(1000, 400)
	p.PaidOption = domain.PaidFull
	p.Currency = ""
	p.ExchangeRate = decimal.Zero

	p.Normalize()

	assert.Nil(t, p.Installments)
	assert.Equal(t, domain.CanonicalCurrency, p.Currency)
	assert.Equal(t, "1", p.ExchangeRate.String())
}

func TestPayment_Normalize_CanonicalCurrencyRate(t *testing.T) {
	// A ledger in the canonical currency always carries a rate of 1, so
	// reports and database aggregations agree no matter what the client sent.
	p := installmentPayment(100, 40)
	p.ExchangeRate = decimal.NewFromInt(500)

	p.Normalize()

	assert.Equal(t, "1", p.ExchangeRate.String())
	assert.Equal(t, "40", p.TotalPaidCanonical().String())
}

func TestPayment_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Payment)
		wantErr error
	}{
		{
			name:   "valid installment payment",
			mutate: func(p *domain.Payment) {},
		},
		{
			name:    "negative total",
			mutate:  func(p *domain.Payment) { p.TotalAmount = decimal.NewFromInt(-1) },
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "unsupported currency",
			mutate:  func(p *domain.Payment) { p.Currency = "EUR" },
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "zero exchange rate",
			mutate:  func(p *domain.Payment) { p.ExchangeRate = decimal.Zero },
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "full payment with installments",
			mutate: func(p *domain.Payment) {
				p.PaidOption = domain.PaidFull
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "installment sum over total",
			mutate: func(p *domain.Payment) {
				p.Installments = append(p.Installments, domain.Installment{Amount: decimal.NewFromInt(900)})
			},
			wantErr: apperrors.ErrPaymentExceeded,
		},
		{
			name: "future-dated installment",
			mutate: func(p *domain.Payment) {
				p.Installments[0].Date = time.Now().Add(48 * time.Hour)
			},
			wantErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := installmentPayment(1000, 400)
			tt.mutate(&p)
			err := p.Validate(time.Now())
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestMergeAttachment(t *testing.T) {
	existing := &domain.Attachment{Filename: "old.pdf", Path: "uploads/old.pdf", MimeType: "application/pdf", Size: 10}
	complete := &domain.Attachment{Filename: "new.pdf", Path: "uploads/new.pdf", MimeType: "application/pdf", Size: 20}
	partial := &domain.Attachment{Filename: "new.pdf"}

	assert.Equal(t, complete, domain.MergeAttachment(existing, complete))
	assert.Equal(t, existing, domain.MergeAttachment(existing, partial))
	assert.Equal(t, existing, domain.MergeAttachment(existing, nil))
	assert.Nil(t, domain.MergeAttachment(nil, partial))
}
