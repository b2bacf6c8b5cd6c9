package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/istafrica-dennw/trucks-app/internal/apperrors"
	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	portsrepo "github.com/istafrica-dennw/trucks-app/internal/core/ports/repositories"
	portssvc "github.com/istafrica-dennw/trucks-app/internal/core/ports/services"
	"github.com/istafrica-dennw/trucks-app/internal/dto"
	"github.com/istafrica-dennw/trucks-app/internal/middleware"
)

// settingsService manages the default exchange rates.
type settingsService struct {
	settingsRepo portsrepo.SettingsRepositoryFacade
}

// NewSettingsService creates a new settings service.
func NewSettingsService(settingsRepo portsrepo.SettingsRepositoryFacade) portssvc.SettingsSvcFacade {
	return &settingsService{settingsRepo: settingsRepo}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

func (s *settingsService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	return s.settingsRepo.GetSettings(ctx)
}

// UpdateExchangeRates validates and stores the listed rates, then returns
// the full settings block including the untouched currencies.
func (s *settingsService) UpdateExchangeRates(ctx context.Context, req dto.UpdateExchangeRatesRequest, userID string) (*domain.Settings, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.ExchangeRates) == 0 {
		return nil, fmt.Errorf("%w: at least one exchange rate is required", apperrors.ErrValidation)
	}

	rates := make(map[domain.Currency]decimal.Decimal, len(req.ExchangeRates))
	for code, rate := range req.ExchangeRates {
		currency := domain.Currency(code)
		if !currency.IsSupported() {
			return nil, fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, code)
		}
		if rate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: exchange rate for %s must be positive", apperrors.ErrValidation, code)
		}
		rates[currency] = rate
	}

	if err := s.settingsRepo.UpsertExchangeRates(ctx, rates, userID); err != nil {
		return nil, fmt.Errorf("failed to update exchange rates: %w", err)
	}

	logger.Info("Exchange rates updated", "currencies", len(rates))
	return s.settingsRepo.GetSettings(ctx)
}
