package services

import (
	"context"

	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	"github.com/istafrica-dennw/trucks-app/internal/dto"
)

// SettingsSvcFacade manages the application settings, currently the default
// exchange rates applied to journeys recorded without an explicit rate.
type SettingsSvcFacade interface {
	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateExchangeRates(ctx context.Context, req dto.UpdateExchangeRatesRequest, userID string) (*domain.Settings, error)
}
