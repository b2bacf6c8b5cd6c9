package services

import (
	"context"

	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	"github.com/istafrica-dennw/trucks-app/internal/dto"
)

// JourneyReaderSvc defines read operations on journeys.
type JourneyReaderSvc interface {
	GetJourneyByID(ctx context.Context, journeyID string) (*domain.Journey, error)
	ListJourneys(ctx context.Context, params dto.ListJourneysParams) ([]domain.Journey, *string, error)
	GetJourneyStats(ctx context.Context) (*domain.JourneyStats, error)
}

// JourneyWriterSvc defines mutating operations on journeys.
type JourneyWriterSvc interface {
	CreateJourney(ctx context.Context, req dto.CreateJourneyRequest, userID string) (*domain.Journey, error)
	UpdateJourney(ctx context.Context, journeyID string, req dto.UpdateJourneyRequest, userID string) (*domain.Journey, error)
	AddInstallment(ctx context.Context, journeyID string, req dto.AddInstallmentRequest, userID string) (*domain.Journey, error)
	AddExpense(ctx context.Context, journeyID string, req dto.AddExpenseRequest, userID string) (*domain.Journey, error)
	DeleteJourney(ctx context.Context, journeyID string) error
}

// JourneySvcFacade combines journey read and write operations.
type JourneySvcFacade interface {
	JourneyReaderSvc
	JourneyWriterSvc
}
