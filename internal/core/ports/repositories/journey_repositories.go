package repositories

import (
	"context"
	"time"

	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	"github.com/istafrica-dennw/trucks-app/internal/dto"
	"github.com/jackc/pgx/v5"
)

// JourneyReader defines read operations for journeys.
type JourneyReader interface {
	// FindJourneyByID retrieves a journey with its payment, installments and
	// expenses. Returns apperrors.ErrNotFound when missing.
	FindJourneyByID(ctx context.Context, journeyID string) (*domain.Journey, error)

	// ListJourneys returns a filtered page of journeys plus the token for the
	// next page, nil when the listing is exhausted.
	ListJourneys(ctx context.Context, params dto.ListJourneysParams) ([]domain.Journey, *string, error)

	// FindJourneysByDateRange returns every journey whose date falls within
	// [start, end], ordered by date ascending, optionally narrowed to one
	// truck or customer. Used by reporting.
	FindJourneysByDateRange(ctx context.Context, start time.Time, end time.Time, filter dto.ReportFilter) ([]domain.Journey, error)

	// FindAllJourneys returns every journey regardless of date, optionally
	// narrowed to one truck or customer. Used by the all-time summary report.
	FindAllJourneys(ctx context.Context, filter dto.ReportFilter) ([]domain.Journey, error)

	// GetJourneyStats aggregates fleet-wide counters and money totals.
	GetJourneyStats(ctx context.Context) (*domain.JourneyStats, error)
}

// JourneyWriter defines write operations for journeys.
type JourneyWriter interface {
	// SaveJourney persists a new journey together with its child rows in a
	// single transaction.
	SaveJourney(ctx context.Context, journey *domain.Journey) error

	// UpdateJourney replaces the journey row and its child rows atomically,
	// locking the journey row for the duration of the transaction.
	UpdateJourney(ctx context.Context, journey *domain.Journey) error

	// AddInstallment appends an installment under a row lock so the headroom
	// check and the write observe the same ledger state. The mutate callback
	// receives the freshly locked journey and must either apply the change or
	// return the error to surface. The updated journey is returned.
	AddInstallment(ctx context.Context, journeyID string, mutate func(*domain.Journey) error) (*domain.Journey, error)

	// AddExpense appends an expense line under the same row-lock discipline.
	AddExpense(ctx context.Context, journeyID string, mutate func(*domain.Journey) error) (*domain.Journey, error)

	// DeleteJourney removes the journey and its child rows.
	DeleteJourney(ctx context.Context, journeyID string) error
}

// JourneyRepositoryWithTx combines journey operations with transaction
// management for callers that need explicit transaction scopes.
type JourneyRepositoryWithTx interface {
	JourneyReader
	JourneyWriter
	TransactionManager
	WithTx(tx pgx.Tx) JourneyRepositoryWithTx
}

// JourneyRepositoryFacade combines read and write operations. Most consumers
// depend on this alias rather than the WithTx variant.
type JourneyRepositoryFacade = JourneyRepositoryWithTx
