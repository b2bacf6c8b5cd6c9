package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/istafrica-dennw/trucks-app/internal/apperrors"
	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	portsrepo "github.com/istafrica-dennw/trucks-app/internal/core/ports/repositories"
	portssvc "github.com/istafrica-dennw/trucks-app/internal/core/ports/services"
	"github.com/istafrica-dennw/trucks-app/internal/dto"
	"github.com/istafrica-dennw/trucks-app/internal/middleware"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// journeyService implements business logic for journeys.
type journeyService struct {
	journeyRepo  portsrepo.JourneyRepositoryFacade
	driverRepo   portsrepo.DriverReader
	truckRepo    portsrepo.TruckReader
	customerRepo portsrepo.CustomerReader
	settingsRepo portsrepo.SettingsReader
	files        portsrepo.FileStore
}

// NewJourneyService creates a new journey service.
func NewJourneyService(
	journeyRepo portsrepo.JourneyRepositoryFacade,
	driverRepo portsrepo.DriverReader,
	truckRepo portsrepo.TruckReader,
	customerRepo portsrepo.CustomerReader,
	settingsRepo portsrepo.SettingsReader,
	files portsrepo.FileStore,
) portssvc.JourneySvcFacade {
	return &journeyService{
		journeyRepo:  journeyRepo,
		driverRepo:   driverRepo,
		truckRepo:    truckRepo,
		customerRepo: customerRepo,
		settingsRepo: settingsRepo,
		files:        files,
	}
}

var _ portssvc.JourneySvcFacade = (*journeyService)(nil)

// verifyReferences checks that the driver, truck and customer exist before a
// journey points at them.
func (s *journeyService) verifyReferences(ctx context.Context, driverID, truckID, customerID string) error {
	if _, err := s.driverRepo.FindDriverByID(ctx, driverID); err != nil {
		return fmt.Errorf("driver %s: %w", driverID, err)
	}
	if _, err := s.truckRepo.FindTruckByID(ctx, truckID); err != nil {
		return fmt.Errorf("truck %s: %w", truckID, err)
	}
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return fmt.Errorf("customer %s: %w", customerID, err)
	}
	return nil
}

// defaultExchangeRate resolves the stored default rate for a non-canonical
// currency. Returns nil for the canonical currency so Normalize pins it to 1.
func (s *journeyService) defaultExchangeRate(ctx context.Context, currency domain.Currency) (*decimal.Decimal, error) {
	if currency == "" || currency.IsCanonical() {
		return nil, nil
	}
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load default exchange rates: %w", err)
	}
	rate, ok := settings.Rate(currency)
	if !ok {
		return nil, fmt.Errorf("%w: no default exchange rate configured for %s", apperrors.ErrValidation, currency)
	}
	return &rate, nil
}

// CreateJourney validates and persists a new journey with its payment terms
// and expense lines.
func (s *journeyService) CreateJourney(ctx context.Context, req dto.CreateJourneyRequest, userID string) (*domain.Journey, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	if err := s.verifyReferences(ctx, req.DriverID, req.TruckID, req.CustomerID); err != nil {
		return nil, err
	}

	if req.Pay.ExchangeRate == nil {
		rate, err := s.defaultExchangeRate(ctx, domain.Currency(req.Pay.Currency))
		if err != nil {
			return nil, err
		}
		req.Pay.ExchangeRate = rate
	}

	journeyDate := now
	if req.Date != nil {
		journeyDate = req.Date.UTC()
	}
	status := domain.JourneyStarted
	if req.Status != "" {
		status = domain.JourneyStatus(req.Status)
	}

	journey := &domain.Journey{
		JourneyID:       uuid.NewString(),
		DriverID:        req.DriverID,
		TruckID:         req.TruckID,
		CustomerID:      req.CustomerID,
		DepartureCity:   req.DepartureCity,
		DestinationCity: req.DestinationCity,
		Cargo:           req.Cargo,
		Notes:           req.Notes,
		JourneyDate:     journeyDate,
		Status:          status,
		Pay:             toDomainPayment(req.Pay, now),
		Expenses:        toDomainExpenses(req.Expenses),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	journey.RefreshBalance()

	if err := journey.ValidateForSave(now); err != nil {
		return nil, err
	}

	if err := s.journeyRepo.SaveJourney(ctx, journey); err != nil {
		logger.Error("Failed to save journey", "error", err)
		return nil, fmt.Errorf("failed to save journey: %w", err)
	}

	logger.Info("Journey created", "journey_id", journey.JourneyID, "balance", journey.Balance.String())
	return journey, nil
}

// GetJourneyByID retrieves a single journey.
func (s *journeyService) GetJourneyByID(ctx context.Context, journeyID string) (*domain.Journey, error) {
	return s.journeyRepo.FindJourneyByID(ctx, journeyID)
}

// ListJourneys returns a filtered page of journeys.
func (s *journeyService) ListJourneys(ctx context.Context, params dto.ListJourneysParams) ([]domain.Journey, *string, error) {
	if params.Limit <= 0 {
		params.Limit = defaultListLimit
	}
	if params.Limit > maxListLimit {
		params.Limit = maxListLimit
	}
	return s.journeyRepo.ListJourneys(ctx, params)
}

// GetJourneyStats aggregates fleet-wide counters.
func (s *journeyService) GetJourneyStats(ctx context.Context) (*domain.JourneyStats, error) {
	return s.journeyRepo.GetJourneyStats(ctx)
}

// UpdateJourney applies a partial update. Attachments on untouched line items
// survive; only a complete incoming attachment replaces a stored one.
func (s *journeyService) UpdateJourney(ctx context.Context, journeyID string, req dto.UpdateJourneyRequest, userID string) (*domain.Journey, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	journey, err := s.journeyRepo.FindJourneyByID(ctx, journeyID)
	if err != nil {
		return nil, err
	}

	if req.DriverID != nil {
		journey.DriverID = *req.DriverID
	}
	if req.TruckID != nil {
		journey.TruckID = *req.TruckID
	}
	if req.CustomerID != nil {
		journey.CustomerID = *req.CustomerID
	}
	if req.DriverID != nil || req.TruckID != nil || req.CustomerID != nil {
		if err := s.verifyReferences(ctx, journey.DriverID, journey.TruckID, journey.CustomerID); err != nil {
			return nil, err
		}
	}
	if req.DepartureCity != nil {
		journey.DepartureCity = *req.DepartureCity
	}
	if req.DestinationCity != nil {
		journey.DestinationCity = *req.DestinationCity
	}
	if req.Cargo != nil {
		journey.Cargo = *req.Cargo
	}
	if req.Notes != nil {
		journey.Notes = *req.Notes
	}
	if req.Date != nil {
		journey.JourneyDate = req.Date.UTC()
	}
	if req.Status != nil {
		journey.Status = domain.JourneyStatus(*req.Status)
	}

	if req.Pay != nil {
		// a currency change without an explicit rate picks up the default,
		// not the rate stored for the previous currency
		if req.Pay.Currency != nil && req.Pay.ExchangeRate == nil {
			rate, err := s.defaultExchangeRate(ctx, domain.Currency(*req.Pay.Currency))
			if err != nil {
				return nil, err
			}
			req.Pay.ExchangeRate = rate
		}
		if err := applyPaymentUpdate(&journey.Pay, *req.Pay, req.DiscardPaymentProof, now); err != nil {
			return nil, err
		}
	}
	if req.Expenses != nil {
		journey.Expenses = mergeExpenses(journey.Expenses, *req.Expenses)
	}

	journey.Pay.Normalize()
	journey.RefreshBalance()
	journey.LastUpdatedAt = now
	journey.LastUpdatedBy = userID

	if err := journey.ValidateForSave(now); err != nil {
		return nil, err
	}

	if err := s.journeyRepo.UpdateJourney(ctx, journey); err != nil {
		logger.Error("Failed to update journey", "journey_id", journeyID, "error", err)
		return nil, fmt.Errorf("failed to update journey: %w", err)
	}

	logger.Info("Journey updated", "journey_id", journeyID, "balance", journey.Balance.String())
	return journey, nil
}

// AddInstallment appends a partial payment. The headroom check runs inside
// the repository's row lock so two concurrent additions cannot both pass it
// against the same ledger state.
func (s *journeyService) AddInstallment(ctx context.Context, journeyID string, req dto.AddInstallmentRequest, userID string) (*domain.Journey, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	inst := domain.Installment{
		Amount:     req.Amount,
		Date:       now,
		Note:       req.Note,
		Attachment: req.Attachment.ToDomain(),
	}
	if req.Date != nil {
		inst.Date = req.Date.UTC()
	}

	journey, err := s.journeyRepo.AddInstallment(ctx, journeyID, func(j *domain.Journey) error {
		if err := j.Pay.AddInstallment(inst, now); err != nil {
			return err
		}
		j.RefreshBalance()
		j.LastUpdatedAt = now
		j.LastUpdatedBy = userID
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Installment added", "journey_id", journeyID, "amount", inst.Amount.String())
	return journey, nil
}

// AddExpense appends one expense line and recomputes the balance atomically.
func (s *journeyService) AddExpense(ctx context.Context, journeyID string, req dto.AddExpenseRequest, userID string) (*domain.Journey, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	expense := domain.Expense{
		Title:      req.Title,
		Amount:     req.Amount,
		Note:       req.Note,
		Attachment: req.Attachment.ToDomain(),
	}
	if err := expense.Validate(); err != nil {
		return nil, err
	}

	journey, err := s.journeyRepo.AddExpense(ctx, journeyID, func(j *domain.Journey) error {
		j.Expenses = append(j.Expenses, expense)
		j.RefreshBalance()
		j.LastUpdatedAt = now
		j.LastUpdatedBy = userID
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Expense added", "journey_id", journeyID, "title", expense.Title)
	return journey, nil
}

// DeleteJourney removes a journey and its child rows, then cleans up the
// proof files it referenced. File removal is best effort; an orphaned file
// never fails the delete.
func (s *journeyService) DeleteJourney(ctx context.Context, journeyID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	journey, err := s.journeyRepo.FindJourneyByID(ctx, journeyID)
	if err != nil {
		return err
	}
	if err := s.journeyRepo.DeleteJourney(ctx, journeyID); err != nil {
		return err
	}

	for _, path := range journey.AttachmentPaths() {
		if err := s.files.Remove(ctx, path); err != nil {
			logger.Warn("Failed to remove attachment file", "journey_id", journeyID, "path", path, "error", err)
		}
	}

	logger.Info("Journey deleted", "journey_id", journeyID)
	return nil
}

// toDomainPayment builds the payment ledger from a create request, filling in
// the currency and exchange-rate defaults.
func toDomainPayment(in dto.PaymentInput, now time.Time) domain.Payment {
	p := domain.Payment{
		TotalAmount:  in.TotalAmount,
		Currency:     domain.Currency(in.Currency),
		PaidOption:   domain.PaidOption(in.PaidOption),
		Attachment:   in.Attachment.ToDomain(),
		Installments: toDomainInstallments(in.Installments, now),
	}
	if in.ExchangeRate != nil {
		p.ExchangeRate = *in.ExchangeRate
	}
	p.Normalize()
	return p
}

func toDomainInstallments(inputs []dto.InstallmentInput, now time.Time) []domain.Installment {
	if len(inputs) == 0 {
		return nil
	}
	installments := make([]domain.Installment, len(inputs))
	for i, in := range inputs {
		date := now
		if in.Date != nil {
			date = in.Date.UTC()
		}
		installments[i] = domain.Installment{
			Amount:     in.Amount,
			Date:       date,
			Note:       in.Note,
			Attachment: in.Attachment.ToDomain(),
		}
	}
	return installments
}

func toDomainExpenses(inputs []dto.ExpenseInput) []domain.Expense {
	if len(inputs) == 0 {
		return nil
	}
	expenses := make([]domain.Expense, len(inputs))
	for i, in := range inputs {
		expenses[i] = domain.Expense{
			Title:      in.Title,
			Amount:     in.Amount,
			Note:       in.Note,
			Attachment: in.Attachment.ToDomain(),
		}
	}
	return expenses
}

// applyPaymentUpdate folds a partial payment update onto the stored ledger.
// Switching modes goes through the ledger's own transitions so the
// proof-discard rule is enforced.
func applyPaymentUpdate(p *domain.Payment, upd dto.PaymentUpdate, discardProof bool, now time.Time) error {
	if upd.TotalAmount != nil {
		p.TotalAmount = *upd.TotalAmount
	}
	if upd.Currency != nil {
		p.Currency = domain.Currency(*upd.Currency)
	}
	if upd.ExchangeRate != nil {
		p.ExchangeRate = *upd.ExchangeRate
	}

	if upd.PaidOption != nil && domain.PaidOption(*upd.PaidOption) != p.PaidOption {
		switch domain.PaidOption(*upd.PaidOption) {
		case domain.PaidFull:
			p.SwitchToFull(upd.Attachment.ToDomain())
		case domain.PaidInstallment:
			if err := p.SwitchToInstallment(discardProof); err != nil {
				return err
			}
		}
	} else if upd.Attachment != nil {
		p.Attachment = domain.MergeAttachment(p.Attachment, upd.Attachment.ToDomain())
	}

	if upd.Installments != nil {
		p.Installments = mergeInstallments(p.Installments, *upd.Installments, now)
	}
	return nil
}

// mergeInstallments rebuilds the installment list from the incoming entries,
// matching by position so an entry sent without its attachment keeps the one
// already stored.
func mergeInstallments(existing []domain.Installment, incoming []dto.InstallmentInput, now time.Time) []domain.Installment {
	merged := make([]domain.Installment, len(incoming))
	for i, in := range incoming {
		var priorAttachment *domain.Attachment
		date := now
		if i < len(existing) {
			priorAttachment = existing[i].Attachment
			date = existing[i].Date
		}
		if in.Date != nil {
			date = in.Date.UTC()
		}
		merged[i] = domain.Installment{
			Amount:     in.Amount,
			Date:       date,
			Note:       in.Note,
			Attachment: domain.MergeAttachment(priorAttachment, in.Attachment.ToDomain()),
		}
	}
	return merged
}

// mergeExpenses applies the same position-matched attachment preservation to
// expense lines.
func mergeExpenses(existing []domain.Expense, incoming []dto.ExpenseInput) []domain.Expense {
	merged := make([]domain.Expense, len(incoming))
	for i, in := range incoming {
		var priorAttachment *domain.Attachment
		if i < len(existing) {
			priorAttachment = existing[i].Attachment
		}
		merged[i] = domain.Expense{
			Title:      in.Title,
			Amount:     in.Amount,
			Note:       in.Note,
			Attachment: domain.MergeAttachment(priorAttachment, in.Attachment.ToDomain()),
		}
	}
	return merged
}
