package services

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/istafrica-dennw/trucks-app/internal/apperrors"
	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	portsrepo "github.com/istafrica-dennw/trucks-app/internal/core/ports/repositories"
	"github.com/istafrica-dennw/trucks-app/internal/dto"
)

// --- Mocks ---

type MockJourneyRepository struct {
	mock.Mock
}

func (m *MockJourneyRepository) FindJourneyByID(ctx context.Context, journeyID string) (*domain.Journey, error) {
	args := m.Called(ctx, journeyID)
	if j, ok := args.Get(0).(*domain.Journey); ok {
		return j, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJourneyRepository) ListJourneys(ctx context.Context, params dto.ListJourneysParams) ([]domain.Journey, *string, error) {
	args := m.Called(ctx, params)
	var journeys []domain.Journey
	if v, ok := args.Get(0).([]domain.Journey); ok {
		journeys = v
	}
	var token *string
	if v, ok := args.Get(1).(*string); ok {
		token = v
	}
	return journeys, token, args.Error(2)
}

func (m *MockJourneyRepository) FindJourneysByDateRange(ctx context.Context, start, end time.Time, filter dto.ReportFilter) ([]domain.Journey, error) {
	args := m.Called(ctx, start, end, filter)
	if v, ok := args.Get(0).([]domain.Journey); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJourneyRepository) FindAllJourneys(ctx context.Context, filter dto.ReportFilter) ([]domain.Journey, error) {
	args := m.Called(ctx, filter)
	if v, ok := args.Get(0).([]domain.Journey); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJourneyRepository) GetJourneyStats(ctx context.Context) (*domain.JourneyStats, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).(*domain.JourneyStats); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJourneyRepository) SaveJourney(ctx context.Context, journey *domain.Journey) error {
	args := m.Called(ctx, journey)
	return args.Error(0)
}

func (m *MockJourneyRepository) UpdateJourney(ctx context.Context, journey *domain.Journey) error {
	args := m.Called(ctx, journey)
	return args.Error(0)
}

// AddInstallment mirrors the repository contract: the configured journey is
// handed to the mutate callback and returned when the mutation succeeds.
func (m *MockJourneyRepository) AddInstallment(ctx context.Context, journeyID string, mutate func(*domain.Journey) error) (*domain.Journey, error) {
	args := m.Called(ctx, journeyID, mutate)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	journey := args.Get(0).(*domain.Journey)
	if err := mutate(journey); err != nil {
		return nil, err
	}
	return journey, nil
}

func (m *MockJourneyRepository) AddExpense(ctx context.Context, journeyID string, mutate func(*domain.Journey) error) (*domain.Journey, error) {
	args := m.Called(ctx, journeyID, mutate)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	journey := args.Get(0).(*domain.Journey)
	if err := mutate(journey); err != nil {
		return nil, err
	}
	return journey, nil
}

func (m *MockJourneyRepository) DeleteJourney(ctx context.Context, journeyID string) error {
	args := m.Called(ctx, journeyID)
	return args.Error(0)
}

func (m *MockJourneyRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	return nil, args.Error(1)
}

func (m *MockJourneyRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockJourneyRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockJourneyRepository) WithTx(tx pgx.Tx) portsrepo.JourneyRepositoryWithTx {
	return m
}

type MockDriverReader struct {
	mock.Mock
}

func (m *MockDriverReader) FindDriverByID(ctx context.Context, driverID string) (*domain.Driver, error) {
	args := m.Called(ctx, driverID)
	if v, ok := args.Get(0).(*domain.Driver); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDriverReader) ListDrivers(ctx context.Context, limit int, nextToken *string) ([]domain.Driver, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	return nil, nil, args.Error(2)
}

type MockTruckReader struct {
	mock.Mock
}

func (m *MockTruckReader) FindTruckByID(ctx context.Context, truckID string) (*domain.Truck, error) {
	args := m.Called(ctx, truckID)
	if v, ok := args.Get(0).(*domain.Truck); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTruckReader) ListTrucks(ctx context.Context, limit int, nextToken *string) ([]domain.Truck, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	return nil, nil, args.Error(2)
}

type MockCustomerReader struct {
	mock.Mock
}

func (m *MockCustomerReader) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if v, ok := args.Get(0).(*domain.Customer); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerReader) ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	return nil, nil, args.Error(2)
}

// stubSettingsReader serves fixed default exchange rates.
type stubSettingsReader struct {
	settings *domain.Settings
	err      error
}

func (s *stubSettingsReader) GetSettings(ctx context.Context) (*domain.Settings, error) {
	return s.settings, s.err
}

func testSettings() *domain.Settings {
	return &domain.Settings{ExchangeRates: map[domain.Currency]decimal.Decimal{
		domain.USD: dec("1200"),
		domain.UGX: dec("3.2"),
		domain.TZX: dec("0.52"),
	}}
}

// recordingFileStore remembers every removed path.
type recordingFileStore struct {
	mu      sync.Mutex
	removed []string
}

func (f *recordingFileStore) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	return "stored/" + filename, nil
}

func (f *recordingFileStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return nil, apperrors.ErrNotFound
}

func (f *recordingFileStore) Remove(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, path)
	return nil
}

// --- Helpers ---

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func newTestJourneyService(journeyRepo *MockJourneyRepository) (*journeyService, *MockDriverReader, *MockTruckReader, *MockCustomerReader) {
	driverRepo := new(MockDriverReader)
	truckRepo := new(MockTruckReader)
	customerRepo := new(MockCustomerReader)
	svc := NewJourneyService(journeyRepo, driverRepo, truckRepo, customerRepo,
		&stubSettingsReader{settings: testSettings()}, &recordingFileStore{}).(*journeyService)
	return svc, driverRepo, truckRepo, customerRepo
}

func expectReferencesOK(driverRepo *MockDriverReader, truckRepo *MockTruckReader, customerRepo *MockCustomerReader) {
	driverRepo.On("FindDriverByID", mock.Anything, mock.Anything).Return(&domain.Driver{DriverID: "drv-1"}, nil)
	truckRepo.On("FindTruckByID", mock.Anything, mock.Anything).Return(&domain.Truck{TruckID: "trk-1"}, nil)
	customerRepo.On("FindCustomerByID", mock.Anything, mock.Anything).Return(&domain.Customer{CustomerID: "cst-1"}, nil)
}

func createRequest() dto.CreateJourneyRequest {
	return dto.CreateJourneyRequest{
		DriverID:        "drv-1",
		TruckID:         "trk-1",
		CustomerID:      "cst-1",
		DepartureCity:   "Kigali",
		DestinationCity: "Kampala",
		Cargo:           "Cement",
		Pay: dto.PaymentInput{
			TotalAmount: dec("1000"),
			PaidOption:  "installment",
			Installments: []dto.InstallmentInput{
				{Amount: dec("400")},
			},
		},
		Expenses: []dto.ExpenseInput{
			{Title: "Fuel", Amount: dec("250")},
			{Title: "Toll", Amount: dec("50")},
		},
	}
}

func storedJourney() *domain.Journey {
	return &domain.Journey{
		JourneyID:       "jrn-1",
		DriverID:        "drv-1",
		TruckID:         "trk-1",
		CustomerID:      "cst-1",
		DepartureCity:   "Kigali",
		DestinationCity: "Kampala",
		Cargo:           "Cement",
		JourneyDate:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:          domain.JourneyStarted,
		Pay: domain.Payment{
			TotalAmount:  dec("1000"),
			Currency:     domain.RWF,
			ExchangeRate: decimal.NewFromInt(1),
			PaidOption:   domain.PaidInstallment,
			Installments: []domain.Installment{
				{Amount: dec("400"), Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Attachment: &domain.Attachment{
					Filename: "receipt-1.pdf", Path: "proofs/receipt-1.pdf", MimeType: "application/pdf", Size: 1024,
				}},
			},
		},
		Expenses: []domain.Expense{
			{Title: "Fuel", Amount: dec("250")},
		},
		Balance: dec("150"),
	}
}

// --- Tests ---

func TestCreateJourney_ComputesBalance(t *testing.T) {
	journeyRepo := new(MockJourneyRepository)
	svc, driverRepo, truckRepo, customerRepo := newTestJourneyService(journeyRepo)
	expectReferencesOK(driverRepo, truckRepo, customerRepo)

	var saved *domain.Journey
	journeyRepo.On("SaveJourney", mock.Anything, mock.AnythingOfType("*domain.Journey")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.Journey) }).
		Return(nil)

	journey, err := svc.CreateJourney(context.Background(), createRequest(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, saved)

	// paid 400, expenses 300, balance 100
	assert.True(t, dec("100").Equal(journey.Balance), "balance = %s", journey.Balance)
	assert.Equal(t, domain.RWF, journey.Pay.Currency)
	assert.True(t, decimal.NewFromInt(1).Equal(journey.Pay.ExchangeRate))
	assert.Equal(t, domain.JourneyStarted, journey.Status)
	journeyRepo.AssertExpectations(t)
}

func TestCreateJourney_UnknownTruck(t *testing.T) {
	journeyRepo := new(MockJourneyRepository)
	svc, driverRepo, truckRepo, _ := newTestJourneyService(journeyRepo)
	driverRepo.On("FindDriverByID", mock.Anything, "drv-1").Return(&domain.Driver{DriverID: "drv-1"}, nil)
	truckRepo.On("FindTruckByID", mock.Anything, "trk-1").Return(nil, apperrors.NewNotFoundError("truck not found"))

	_, err := svc.CreateJourney(context.Background(), createRequest(), "user-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	journeyRepo.AssertNotCalled(t, "SaveJourney", mock.Anything, mock.Anything)
}

func TestCreateJourney_CompletedUnderpaid(t *testing.T) {
	journeyRepo := new(MockJourneyRepository)
	svc, driverRepo, truckRepo, customerRepo := newTestJourneyService(journeyRepo)
	expectReferencesOK(driverRepo, truckRepo, customerRepo)

	req := createRequest()
	req.Status = "completed" // only 400 of 1000 paid

	_, err := svc.CreateJourney(context.Background(), req, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrPaymentIncomplete)
	assert.Contains(t, err.Error(), "600.00")
}

func TestCreateJourney_InstallmentsExceedTotal(t *testing.T) {
	journeyRepo := new(MockJourneyRepository)
	svc, driverRepo, truckRepo, customerRepo := newTestJourneyService(journeyRepo)
	expectReferencesOK(driverRepo, truckRepo, customerRepo)

	req := createRequest()
	req.Pay.Installments = []dto.InstallmentInput{{Amount: dec("700")}, {Amount: dec("700")}}

	_, err := svc.CreateJourney(context.Background(), req, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrPaymentExceeded)
}

func TestUpdateJourney_PreservesAttachments(t *testing.T) {
	journeyRepo := new(MockJourneyRepository)
	svc, _, _, _ := newTestJourneyService(journeyRepo)

	journeyRepo.On("FindJourneyByID", mock.Anything, "jrn-1").Return(storedJourney(), nil)
	journeyRepo.On("UpdateJourney", mock.Anything, mock.AnythingOfType("*domain.Journey")).Return(nil)

	// Client resends the installment without its attachment, the stored proof
	// must survive.
	req := dto.UpdateJourneyRequest{
		Notes: strPtr("delayed at border"),
		Pay: &dto.PaymentUpdate{
			Installments: &[]dto.InstallmentInput{
				{Amount: dec("400")},
				{Amount: dec("600")},
			},
		},
	}

	journey, err := svc.UpdateJourney(context.Background(), "jrn-1", req, "user-1")
	require.NoError(t, err)

	require.Len(t, journey.Pay.Installments, 2)
	require.NotNil(t, journey.Pay.Installments[0].Attachment)
	assert.Equal(t, "proofs/receipt-1.pdf", journey.Pay.Installments[0].Attachment.Path)
	assert.Nil(t, journey.Pay.Installments[1].Attachment)
	assert.Equal(t, "delayed at border", journey.Notes)
	// paid 1000, expenses 250
	assert.True(t, dec("750").Equal(journey.Balance), "balance = %s", journey.Balance)
}

func TestUpdateJourney_CompleteUnderpaid(t *testing.T) {
	journeyRepo := new(MockJourneyRepository)
	svc, _, _, _ := newTestJourneyService(journeyRepo)

	journeyRepo.On("FindJourneyByID", mock.Anything, "jrn-1").Return(storedJourney(), nil)

	req := dto.UpdateJourneyRequest{Status: strPtr("completed")}
	_, err := svc.UpdateJourney(context.Background(), "jrn-1", req, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrPaymentIncomplete)
	journeyRepo.AssertNotCalled(t, "UpdateJourney", mock.Anything, mock.Anything)
}

func TestUpdateJourney_CompleteWhenFullyPaid(t *testing.T) {
	journeyRepo := new(MockJourneyRepository)
	svc, _, _, _ := newTestJourneyService(journeyRepo)

	stored := storedJourney()
	stored.Pay.Installments = append(stored.Pay.Installments, domain.Installment{Amount: dec("600"), Date: stored.JourneyDate})
	journeyRepo.On("FindJourneyByID", mock.Anything, "jrn-1").Return(stored, nil)
	journeyRepo.On("UpdateJourney", mock.Anything, mock.AnythingOfType("*domain.Journey")).Return(nil)

	journey, err := svc.UpdateJourney(context.Background(), "jrn-1", dto.UpdateJourneyRequest{Status: strPtr("completed")}, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JourneyCompleted, journey.Status)
}

func TestUpdateJourney_SwitchToInstallmentKeepsProofGuard(t *testing.T) {
	journeyRepo := new(MockJourneyRepository)
	svc, _, _, _ := newTestJourneyService(journeyRepo)

	stored := storedJourney()
	stored.Pay.PaidOption = domain.PaidFull
	stored.Pay.Installments = nil
	stored.Pay.Attachment = &domain.Attachment{Filename: "full.pdf", Path: "proofs/full.pdf", MimeType: "application/pdf", Size: 2048}
	journeyRepo.On("FindJourneyByID", mock.Anything, "jrn-1").Return(stored, nil)

	req := dto.UpdateJourneyRequest{Pay: &dto.PaymentUpdate{PaidOption: strPtr("installment")}}
	_, err := svc.UpdateJourney(context.Background(), "jrn-1", req, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
}

func TestAddInstallment_HeadroomEnforced(t *testing.T) {
	journeyRepo := new(MockJourneyRepository)
	svc, _, _, _ := newTestJourneyService(journeyRepo)

	stored := storedJourney() // 400 of 1000 paid
	journeyRepo.On("AddInstallment", mock.Anything, "jrn-1", mock.Anything).Return(stored, nil)

	_, err := svc.AddInstallment(context.Background(), "jrn-1", dto.AddInstallmentRequest{Amount: dec("700")}, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrPaymentExceeded)

	journey, err := svc.AddInstallment(context.Background(), "jrn-1", dto.AddInstallmentRequest{Amount: dec("600")}, "user-1")
	require.NoError(t, err)
	assert.True(t, journey.Pay.IsFullyPaid())
	// paid 1000, expenses 250
	assert.True(t, dec("750").Equal(journey.Balance))
}

func TestAddInstallment_FullPaymentRejected(t *testing.T) {
	journeyRepo := new(MockJourneyRepository)
	svc, _, _, _ := newTestJourneyService(journeyRepo)

	stored := storedJourney()
	stored.Pay.PaidOption = domain.PaidFull
	stored.Pay.Installments = nil
	journeyRepo.On("AddInstallment", mock.Anything, "jrn-1", mock.Anything).Return(stored, nil)

	_, err := svc.AddInstallment(context.Background(), "jrn-1", dto.AddInstallmentRequest{Amount: dec("100")}, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
}

// lockingJourneyRepo serializes mutations around one shared journey the way
// the row lock does, so concurrent additions observe each other's writes.
type lockingJourneyRepo struct {
	MockJourneyRepository
	mu      sync.Mutex
	journey *domain.Journey
}

func (r *lockingJourneyRepo) AddInstallment(ctx context.Context, journeyID string, mutate func(*domain.Journey) error) (*domain.Journey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := mutate(r.journey); err != nil {
		return nil, err
	}
	copied := *r.journey
	return &copied, nil
}

func TestAddInstallment_ConcurrentAdditionsCannotOverpay(t *testing.T) {
	repo := &lockingJourneyRepo{journey: storedJourney()} // 600 headroom
	svc := NewJourneyService(repo, new(MockDriverReader), new(MockTruckReader), new(MockCustomerReader),
		&stubSettingsReader{settings: testSettings()}, &recordingFileStore{})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.AddInstallment(context.Background(), "jrn-1", dto.AddInstallmentRequest{Amount: dec("400")}, "user-1")
		}(i)
	}
	wg.Wait()

	var failures int
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, apperrors.ErrPaymentExceeded)
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactly one of the two additions must be rejected")
	assert.False(t, repo.journey.Pay.InstallmentSum().GreaterThan(repo.journey.Pay.TotalAmount))
}

func TestAddExpense_RecomputesBalance(t *testing.T) {
	journeyRepo := new(MockJourneyRepository)
	svc, _, _, _ := newTestJourneyService(journeyRepo)

	stored := storedJourney()
	journeyRepo.On("AddExpense", mock.Anything, "jrn-1", mock.Anything).Return(stored, nil)

	journey, err := svc.AddExpense(context.Background(), "jrn-1", dto.AddExpenseRequest{Title: "Parking", Amount: dec("30")}, "user-1")
	require.NoError(t, err)
	require.Len(t, journey.Expenses, 2)
	// paid 400, expenses 280
	assert.True(t, dec("120").Equal(journey.Balance), "balance = %s", journey.Balance)
}

func TestAddExpense_InvalidExpense(t *testing.T) {
	journeyRepo := new(MockJourneyRepository)
	svc, _, _, _ := newTestJourneyService(journeyRepo)

	_, err := svc.AddExpense(context.Background(), "jrn-1", dto.AddExpenseRequest{Title: "", Amount: dec("30")}, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	journeyRepo.AssertNotCalled(t, "AddExpense", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteJourney_RemovesAttachmentFiles(t *testing.T) {
	journeyRepo := new(MockJourneyRepository)
	svc, _, _, _ := newTestJourneyService(journeyRepo)
	journeyRepo.On("FindJourneyByID", mock.Anything, "jrn-1").Return(storedJourney(), nil)
	journeyRepo.On("DeleteJourney", mock.Anything, "jrn-1").Return(nil)

	require.NoError(t, svc.DeleteJourney(context.Background(), "jrn-1"))
	journeyRepo.AssertExpectations(t)

	files := svc.files.(*recordingFileStore)
	assert.Equal(t, []string{"proofs/receipt-1.pdf"}, files.removed)
}

func TestDeleteJourney_NotFound(t *testing.T) {
	journeyRepo := new(MockJourneyRepository)
	svc, _, _, _ := newTestJourneyService(journeyRepo)
	journeyRepo.On("FindJourneyByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)

	err := svc.DeleteJourney(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	journeyRepo.AssertNotCalled(t, "DeleteJourney", mock.Anything, mock.Anything)
}

func TestCreateJourney_SeedsDefaultExchangeRate(t *testing.T) {
	journeyRepo := new(MockJourneyRepository)
	svc, driverRepo, truckRepo, customerRepo := newTestJourneyService(journeyRepo)
	expectReferencesOK(driverRepo, truckRepo, customerRepo)

	var saved *domain.Journey
	journeyRepo.On("SaveJourney", mock.Anything, mock.AnythingOfType("*domain.Journey")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.Journey) }).
		Return(nil)

	req := createRequest()
	req.Pay.Currency = "USD" // no explicit rate

	_, err := svc.CreateJourney(context.Background(), req, "user-1")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "1200", saved.Pay.ExchangeRate.String())
	// 400 USD paid, 300 RWF of expenses
	assert.Equal(t, "479700", saved.Balance.String())
}

func TestAddInstallment_FutureDateRejected(t *testing.T) {
	journeyRepo := new(MockJourneyRepository)
	svc, _, _, _ := newTestJourneyService(journeyRepo)

	stored := storedJourney()
	journeyRepo.On("AddInstallment", mock.Anything, "jrn-1", mock.Anything).Return(stored, nil)

	future := time.Now().UTC().Add(72 * time.Hour)
	_, err := svc.AddInstallment(context.Background(), "jrn-1", dto.AddInstallmentRequest{Amount: dec("100"), Date: &future}, "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	require.Len(t, stored.Pay.Installments, 1)
}

func strPtr(s string) *string { return &s }
