package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/istafrica-dennw/trucks-app/internal/apperrors"
	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	"github.com/istafrica-dennw/trucks-app/internal/dto"
)

type MockJourneyReader struct {
	mock.Mock
}

func (m *MockJourneyReader) FindJourneyByID(ctx context.Context, journeyID string) (*domain.Journey, error) {
	args := m.Called(ctx, journeyID)
	if v, ok := args.Get(0).(*domain.Journey); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJourneyReader) ListJourneys(ctx context.Context, params dto.ListJourneysParams) ([]domain.Journey, *string, error) {
	args := m.Called(ctx, params)
	return nil, nil, args.Error(2)
}

func (m *MockJourneyReader) FindJourneysByDateRange(ctx context.Context, start, end time.Time, filter dto.ReportFilter) ([]domain.Journey, error) {
	args := m.Called(ctx, start, end, filter)
	if v, ok := args.Get(0).([]domain.Journey); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJourneyReader) FindAllJourneys(ctx context.Context, filter dto.ReportFilter) ([]domain.Journey, error) {
	args := m.Called(ctx, filter)
	if v, ok := args.Get(0).([]domain.Journey); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJourneyReader) GetJourneyStats(ctx context.Context) (*domain.JourneyStats, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).(*domain.JourneyStats); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// reportJourney builds a journey on the given date with an installment ledger,
// in any supported currency.
func reportJourney(date time.Time, currency domain.Currency, rate, total, paid, expenses string) domain.Journey {
	return domain.Journey{
		JourneyID:   "jrn-" + date.Format("20060102"),
		JourneyDate: date,
		Status:      domain.JourneyStarted,
		Pay: domain.Payment{
			TotalAmount:  dec(total),
			Currency:     currency,
			ExchangeRate: dec(rate),
			PaidOption:   domain.PaidInstallment,
			Installments: []domain.Installment{{Amount: dec(paid), Date: date}},
		},
		Expenses: []domain.Expense{{Title: "Fuel", Amount: dec(expenses)}},
	}
}

func TestGetDailyReport(t *testing.T) {
	reader := new(MockJourneyReader)
	svc := NewReportService(reader)

	day := time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)
	wantStart := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	journeys := []domain.Journey{
		reportJourney(wantStart.Add(9*time.Hour), domain.RWF, "1", "1000", "400", "250"),
	}
	reader.On("FindJourneysByDateRange", mock.Anything,
		mock.MatchedBy(func(s time.Time) bool { return s.Equal(wantStart) }),
		mock.MatchedBy(func(e time.Time) bool { return e.After(wantStart.Add(23 * time.Hour)) && e.Before(wantStart.Add(24*time.Hour)) }),
		mock.Anything,
	).Return(journeys, nil)

	report, err := svc.GetDailyReport(context.Background(), day, dto.ReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", report.Date)
	assert.Equal(t, 1, report.Summary.TotalDrives)
	assert.True(t, dec("400").Equal(report.Summary.TotalPaid))
	assert.True(t, dec("150").Equal(report.Summary.NetProfit))
}

func TestGetWeeklyReport_ISOWeekBounds(t *testing.T) {
	reader := new(MockJourneyReader)
	svc := NewReportService(reader)

	// ISO week 1 of 2025 starts Monday 2024-12-30.
	wantStart := time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)
	var gotStart, gotEnd time.Time
	reader.On("FindJourneysByDateRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotStart = args.Get(1).(time.Time)
			gotEnd = args.Get(2).(time.Time)
		}).
		Return([]domain.Journey{}, nil)

	report, err := svc.GetWeeklyReport(context.Background(), 2025, 1, dto.ReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, "2025-W01", report.Week)
	assert.True(t, wantStart.Equal(gotStart), "start = %s", gotStart)
	assert.Equal(t, "2025-01-05", gotEnd.Format("2006-01-02"))
	assert.Equal(t, 0, report.Summary.TotalDrives)
}

func TestGetWeeklyReport_InvalidWeek(t *testing.T) {
	svc := NewReportService(new(MockJourneyReader))

	// 2025 has 52 ISO weeks.
	_, err := svc.GetWeeklyReport(context.Background(), 2025, 53, dto.ReportFilter{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGetMonthlyReport_ConvertsWithStoredRate(t *testing.T) {
	reader := new(MockJourneyReader)
	svc := NewReportService(reader)

	journeys := []domain.Journey{
		// 100 USD at rate 1200 = 120000 RWF paid
		reportJourney(time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC), domain.USD, "1200", "100", "100", "20000"),
		reportJourney(time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), domain.RWF, "1", "50000", "30000", "10000"),
	}
	reader.On("FindJourneysByDateRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(journeys, nil)

	report, err := svc.GetMonthlyReport(context.Background(), 2025, time.May, dto.ReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, "2025-05", report.Month)
	assert.True(t, dec("150000").Equal(report.Summary.TotalPaid), "totalPaid = %s", report.Summary.TotalPaid)
	assert.True(t, dec("170000").Equal(report.Summary.TotalAmount))
	assert.True(t, dec("30000").Equal(report.Summary.TotalExpenses))
	assert.True(t, dec("120000").Equal(report.Summary.NetProfit))
}

func TestGetCustomReport_BucketsSumToSummary(t *testing.T) {
	reader := new(MockJourneyReader)
	svc := NewReportService(reader)

	journeys := []domain.Journey{
		reportJourney(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), domain.RWF, "1", "1000", "400", "100"),
		reportJourney(time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC), domain.RWF, "1", "2000", "2000", "300"),
		reportJourney(time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC), domain.USD, "1200", "10", "5", "1000"),
	}
	reader.On("FindJourneysByDateRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(journeys, nil)

	report, err := svc.GetCustomReport(context.Background(),
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), "day", dto.ReportFilter{})
	require.NoError(t, err)

	require.Len(t, report.Breakdown, 4)
	assert.Equal(t, "2025-03-10", report.Breakdown[0].Label)
	assert.Equal(t, 2, report.Breakdown[0].TotalDrives)
	assert.Equal(t, 0, report.Breakdown[1].TotalDrives)

	var drives int
	paid := decimal.Zero
	expensesTotal := decimal.Zero
	for _, b := range report.Breakdown {
		drives += b.TotalDrives
		paid = paid.Add(b.TotalPaid)
		expensesTotal = expensesTotal.Add(b.TotalExpenses)
	}
	assert.Equal(t, report.Summary.TotalDrives, drives)
	assert.True(t, report.Summary.TotalPaid.Equal(paid))
	assert.True(t, report.Summary.TotalExpenses.Equal(expensesTotal))
}

func TestGetCustomReport_GroupByWeekClipsBoundaries(t *testing.T) {
	reader := new(MockJourneyReader)
	svc := NewReportService(reader)

	journeys := []domain.Journey{
		reportJourney(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), domain.RWF, "1", "500", "500", "0"), // Wednesday, W11
		reportJourney(time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC), domain.RWF, "1", "800", "300", "0"), // Tuesday, W12
	}
	reader.On("FindJourneysByDateRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(journeys, nil)

	report, err := svc.GetCustomReport(context.Background(),
		time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC), "week", dto.ReportFilter{})
	require.NoError(t, err)

	require.Len(t, report.Breakdown, 2)
	assert.Equal(t, "2025-W11", report.Breakdown[0].Label)
	assert.Equal(t, "2025-W12", report.Breakdown[1].Label)
	// First bucket is clipped to the range start, not the ISO Monday.
	assert.Equal(t, "2025-03-12", report.Breakdown[0].Start.Format("2006-01-02"))
	assert.Equal(t, 1, report.Breakdown[0].TotalDrives)
	assert.Equal(t, 1, report.Breakdown[1].TotalDrives)
}

func TestGetCustomReport_InvalidRange(t *testing.T) {
	svc := NewReportService(new(MockJourneyReader))

	_, err := svc.GetCustomReport(context.Background(),
		time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "", dto.ReportFilter{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGetCustomReport_InvalidGroupBy(t *testing.T) {
	reader := new(MockJourneyReader)
	reader.On("FindJourneysByDateRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]domain.Journey{}, nil)
	svc := NewReportService(reader)

	_, err := svc.GetCustomReport(context.Background(),
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), "quarter", dto.ReportFilter{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGetSummary_AllTimeTotals(t *testing.T) {
	reader := new(MockJourneyReader)
	svc := NewReportService(reader)

	journeys := []domain.Journey{
		reportJourney(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), domain.RWF, "1", "1000", "400", "250"),
		reportJourney(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), domain.USD, "1200", "10", "10", "500"),
	}
	reader.On("FindAllJourneys", mock.Anything, dto.ReportFilter{}).Return(journeys, nil)

	report, err := svc.GetSummary(context.Background(), dto.ReportFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Summary.TotalDrives)
	assert.Equal(t, "13000", report.Summary.TotalAmount.String())
	assert.Equal(t, "12400", report.Summary.TotalPaid.String())
	assert.Equal(t, "750", report.Summary.TotalExpenses.String())
	assert.Equal(t, "11650", report.Summary.NetProfit.String())
	assert.Empty(t, report.Breakdown)
}

func TestGetSummary_TruckFilterReachesRepository(t *testing.T) {
	reader := new(MockJourneyReader)
	svc := NewReportService(reader)

	filter := dto.ReportFilter{TruckID: "trk-7"}
	reader.On("FindAllJourneys", mock.Anything, filter).Return([]domain.Journey{}, nil)

	report, err := svc.GetSummary(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Summary.TotalDrives)
	reader.AssertExpectations(t)
}
