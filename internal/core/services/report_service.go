package services

import (
	"context"
	"fmt"
	"time"

	"github.com/istafrica-dennw/trucks-app/internal/apperrors"
	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	portsrepo "github.com/istafrica-dennw/trucks-app/internal/core/ports/repositories"
	"github.com/istafrica-dennw/trucks-app/internal/dto"
	portssvc "github.com/istafrica-dennw/trucks-app/internal/core/ports/services"
)

// reportService aggregates journeys into time-windowed reports. Conversion to
// the canonical currency always uses each journey's stored exchange rate, so
// historic reports are stable against rate changes.
type reportService struct {
	journeyRepo portsrepo.JourneyReader
}

// NewReportService creates a new report service.
func NewReportService(journeyRepo portsrepo.JourneyReader) portssvc.ReportSvcFacade {
	return &reportService{journeyRepo: journeyRepo}
}

var _ portssvc.ReportSvcFacade = (*reportService)(nil)

// GetDailyReport covers one UTC calendar day.
func (s *reportService) GetDailyReport(ctx context.Context, date time.Time, filter dto.ReportFilter) (*domain.Report, error) {
	start := startOfDay(date)
	end := endOfDay(date)

	journeys, err := s.journeyRepo.FindJourneysByDateRange(ctx, start, end, filter)
	if err != nil {
		return nil, err
	}

	return &domain.Report{
		Date:    start.Format("2006-01-02"),
		Summary: summarize(journeys),
	}, nil
}

// GetWeeklyReport covers one ISO-8601 week.
func (s *reportService) GetWeeklyReport(ctx context.Context, year int, week int, filter dto.ReportFilter) (*domain.Report, error) {
	if week < 1 || week > isoWeeksInYear(year) {
		return nil, fmt.Errorf("%w: year %d has no week %d", apperrors.ErrValidation, year, week)
	}
	start := isoWeekStart(year, week)
	end := endOfDay(start.AddDate(0, 0, 6))

	journeys, err := s.journeyRepo.FindJourneysByDateRange(ctx, start, end, filter)
	if err != nil {
		return nil, err
	}

	return &domain.Report{
		Week:      fmt.Sprintf("%d-W%02d", year, week),
		StartDate: start.Format("2006-01-02"),
		EndDate:   start.AddDate(0, 0, 6).Format("2006-01-02"),
		Summary:   summarize(journeys),
	}, nil
}

// GetMonthlyReport covers one calendar month.
func (s *reportService) GetMonthlyReport(ctx context.Context, year int, month time.Month, filter dto.ReportFilter) (*domain.Report, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	journeys, err := s.journeyRepo.FindJourneysByDateRange(ctx, start, end, filter)
	if err != nil {
		return nil, err
	}

	return &domain.Report{
		Month:   start.Format("2006-01"),
		Summary: summarize(journeys),
	}, nil
}

// GetCustomReport covers an arbitrary inclusive range. A groupBy of "day",
// "week" or "month" adds a breakdown whose buckets partition the range, so
// the bucket figures always sum to the summary.
func (s *reportService) GetCustomReport(ctx context.Context, start time.Time, end time.Time, groupBy string, filter dto.ReportFilter) (*domain.Report, error) {
	rangeStart := startOfDay(start)
	rangeEnd := endOfDay(end)
	if rangeEnd.Before(rangeStart) {
		return nil, fmt.Errorf("%w: end date is before start date", apperrors.ErrValidation)
	}

	journeys, err := s.journeyRepo.FindJourneysByDateRange(ctx, rangeStart, rangeEnd, filter)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		StartDate: rangeStart.Format("2006-01-02"),
		EndDate:   rangeEnd.Format("2006-01-02"),
		Summary:   summarize(journeys),
	}

	switch groupBy {
	case "":
		// summary only
	case "day", "week", "month":
		report.Breakdown = breakdown(journeys, rangeStart, rangeEnd, groupBy)
	default:
		return nil, fmt.Errorf("%w: groupBy must be day, week or month", apperrors.ErrValidation)
	}

	return report, nil
}

// GetSummary folds the entire ledger, unbounded by date, into one summary.
func (s *reportService) GetSummary(ctx context.Context, filter dto.ReportFilter) (*domain.Report, error) {
	journeys, err := s.journeyRepo.FindAllJourneys(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &domain.Report{Summary: summarize(journeys)}, nil
}

// summarize folds a set of journeys into one summary block.
func summarize(journeys []domain.Journey) domain.ReportSummary {
	summary := domain.ReportSummary{TotalDrives: len(journeys)}
	for i := range journeys {
		j := &journeys[i]
		summary.TotalAmount = summary.TotalAmount.Add(j.Pay.TotalAmountCanonical())
		summary.TotalExpenses = summary.TotalExpenses.Add(j.TotalExpenses())
		summary.TotalPaid = summary.TotalPaid.Add(j.Pay.TotalPaidCanonical())
	}
	summary.NetProfit = summary.TotalPaid.Sub(summary.TotalExpenses)
	return summary
}

// breakdown partitions [rangeStart, rangeEnd] into consecutive buckets and
// summarizes the journeys falling into each. Boundary buckets are clipped to
// the requested range.
func breakdown(journeys []domain.Journey, rangeStart, rangeEnd time.Time, groupBy string) []domain.ReportBucket {
	var buckets []domain.ReportBucket

	cursor := rangeStart
	for !cursor.After(rangeEnd) {
		var bucketStart, bucketEnd time.Time
		var label string

		switch groupBy {
		case "day":
			bucketStart = startOfDay(cursor)
			bucketEnd = endOfDay(cursor)
			label = bucketStart.Format("2006-01-02")
		case "week":
			year, week := cursor.ISOWeek()
			bucketStart = isoWeekStart(year, week)
			bucketEnd = endOfDay(bucketStart.AddDate(0, 0, 6))
			label = fmt.Sprintf("%d-W%02d", year, week)
		case "month":
			bucketStart = time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, time.UTC)
			bucketEnd = bucketStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
			label = bucketStart.Format("2006-01")
		}

		next := bucketEnd.Add(time.Nanosecond)

		// Clip to the requested range so boundary buckets never claim
		// journeys outside it.
		if bucketStart.Before(rangeStart) {
			bucketStart = rangeStart
		}
		if bucketEnd.After(rangeEnd) {
			bucketEnd = rangeEnd
		}

		var inBucket []domain.Journey
		for i := range journeys {
			d := journeys[i].JourneyDate
			if !d.Before(bucketStart) && !d.After(bucketEnd) {
				inBucket = append(inBucket, journeys[i])
			}
		}

		buckets = append(buckets, domain.ReportBucket{
			Label:         label,
			Start:         bucketStart,
			End:           bucketEnd,
			ReportSummary: summarize(inBucket),
		})

		cursor = next
	}

	return buckets
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).Add(24*time.Hour - time.Nanosecond)
}

// isoWeekStart returns the Monday starting the given ISO week, midnight UTC.
// Week 1 is the week containing January 4th.
func isoWeekStart(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7 // ISO places Sunday at 7
	}
	week1Monday := jan4.AddDate(0, 0, 1-weekday)
	return week1Monday.AddDate(0, 0, (week-1)*7)
}

// isoWeeksInYear returns 52 or 53 per the ISO-8601 calendar.
func isoWeeksInYear(year int) int {
	// December 28th always falls in the last ISO week of its year.
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}
