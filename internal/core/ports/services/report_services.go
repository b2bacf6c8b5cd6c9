package services

import (
	"context"
	"time"

	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	"github.com/istafrica-dennw/trucks-app/internal/dto"
)

// ReportSvcFacade produces aggregated views over the journey ledger. All
// figures are expressed in the canonical currency.
type ReportSvcFacade interface {
	// GetDailyReport covers one UTC calendar day.
	GetDailyReport(ctx context.Context, date time.Time, filter dto.ReportFilter) (*domain.Report, error)

	// GetWeeklyReport covers one ISO-8601 week of the given year.
	GetWeeklyReport(ctx context.Context, year int, week int, filter dto.ReportFilter) (*domain.Report, error)

	// GetMonthlyReport covers one calendar month.
	GetMonthlyReport(ctx context.Context, year int, month time.Month, filter dto.ReportFilter) (*domain.Report, error)

	// GetCustomReport covers [start, end]. groupBy of "day", "week" or "month"
	// adds a breakdown; empty groupBy returns the summary only.
	GetCustomReport(ctx context.Context, start time.Time, end time.Time, groupBy string, filter dto.ReportFilter) (*domain.Report, error)

	// GetSummary covers the whole ledger with no date bound.
	GetSummary(ctx context.Context, filter dto.ReportFilter) (*domain.Report, error)
}
