package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportSummary aggregates journeys over a window, all monetary figures in
// the canonical currency.
type ReportSummary struct {
	TotalDrives   int             `json:"totalDrives"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

// ReportBucket is one grouping unit of a custom report breakdown.
type ReportBucket struct {
	Label string    `json:"label"` // e.g. 2024-05-01, 2024-W18, 2024-05
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	ReportSummary
}

// Report is the result of a report query: its summary and, for custom
// reports, a per-bucket breakdown whose sums equal the summary.
type Report struct {
	Date      string         `json:"date,omitempty"`
	Week      string         `json:"week,omitempty"`
	Month     string         `json:"month,omitempty"`
	StartDate string         `json:"startDate,omitempty"`
	EndDate   string         `json:"endDate,omitempty"`
	Summary   ReportSummary  `json:"summary"`
	Breakdown []ReportBucket `json:"breakdown,omitempty"`
}

// JourneyStats is the dashboard counters block.
type JourneyStats struct {
	Total              int             `json:"total"`
	Started            int             `json:"started"`
	Completed          int             `json:"completed"`
	FullPayment        int             `json:"fullPayment"`
	InstallmentPayment int             `json:"installmentPayment"`
	RecentJourneys     int             `json:"recentJourneys"` // dated within the last 30 days
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	TotalExpenses      decimal.Decimal `json:"totalExpenses"`
	TotalPaid          decimal.Decimal `json:"totalPaid"`
	NetProfit          decimal.Decimal `json:"netProfit"`
}
