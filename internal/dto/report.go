package dto

import "time"

// ReportFilter narrows a report window to one truck or customer. Zero
// values mean no filtering.
type ReportFilter struct {
	TruckID    string `form:"truckId"`
	CustomerID string `form:"customerId"`
}

// DailyReportParams selects the day for a daily report; Date defaults to
// today in the handler.
type DailyReportParams struct {
	Date *time.Time `form:"date" time_format:"2006-01-02"`
	ReportFilter
}

// WeeklyReportParams selects an ISO week.
type WeeklyReportParams struct {
	Year int `form:"year" binding:"required,min=2000,max=2100"`
	Week int `form:"week" binding:"required,min=1,max=53"`
	ReportFilter
}

// MonthlyReportParams selects a calendar month.
type MonthlyReportParams struct {
	Year  int `form:"year" binding:"required,min=2000,max=2100"`
	Month int `form:"month" binding:"required,min=1,max=12"`
	ReportFilter
}

// CustomReportParams bounds an arbitrary range, optionally grouped.
type CustomReportParams struct {
	StartDate time.Time `form:"startDate" binding:"required" time_format:"2006-01-02"`
	EndDate   time.Time `form:"endDate" binding:"required" time_format:"2006-01-02"`
	GroupBy   string    `form:"groupBy" binding:"omitempty,oneof=day week month"`
	ReportFilter
}
