package dto

import (
	"time"

	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AttachmentInput carries a stored file reference in a request body. The
// handler layer fills it in after saving an uploaded file; JSON clients may
// echo back a reference they received earlier.
type AttachmentInput struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// ToDomain converts the input to a domain attachment, nil when absent.
func (a *AttachmentInput) ToDomain() *domain.Attachment {
	if a == nil {
		return nil
	}
	return &domain.Attachment{
		Filename: a.Filename,
		Path:     a.Path,
		MimeType: a.MimeType,
		Size:     a.Size,
	}
}

// ExpenseInput is one expense line in a create or update request.
type ExpenseInput struct {
	Title      string           `json:"title" binding:"required,max=100"`
	Amount     decimal.Decimal  `json:"amount" binding:"required"`
	Note       string           `json:"note" binding:"max=200"`
	Attachment *AttachmentInput `json:"attachment"`
}

// InstallmentInput is one installment entry in a request.
type InstallmentInput struct {
	Amount     decimal.Decimal  `json:"amount" binding:"required"`
	Date       *time.Time       `json:"date"`
	Note       string           `json:"note" binding:"max=200"`
	Attachment *AttachmentInput `json:"attachment"`
}

// PaymentInput is the payment block of a create request.
type PaymentInput struct {
	TotalAmount  decimal.Decimal    `json:"totalAmount" binding:"required"`
	Currency     string             `json:"currency" binding:"omitempty,currency"`
	ExchangeRate *decimal.Decimal   `json:"exchangeRate"`
	PaidOption   string             `json:"paidOption" binding:"required,oneof=full installment"`
	Attachment   *AttachmentInput   `json:"attachment"`
	Installments []InstallmentInput `json:"installments"`
}

// PaymentUpdate is the payment block of a partial update; every field is
// optional and absent fields leave the stored value untouched.
type PaymentUpdate struct {
	TotalAmount  *decimal.Decimal    `json:"totalAmount"`
	Currency     *string             `json:"currency" binding:"omitempty,currency"`
	ExchangeRate *decimal.Decimal    `json:"exchangeRate"`
	PaidOption   *string             `json:"paidOption" binding:"omitempty,oneof=full installment"`
	Attachment   *AttachmentInput    `json:"attachment"`
	Installments *[]InstallmentInput `json:"installments"`
}

// CreateJourneyRequest is the normalized DTO for journey creation, identical
// for JSON and multipart clients.
type CreateJourneyRequest struct {
	DriverID        string         `json:"driver" binding:"required"`
	TruckID         string         `json:"truck" binding:"required"`
	CustomerID      string         `json:"customer" binding:"required"`
	DepartureCity   string         `json:"departureCity" binding:"required,max=100"`
	DestinationCity string         `json:"destinationCity" binding:"required,max=100"`
	Cargo           string         `json:"cargo" binding:"required,max=200"`
	Notes           string         `json:"notes" binding:"max=500"`
	Date            *time.Time     `json:"date"`
	Status          string         `json:"status" binding:"omitempty,oneof=started completed"`
	Expenses        []ExpenseInput `json:"expenses"`
	Pay             PaymentInput   `json:"pay" binding:"required"`
}

// UpdateJourneyRequest is the partial-update DTO; nil fields are not touched.
type UpdateJourneyRequest struct {
	DriverID        *string         `json:"driver"`
	TruckID         *string         `json:"truck"`
	CustomerID      *string         `json:"customer"`
	DepartureCity   *string         `json:"departureCity" binding:"omitempty,max=100"`
	DestinationCity *string         `json:"destinationCity" binding:"omitempty,max=100"`
	Cargo           *string         `json:"cargo" binding:"omitempty,max=200"`
	Notes           *string         `json:"notes" binding:"omitempty,max=500"`
	Date            *time.Time      `json:"date"`
	Status          *string         `json:"status" binding:"omitempty,oneof=started completed"`
	Expenses        *[]ExpenseInput `json:"expenses"`
	Pay             *PaymentUpdate  `json:"pay"`
	// DiscardPaymentProof must be set to switch an attached full payment to
	// installments; the stored proof is dropped rather than orphaned.
	DiscardPaymentProof bool `json:"discardPaymentProof"`
}

// AddInstallmentRequest appends one installment to a journey's ledger.
type AddInstallmentRequest struct {
	Amount     decimal.Decimal  `json:"amount" binding:"required"`
	Date       *time.Time       `json:"date"`
	Note       string           `json:"note" binding:"max=200"`
	Attachment *AttachmentInput `json:"attachment"`
}

// AddExpenseRequest appends one expense line to a journey.
type AddExpenseRequest struct {
	Title      string           `json:"title" binding:"required,max=100"`
	Amount     decimal.Decimal  `json:"amount" binding:"required"`
	Note       string           `json:"note" binding:"max=200"`
	Attachment *AttachmentInput `json:"attachment"`
}

// ListJourneysParams holds the filter, sort and pagination inputs of a list
// request.
type ListJourneysParams struct {
	Limit           int     `form:"limit"`
	NextToken       *string `form:"nextToken"`
	Search          string  `form:"search"`
	Status          string  `form:"status" binding:"omitempty,oneof=started completed"`
	TruckID         string  `form:"truckId"`
	DriverID        string  `form:"driverId"`
	CustomerID      string  `form:"customerId"`
	DepartureCity   string  `form:"departureCity"`
	DestinationCity string  `form:"destinationCity"`
	PaidOption      string  `form:"paidOption" binding:"omitempty,oneof=full installment"`
	StartDate       *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate         *time.Time `form:"endDate" time_format:"2006-01-02"`
}

// JourneyResponse is the journey representation returned to clients.
type JourneyResponse struct {
	JourneyID       string               `json:"journeyID"`
	DriverID        string               `json:"driverID"`
	TruckID         string               `json:"truckID"`
	CustomerID      string               `json:"customerID"`
	DepartureCity   string               `json:"departureCity"`
	DestinationCity string               `json:"destinationCity"`
	Cargo           string               `json:"cargo"`
	Notes           string               `json:"notes,omitempty"`
	Date            time.Time            `json:"date"`
	Status          domain.JourneyStatus `json:"status"`
	Pay             domain.Payment       `json:"pay"`
	Expenses        []domain.Expense     `json:"expenses"`
	TotalExpenses   decimal.Decimal      `json:"totalExpenses"`
	TotalPaid       decimal.Decimal      `json:"totalPaid"`
	Balance         decimal.Decimal      `json:"balance"`
	IsFullyPaid     bool                 `json:"isFullyPaid"`
	CreatedAt       time.Time            `json:"createdAt"`
	CreatedBy       string               `json:"createdBy"`
}

// ListJourneysResponse is a page of journeys plus the token for the next page.
type ListJourneysResponse struct {
	Journeys  []JourneyResponse `json:"journeys"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToJourneyResponse converts a domain journey to its response shape,
// including the derived read-only figures.
func ToJourneyResponse(j *domain.Journey) JourneyResponse {
	return JourneyResponse{
		JourneyID:       j.JourneyID,
		DriverID:        j.DriverID,
		TruckID:         j.TruckID,
		CustomerID:      j.CustomerID,
		DepartureCity:   j.DepartureCity,
		DestinationCity: j.DestinationCity,
		Cargo:           j.Cargo,
		Notes:           j.Notes,
		Date:            j.JourneyDate,
		Status:          j.Status,
		Pay:             j.Pay,
		Expenses:        j.Expenses,
		TotalExpenses:   j.TotalExpenses(),
		TotalPaid:       j.Pay.TotalPaidCanonical(),
		Balance:         j.Balance,
		IsFullyPaid:     j.Pay.IsFullyPaid(),
		CreatedAt:       j.CreatedAt,
		CreatedBy:       j.CreatedBy,
	}
}

// ToJourneyResponses converts a slice of domain journeys.
func ToJourneyResponses(journeys []domain.Journey) []JourneyResponse {
	responses := make([]JourneyResponse, len(journeys))
	for i := range journeys {
		responses[i] = ToJourneyResponse(&journeys[i])
	}
	return responses
}
