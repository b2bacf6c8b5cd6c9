package domain

import (
	"fmt"
	"time"

	"github.com/istafrica-dennw/trucks-app/internal/apperrors"
	"github.com/istafrica-dennw/trucks-app/internal/utils"
	"github.com/shopspring/decimal"
)

// JourneyStatus indicates the lifecycle state of a journey.
type JourneyStatus string

const (
	JourneyStarted   JourneyStatus = "started"
	JourneyCompleted JourneyStatus = "completed"
)

// Journey is a single truck trip with its cargo, route, payment terms and
// expenses. It is the aggregate root: the payment ledger and the expense
// lines are owned exclusively by the journey and mutated through it.
type Journey struct {
	JourneyID       string        `json:"journeyID"`
	DriverID        string        `json:"driverID"`
	TruckID         string        `json:"truckID"`
	CustomerID      string        `json:"customerID"`
	DepartureCity   string        `json:"departureCity"`
	DestinationCity string        `json:"destinationCity"`
	Cargo           string        `json:"cargo"`
	Notes           string        `json:"notes,omitempty"`
	JourneyDate     time.Time     `json:"journeyDate"`
	Status          JourneyStatus `json:"status"`
	Pay             Payment       `json:"pay"`
	Expenses        []Expense     `json:"expenses"`

	// Balance is a cached derived value, always totalPaid minus expenses in
	// the canonical currency. It is recomputed on every mutation and never
	// set by a caller.
	Balance decimal.Decimal `json:"balance"`

	AuditFields
}

// TotalExpenses returns the expense sum in the canonical currency.
func (j *Journey) TotalExpenses() decimal.Decimal {
	return TotalExpenses(j.Expenses)
}

// ComputeBalance derives the balance from the ledger state.
func (j *Journey) ComputeBalance() decimal.Decimal {
	return j.Pay.TotalPaidCanonical().Sub(j.TotalExpenses())
}

// RefreshBalance recomputes the cached balance field. Idempotent.
func (j *Journey) RefreshBalance() {
	j.Balance = j.ComputeBalance()
}

// AttachmentPaths collects the stored paths of every proof and receipt the
// journey references, so the files can be cleaned up when it is deleted.
func (j *Journey) AttachmentPaths() []string {
	var paths []string
	add := func(a *Attachment) {
		if a != nil && a.Path != "" {
			paths = append(paths, a.Path)
		}
	}
	add(j.Pay.Attachment)
	for i := range j.Pay.Installments {
		add(j.Pay.Installments[i].Attachment)
	}
	for i := range j.Expenses {
		add(j.Expenses[i].Attachment)
	}
	return paths
}

// CompletionGuard checks that the journey may transition to completed. The
// returned error carries the required/paid/remaining amounts in canonical
// currency, formatted for display.
func (j *Journey) CompletionGuard() error {
	required := j.Pay.TotalAmountCanonical()
	paid := j.Pay.TotalPaidCanonical()
	if paid.LessThan(required) {
		remaining := required.Sub(paid)
		return fmt.Errorf("%w: total required %s, total paid %s, remaining %s",
			apperrors.ErrPaymentIncomplete,
			utils.FormatMoney(required), utils.FormatMoney(paid), utils.FormatMoney(remaining))
	}
	return nil
}

// ValidateForSave checks every aggregate invariant before persistence.
func (j *Journey) ValidateForSave(now time.Time) error {
	if j.DriverID == "" || j.TruckID == "" || j.CustomerID == "" {
		return fmt.Errorf("%w: driver, truck and customer references are required", apperrors.ErrValidation)
	}
	if j.DepartureCity == "" || j.DestinationCity == "" {
		return fmt.Errorf("%w: departure and destination cities are required", apperrors.ErrValidation)
	}
	if j.Cargo == "" {
		return fmt.Errorf("%w: cargo is required", apperrors.ErrValidation)
	}
	if j.JourneyDate.After(now) {
		return fmt.Errorf("%w: journey date cannot be in the future", apperrors.ErrValidation)
	}
	switch j.Status {
	case JourneyStarted, JourneyCompleted:
	default:
		return fmt.Errorf("%w: status must be started or completed", apperrors.ErrValidation)
	}
	for i := range j.Expenses {
		if err := j.Expenses[i].Validate(); err != nil {
			return err
		}
	}
	if err := j.Pay.Validate(now); err != nil {
		return err
	}
	if j.Status == JourneyCompleted {
		if err := j.CompletionGuard(); err != nil {
			return err
		}
	}
	return nil
}
