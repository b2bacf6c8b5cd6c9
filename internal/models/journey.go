package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JourneyStatus is the persisted lifecycle state of a journey.
type JourneyStatus string

const (
	Started   JourneyStatus = "started"
	Completed JourneyStatus = "completed"
)

// PaidOption is the persisted payment mode.
type PaidOption string

const (
	PaidFull        PaidOption = "full"
	PaidInstallment PaidOption = "installment"
)

// Journey is the journey row. Payment fields are flattened onto the row;
// installments and expenses live in child tables.
type Journey struct {
	JourneyID       string          `db:"journey_id"`
	DriverID        string          `db:"driver_id"`
	TruckID         string          `db:"truck_id"`
	CustomerID      string          `db:"customer_id"`
	DepartureCity   string          `db:"departure_city"`
	DestinationCity string          `db:"destination_city"`
	Cargo           string          `db:"cargo"`
	Notes           string          `db:"notes"`
	JourneyDate     time.Time       `db:"journey_date"`
	Status          JourneyStatus   `db:"status"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	Currency        string          `db:"currency"`
	ExchangeRate    decimal.Decimal `db:"exchange_rate"`
	PaidOption      PaidOption      `db:"paid_option"`
	// Payment proof columns, null for installment-mode journeys.
	ProofFilename string `db:"proof_filename"`
	ProofPath     string `db:"proof_path"`
	ProofMimeType string `db:"proof_mime_type"`
	ProofSize     int64  `db:"proof_size"`
	// Balance is denormalized and rewritten in the same transaction as any
	// ledger mutation.
	Balance decimal.Decimal `db:"balance"`
	AuditFields
}

// JourneyInstallment is one installment row, ordered by position within its
// journey.
type JourneyInstallment struct {
	InstallmentID string          `db:"installment_id"`
	JourneyID     string          `db:"journey_id"`
	Position      int             `db:"position"`
	Amount        decimal.Decimal `db:"amount"`
	PaidAt        time.Time       `db:"paid_at"`
	Note          string          `db:"note"`
	ProofFilename string          `db:"proof_filename"`
	ProofPath     string          `db:"proof_path"`
	ProofMimeType string          `db:"proof_mime_type"`
	ProofSize     int64           `db:"proof_size"`
}

// JourneyExpense is one expense row, ordered by position within its journey.
type JourneyExpense struct {
	ExpenseID       string          `db:"expense_id"`
	JourneyID       string          `db:"journey_id"`
	Position        int             `db:"position"`
	Title           string          `db:"title"`
	Amount          decimal.Decimal `db:"amount"`
	Note            string          `db:"note"`
	ReceiptFilename string          `db:"receipt_filename"`
	ReceiptPath     string          `db:"receipt_path"`
	ReceiptMimeType string          `db:"receipt_mime_type"`
	ReceiptSize     int64           `db:"receipt_size"`
}
