package mapping

import (
	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	"github.com/istafrica-dennw/trucks-app/internal/models"
)

// attachmentColumns flattens an optional attachment into its four columns.
func attachmentColumns(a *domain.Attachment) (filename, path, mimeType string, size int64) {
	if a == nil {
		return "", "", "", 0
	}
	return a.Filename, a.Path, a.MimeType, a.Size
}

// columnsToAttachment rebuilds an attachment from its columns, nil when the
// path column is empty.
func columnsToAttachment(filename, path, mimeType string, size int64) *domain.Attachment {
	if path == "" {
		return nil
	}
	return &domain.Attachment{
		Filename: filename,
		Path:     path,
		MimeType: mimeType,
		Size:     size,
	}
}

// ToModelJourney converts a domain Journey to its row representation.
// Installments and expenses are mapped separately.
func ToModelJourney(d domain.Journey) models.Journey {
	proofFilename, proofPath, proofMime, proofSize := attachmentColumns(d.Pay.Attachment)
	return models.Journey{
		JourneyID:       d.JourneyID,
		DriverID:        d.DriverID,
		TruckID:         d.TruckID,
		CustomerID:      d.CustomerID,
		DepartureCity:   d.DepartureCity,
		DestinationCity: d.DestinationCity,
		Cargo:           d.Cargo,
		Notes:           d.Notes,
		JourneyDate:     d.JourneyDate,
		Status:          models.JourneyStatus(d.Status),
		TotalAmount:     d.Pay.TotalAmount,
		Currency:        string(d.Pay.Currency),
		ExchangeRate:    d.Pay.ExchangeRate,
		PaidOption:      models.PaidOption(d.Pay.PaidOption),
		ProofFilename:   proofFilename,
		ProofPath:       proofPath,
		ProofMimeType:   proofMime,
		ProofSize:       proofSize,
		Balance:         d.Balance,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJourney converts a journey row plus its child rows back to the
// domain aggregate.
func ToDomainJourney(m models.Journey, installments []models.JourneyInstallment, expenses []models.JourneyExpense) domain.Journey {
	return domain.Journey{
		JourneyID:       m.JourneyID,
		DriverID:        m.DriverID,
		TruckID:         m.TruckID,
		CustomerID:      m.CustomerID,
		DepartureCity:   m.DepartureCity,
		DestinationCity: m.DestinationCity,
		Cargo:           m.Cargo,
		Notes:           m.Notes,
		JourneyDate:     m.JourneyDate,
		Status:          domain.JourneyStatus(m.Status),
		Pay: domain.Payment{
			TotalAmount:  m.TotalAmount,
			Currency:     domain.Currency(m.Currency),
			ExchangeRate: m.ExchangeRate,
			PaidOption:   domain.PaidOption(m.PaidOption),
			Attachment:   columnsToAttachment(m.ProofFilename, m.ProofPath, m.ProofMimeType, m.ProofSize),
			Installments: ToDomainInstallmentSlice(installments),
		},
		Expenses:    ToDomainExpenseSlice(expenses),
		Balance:     m.Balance,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInstallments converts the ordered installment list to rows, stamping
// each with its position.
func ToModelInstallments(journeyID string, installments []domain.Installment) []models.JourneyInstallment {
	rows := make([]models.JourneyInstallment, len(installments))
	for i, inst := range installments {
		filename, path, mimeType, size := attachmentColumns(inst.Attachment)
		rows[i] = models.JourneyInstallment{
			JourneyID:     journeyID,
			Position:      i,
			Amount:        inst.Amount,
			PaidAt:        inst.Date,
			Note:          inst.Note,
			ProofFilename: filename,
			ProofPath:     path,
			ProofMimeType: mimeType,
			ProofSize:     size,
		}
	}
	return rows
}

// ToDomainInstallmentSlice converts installment rows, assumed ordered by
// position.
func ToDomainInstallmentSlice(rows []models.JourneyInstallment) []domain.Installment {
	if len(rows) == 0 {
		return nil
	}
	installments := make([]domain.Installment, len(rows))
	for i, row := range rows {
		installments[i] = domain.Installment{
			Amount:     row.Amount,
			Date:       row.PaidAt,
			Note:       row.Note,
			Attachment: columnsToAttachment(row.ProofFilename, row.ProofPath, row.ProofMimeType, row.ProofSize),
		}
	}
	return installments
}

// ToModelExpenses converts the ordered expense list to rows.
func ToModelExpenses(journeyID string, expenses []domain.Expense) []models.JourneyExpense {
	rows := make([]models.JourneyExpense, len(expenses))
	for i, exp := range expenses {
		filename, path, mimeType, size := attachmentColumns(exp.Attachment)
		rows[i] = models.JourneyExpense{
			JourneyID:       journeyID,
			Position:        i,
			Title:           exp.Title,
			Amount:          exp.Amount,
			Note:            exp.Note,
			ReceiptFilename: filename,
			ReceiptPath:     path,
			ReceiptMimeType: mimeType,
			ReceiptSize:     size,
		}
	}
	return rows
}

// ToDomainExpenseSlice converts expense rows, assumed ordered by position.
func ToDomainExpenseSlice(rows []models.JourneyExpense) []domain.Expense {
	if len(rows) == 0 {
		return nil
	}
	expenses := make([]domain.Expense, len(rows))
	for i, row := range rows {
		expenses[i] = domain.Expense{
			Title:      row.Title,
			Amount:     row.Amount,
			Note:       row.Note,
			Attachment: columnsToAttachment(row.ReceiptFilename, row.ReceiptPath, row.ReceiptMimeType, row.ReceiptSize),
		}
	}
	return expenses
}
