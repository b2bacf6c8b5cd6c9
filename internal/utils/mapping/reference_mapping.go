package mapping

import (
	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	"github.com/istafrica-dennw/trucks-app/internal/models"
)

// ToModelDriver converts a domain Driver to a model Driver
func ToModelDriver(d domain.Driver) models.Driver {
	return models.Driver{
		DriverID:      d.DriverID,
		FullName:      d.FullName,
		Phone:         d.Phone,
		Email:         d.Email,
		NationalID:    d.NationalID,
		LicenseNumber: d.LicenseNumber,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDriver converts a model Driver to a domain Driver
func ToDomainDriver(m models.Driver) domain.Driver {
	return domain.Driver{
		DriverID:      m.DriverID,
		FullName:      m.FullName,
		Phone:         m.Phone,
		Email:         m.Email,
		NationalID:    m.NationalID,
		LicenseNumber: m.LicenseNumber,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTruck converts a domain Truck to a model Truck
func ToModelTruck(d domain.Truck) models.Truck {
	return models.Truck{
		TruckID:     d.TruckID,
		PlateNumber: d.PlateNumber,
		Make:        d.Make,
		Model:       d.Model,
		Year:        d.Year,
		Capacity:    d.Capacity,
		Status:      models.TruckStatus(d.Status),
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTruck converts a model Truck to a domain Truck
func ToDomainTruck(m models.Truck) domain.Truck {
	return domain.Truck{
		TruckID:     m.TruckID,
		PlateNumber: m.PlateNumber,
		Make:        m.Make,
		Model:       m.Model,
		Year:        m.Year,
		Capacity:    m.Capacity,
		Status:      domain.TruckStatus(m.Status),
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:  d.CustomerID,
		Name:        d.Name,
		Country:     d.Country,
		Phone:       d.Phone,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:  m.CustomerID,
		Name:        m.Name,
		Country:     m.Country,
		Phone:       m.Phone,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
