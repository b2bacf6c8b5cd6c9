package dto

import (
	"time"

	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
)

// CreateDriverRequest registers a new driver.
type CreateDriverRequest struct {
	FullName      string `json:"fullName" binding:"required,max=100"`
	Phone         string `json:"phone" binding:"required,max=20"`
	Email         string `json:"email" binding:"omitempty,email"`
	NationalID    string `json:"nationalId" binding:"required,max=30"`
	LicenseNumber string `json:"licenseNumber" binding:"required,max=30"`
}

// UpdateDriverRequest partially updates a driver.
type UpdateDriverRequest struct {
	FullName      *string `json:"fullName" binding:"omitempty,max=100"`
	Phone         *string `json:"phone" binding:"omitempty,max=20"`
	Email         *string `json:"email" binding:"omitempty,email"`
	NationalID    *string `json:"nationalId" binding:"omitempty,max=30"`
	LicenseNumber *string `json:"licenseNumber" binding:"omitempty,max=30"`
}

// DriverResponse is the driver representation returned to clients.
type DriverResponse struct {
	DriverID      string    `json:"driverID"`
	FullName      string    `json:"fullName"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email,omitempty"`
	NationalID    string    `json:"nationalId"`
	LicenseNumber string    `json:"licenseNumber"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToDriverResponse converts a domain driver.
func ToDriverResponse(d *domain.Driver) DriverResponse {
	return DriverResponse{
		DriverID:      d.DriverID,
		FullName:      d.FullName,
		Phone:         d.Phone,
		Email:         d.Email,
		NationalID:    d.NationalID,
		LicenseNumber: d.LicenseNumber,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDriverResponses converts a slice of domain drivers.
func ToDriverResponses(drivers []domain.Driver) []DriverResponse {
	responses := make([]DriverResponse, len(drivers))
	for i := range drivers {
		responses[i] = ToDriverResponse(&drivers[i])
	}
	return responses
}

// CreateTruckRequest registers a new truck.
type CreateTruckRequest struct {
	PlateNumber string `json:"plateNumber" binding:"required,max=20"`
	Make        string `json:"make" binding:"required,max=50"`
	Model       string `json:"model" binding:"required,max=50"`
	Year        int    `json:"year" binding:"required,min=1950,max=2100"`
	Capacity    int    `json:"capacity" binding:"omitempty,min=0"`
	Status      string `json:"status" binding:"omitempty,oneof=active maintenance inactive"`
	Notes       string `json:"notes" binding:"max=500"`
}

// UpdateTruckRequest partially updates a truck.
type UpdateTruckRequest struct {
	PlateNumber *string `json:"plateNumber" binding:"omitempty,max=20"`
	Make        *string `json:"make" binding:"omitempty,max=50"`
	Model       *string `json:"model" binding:"omitempty,max=50"`
	Year        *int    `json:"year" binding:"omitempty,min=1950,max=2100"`
	Capacity    *int    `json:"capacity" binding:"omitempty,min=0"`
	Status      *string `json:"status" binding:"omitempty,oneof=active maintenance inactive"`
	Notes       *string `json:"notes" binding:"omitempty,max=500"`
}

// TruckResponse is the truck representation returned to clients.
type TruckResponse struct {
	TruckID     string             `json:"truckID"`
	PlateNumber string             `json:"plateNumber"`
	Make        string             `json:"make"`
	Model       string             `json:"model"`
	Year        int                `json:"year"`
	Capacity    int                `json:"capacity,omitempty"`
	Status      domain.TruckStatus `json:"status"`
	Notes       string             `json:"notes,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// ToTruckResponse converts a domain truck.
func ToTruckResponse(t *domain.Truck) TruckResponse {
	return TruckResponse{
		TruckID:     t.TruckID,
		PlateNumber: t.PlateNumber,
		Make:        t.Make,
		Model:       t.Model,
		Year:        t.Year,
		Capacity:    t.Capacity,
		Status:      t.Status,
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt,
	}
}

// ToTruckResponses converts a slice of domain trucks.
func ToTruckResponses(trucks []domain.Truck) []TruckResponse {
	responses := make([]TruckResponse, len(trucks))
	for i := range trucks {
		responses[i] = ToTruckResponse(&trucks[i])
	}
	return responses
}

// CreateCustomerRequest registers a new customer.
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Country string `json:"country" binding:"required,max=60"`
	Phone   string `json:"phone" binding:"required,max=20"`
}

// UpdateCustomerRequest partially updates a customer.
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=100"`
	Country *string `json:"country" binding:"omitempty,max=60"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
}

// CustomerResponse is the customer representation returned to clients.
type CustomerResponse struct {
	CustomerID string    `json:"customerID"`
	Name       string    `json:"name"`
	Country    string    `json:"country"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToCustomerResponse converts a domain customer.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Country:    c.Country,
		Phone:      c.Phone,
		CreatedAt:  c.CreatedAt,
	}
}

// ToCustomerResponses converts a slice of domain customers.
func ToCustomerResponses(customers []domain.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}

// ListDriversResponse is a page of drivers plus the token for the next page.
type ListDriversResponse struct {
	Drivers   []DriverResponse `json:"drivers"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// ListTrucksResponse is a page of trucks plus the token for the next page.
type ListTrucksResponse struct {
	Trucks    []TruckResponse `json:"trucks"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ListCustomersResponse is a page of customers plus the token for the next page.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	NextToken *string            `json:"nextToken,omitempty"`
}
