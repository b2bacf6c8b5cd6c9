package repositories

import (
	"context"

	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
)

// DriverReader defines read operations for drivers.
type DriverReader interface {
	FindDriverByID(ctx context.Context, driverID string) (*domain.Driver, error)
	ListDrivers(ctx context.Context, limit int, nextToken *string) ([]domain.Driver, *string, error)
}

// DriverWriter defines write operations for drivers.
type DriverWriter interface {
	// SaveDriver persists a new driver. Returns apperrors.ErrDuplicate when
	// the national ID or license number is already registered.
	SaveDriver(ctx context.Context, driver *domain.Driver) error
	UpdateDriver(ctx context.Context, driver *domain.Driver) error
	DeleteDriver(ctx context.Context, driverID string) error
}

// DriverRepositoryFacade combines driver read and write operations.
type DriverRepositoryFacade interface {
	DriverReader
	DriverWriter
}

// TruckReader defines read operations for trucks.
type TruckReader interface {
	FindTruckByID(ctx context.Context, truckID string) (*domain.Truck, error)
	ListTrucks(ctx context.Context, limit int, nextToken *string) ([]domain.Truck, *string, error)
}

// TruckWriter defines write operations for trucks.
type TruckWriter interface {
	// SaveTruck persists a new truck. Returns apperrors.ErrDuplicate when the
	// plate number is already registered.
	SaveTruck(ctx context.Context, truck *domain.Truck) error
	UpdateTruck(ctx context.Context, truck *domain.Truck) error
	DeleteTruck(ctx context.Context, truckID string) error
}

// TruckRepositoryFacade combines truck read and write operations.
type TruckRepositoryFacade interface {
	TruckReader
	TruckWriter
}

// CustomerReader defines read operations for customers.
type CustomerReader interface {
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error)
}

// CustomerWriter defines write operations for customers.
type CustomerWriter interface {
	SaveCustomer(ctx context.Context, customer *domain.Customer) error
	UpdateCustomer(ctx context.Context, customer *domain.Customer) error
	DeleteCustomer(ctx context.Context, customerID string) error
}

// CustomerRepositoryFacade combines customer read and write operations.
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
