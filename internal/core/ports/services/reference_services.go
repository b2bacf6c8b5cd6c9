package services

import (
	"context"

	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	"github.com/istafrica-dennw/trucks-app/internal/dto"
)

// DriverSvcFacade manages the driver registry.
type DriverSvcFacade interface {
	CreateDriver(ctx context.Context, req dto.CreateDriverRequest, userID string) (*domain.Driver, error)
	GetDriverByID(ctx context.Context, driverID string) (*domain.Driver, error)
	ListDrivers(ctx context.Context, limit int, nextToken *string) ([]domain.Driver, *string, error)
	UpdateDriver(ctx context.Context, driverID string, req dto.UpdateDriverRequest, userID string) (*domain.Driver, error)
	DeleteDriver(ctx context.Context, driverID string) error
}

// TruckSvcFacade manages the truck registry.
type TruckSvcFacade interface {
	CreateTruck(ctx context.Context, req dto.CreateTruckRequest, userID string) (*domain.Truck, error)
	GetTruckByID(ctx context.Context, truckID string) (*domain.Truck, error)
	ListTrucks(ctx context.Context, limit int, nextToken *string) ([]domain.Truck, *string, error)
	UpdateTruck(ctx context.Context, truckID string, req dto.UpdateTruckRequest, userID string) (*domain.Truck, error)
	DeleteTruck(ctx context.Context, truckID string) error
}

// CustomerSvcFacade manages the customer registry.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error
}
