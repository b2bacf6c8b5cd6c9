package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	portsrepo "github.com/istafrica-dennw/trucks-app/internal/core/ports/repositories"
	portssvc "github.com/istafrica-dennw/trucks-app/internal/core/ports/services"
	"github.com/istafrica-dennw/trucks-app/internal/dto"
	"github.com/istafrica-dennw/trucks-app/internal/middleware"
)

// customerService implements business logic for the customer registry.
type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	customer := &domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       req.Name,
		Country:    req.Country,
		Phone:      req.Phone,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	logger.Info("Customer created", "customer_id", customer.CustomerID)
	return customer, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}

func (s *customerService) ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.customerRepo.ListCustomers(ctx, limit, nextToken)
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Country != nil {
		customer.Country = *req.Country
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	customer.LastUpdatedAt = time.Now().UTC()
	customer.LastUpdatedBy = userID

	if err := s.customerRepo.UpdateCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID string) error {
	return s.customerRepo.DeleteCustomer(ctx, customerID)
}
