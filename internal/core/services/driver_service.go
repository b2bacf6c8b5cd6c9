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

// driverService implements business logic for the driver registry.
type driverService struct {
	driverRepo portsrepo.DriverRepositoryFacade
}

// NewDriverService creates a new driver service.
func NewDriverService(driverRepo portsrepo.DriverRepositoryFacade) portssvc.DriverSvcFacade {
	return &driverService{driverRepo: driverRepo}
}

var _ portssvc.DriverSvcFacade = (*driverService)(nil)

func (s *driverService) CreateDriver(ctx context.Context, req dto.CreateDriverRequest, userID string) (*domain.Driver, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	driver := &domain.Driver{
		DriverID:      uuid.NewString(),
		FullName:      req.FullName,
		Phone:         req.Phone,
		Email:         req.Email,
		NationalID:    req.NationalID,
		LicenseNumber: req.LicenseNumber,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.driverRepo.SaveDriver(ctx, driver); err != nil {
		return nil, fmt.Errorf("failed to save driver: %w", err)
	}

	logger.Info("Driver created", "driver_id", driver.DriverID)
	return driver, nil
}

func (s *driverService) GetDriverByID(ctx context.Context, driverID string) (*domain.Driver, error) {
	return s.driverRepo.FindDriverByID(ctx, driverID)
}

func (s *driverService) ListDrivers(ctx context.Context, limit int, nextToken *string) ([]domain.Driver, *string, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.driverRepo.ListDrivers(ctx, limit, nextToken)
}

func (s *driverService) UpdateDriver(ctx context.Context, driverID string, req dto.UpdateDriverRequest, userID string) (*domain.Driver, error) {
	driver, err := s.driverRepo.FindDriverByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		driver.FullName = *req.FullName
	}
	if req.Phone != nil {
		driver.Phone = *req.Phone
	}
	if req.Email != nil {
		driver.Email = *req.Email
	}
	if req.NationalID != nil {
		driver.NationalID = *req.NationalID
	}
	if req.LicenseNumber != nil {
		driver.LicenseNumber = *req.LicenseNumber
	}
	driver.LastUpdatedAt = time.Now().UTC()
	driver.LastUpdatedBy = userID

	if err := s.driverRepo.UpdateDriver(ctx, driver); err != nil {
		return nil, fmt.Errorf("failed to update driver: %w", err)
	}
	return driver, nil
}

func (s *driverService) DeleteDriver(ctx context.Context, driverID string) error {
	return s.driverRepo.DeleteDriver(ctx, driverID)
}
