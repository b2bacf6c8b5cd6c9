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

// truckService implements business logic for the truck registry.
type truckService struct {
	truckRepo portsrepo.TruckRepositoryFacade
}

// NewTruckService creates a new truck service.
func NewTruckService(truckRepo portsrepo.TruckRepositoryFacade) portssvc.TruckSvcFacade {
	return &truckService{truckRepo: truckRepo}
}

var _ portssvc.TruckSvcFacade = (*truckService)(nil)

func (s *truckService) CreateTruck(ctx context.Context, req dto.CreateTruckRequest, userID string) (*domain.Truck, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	status := domain.TruckActive
	if req.Status != "" {
		status = domain.TruckStatus(req.Status)
	}

	truck := &domain.Truck{
		TruckID:     uuid.NewString(),
		PlateNumber: req.PlateNumber,
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Capacity:    req.Capacity,
		Status:      status,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.truckRepo.SaveTruck(ctx, truck); err != nil {
		return nil, fmt.Errorf("failed to save truck: %w", err)
	}

	logger.Info("Truck created", "truck_id", truck.TruckID, "plate_number", truck.PlateNumber)
	return truck, nil
}

func (s *truckService) GetTruckByID(ctx context.Context, truckID string) (*domain.Truck, error) {
	return s.truckRepo.FindTruckByID(ctx, truckID)
}

func (s *truckService) ListTrucks(ctx context.Context, limit int, nextToken *string) ([]domain.Truck, *string, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.truckRepo.ListTrucks(ctx, limit, nextToken)
}

func (s *truckService) UpdateTruck(ctx context.Context, truckID string, req dto.UpdateTruckRequest, userID string) (*domain.Truck, error) {
	truck, err := s.truckRepo.FindTruckByID(ctx, truckID)
	if err != nil {
		return nil, err
	}

	if req.PlateNumber != nil {
		truck.PlateNumber = *req.PlateNumber
	}
	if req.Make != nil {
		truck.Make = *req.Make
	}
	if req.Model != nil {
		truck.Model = *req.Model
	}
	if req.Year != nil {
		truck.Year = *req.Year
	}
	if req.Capacity != nil {
		truck.Capacity = *req.Capacity
	}
	if req.Status != nil {
		truck.Status = domain.TruckStatus(*req.Status)
	}
	if req.Notes != nil {
		truck.Notes = *req.Notes
	}
	truck.LastUpdatedAt = time.Now().UTC()
	truck.LastUpdatedBy = userID

	if err := s.truckRepo.UpdateTruck(ctx, truck); err != nil {
		return nil, fmt.Errorf("failed to update truck: %w", err)
	}
	return truck, nil
}

func (s *truckService) DeleteTruck(ctx context.Context, truckID string) error {
	return s.truckRepo.DeleteTruck(ctx, truckID)
}
