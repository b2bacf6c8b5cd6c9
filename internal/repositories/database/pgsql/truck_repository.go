package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/istafrica-dennw/trucks-app/internal/apperrors"
	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	portsrepo "github.com/istafrica-dennw/trucks-app/internal/core/ports/repositories"
	"github.com/istafrica-dennw/trucks-app/internal/models"
	"github.com/istafrica-dennw/trucks-app/internal/utils/mapping"
	"github.com/istafrica-dennw/trucks-app/internal/utils/pagination"
)

type PgxTruckRepository struct {
	BaseRepository
}

// newPgxTruckRepository creates a new repository for truck data.
func newPgxTruckRepository(pool *pgxpool.Pool) portsrepo.TruckRepositoryFacade {
	return &PgxTruckRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TruckRepositoryFacade = (*PgxTruckRepository)(nil)

const truckColumns = `truck_id, plate_number, make, model, year, capacity, status, notes,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTruckRow(row rowScanner) (models.Truck, error) {
	var m models.Truck
	err := row.Scan(
		&m.TruckID, &m.PlateNumber, &m.Make, &m.Model, &m.Year, &m.Capacity, &m.Status, &m.Notes,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxTruckRepository) SaveTruck(ctx context.Context, truck *domain.Truck) error {
	m := mapping.ToModelTruck(*truck)
	query := `
		INSERT INTO trucks (` + truckColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TruckID, m.PlateNumber, m.Make, m.Model, m.Year, m.Capacity, m.Status, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: truck with plate number %s already exists", apperrors.ErrDuplicate, m.PlateNumber)
		}
		return fmt.Errorf("failed to save truck: %w", err)
	}
	return nil
}

func (r *PgxTruckRepository) FindTruckByID(ctx context.Context, truckID string) (*domain.Truck, error) {
	query := `SELECT ` + truckColumns + ` FROM trucks WHERE truck_id = $1;`
	m, err := scanTruckRow(r.Pool.QueryRow(ctx, query, truckID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("truck not found: " + truckID)
		}
		return nil, fmt.Errorf("failed to find truck by ID %s: %w", truckID, err)
	}
	truck := mapping.ToDomainTruck(m)
	return &truck, nil
}

func (r *PgxTruckRepository) ListTrucks(ctx context.Context, limit int, nextToken *string) ([]domain.Truck, *string, error) {
	query := `SELECT ` + truckColumns + ` FROM trucks`
	args := []any{}

	if nextToken != nil && *nextToken != "" {
		tokenCreatedAt, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, tokenCreatedAt)
		query += fmt.Sprintf(" WHERE created_at < $%d", len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query trucks: %w", err)
	}
	defer rows.Close()

	var modelTrucks []models.Truck
	for rows.Next() {
		m, err := scanTruckRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan truck row: %w", err)
		}
		modelTrucks = append(modelTrucks, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed reading truck rows: %w", err)
	}

	var token *string
	if len(modelTrucks) > limit {
		modelTrucks = modelTrucks[:limit]
		t := pagination.EncodeDateBasedToken(modelTrucks[len(modelTrucks)-1].CreatedAt)
		token = &t
	}

	trucks := make([]domain.Truck, len(modelTrucks))
	for i, m := range modelTrucks {
		trucks[i] = mapping.ToDomainTruck(m)
	}
	return trucks, token, nil
}

func (r *PgxTruckRepository) UpdateTruck(ctx context.Context, truck *domain.Truck) error {
	m := mapping.ToModelTruck(*truck)
	query := `
		UPDATE trucks SET
			plate_number = $2, make = $3, model = $4, year = $5, capacity = $6, status = $7, notes = $8,
			last_updated_at = $9, last_updated_by = $10
		WHERE truck_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TruckID, m.PlateNumber, m.Make, m.Model, m.Year, m.Capacity, m.Status, m.Notes,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: truck with plate number %s already exists", apperrors.ErrDuplicate, m.PlateNumber)
		}
		return fmt.Errorf("failed to update truck: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("truck not found: " + m.TruckID)
	}
	return nil
}

func (r *PgxTruckRepository) DeleteTruck(ctx context.Context, truckID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM trucks WHERE truck_id = $1;`, truckID)
	if err != nil {
		return fmt.Errorf("failed to delete truck %s: %w", truckID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("truck not found: " + truckID)
	}
	return nil
}
