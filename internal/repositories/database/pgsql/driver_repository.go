package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/istafrica-dennw/trucks-app/internal/apperrors"
	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	portsrepo "github.com/istafrica-dennw/trucks-app/internal/core/ports/repositories"
	"github.com/istafrica-dennw/trucks-app/internal/models"
	"github.com/istafrica-dennw/trucks-app/internal/utils/mapping"
	"github.com/istafrica-dennw/trucks-app/internal/utils/pagination"
)

const uniqueViolation = "23505"

// isDuplicate reports whether err is a unique constraint violation.
func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type PgxDriverRepository struct {
	BaseRepository
}

// newPgxDriverRepository creates a new repository for driver data.
func newPgxDriverRepository(pool *pgxpool.Pool) portsrepo.DriverRepositoryFacade {
	return &PgxDriverRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DriverRepositoryFacade = (*PgxDriverRepository)(nil)

const driverColumns = `driver_id, full_name, phone, email, national_id, license_number,
	created_at, created_by, last_updated_at, last_updated_by`

func scanDriverRow(row rowScanner) (models.Driver, error) {
	var m models.Driver
	err := row.Scan(
		&m.DriverID, &m.FullName, &m.Phone, &m.Email, &m.NationalID, &m.LicenseNumber,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxDriverRepository) SaveDriver(ctx context.Context, driver *domain.Driver) error {
	m := mapping.ToModelDriver(*driver)
	query := `
		INSERT INTO drivers (` + driverColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DriverID, m.FullName, m.Phone, m.Email, m.NationalID, m.LicenseNumber,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: driver with this national ID or license number already exists", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save driver: %w", err)
	}
	return nil
}

func (r *PgxDriverRepository) FindDriverByID(ctx context.Context, driverID string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE driver_id = $1;`
	m, err := scanDriverRow(r.Pool.QueryRow(ctx, query, driverID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("driver not found: " + driverID)
		}
		return nil, fmt.Errorf("failed to find driver by ID %s: %w", driverID, err)
	}
	driver := mapping.ToDomainDriver(m)
	return &driver, nil
}

func (r *PgxDriverRepository) ListDrivers(ctx context.Context, limit int, nextToken *string) ([]domain.Driver, *string, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers`
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
		return nil, nil, fmt.Errorf("failed to query drivers: %w", err)
	}
	defer rows.Close()

	var modelDrivers []models.Driver
	for rows.Next() {
		m, err := scanDriverRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan driver row: %w", err)
		}
		modelDrivers = append(modelDrivers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed reading driver rows: %w", err)
	}

	var token *string
	if len(modelDrivers) > limit {
		modelDrivers = modelDrivers[:limit]
		t := pagination.EncodeDateBasedToken(modelDrivers[len(modelDrivers)-1].CreatedAt)
		token = &t
	}

	drivers := make([]domain.Driver, len(modelDrivers))
	for i, m := range modelDrivers {
		drivers[i] = mapping.ToDomainDriver(m)
	}
	return drivers, token, nil
}

func (r *PgxDriverRepository) UpdateDriver(ctx context.Context, driver *domain.Driver) error {
	m := mapping.ToModelDriver(*driver)
	query := `
		UPDATE drivers SET
			full_name = $2, phone = $3, email = $4, national_id = $5, license_number = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE driver_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.DriverID, m.FullName, m.Phone, m.Email, m.NationalID, m.LicenseNumber,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: driver with this national ID or license number already exists", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update driver: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("driver not found: " + m.DriverID)
	}
	return nil
}

func (r *PgxDriverRepository) DeleteDriver(ctx context.Context, driverID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM drivers WHERE driver_id = $1;`, driverID)
	if err != nil {
		return fmt.Errorf("failed to delete driver %s: %w", driverID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("driver not found: " + driverID)
	}
	return nil
}
