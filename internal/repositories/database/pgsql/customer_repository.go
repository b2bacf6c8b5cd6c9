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

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, name, country, phone,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCustomerRow(row rowScanner) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID, &m.Name, &m.Country, &m.Phone,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer *domain.Customer) error {
	m := mapping.ToModelCustomer(*customer)
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID, m.Name, m.Country, m.Phone,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save customer: %w", err)
	}
	return nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`
	m, err := scanCustomerRow(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("customer not found: " + customerID)
		}
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", customerID, err)
	}
	customer := mapping.ToDomainCustomer(m)
	return &customer, nil
}

func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
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
		return nil, nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var modelCustomers []models.Customer
	for rows.Next() {
		m, err := scanCustomerRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		modelCustomers = append(modelCustomers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed reading customer rows: %w", err)
	}

	var token *string
	if len(modelCustomers) > limit {
		modelCustomers = modelCustomers[:limit]
		t := pagination.EncodeDateBasedToken(modelCustomers[len(modelCustomers)-1].CreatedAt)
		token = &t
	}

	customers := make([]domain.Customer, len(modelCustomers))
	for i, m := range modelCustomers {
		customers[i] = mapping.ToDomainCustomer(m)
	}
	return customers, token, nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer *domain.Customer) error {
	m := mapping.ToModelCustomer(*customer)
	query := `
		UPDATE customers SET
			name = $2, country = $3, phone = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE customer_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CustomerID, m.Name, m.Country, m.Phone,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("customer not found: " + m.CustomerID)
	}
	return nil
}

func (r *PgxCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1;`, customerID)
	if err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("customer not found: " + customerID)
	}
	return nil
}
