package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/istafrica-dennw/trucks-app/internal/apperrors"
	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	portsrepo "github.com/istafrica-dennw/trucks-app/internal/core/ports/repositories"
	"github.com/istafrica-dennw/trucks-app/internal/dto"
	"github.com/istafrica-dennw/trucks-app/internal/models"
	"github.com/istafrica-dennw/trucks-app/internal/utils/mapping"
	"github.com/istafrica-dennw/trucks-app/internal/utils/pagination"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so queries can run
// inside or outside an explicit transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgxJourneyRepository struct {
	BaseRepository
	tx pgx.Tx // non-nil when the repository is scoped to a transaction
}

// newPgxJourneyRepository creates a new repository for journey data.
func newPgxJourneyRepository(pool *pgxpool.Pool) portsrepo.JourneyRepositoryWithTx {
	return &PgxJourneyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJourneyRepository implements portsrepo.JourneyRepositoryWithTx
var _ portsrepo.JourneyRepositoryWithTx = (*PgxJourneyRepository)(nil)

// WithTx returns a repository whose operations run on the given transaction.
func (r *PgxJourneyRepository) WithTx(tx pgx.Tx) portsrepo.JourneyRepositoryWithTx {
	return &PgxJourneyRepository{BaseRepository: r.BaseRepository, tx: tx}
}

func (r *PgxJourneyRepository) q() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.Pool
}

const journeyColumns = `
	journey_id, driver_id, truck_id, customer_id,
	departure_city, destination_city, cargo, notes,
	journey_date, status,
	total_amount, currency, exchange_rate, paid_option,
	proof_filename, proof_path, proof_mime_type, proof_size,
	balance,
	created_at, created_by, last_updated_at, last_updated_by`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJourneyRow(row rowScanner) (models.Journey, error) {
	var m models.Journey
	err := row.Scan(
		&m.JourneyID, &m.DriverID, &m.TruckID, &m.CustomerID,
		&m.DepartureCity, &m.DestinationCity, &m.Cargo, &m.Notes,
		&m.JourneyDate, &m.Status,
		&m.TotalAmount, &m.Currency, &m.ExchangeRate, &m.PaidOption,
		&m.ProofFilename, &m.ProofPath, &m.ProofMimeType, &m.ProofSize,
		&m.Balance,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// loadInstallments returns the installment rows of one journey ordered by
// position.
func loadInstallments(ctx context.Context, q querier, journeyID string) ([]models.JourneyInstallment, error) {
	query := `
		SELECT installment_id, journey_id, position, amount, paid_at, note,
		       proof_filename, proof_path, proof_mime_type, proof_size
		FROM journey_installments
		WHERE journey_id = $1
		ORDER BY position ASC;
	`
	rows, err := q.Query(ctx, query, journeyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query installments: %w", err)
	}
	defer rows.Close()

	var installments []models.JourneyInstallment
	for rows.Next() {
		var m models.JourneyInstallment
		if err := rows.Scan(
			&m.InstallmentID, &m.JourneyID, &m.Position, &m.Amount, &m.PaidAt, &m.Note,
			&m.ProofFilename, &m.ProofPath, &m.ProofMimeType, &m.ProofSize,
		); err != nil {
			return nil, fmt.Errorf("failed to scan installment row: %w", err)
		}
		installments = append(installments, m)
	}
	return installments, rows.Err()
}

// loadExpenses returns the expense rows of one journey ordered by position.
func loadExpenses(ctx context.Context, q querier, journeyID string) ([]models.JourneyExpense, error) {
	query := `
		SELECT expense_id, journey_id, position, title, amount, note,
		       receipt_filename, receipt_path, receipt_mime_type, receipt_size
		FROM journey_expenses
		WHERE journey_id = $1
		ORDER BY position ASC;
	`
	rows, err := q.Query(ctx, query, journeyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.JourneyExpense
	for rows.Next() {
		var m models.JourneyExpense
		if err := rows.Scan(
			&m.ExpenseID, &m.JourneyID, &m.Position, &m.Title, &m.Amount, &m.Note,
			&m.ReceiptFilename, &m.ReceiptPath, &m.ReceiptMimeType, &m.ReceiptSize,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, m)
	}
	return expenses, rows.Err()
}

func (r *PgxJourneyRepository) loadAggregate(ctx context.Context, q querier, m models.Journey) (*domain.Journey, error) {
	installments, err := loadInstallments(ctx, q, m.JourneyID)
	if err != nil {
		return nil, err
	}
	expenses, err := loadExpenses(ctx, q, m.JourneyID)
	if err != nil {
		return nil, err
	}
	journey := mapping.ToDomainJourney(m, installments, expenses)
	return &journey, nil
}

// FindJourneyByID retrieves a journey with its installments and expenses.
func (r *PgxJourneyRepository) FindJourneyByID(ctx context.Context, journeyID string) (*domain.Journey, error) {
	query := `SELECT ` + journeyColumns + ` FROM journeys WHERE journey_id = $1;`
	m, err := scanJourneyRow(r.q().QueryRow(ctx, query, journeyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journey not found: " + journeyID)
		}
		return nil, fmt.Errorf("failed to find journey by ID %s: %w", journeyID, err)
	}
	return r.loadAggregate(ctx, r.q(), m)
}

// findJourneyByIDForUpdate locks the journey row for the duration of the
// transaction. Children need no separate lock because every ledger mutation
// takes this row lock first.
func (r *PgxJourneyRepository) findJourneyByIDForUpdate(ctx context.Context, tx pgx.Tx, journeyID string) (*domain.Journey, error) {
	query := `SELECT ` + journeyColumns + ` FROM journeys WHERE journey_id = $1 FOR UPDATE;`
	m, err := scanJourneyRow(tx.QueryRow(ctx, query, journeyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journey not found: " + journeyID)
		}
		return nil, fmt.Errorf("failed to lock journey %s: %w", journeyID, err)
	}
	return r.loadAggregate(ctx, tx, m)
}

// SaveJourney inserts the journey row and its child rows in one transaction.
func (r *PgxJourneyRepository) SaveJourney(ctx context.Context, journey *domain.Journey) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertJourneyRow(ctx, tx, journey); err != nil {
		return err
	}
	if err := insertChildren(ctx, tx, journey); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertJourneyRow(ctx context.Context, tx pgx.Tx, journey *domain.Journey) error {
	m := mapping.ToModelJourney(*journey)
	query := `
		INSERT INTO journeys (` + journeyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err := tx.Exec(ctx, query,
		m.JourneyID, m.DriverID, m.TruckID, m.CustomerID,
		m.DepartureCity, m.DestinationCity, m.Cargo, m.Notes,
		m.JourneyDate, m.Status,
		m.TotalAmount, m.Currency, m.ExchangeRate, m.PaidOption,
		m.ProofFilename, m.ProofPath, m.ProofMimeType, m.ProofSize,
		m.Balance,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journey "+m.JourneyID, err)
	}
	return nil
}

// insertChildren writes the installment and expense rows from scratch. Callers
// replacing children must delete the old rows first.
func insertChildren(ctx context.Context, tx pgx.Tx, journey *domain.Journey) error {
	batch := &pgx.Batch{}

	instQuery := `
		INSERT INTO journey_installments (installment_id, journey_id, position, amount, paid_at, note,
			proof_filename, proof_path, proof_mime_type, proof_size)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, m := range mapping.ToModelInstallments(journey.JourneyID, journey.Pay.Installments) {
		batch.Queue(instQuery,
			uuid.NewString(), m.JourneyID, m.Position, m.Amount, m.PaidAt, m.Note,
			m.ProofFilename, m.ProofPath, m.ProofMimeType, m.ProofSize,
		)
	}

	expQuery := `
		INSERT INTO journey_expenses (expense_id, journey_id, position, title, amount, note,
			receipt_filename, receipt_path, receipt_mime_type, receipt_size)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, m := range mapping.ToModelExpenses(journey.JourneyID, journey.Expenses) {
		batch.Queue(expQuery,
			uuid.NewString(), m.JourneyID, m.Position, m.Title, m.Amount, m.Note,
			m.ReceiptFilename, m.ReceiptPath, m.ReceiptMimeType, m.ReceiptSize,
		)
	}

	if batch.Len() == 0 {
		return nil
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert journey child rows", err)
		}
	}
	return results.Close()
}

func deleteChildren(ctx context.Context, tx pgx.Tx, journeyID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM journey_installments WHERE journey_id = $1;`, journeyID); err != nil {
		return apperrors.NewAppError(500, "failed to delete installments", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM journey_expenses WHERE journey_id = $1;`, journeyID); err != nil {
		return apperrors.NewAppError(500, "failed to delete expenses", err)
	}
	return nil
}

func updateJourneyRow(ctx context.Context, tx pgx.Tx, journey *domain.Journey) error {
	m := mapping.ToModelJourney(*journey)
	query := `
		UPDATE journeys SET
			driver_id = $2, truck_id = $3, customer_id = $4,
			departure_city = $5, destination_city = $6, cargo = $7, notes = $8,
			journey_date = $9, status = $10,
			total_amount = $11, currency = $12, exchange_rate = $13, paid_option = $14,
			proof_filename = $15, proof_path = $16, proof_mime_type = $17, proof_size = $18,
			balance = $19,
			last_updated_at = $20, last_updated_by = $21
		WHERE journey_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.JourneyID,
		m.DriverID, m.TruckID, m.CustomerID,
		m.DepartureCity, m.DestinationCity, m.Cargo, m.Notes,
		m.JourneyDate, m.Status,
		m.TotalAmount, m.Currency, m.ExchangeRate, m.PaidOption,
		m.ProofFilename, m.ProofPath, m.ProofMimeType, m.ProofSize,
		m.Balance,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journey "+m.JourneyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journey not found: " + m.JourneyID)
	}
	return nil
}

// UpdateJourney replaces the journey row and all child rows under a row lock,
// so a concurrent installment addition cannot interleave with the replace.
func (r *PgxJourneyRepository) UpdateJourney(ctx context.Context, journey *domain.Journey) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var existsID string
	err = tx.QueryRow(ctx, `SELECT journey_id FROM journeys WHERE journey_id = $1 FOR UPDATE;`, journey.JourneyID).Scan(&existsID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("journey not found: " + journey.JourneyID)
		}
		return fmt.Errorf("failed to lock journey %s: %w", journey.JourneyID, err)
	}

	if err := updateJourneyRow(ctx, tx, journey); err != nil {
		return err
	}
	if err := deleteChildren(ctx, tx, journey.JourneyID); err != nil {
		return err
	}
	if err := insertChildren(ctx, tx, journey); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// mutateUnderLock loads the journey under FOR UPDATE, applies mutate, and
// persists the result before committing. The headroom check inside mutate and
// the write therefore observe the same ledger state.
func (r *PgxJourneyRepository) mutateUnderLock(ctx context.Context, journeyID string, mutate func(*domain.Journey) error) (*domain.Journey, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	journey, err := r.findJourneyByIDForUpdate(ctx, tx, journeyID)
	if err != nil {
		return nil, err
	}
	if err := mutate(journey); err != nil {
		return nil, err
	}

	if err := updateJourneyRow(ctx, tx, journey); err != nil {
		return nil, err
	}
	if err := deleteChildren(ctx, tx, journeyID); err != nil {
		return nil, err
	}
	if err := insertChildren(ctx, tx, journey); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return journey, nil
}

// AddInstallment appends an installment under the journey's row lock.
func (r *PgxJourneyRepository) AddInstallment(ctx context.Context, journeyID string, mutate func(*domain.Journey) error) (*domain.Journey, error) {
	return r.mutateUnderLock(ctx, journeyID, mutate)
}

// AddExpense appends an expense line under the journey's row lock.
func (r *PgxJourneyRepository) AddExpense(ctx context.Context, journeyID string, mutate func(*domain.Journey) error) (*domain.Journey, error) {
	return r.mutateUnderLock(ctx, journeyID, mutate)
}

// DeleteJourney removes the journey and its child rows.
func (r *PgxJourneyRepository) DeleteJourney(ctx context.Context, journeyID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := deleteChildren(ctx, tx, journeyID); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM journeys WHERE journey_id = $1;`, journeyID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journey "+journeyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journey not found: " + journeyID)
	}

	return r.Commit(ctx, tx)
}

// ListJourneys returns a filtered page ordered by journey date descending,
// then creation time descending, with keyset pagination on that pair.
func (r *PgxJourneyRepository) ListJourneys(ctx context.Context, params dto.ListJourneysParams) ([]domain.Journey, *string, error) {
	query := `SELECT ` + journeyColumns + ` FROM journeys WHERE 1=1`
	args := []any{}

	addFilter := func(condition string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(" AND "+condition, len(args))
	}

	if params.Status != "" {
		addFilter("status = $%d", params.Status)
	}
	if params.TruckID != "" {
		addFilter("truck_id = $%d", params.TruckID)
	}
	if params.DriverID != "" {
		addFilter("driver_id = $%d", params.DriverID)
	}
	if params.CustomerID != "" {
		addFilter("customer_id = $%d", params.CustomerID)
	}
	if params.DepartureCity != "" {
		addFilter("departure_city ILIKE $%d", params.DepartureCity)
	}
	if params.DestinationCity != "" {
		addFilter("destination_city ILIKE $%d", params.DestinationCity)
	}
	if params.PaidOption != "" {
		addFilter("paid_option = $%d", params.PaidOption)
	}
	if params.StartDate != nil {
		addFilter("journey_date >= $%d", *params.StartDate)
	}
	if params.EndDate != nil {
		addFilter("journey_date <= $%d", *params.EndDate)
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (cargo ILIKE $%d OR notes ILIKE $%d OR departure_city ILIKE $%d OR destination_city ILIKE $%d)", n, n, n, n)
	}

	if params.NextToken != nil && *params.NextToken != "" {
		tokenDate, tokenCreatedAt, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, tokenDate, tokenCreatedAt)
		query += fmt.Sprintf(" AND (journey_date, created_at) < ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, params.Limit+1) // one extra row decides hasMore
	query += fmt.Sprintf(" ORDER BY journey_date DESC, created_at DESC LIMIT $%d;", len(args))

	rows, err := r.q().Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journeys: %w", err)
	}
	defer rows.Close()

	var modelJourneys []models.Journey
	for rows.Next() {
		m, err := scanJourneyRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journey row: %w", err)
		}
		modelJourneys = append(modelJourneys, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed reading journey rows: %w", err)
	}

	var nextToken *string
	if len(modelJourneys) > params.Limit {
		modelJourneys = modelJourneys[:params.Limit]
		last := modelJourneys[len(modelJourneys)-1]
		token := pagination.EncodeToken(last.JourneyDate, last.CreatedAt)
		nextToken = &token
	}

	journeys := make([]domain.Journey, 0, len(modelJourneys))
	for _, m := range modelJourneys {
		journey, err := r.loadAggregate(ctx, r.q(), m)
		if err != nil {
			return nil, nil, err
		}
		journeys = append(journeys, *journey)
	}

	return journeys, nextToken, nil
}

// FindJourneysByDateRange returns every journey dated within [start, end],
// with children loaded, ordered by date ascending.
func (r *PgxJourneyRepository) FindJourneysByDateRange(ctx context.Context, start time.Time, end time.Time, filter dto.ReportFilter) ([]domain.Journey, error) {
	query := `SELECT ` + journeyColumns + `
		FROM journeys
		WHERE journey_date >= $1 AND journey_date <= $2`
	args := []any{start, end}
	if filter.TruckID != "" {
		args = append(args, filter.TruckID)
		query += fmt.Sprintf(" AND truck_id = $%d", len(args))
	}
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	query += `
		ORDER BY journey_date ASC, created_at ASC;`
	rows, err := r.q().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journeys by date range: %w", err)
	}
	defer rows.Close()

	var modelJourneys []models.Journey
	for rows.Next() {
		m, err := scanJourneyRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journey row: %w", err)
		}
		modelJourneys = append(modelJourneys, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading journey rows: %w", err)
	}

	journeys := make([]domain.Journey, 0, len(modelJourneys))
	for _, m := range modelJourneys {
		journey, err := r.loadAggregate(ctx, r.q(), m)
		if err != nil {
			return nil, err
		}
		journeys = append(journeys, *journey)
	}
	return journeys, nil
}

// FindAllJourneys returns every journey with children loaded, ordered by
// date ascending, optionally narrowed to one truck or customer.
func (r *PgxJourneyRepository) FindAllJourneys(ctx context.Context, filter dto.ReportFilter) ([]domain.Journey, error) {
	query := `SELECT ` + journeyColumns + `
		FROM journeys
		WHERE 1 = 1`
	var args []any
	if filter.TruckID != "" {
		args = append(args, filter.TruckID)
		query += fmt.Sprintf(" AND truck_id = $%d", len(args))
	}
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	query += `
		ORDER BY journey_date ASC, created_at ASC;`
	rows, err := r.q().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journeys: %w", err)
	}
	defer rows.Close()

	var modelJourneys []models.Journey
	for rows.Next() {
		m, err := scanJourneyRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journey row: %w", err)
		}
		modelJourneys = append(modelJourneys, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading journey rows: %w", err)
	}

	journeys := make([]domain.Journey, 0, len(modelJourneys))
	for _, m := range modelJourneys {
		journey, err := r.loadAggregate(ctx, r.q(), m)
		if err != nil {
			return nil, err
		}
		journeys = append(journeys, *journey)
	}
	return journeys, nil
}

// GetJourneyStats aggregates fleet-wide counters and canonical-currency
// totals.
func (r *PgxJourneyRepository) GetJourneyStats(ctx context.Context) (*domain.JourneyStats, error) {
	stats := &domain.JourneyStats{}

	countQuery := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'started'),
		       COUNT(*) FILTER (WHERE status = 'completed'),
		       COUNT(*) FILTER (WHERE paid_option = 'full'),
		       COUNT(*) FILTER (WHERE paid_option = 'installment'),
		       COUNT(*) FILTER (WHERE journey_date >= NOW() - INTERVAL '30 days'),
		       COALESCE(SUM(CASE WHEN currency = 'RWF' THEN total_amount
		                         ELSE total_amount * exchange_rate END), 0)
		FROM journeys;
	`
	err := r.q().QueryRow(ctx, countQuery).Scan(
		&stats.Total, &stats.Started, &stats.Completed,
		&stats.FullPayment, &stats.InstallmentPayment, &stats.RecentJourneys,
		&stats.TotalAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate journey counters: %w", err)
	}

	paidQuery := `
		SELECT COALESCE(SUM(
			CASE WHEN j.paid_option = 'full' THEN j.total_amount
			     ELSE COALESCE(i.paid, 0)
			END *
			CASE WHEN j.currency = 'RWF' THEN 1 ELSE j.exchange_rate END), 0)
		FROM journeys j
		LEFT JOIN (
			SELECT journey_id, SUM(amount) AS paid
			FROM journey_installments
			GROUP BY journey_id
		) i USING (journey_id);
	`
	if err := r.q().QueryRow(ctx, paidQuery).Scan(&stats.TotalPaid); err != nil {
		return nil, fmt.Errorf("failed to aggregate paid totals: %w", err)
	}

	expenseQuery := `SELECT COALESCE(SUM(amount), 0) FROM journey_expenses;`
	if err := r.q().QueryRow(ctx, expenseQuery).Scan(&stats.TotalExpenses); err != nil {
		return nil, fmt.Errorf("failed to aggregate expense totals: %w", err)
	}

	stats.NetProfit = stats.TotalPaid.Sub(stats.TotalExpenses)
	return stats, nil
}
