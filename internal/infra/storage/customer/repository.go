package customer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/janjikita/booking-service/internal/domain"
	"github.com/janjikita/booking-service/pkg/dbmetrics"
	"github.com/janjikita/booking-service/pkg/psqlbuilder"
)

var customerColumns = []string{
	"id",
	"business_id",
	"name",
	"phone",
	"email",
	"notes",
	"created_at",
}

// Repository persists booking contacts. Customers are per-business:
// the same phone number at two businesses is two customers.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a customer.
func (r *Repository) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	c.ID = uuid.NewString()

	query, args, err := psqlbuilder.Insert("customers").
		Columns(
			"id",
			"business_id",
			"name",
			"phone",
			"email",
			"notes",
		).
		Values(
			c.ID,
			c.BusinessID,
			c.Name,
			c.Phone,
			c.Email,
			c.Notes,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time

	return c, nil
}

// GetByPhone returns the customer with the given phone number at one
// business, or ErrCustomerNotFound. Phone is the dedup key for the
// find-or-create flow during booking.
func (r *Repository) GetByPhone(ctx context.Context, businessID, phone string) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(customerColumns...).
		From("customers").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Eq{"phone": phone}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - build select query: %v", ErrBuildQuery, err)
	}

	c, err := r.scanCustomer(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - scan customer: %v", ErrScanRow, err)
	}

	return c, nil
}

// GetByID returns one customer by id.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(customerColumns...).
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	c, err := r.scanCustomer(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan customer: %v", ErrScanRow, err)
	}

	return c, nil
}

// GetByBusiness returns every customer of a business, newest first.
func (r *Repository) GetByBusiness(ctx context.Context, businessID string) ([]*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(customerColumns...).
		From("customers").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	customers := make([]*domain.Customer, 0)
	for rows.Next() {
		c, err := r.scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBusiness - scan row: %v", ErrScanRow, err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - rows error: %v", ErrScanRow, err)
	}

	return customers, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanCustomer(row rowScanner) (*domain.Customer, error) {
	var c domain.Customer
	var createdAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.BusinessID,
		&c.Name,
		&c.Phone,
		&c.Email,
		&c.Notes,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt = createdAt.Time

	return &c, nil
}
