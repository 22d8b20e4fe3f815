package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/janjikita/booking-service/internal/domain"
	"github.com/janjikita/booking-service/pkg/dbmetrics"
	"github.com/janjikita/booking-service/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"business_id",
	"name",
	"description",
	"duration_minutes",
	"price",
	"is_active",
}

var staffColumns = []string{
	"id",
	"business_id",
	"name",
	"email",
	"phone",
	"is_active",
}

// Repository persists the service catalog and the staff roster of a
// business. Both are soft-deleted via is_active because historical
// appointments keep referencing their rows.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateService inserts a service. Capacity checks happen in the
// service layer before this is called.
func (r *Repository) CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	s.ID = uuid.NewString()

	query, args, err := psqlbuilder.Insert("services").
		Columns(serviceColumns...).
		Values(
			s.ID,
			s.BusinessID,
			s.Name,
			s.Description,
			s.DurationMinutes,
			s.Price,
			s.IsActive,
		).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: CreateService - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// GetService returns one service by id, active or not.
func (r *Repository) GetService(ctx context.Context, id string) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.BusinessID,
		&s.Name,
		&s.Description,
		&s.DurationMinutes,
		&s.Price,
		&s.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	return &s, nil
}

// GetServices returns the services of a business, optionally only the
// active ones (the public booking page hides deactivated services).
func (r *Repository) GetServices(ctx context.Context, businessID string, activeOnly bool) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("name ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		err := rows.Scan(
			&s.ID,
			&s.BusinessID,
			&s.Name,
			&s.Description,
			&s.DurationMinutes,
			&s.Price,
			&s.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// UpdateService updates the editable fields of a service and returns
// the updated row.
func (r *Repository) UpdateService(ctx context.Context, id string, name string, description *string, durationMinutes int, price int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("name", name).
		Set("description", description).
		Set("duration_minutes", durationMinutes).
		Set("price", price).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(serviceColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateService - build update query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.BusinessID,
		&s.Name,
		&s.Description,
		&s.DurationMinutes,
		&s.Price,
		&s.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateService - scan service: %v", ErrScanRow, err)
	}

	return &s, nil
}

// SetServiceActive soft-deletes or restores a service.
func (r *Repository) SetServiceActive(ctx context.Context, id string, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("is_active", active).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetServiceActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetServiceActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetServiceActive - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// CountActiveServices returns the number of active services of a
// business. Only active rows count against the tier limit.
func (r *Repository) CountActiveServices(ctx context.Context, businessID string) (int, error) {
	return r.countActive(ctx, "CountActiveServices", "services", businessID)
}

// CreateStaff inserts a staff member.
func (r *Repository) CreateStaff(ctx context.Context, s *domain.Staff) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	s.ID = uuid.NewString()

	query, args, err := psqlbuilder.Insert("staff").
		Columns(staffColumns...).
		Values(
			s.ID,
			s.BusinessID,
			s.Name,
			s.Email,
			s.Phone,
			s.IsActive,
		).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateStaff - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: CreateStaff - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// GetStaffMember returns one staff member by id, active or not.
func (r *Repository) GetStaffMember(ctx context.Context, id string) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffMember - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Staff
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.BusinessID,
		&s.Name,
		&s.Email,
		&s.Phone,
		&s.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffMember - scan staff: %v", ErrScanRow, err)
	}

	return &s, nil
}

// GetStaff returns the roster of a business, optionally only active
// members. Availability and auto-assignment consider active staff only.
func (r *Repository) GetStaff(ctx context.Context, businessID string, activeOnly bool) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(staffColumns...).
		From("staff").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("name ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staff := make([]*domain.Staff, 0)
	for rows.Next() {
		var s domain.Staff
		err := rows.Scan(
			&s.ID,
			&s.BusinessID,
			&s.Name,
			&s.Email,
			&s.Phone,
			&s.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetStaff - scan row: %v", ErrScanRow, err)
		}
		staff = append(staff, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStaff - rows error: %v", ErrScanRow, err)
	}

	return staff, nil
}

// UpdateStaff updates the editable fields of a staff member and returns
// the updated row.
func (r *Repository) UpdateStaff(ctx context.Context, id string, name string, email, phone *string) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("staff").
		Set("name", name).
		Set("email", email).
		Set("phone", phone).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(staffColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStaff - build update query: %v", ErrBuildQuery, err)
	}

	var s domain.Staff
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.BusinessID,
		&s.Name,
		&s.Email,
		&s.Phone,
		&s.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStaff - scan staff: %v", ErrScanRow, err)
	}

	return &s, nil
}

// SetStaffActive soft-deletes or restores a staff member.
func (r *Repository) SetStaffActive(ctx context.Context, id string, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("staff").
		Set("is_active", active).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetStaffActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetStaffActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetStaffActive - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStaffNotFound
	}

	return nil
}

// CountActiveStaff returns the number of active staff members of a
// business. Only active rows count against the tier limit.
func (r *Repository) CountActiveStaff(ctx context.Context, businessID string) (int, error) {
	return r.countActive(ctx, "CountActiveStaff", "staff", businessID)
}

func (r *Repository) countActive(ctx context.Context, op, table, businessID string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %s - scan count: %v", ErrScanRow, op, err)
	}

	return count, nil
}
