package business

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/janjikita/booking-service/internal/domain"
	"github.com/janjikita/booking-service/pkg/dbmetrics"
	"github.com/janjikita/booking-service/pkg/psqlbuilder"
)

var businessColumns = []string{
	"id",
	"name",
	"slug",
	"description",
	"category",
	"owner_name",
	"owner_email",
	"phone",
	"address",
	"is_active",
	"subscription_tier",
	"created_at",
}

// Repository persists businesses, their operating hours and their
// subscription records.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new business. The slug has a unique constraint; a
// violation maps to ErrSlugTaken so the caller can report it cleanly.
func (r *Repository) Create(ctx context.Context, b *domain.Business) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	b.ID = uuid.NewString()

	query, args, err := psqlbuilder.Insert("businesses").
		Columns(
			"id",
			"name",
			"slug",
			"description",
			"category",
			"owner_name",
			"owner_email",
			"phone",
			"address",
			"is_active",
			"subscription_tier",
		).
		Values(
			b.ID,
			b.Name,
			b.Slug,
			b.Description,
			b.Category,
			b.OwnerName,
			b.OwnerEmail,
			b.Phone,
			b.Address,
			b.IsActive,
			b.Tier(),
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.SubscriptionTier = b.Tier()
	b.CreatedAt = createdAt.Time

	return b, nil
}

// GetByID returns one business by id.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Business, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetBySlug returns one business by its public booking slug.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Business, error) {
	return r.getOne(ctx, "GetBySlug", squirrel.Eq{"slug": slug})
}

// GetAll returns every business, newest first. Platform admin only.
func (r *Repository) GetAll(ctx context.Context) ([]*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(businessColumns...).
		From("businesses").
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	businesses := make([]*domain.Business, 0)
	for rows.Next() {
		b, err := r.scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		businesses = append(businesses, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return businesses, nil
}

// SlugExists reports whether a slug is already registered.
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("businesses").
		Where(squirrel.Eq{"slug": slug}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: SlugExists - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: SlugExists - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// UpdateProfile updates the editable profile fields of a business.
// The slug is deliberately not updatable.
func (r *Repository) UpdateProfile(ctx context.Context, id string, name string, description, phone, address *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("businesses").
		Set("name", name).
		Set("description", description).
		Set("phone", phone).
		Set("address", address).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateProfile", query, args)
}

// SetActive toggles the tenant on or off. Deactivated businesses keep
// all their data but stop serving their booking page.
func (r *Repository) SetActive(ctx context.Context, id string, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("businesses").
		Set("is_active", active).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "SetActive", query, args)
}

// SetSubscriptionTier updates the denormalized tier on the business row.
func (r *Repository) SetSubscriptionTier(ctx context.Context, id string, tier domain.SubscriptionTier) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("businesses").
		Set("subscription_tier", tier).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetSubscriptionTier - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "SetSubscriptionTier", query, args)
}

// CountAll returns the total number of businesses.
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("businesses").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountAll - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountAll - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetOperatingHours returns the weekly schedule of a business. Days
// without a row are treated as closed by the caller.
func (r *Repository) GetOperatingHours(ctx context.Context, businessID string) ([]*domain.OperatingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"day_of_week",
		"open_time",
		"close_time",
		"is_closed",
	).
		From("operating_hours").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]*domain.OperatingHours, 0)
	for rows.Next() {
		var h domain.OperatingHours
		err := rows.Scan(
			&h.ID,
			&h.BusinessID,
			&h.DayOfWeek,
			&h.OpenTime,
			&h.CloseTime,
			&h.IsClosed,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetOperatingHours - scan row: %v", ErrScanRow, err)
		}
		hours = append(hours, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOperatingHours - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}

// GetOperatingHoursForDay returns the schedule row for one weekday, or
// nil when the business has no row for that day.
func (r *Repository) GetOperatingHoursForDay(ctx context.Context, businessID string, day domain.Weekday) (*domain.OperatingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"day_of_week",
		"open_time",
		"close_time",
		"is_closed",
	).
		From("operating_hours").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Eq{"day_of_week": day}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingHoursForDay - build select query: %v", ErrBuildQuery, err)
	}

	var h domain.OperatingHours
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&h.ID,
		&h.BusinessID,
		&h.DayOfWeek,
		&h.OpenTime,
		&h.CloseTime,
		&h.IsClosed,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingHoursForDay - scan row: %v", ErrScanRow, err)
	}

	return &h, nil
}

// UpsertOperatingHours inserts or replaces the schedule row of one
// weekday. (business_id, day_of_week) carries a unique index.
func (r *Repository) UpsertOperatingHours(ctx context.Context, h *domain.OperatingHours) (*domain.OperatingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if h.ID == "" {
		h.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("operating_hours").
		Columns(
			"id",
			"business_id",
			"day_of_week",
			"open_time",
			"close_time",
			"is_closed",
		).
		Values(
			h.ID,
			h.BusinessID,
			h.DayOfWeek,
			h.OpenTime,
			h.CloseTime,
			h.IsClosed,
		).
		Suffix(`ON CONFLICT (business_id, day_of_week) DO UPDATE
			SET open_time = EXCLUDED.open_time,
			    close_time = EXCLUDED.close_time,
			    is_closed = EXCLUDED.is_closed
			RETURNING id`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOperatingHours - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&h.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOperatingHours - execute insert: %v", ErrExecQuery, err)
	}

	return h, nil
}

// CreateSubscription appends a subscription history record.
func (r *Repository) CreateSubscription(ctx context.Context, s *domain.Subscription) (*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	s.ID = uuid.NewString()

	query, args, err := psqlbuilder.Insert("subscriptions").
		Columns(
			"id",
			"business_id",
			"tier",
			"start_date",
			"end_date",
			"status",
		).
		Values(
			s.ID,
			s.BusinessID,
			s.Tier,
			s.StartDate,
			s.EndDate,
			s.Status,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateSubscription - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateSubscription - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time

	return s, nil
}

// GetActiveSubscription returns the current active subscription of a
// business, newest first when history overlaps.
func (r *Repository) GetActiveSubscription(ctx context.Context, businessID string) (*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"tier",
		"start_date",
		"end_date",
		"status",
		"created_at",
	).
		From("subscriptions").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Eq{"status": "active"}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveSubscription - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Subscription
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.BusinessID,
		&s.Tier,
		&s.StartDate,
		&s.EndDate,
		&s.Status,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveSubscription - scan row: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time

	return &s, nil
}

func (r *Repository) getOne(ctx context.Context, op string, pred squirrel.Eq) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(businessColumns...).
		From("businesses").
		Where(pred).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	b, err := r.scanBusiness(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan business: %v", ErrScanRow, op, err)
	}

	return b, nil
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBusinessNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBusiness(row rowScanner) (*domain.Business, error) {
	var b domain.Business
	var createdAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Slug,
		&b.Description,
		&b.Category,
		&b.OwnerName,
		&b.OwnerEmail,
		&b.Phone,
		&b.Address,
		&b.IsActive,
		&b.SubscriptionTier,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time

	return &b, nil
}
