package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/janjikita/booking-service/internal/domain"
	"github.com/janjikita/booking-service/pkg/dbmetrics"
	"github.com/janjikita/booking-service/pkg/psqlbuilder"
)

// appointmentColumns is the canonical column order shared by every
// select and RETURNING clause in this repository.
var appointmentColumns = []string{
	"id",
	"business_id",
	"service_id",
	"staff_id",
	"customer_id",
	"customer_name",
	"customer_phone",
	"start_time",
	"end_time",
	"status",
	"notes",
	"total_price",
	"payment_status",
	"reschedule_requested_at",
	"reschedule_reason",
	"suggested_slot",
	"suggested_slot_message",
	"created_at",
}

// Repository persists appointments.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new appointment. The id is generated here; start and
// end times are stored as absolute instants.
//
// When called inside a transaction placed in the context (the slot
// availability re-check flow), the insert joins that transaction.
func (r *Repository) Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	apt.ID = uuid.NewString()

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"business_id",
			"service_id",
			"staff_id",
			"customer_id",
			"customer_name",
			"customer_phone",
			"start_time",
			"end_time",
			"status",
			"notes",
			"total_price",
			"payment_status",
		).
		Values(
			apt.ID,
			apt.BusinessID,
			apt.ServiceID,
			apt.StaffID,
			apt.CustomerID,
			apt.CustomerName,
			apt.CustomerPhone,
			apt.StartTime,
			apt.EndTime,
			apt.Status,
			apt.Notes,
			apt.TotalPrice,
			apt.PaymentStatus,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	apt.CreatedAt = createdAt.Time

	return apt, nil
}

// GetByID returns one appointment by id.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	apt, err := r.scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return apt, nil
}

// GetByBusinessAndDate returns the appointments of one business whose
// start time falls on the given calendar date, in the date's location.
// Cancelled rows are excluded unless includeCancelled is set.
//
// Inside a transaction the rows are locked FOR UPDATE, so the slot
// availability re-check and the subsequent insert see a stable day.
func (r *Repository) GetByBusinessAndDate(ctx context.Context, businessID string, date time.Time, includeCancelled bool) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dayStart, dayEnd := domain.DayBounds(date)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.GtOrEq{"start_time": dayStart}).
		Where(squirrel.LtOrEq{"start_time": dayEnd}).
		OrderBy("start_time ASC")

	if !includeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// GetByBusiness returns all appointments of one business, newest first.
func (r *Repository) GetByBusiness(ctx context.Context, businessID string) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("start_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// GetByCustomerPhone returns the appointments booked under a phone
// number at one business, newest first. Used by the public booking page
// so customers can look up their bookings without an account.
func (r *Repository) GetByCustomerPhone(ctx context.Context, businessID, phone string) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Eq{"customer_phone": phone}).
		OrderBy("start_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerPhone - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerPhone - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// UpdateStatus sets the lifecycle status and returns the updated row.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	return r.updateReturning(ctx, "UpdateStatus",
		psqlbuilder.Update("appointments").
			Set("status", status).
			Where(squirrel.Eq{"id": id}))
}

// UpdatePaymentStatus sets the payment status and returns the updated row.
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Appointment, error) {
	return r.updateReturning(ctx, "UpdatePaymentStatus",
		psqlbuilder.Update("appointments").
			Set("payment_status", status).
			Where(squirrel.Eq{"id": id}))
}

// RequestReschedule records a customer's request to move the
// appointment. Times and status are untouched until the business
// suggests a slot and the customer confirms it.
func (r *Repository) RequestReschedule(ctx context.Context, id string, reason string, requestedAt time.Time) (*domain.Appointment, error) {
	return r.updateReturning(ctx, "RequestReschedule",
		psqlbuilder.Update("appointments").
			Set("reschedule_requested_at", requestedAt).
			Set("reschedule_reason", reason).
			Where(squirrel.Eq{"id": id}))
}

// SuggestRescheduleSlot records the business's counter-offer. The
// original request fields stay in place so the negotiation history is
// visible until confirmation.
func (r *Repository) SuggestRescheduleSlot(ctx context.Context, id string, slot time.Time, message *string) (*domain.Appointment, error) {
	return r.updateReturning(ctx, "SuggestRescheduleSlot",
		psqlbuilder.Update("appointments").
			Set("suggested_slot", slot).
			Set("suggested_slot_message", message).
			Where(squirrel.Eq{"id": id}))
}

// ConfirmReschedule moves the appointment to the new interval, clears
// all four negotiation fields and confirms the appointment.
func (r *Repository) ConfirmReschedule(ctx context.Context, id string, newStart, newEnd time.Time) (*domain.Appointment, error) {
	return r.updateReturning(ctx, "ConfirmReschedule",
		psqlbuilder.Update("appointments").
			Set("start_time", newStart).
			Set("end_time", newEnd).
			Set("status", domain.StatusConfirmed).
			Set("reschedule_requested_at", nil).
			Set("reschedule_reason", nil).
			Set("suggested_slot", nil).
			Set("suggested_slot_message", nil).
			Where(squirrel.Eq{"id": id}))
}

// CountAll returns the total number of appointments across all
// businesses. Used by platform admin stats.
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("appointments").
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

// SumPaidRevenue returns the sum of total_price over paid appointments
// across all businesses.
func (r *Repository) SumPaidRevenue(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(total_price), 0)").
		From("appointments").
		Where(squirrel.Eq{"payment_status": domain.PaymentPaid}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SumPaidRevenue - build select query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: SumPaidRevenue - scan sum: %v", ErrScanRow, err)
	}

	return total, nil
}

// updateReturning runs an UPDATE with RETURNING over the full column
// set and scans the updated appointment.
func (r *Repository) updateReturning(ctx context.Context, op string, builder squirrel.UpdateBuilder) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.
		Suffix("RETURNING " + strings.Join(appointmentColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	apt, err := r.scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan appointment: %v", ErrScanRow, op, err)
	}

	return apt, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAppointment scans one row in appointmentColumns order.
func (r *Repository) scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var apt domain.Appointment
	var createdAt sql.NullTime

	err := row.Scan(
		&apt.ID,
		&apt.BusinessID,
		&apt.ServiceID,
		&apt.StaffID,
		&apt.CustomerID,
		&apt.CustomerName,
		&apt.CustomerPhone,
		&apt.StartTime,
		&apt.EndTime,
		&apt.Status,
		&apt.Notes,
		&apt.TotalPrice,
		&apt.PaymentStatus,
		&apt.RescheduleRequestedAt,
		&apt.RescheduleReason,
		&apt.SuggestedSlot,
		&apt.SuggestedSlotMessage,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	apt.CreatedAt = createdAt.Time

	return &apt, nil
}

func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		apt, err := r.scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, apt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
