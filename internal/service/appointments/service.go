package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/janjikita/booking-service/internal/domain"
	appointmentRepo "github.com/janjikita/booking-service/internal/infra/storage/appointment"
	"github.com/janjikita/booking-service/internal/service/appointments/models"
)

// Service covers the appointment lifecycle outside of booking and
// reschedule confirmation, which live in their own use cases: status
// changes, reschedule negotiation, listings and dashboard stats.
type Service struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	notifier        Notifier
	timeProvider    TimeProvider
	logger          Logger
}

func NewService(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider swaps the clock. Tests only.
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID returns one appointment with service and staff names resolved.
func (s *Service) GetByID(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	apt, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainAppointment(apt)

	// Name resolution is best-effort: a missing catalog row leaves the
	// field empty instead of failing the lookup.
	if svc, err := s.catalogRepo.GetService(ctx, apt.ServiceID); err == nil {
		resp.ServiceName = svc.Name
	}
	if member, err := s.catalogRepo.GetStaffMember(ctx, apt.StaffID); err == nil {
		resp.StaffName = member.Name
	}

	return resp, nil
}

// GetBusinessAppointments lists a business's appointments, optionally
// narrowed to one calendar date.
func (s *Service) GetBusinessAppointments(ctx context.Context, businessID string, date *time.Time, includeCancelled bool) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetBusinessAppointments: business=%s, date=%v", businessID, date)

	var apts []*domain.Appointment
	var err error

	if date != nil {
		apts, err = s.appointmentRepo.GetByBusinessAndDate(ctx, businessID, *date, includeCancelled)
	} else {
		apts, err = s.appointmentRepo.GetByBusiness(ctx, businessID)
	}
	if err != nil {
		s.logger.Error("GetBusinessAppointments: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetBusinessAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessAppointments: fetched %d appointments for business=%s", len(apts), businessID)
	return models.FromDomainAppointmentList(apts), nil
}

// GetCustomerAppointments lists the appointments booked under a phone
// number at one business.
func (s *Service) GetCustomerAppointments(ctx context.Context, businessID, phone string) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetCustomerAppointments: business=%s", businessID)

	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	apts, err := s.appointmentRepo.GetByCustomerPhone(ctx, businessID, phone)
	if err != nil {
		s.logger.Error("GetCustomerAppointments: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetCustomerAppointments - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(apts), nil
}

// UpdateStatus moves the appointment to a new lifecycle status.
// Terminal appointments reject every transition.
func (s *Service) UpdateStatus(ctx context.Context, id string, status string) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment=%s, status=%s", id, status)

	if !domain.ValidStatus(status) {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment=%s", status, id)
		return nil, ErrInvalidStatus
	}
	next := domain.AppointmentStatus(status)

	apt, err := s.getAppointment(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	if !apt.CanTransitionTo(next) {
		s.logger.Warn("UpdateStatus: appointment=%s is %s, cannot become %s", id, apt.Status, next)
		return nil, ErrTerminalStatus
	}

	updated, err := s.appointmentRepo.UpdateStatus(ctx, id, next)
	if err != nil {
		s.logger.Error("UpdateStatus: repository error for appointment=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.notify(updated.BusinessID, "appointment.updated", updated)

	return models.FromDomainAppointment(updated), nil
}

// UpdatePaymentStatus moves the appointment's payment state.
func (s *Service) UpdatePaymentStatus(ctx context.Context, id string, status string) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdatePaymentStatus: appointment=%s, status=%s", id, status)

	switch domain.PaymentStatus(status) {
	case domain.PaymentUnpaid, domain.PaymentPending, domain.PaymentPaid, domain.PaymentRefunded, domain.PaymentFailed:
	default:
		s.logger.Warn("UpdatePaymentStatus: invalid status=%s for appointment=%s", status, id)
		return nil, ErrInvalidStatus
	}

	updated, err := s.appointmentRepo.UpdatePaymentStatus(ctx, id, domain.PaymentStatus(status))
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdatePaymentStatus: repository error for appointment=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdatePaymentStatus - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(updated), nil
}

// RequestReschedule opens a reschedule negotiation on behalf of the
// customer. The appointment keeps its time and status until the
// customer confirms a suggested slot.
func (s *Service) RequestReschedule(ctx context.Context, id string, reason string) (*models.AppointmentResponse, error) {
	s.logger.Info("RequestReschedule: appointment=%s", id)

	if len(reason) < domain.MinRescheduleReasonLength {
		return nil, fmt.Errorf("%w: reason must be at least %d characters", ErrInvalidInput, domain.MinRescheduleReasonLength)
	}

	apt, err := s.getAppointment(ctx, "RequestReschedule", id)
	if err != nil {
		return nil, err
	}

	if apt.IsTerminal() {
		s.logger.Warn("RequestReschedule: appointment=%s is %s", id, apt.Status)
		return nil, ErrTerminalStatus
	}

	updated, err := s.appointmentRepo.RequestReschedule(ctx, id, reason, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("RequestReschedule: repository error for appointment=%s: %v", id, err)
		return nil, fmt.Errorf("%w: RequestReschedule - repository error: %v", ErrInternal, err)
	}

	s.notify(updated.BusinessID, "appointment.reschedule_requested", updated)

	return models.FromDomainAppointment(updated), nil
}

// SuggestRescheduleSlot records the business's counter-offer for an
// open reschedule request. The request fields stay in place until the
// customer confirms.
func (s *Service) SuggestRescheduleSlot(ctx context.Context, id string, slot time.Time, message *string) (*models.AppointmentResponse, error) {
	s.logger.Info("SuggestRescheduleSlot: appointment=%s, slot=%s", id, slot.Format(time.RFC3339))

	if slot.IsZero() {
		return nil, fmt.Errorf("%w: suggested slot is required", ErrInvalidInput)
	}
	if !slot.After(s.timeProvider.Now()) {
		return nil, fmt.Errorf("%w: suggested slot must be in the future", ErrInvalidInput)
	}

	apt, err := s.getAppointment(ctx, "SuggestRescheduleSlot", id)
	if err != nil {
		return nil, err
	}

	if apt.IsTerminal() {
		s.logger.Warn("SuggestRescheduleSlot: appointment=%s is %s", id, apt.Status)
		return nil, ErrTerminalStatus
	}
	if !apt.HasRescheduleRequest() {
		s.logger.Warn("SuggestRescheduleSlot: appointment=%s has no open request", id)
		return nil, ErrNoRescheduleRequest
	}

	updated, err := s.appointmentRepo.SuggestRescheduleSlot(ctx, id, slot, message)
	if err != nil {
		s.logger.Error("SuggestRescheduleSlot: repository error for appointment=%s: %v", id, err)
		return nil, fmt.Errorf("%w: SuggestRescheduleSlot - repository error: %v", ErrInternal, err)
	}

	s.notifyCustomer(updated, "appointment.slot_suggested")

	return models.FromDomainAppointment(updated), nil
}

// GetDashboardStats summarizes a business's appointments for the
// dashboard header. Computed in memory over the full list, which is
// fine at the scale of a single small business.
func (s *Service) GetDashboardStats(ctx context.Context, businessID string) (*models.DashboardStats, error) {
	s.logger.Info("GetDashboardStats: business=%s", businessID)

	apts, err := s.appointmentRepo.GetByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("GetDashboardStats: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetDashboardStats - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	stats := &models.DashboardStats{}

	for _, apt := range apts {
		if domain.SameDay(apt.StartTime, now) && apt.IsActive() {
			stats.TodayCount++
		}
		if apt.Status == domain.StatusPending {
			stats.PendingCount++
		}
		if apt.StartTime.After(now) && apt.IsActive() {
			stats.UpcomingCount++
		}
		if apt.PaymentStatus == domain.PaymentPaid {
			stats.PaidRevenue += apt.TotalPrice
		}
		if apt.HasRescheduleRequest() && !apt.IsTerminal() {
			stats.OpenReschedule++
		}
	}

	return stats, nil
}

func (s *Service) getAppointment(ctx context.Context, op, id string) (*domain.Appointment, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: appointment id is required", ErrInvalidInput)
	}

	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return apt, nil
}

func (s *Service) notify(businessID, event string, apt *domain.Appointment) {
	if s.notifier != nil {
		s.notifier.NotifyBusiness(businessID, event, models.FromDomainAppointment(apt))
	}
}

// notifyCustomer is a no-op for walk-in bookings that never resolved to
// a customer record.
func (s *Service) notifyCustomer(apt *domain.Appointment, event string) {
	if s.notifier == nil || apt.CustomerID == nil {
		return
	}
	s.notifier.NotifyCustomer(*apt.CustomerID, event, models.FromDomainAppointment(apt))
}
