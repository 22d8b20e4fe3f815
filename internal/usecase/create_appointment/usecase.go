package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/janjikita/booking-service/internal/domain"
	businessRepo "github.com/janjikita/booking-service/internal/infra/storage/business"
	catalogRepo "github.com/janjikita/booking-service/internal/infra/storage/catalog"
	customerRepo "github.com/janjikita/booking-service/internal/infra/storage/customer"
)

// UseCase books an appointment. The availability re-check and the
// insert run in one serializable transaction, so two customers racing
// for the last free staff member cannot both win.
type UseCase struct {
	businessRepo    BusinessRepository
	catalogRepo     CatalogRepository
	customerRepo    CustomerRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	notifier        Notifier
	mailer          Mailer
	timeProvider    TimeProvider
	logger          Logger
}

func NewUseCase(
	businessRepo BusinessRepository,
	catalogRepo CatalogRepository,
	customerRepo CustomerRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	notifier Notifier,
	mailer Mailer,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo:    businessRepo,
		catalogRepo:     catalogRepo,
		customerRepo:    customerRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		notifier:        notifier,
		mailer:          mailer,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider swaps the clock. Tests only.
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute books the appointment.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: business=%s, service=%s, date=%s, time=%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	business, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("CreateAppointment: business id=%s not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get business id=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	if !business.IsActive {
		uc.logger.Warn("CreateAppointment: business id=%s is deactivated", req.BusinessID)
		return nil, ErrBusinessNotFound
	}

	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.BusinessID != req.BusinessID || !service.IsActive {
		uc.logger.Warn("CreateAppointment: service id=%s not available at business id=%s", req.ServiceID, req.BusinessID)
		return nil, ErrServiceNotFound
	}

	startMin, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: startTime must be HH:MM", ErrInvalidInput)
	}

	startTime, err := req.StartTime.At(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime must be HH:MM", ErrInvalidInput)
	}
	endTime := startTime.Add(time.Duration(service.DurationMinutes) * time.Minute)

	if !startTime.After(now) {
		uc.logger.Warn("CreateAppointment: start %s is in the past", startTime.Format(time.RFC3339))
		return nil, ErrInvalidDate
	}

	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		hours, err := uc.businessRepo.GetOperatingHoursForDay(txCtx, req.BusinessID, domain.WeekdayOf(req.Date))
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get operating hours: %v", err)
			return fmt.Errorf("%w: failed to get operating hours: %v", ErrInternal, err)
		}
		if hours == nil || hours.IsClosed {
			uc.logger.Warn("CreateAppointment: business id=%s is closed on %s", req.BusinessID, req.Date.Format(domain.DateFormat))
			return ErrBusinessClosed
		}

		if err := validateWithinHours(hours, startMin, service.DurationMinutes); err != nil {
			uc.logger.Warn("CreateAppointment: time validation failed: %v", err)
			return err
		}

		staff, err := uc.catalogRepo.GetStaff(txCtx, req.BusinessID, true)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get staff: %v", err)
			return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}

		// Locks the day's rows FOR UPDATE inside the transaction.
		appointments, err := uc.appointmentRepo.GetByBusinessAndDate(txCtx, req.BusinessID, req.Date, false)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		staffID, err := uc.assignStaff(req, staff, appointments, startTime, endTime)
		if err != nil {
			return err
		}

		customerID, err := uc.findOrCreateCustomer(txCtx, req)
		if err != nil {
			return err
		}

		apt := &domain.Appointment{
			BusinessID:    req.BusinessID,
			ServiceID:     req.ServiceID,
			StaffID:       staffID,
			CustomerID:    customerID,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			StartTime:     startTime,
			EndTime:       endTime,
			Status:        domain.StatusPending,
			Notes:         req.Notes,
			TotalPrice:    service.Price,
			PaymentStatus: domain.PaymentUnpaid,
		}

		created, err := uc.appointmentRepo.Create(txCtx, apt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created appointment id=%s staff=%s", result.ID, result.StaffID)

	// Notifications are post-commit and best-effort.
	if uc.notifier != nil {
		uc.notifier.NotifyBusiness(req.BusinessID, "appointment.created", result)
	}
	if uc.mailer != nil && req.CustomerEmail != nil {
		if err := uc.mailer.SendAppointmentConfirmation(ctx, *req.CustomerEmail, result, business, service); err != nil {
			uc.logger.Warn("CreateAppointment: failed to send confirmation email: %v", err)
		}
	}

	return &Response{
		ID:            result.ID,
		BusinessID:    result.BusinessID,
		ServiceID:     result.ServiceID,
		StaffID:       result.StaffID,
		CustomerID:    result.CustomerID,
		CustomerName:  result.CustomerName,
		CustomerPhone: result.CustomerPhone,
		StartTime:     result.StartTime,
		EndTime:       result.EndTime,
		Status:        string(result.Status),
		Notes:         result.Notes,
		TotalPrice:    result.TotalPrice,
		PaymentStatus: string(result.PaymentStatus),
		CreatedAt:     result.CreatedAt,
	}, nil
}

// assignStaff resolves the staff member serving the appointment. An
// explicit StaffID must name a free active member of this business;
// otherwise the first free member of the roster is picked.
func (uc *UseCase) assignStaff(
	req *Request,
	staff []*domain.Staff,
	appointments []*domain.Appointment,
	startTime, endTime time.Time,
) (string, error) {
	if req.StaffID != nil {
		var member *domain.Staff
		for _, s := range staff {
			if s.ID == *req.StaffID {
				member = s
				break
			}
		}
		if member == nil {
			uc.logger.Warn("CreateAppointment: staff id=%s not found in business id=%s", *req.StaffID, req.BusinessID)
			return "", ErrStaffNotFound
		}
		if !staffFree(member.ID, appointments, startTime, endTime) {
			uc.logger.Warn("CreateAppointment: staff id=%s busy at %s", member.ID, req.StartTime)
			return "", ErrSlotNotAvailable
		}
		return member.ID, nil
	}

	for _, s := range staff {
		if staffFree(s.ID, appointments, startTime, endTime) {
			return s.ID, nil
		}
	}

	uc.logger.Warn("CreateAppointment: no staff available for business id=%s at %s", req.BusinessID, req.StartTime)
	return "", ErrNoStaffAvailable
}

// findOrCreateCustomer deduplicates the booking contact by phone number
// within the business.
func (uc *UseCase) findOrCreateCustomer(ctx context.Context, req *Request) (*string, error) {
	existing, err := uc.customerRepo.GetByPhone(ctx, req.BusinessID, req.CustomerPhone)
	if err == nil {
		return &existing.ID, nil
	}
	if !errors.Is(err, customerRepo.ErrCustomerNotFound) {
		uc.logger.Error("CreateAppointment: failed to look up customer: %v", err)
		return nil, fmt.Errorf("%w: failed to look up customer: %v", ErrInternal, err)
	}

	created, err := uc.customerRepo.Create(ctx, &domain.Customer{
		BusinessID: req.BusinessID,
		Name:       req.CustomerName,
		Phone:      req.CustomerPhone,
		Email:      req.CustomerEmail,
	})
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to create customer: %v", err)
		return nil, fmt.Errorf("%w: failed to create customer: %v", ErrInternal, err)
	}

	return &created.ID, nil
}

// staffFree reports whether the staff member has no active appointment
// overlapping [start, end). Touching boundaries do not conflict.
func staffFree(staffID string, appointments []*domain.Appointment, start, end time.Time) bool {
	for _, apt := range appointments {
		if apt.StaffID != staffID || !apt.IsActive() {
			continue
		}
		if apt.Overlaps(start, end) {
			return false
		}
	}
	return true
}
