package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/janjikita/booking-service/internal/domain"
	businessRepo "github.com/janjikita/booking-service/internal/infra/storage/business"
	catalogRepo "github.com/janjikita/booking-service/internal/infra/storage/catalog"
)

// UseCase computes the bookable slots of one service on one date.
type UseCase struct {
	businessRepo    BusinessRepository
	catalogRepo     CatalogRepository
	appointmentRepo AppointmentRepository
	timeProvider    TimeProvider
	logger          Logger
}

func NewUseCase(
	businessRepo BusinessRepository,
	catalogRepo CatalogRepository,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo:    businessRepo,
		catalogRepo:     catalogRepo,
		appointmentRepo: appointmentRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider swaps the clock. Tests only.
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute runs the availability computation. The result is a pure
// function of the schedule, the roster and the day's appointments:
// closed or missing weekdays, unknown services and past dates all
// yield an empty slot list rather than an error.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%s, service=%s, date=%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	business, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%s not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business id=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	if !business.IsActive {
		uc.logger.Warn("GetAvailableSlots: business id=%s is deactivated", req.BusinessID)
		return nil, ErrBusinessNotFound
	}

	emptyResponse := &Response{
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Slots:      []domain.TimeSlot{},
	}

	if domain.DateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return emptyResponse, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.BusinessID != req.BusinessID || !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%s not available at business id=%s", req.ServiceID, req.BusinessID)
		return emptyResponse, nil
	}

	hours, err := uc.businessRepo.GetOperatingHoursForDay(ctx, req.BusinessID, domain.WeekdayOf(req.Date))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get operating hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get operating hours: %v", ErrInternal, err)
	}
	if hours == nil || hours.IsClosed {
		uc.logger.Info("GetAvailableSlots: business id=%s is closed on %s", req.BusinessID, req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	starts, err := generateCandidateStarts(hours.OpenTime, hours.CloseTime, service.DurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate candidates: %v", err)
		return nil, fmt.Errorf("%w: failed to generate candidates: %v", ErrInternal, err)
	}

	staff, err := uc.catalogRepo.GetStaff(ctx, req.BusinessID, true)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get staff: %v", err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if req.StaffID != nil {
		staff = rosterFor(staff, *req.StaffID)
	}

	appointments, err := uc.appointmentRepo.GetByBusinessAndDate(ctx, req.BusinessID, req.Date, false)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	slots := markAvailability(starts, req.Date, now, service.DurationMinutes, staff, appointments)

	uc.logger.Info("GetAvailableSlots: generated %d slots for business=%s, service=%s, date=%s",
		len(slots), req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Slots:      slots,
	}, nil
}
