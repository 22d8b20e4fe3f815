package confirm_reschedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/janjikita/booking-service/internal/domain"
	appointmentRepo "github.com/janjikita/booking-service/internal/infra/storage/appointment"
)

// UseCase confirms a reschedule. The appointment moves to the interval
// the caller supplies, falling back to the business's suggested slot,
// and all four negotiation fields are cleared in the same transaction
// that re-checks the target slot for conflicts.
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	notifier        Notifier
	logger          Logger
}

func NewUseCase(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		notifier:        notifier,
		logger:          logger,
	}
}

// Execute confirms the reschedule.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmReschedule: appointment=%s", req.AppointmentID)

	if req.AppointmentID == "" {
		return nil, fmt.Errorf("%w: appointmentID is required", ErrInvalidInput)
	}
	if req.NewStartTime == nil && req.NewEndTime != nil {
		return nil, fmt.Errorf("%w: newEndTime requires newStartTime", ErrInvalidInput)
	}

	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		apt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("ConfirmReschedule: appointment id=%s not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("ConfirmReschedule: failed to get appointment id=%s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		if apt.IsTerminal() {
			uc.logger.Warn("ConfirmReschedule: appointment id=%s is %s", apt.ID, apt.Status)
			return ErrTerminalStatus
		}

		duration := apt.EndTime.Sub(apt.StartTime)

		var newStart, newEnd time.Time
		switch {
		case req.NewStartTime != nil:
			newStart = *req.NewStartTime
			newEnd = newStart.Add(duration)
			if req.NewEndTime != nil {
				newEnd = *req.NewEndTime
			}
			if !newEnd.After(newStart) {
				uc.logger.Warn("ConfirmReschedule: appointment id=%s end %s not after start %s", apt.ID, newEnd, newStart)
				return fmt.Errorf("%w: newEndTime must be after newStartTime", ErrInvalidInput)
			}
		case apt.SuggestedSlot != nil:
			newStart = *apt.SuggestedSlot
			newEnd = newStart.Add(duration)
		default:
			uc.logger.Warn("ConfirmReschedule: appointment id=%s has no suggested slot", apt.ID)
			return ErrNoSuggestedSlot
		}

		// Locks the target day FOR UPDATE so the slot cannot be taken
		// between the check and the move.
		dayAppointments, err := uc.appointmentRepo.GetByBusinessAndDate(txCtx, apt.BusinessID, newStart, false)
		if err != nil {
			uc.logger.Error("ConfirmReschedule: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		for _, other := range dayAppointments {
			if other.ID == apt.ID || other.StaffID != apt.StaffID || !other.IsActive() {
				continue
			}
			if other.Overlaps(newStart, newEnd) {
				uc.logger.Warn("ConfirmReschedule: slot taken by appointment id=%s", other.ID)
				return ErrSlotNotAvailable
			}
		}

		moved, err := uc.appointmentRepo.ConfirmReschedule(txCtx, apt.ID, newStart, newEnd)
		if err != nil {
			uc.logger.Error("ConfirmReschedule: failed to move appointment id=%s: %v", apt.ID, err)
			return fmt.Errorf("%w: failed to move appointment: %v", ErrInternal, err)
		}

		result = moved
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ConfirmReschedule: appointment id=%s moved to %s", result.ID, result.StartTime.Format(domain.DateFormat+" "+domain.TimeFormat))

	if uc.notifier != nil {
		uc.notifier.NotifyBusiness(result.BusinessID, "appointment.rescheduled", result)
	}

	return &Response{
		ID:            result.ID,
		BusinessID:    result.BusinessID,
		ServiceID:     result.ServiceID,
		StaffID:       result.StaffID,
		CustomerName:  result.CustomerName,
		CustomerPhone: result.CustomerPhone,
		StartTime:     result.StartTime,
		EndTime:       result.EndTime,
		Status:        string(result.Status),
	}, nil
}
