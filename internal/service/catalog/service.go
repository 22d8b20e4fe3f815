package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/janjikita/booking-service/internal/domain"
	businessRepo "github.com/janjikita/booking-service/internal/infra/storage/business"
	catalogRepo "github.com/janjikita/booking-service/internal/infra/storage/catalog"
)

// Service manages the service catalog and the staff roster, enforcing
// the subscription tier limits: only active rows count, so deactivated
// services and staff never block new ones, and a tier downgrade never
// deactivates existing rows.
type Service struct {
	catalogRepo  CatalogRepository
	businessRepo BusinessRepository
	logger       Logger
}

func NewService(catalogRepo CatalogRepository, businessRepo BusinessRepository, logger Logger) *Service {
	return &Service{
		catalogRepo:  catalogRepo,
		businessRepo: businessRepo,
		logger:       logger,
	}
}

// CapacityUsage reports the current usage against the tier limits for
// the settings page. A limit of -1 means unlimited.
type CapacityUsage struct {
	Tier         string `json:"tier"`
	StaffCount   int    `json:"staffCount"`
	StaffLimit   int    `json:"staffLimit"`
	ServiceCount int    `json:"serviceCount"`
	ServiceLimit int    `json:"serviceLimit"`
}

// CreateService adds a service after the tier capacity check.
func (s *Service) CreateService(ctx context.Context, businessID, name string, description *string, durationMinutes int, price int64) (*domain.Service, error) {
	s.logger.Info("CreateService: business=%s, name=%s", businessID, name)

	if err := validateServiceInput(name, durationMinutes, price); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkCapacity(ctx, businessID, domain.LimitServices); err != nil {
		return nil, err
	}

	created, err := s.catalogRepo.CreateService(ctx, &domain.Service{
		BusinessID:      businessID,
		Name:            name,
		Description:     description,
		DurationMinutes: durationMinutes,
		Price:           price,
		IsActive:        true,
	})
	if err != nil {
		s.logger.Error("CreateService: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: created service id=%s for business=%s", created.ID, businessID)
	return created, nil
}

// GetServices lists the catalog of a business.
func (s *Service) GetServices(ctx context.Context, businessID string, activeOnly bool) ([]*domain.Service, error) {
	services, err := s.catalogRepo.GetServices(ctx, businessID, activeOnly)
	if err != nil {
		s.logger.Error("GetServices: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetServices - repository error: %v", ErrInternal, err)
	}
	return services, nil
}

// UpdateService edits a service owned by the business. Price and
// duration changes only affect future bookings: existing appointments
// keep their snapshots.
func (s *Service) UpdateService(ctx context.Context, businessID, serviceID, name string, description *string, durationMinutes int, price int64) (*domain.Service, error) {
	s.logger.Info("UpdateService: business=%s, service=%s", businessID, serviceID)

	if err := validateServiceInput(name, durationMinutes, price); err != nil {
		s.logger.Warn("UpdateService: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.getOwnedService(ctx, "UpdateService", businessID, serviceID); err != nil {
		return nil, err
	}

	updated, err := s.catalogRepo.UpdateService(ctx, serviceID, name, description, durationMinutes, price)
	if err != nil {
		s.logger.Error("UpdateService: repository error for service=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	return updated, nil
}

// SetServiceActive soft-deletes or restores a service. Reactivation
// counts as adding a row and passes the capacity check again.
func (s *Service) SetServiceActive(ctx context.Context, businessID, serviceID string, active bool) error {
	s.logger.Info("SetServiceActive: business=%s, service=%s, active=%t", businessID, serviceID, active)

	svc, err := s.getOwnedService(ctx, "SetServiceActive", businessID, serviceID)
	if err != nil {
		return err
	}

	if active && !svc.IsActive {
		if err := s.checkCapacity(ctx, businessID, domain.LimitServices); err != nil {
			return err
		}
	}

	if err := s.catalogRepo.SetServiceActive(ctx, serviceID, active); err != nil {
		s.logger.Error("SetServiceActive: repository error for service=%s: %v", serviceID, err)
		return fmt.Errorf("%w: SetServiceActive - repository error: %v", ErrInternal, err)
	}

	return nil
}

// CreateStaff adds a roster member after the tier capacity check.
func (s *Service) CreateStaff(ctx context.Context, businessID, name string, email, phone *string) (*domain.Staff, error) {
	s.logger.Info("CreateStaff: business=%s, name=%s", businessID, name)

	if name == "" {
		return nil, fmt.Errorf("%w: staff name is required", ErrInvalidInput)
	}

	if err := s.checkCapacity(ctx, businessID, domain.LimitStaff); err != nil {
		return nil, err
	}

	created, err := s.catalogRepo.CreateStaff(ctx, &domain.Staff{
		BusinessID: businessID,
		Name:       name,
		Email:      email,
		Phone:      phone,
		IsActive:   true,
	})
	if err != nil {
		s.logger.Error("CreateStaff: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: CreateStaff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateStaff: created staff id=%s for business=%s", created.ID, businessID)
	return created, nil
}

// GetStaff lists the roster of a business.
func (s *Service) GetStaff(ctx context.Context, businessID string, activeOnly bool) ([]*domain.Staff, error) {
	staff, err := s.catalogRepo.GetStaff(ctx, businessID, activeOnly)
	if err != nil {
		s.logger.Error("GetStaff: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetStaff - repository error: %v", ErrInternal, err)
	}
	return staff, nil
}

// UpdateStaff edits a roster member owned by the business.
func (s *Service) UpdateStaff(ctx context.Context, businessID, staffID, name string, email, phone *string) (*domain.Staff, error) {
	s.logger.Info("UpdateStaff: business=%s, staff=%s", businessID, staffID)

	if name == "" {
		return nil, fmt.Errorf("%w: staff name is required", ErrInvalidInput)
	}

	if _, err := s.getOwnedStaff(ctx, "UpdateStaff", businessID, staffID); err != nil {
		return nil, err
	}

	updated, err := s.catalogRepo.UpdateStaff(ctx, staffID, name, email, phone)
	if err != nil {
		s.logger.Error("UpdateStaff: repository error for staff=%s: %v", staffID, err)
		return nil, fmt.Errorf("%w: UpdateStaff - repository error: %v", ErrInternal, err)
	}

	return updated, nil
}

// SetStaffActive soft-deletes or restores a roster member. Reactivation
// counts as adding a row and passes the capacity check again.
func (s *Service) SetStaffActive(ctx context.Context, businessID, staffID string, active bool) error {
	s.logger.Info("SetStaffActive: business=%s, staff=%s, active=%t", businessID, staffID, active)

	member, err := s.getOwnedStaff(ctx, "SetStaffActive", businessID, staffID)
	if err != nil {
		return err
	}

	if active && !member.IsActive {
		if err := s.checkCapacity(ctx, businessID, domain.LimitStaff); err != nil {
			return err
		}
	}

	if err := s.catalogRepo.SetStaffActive(ctx, staffID, active); err != nil {
		s.logger.Error("SetStaffActive: repository error for staff=%s: %v", staffID, err)
		return fmt.Errorf("%w: SetStaffActive - repository error: %v", ErrInternal, err)
	}

	return nil
}

// GetCapacityUsage reports tier usage for the settings page.
func (s *Service) GetCapacityUsage(ctx context.Context, businessID string) (*CapacityUsage, error) {
	business, err := s.getBusiness(ctx, "GetCapacityUsage", businessID)
	if err != nil {
		return nil, err
	}

	staffCount, err := s.catalogRepo.CountActiveStaff(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCapacityUsage - count staff: %v", ErrInternal, err)
	}
	serviceCount, err := s.catalogRepo.CountActiveServices(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCapacityUsage - count services: %v", ErrInternal, err)
	}

	limits := domain.LimitsForTier(business.Tier())
	return &CapacityUsage{
		Tier:         string(business.Tier()),
		StaffCount:   staffCount,
		StaffLimit:   limits.MaxStaff,
		ServiceCount: serviceCount,
		ServiceLimit: limits.MaxServices,
	}, nil
}

// checkCapacity enforces the tier limit for one resource kind.
func (s *Service) checkCapacity(ctx context.Context, businessID string, kind domain.LimitKind) error {
	business, err := s.getBusiness(ctx, "checkCapacity", businessID)
	if err != nil {
		return err
	}

	var count int
	switch kind {
	case domain.LimitStaff:
		count, err = s.catalogRepo.CountActiveStaff(ctx, businessID)
	default:
		count, err = s.catalogRepo.CountActiveServices(ctx, businessID)
	}
	if err != nil {
		s.logger.Error("checkCapacity: count error for business=%s: %v", businessID, err)
		return fmt.Errorf("%w: checkCapacity - count error: %v", ErrInternal, err)
	}

	if !domain.CheckCapacity(business.Tier(), kind, count) {
		limit := domain.LimitsForTier(business.Tier()).Limit(kind)
		s.logger.Warn("checkCapacity: business=%s tier=%s %s limit %d reached", businessID, business.Tier(), kind, limit)
		return fmt.Errorf("%w: %s limit %d reached on tier %s", ErrCapacityExceeded, kind, limit, business.Tier())
	}

	return nil
}

func (s *Service) getBusiness(ctx context.Context, op, businessID string) (*domain.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("%s: business id=%s not found", op, businessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("%s: repository error for business id=%s: %v", op, businessID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return business, nil
}

// getOwnedService loads a service and hides rows of other businesses
// behind not-found.
func (s *Service) getOwnedService(ctx context.Context, op, businessID, serviceID string) (*domain.Service, error) {
	svc, err := s.catalogRepo.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%s not found", op, serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("%s: repository error for service id=%s: %v", op, serviceID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	if svc.BusinessID != businessID {
		s.logger.Warn("%s: service id=%s does not belong to business id=%s", op, serviceID, businessID)
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

func (s *Service) getOwnedStaff(ctx context.Context, op, businessID, staffID string) (*domain.Staff, error) {
	member, err := s.catalogRepo.GetStaffMember(ctx, staffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			s.logger.Warn("%s: staff id=%s not found", op, staffID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("%s: repository error for staff id=%s: %v", op, staffID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	if member.BusinessID != businessID {
		s.logger.Warn("%s: staff id=%s does not belong to business id=%s", op, staffID, businessID)
		return nil, ErrStaffNotFound
	}
	return member, nil
}

func validateServiceInput(name string, durationMinutes int, price int64) error {
	if name == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}
	if durationMinutes < domain.MinServiceDurationMinutes || durationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}
