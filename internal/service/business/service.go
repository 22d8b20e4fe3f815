package business

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/janjikita/booking-service/internal/domain"
	businessRepo "github.com/janjikita/booking-service/internal/infra/storage/business"
	"github.com/janjikita/booking-service/pkg/types"
)

// slugPattern accepts lowercase letters, digits and single hyphens.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

const (
	minSlugLength = 3
	maxSlugLength = 50

	defaultOpenTime  = types.TimeString("09:00")
	defaultCloseTime = types.TimeString("18:00")
)

// Service manages tenants: onboarding, profile, operating hours, the
// public booking page aggregate, subscriptions and platform admin.
type Service struct {
	businessRepo    BusinessRepository
	catalogRepo     CatalogRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

func NewService(
	businessRepo BusinessRepository,
	catalogRepo CatalogRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		businessRepo:    businessRepo,
		catalogRepo:     catalogRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider swaps the clock. Tests only.
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Onboard registers a business and seeds it in one transaction: a full
// week of default operating hours, the owner as first staff member,
// the starter catalog of the chosen category, and a free subscription.
func (s *Service) Onboard(ctx context.Context, req *OnboardRequest) (*domain.Business, error) {
	s.logger.Info("Onboard: slug=%s, category=%s", req.Slug, req.Category)

	if err := validateOnboardRequest(req); err != nil {
		s.logger.Warn("Onboard: validation failed: %v", err)
		return nil, err
	}

	taken, err := s.businessRepo.SlugExists(ctx, req.Slug)
	if err != nil {
		s.logger.Error("Onboard: slug check failed: %v", err)
		return nil, fmt.Errorf("%w: Onboard - slug check: %v", ErrInternal, err)
	}
	if taken {
		s.logger.Warn("Onboard: slug=%s already taken", req.Slug)
		return nil, ErrSlugTaken
	}

	category := domain.BusinessCategory(req.Category)
	var created *domain.Business

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.businessRepo.Create(txCtx, &domain.Business{
			Name:             req.Name,
			Slug:             req.Slug,
			Description:      req.Description,
			Category:         category,
			OwnerName:        req.OwnerName,
			OwnerEmail:       req.OwnerEmail,
			Phone:            req.Phone,
			Address:          req.Address,
			IsActive:         true,
			SubscriptionTier: domain.TierFree,
		})
		if err != nil {
			if errors.Is(err, businessRepo.ErrSlugTaken) {
				return ErrSlugTaken
			}
			return fmt.Errorf("%w: Onboard - create business: %v", ErrInternal, err)
		}

		// Mon-Sat 09:00-18:00, Sunday closed.
		for _, day := range domain.Weekdays {
			hours := &domain.OperatingHours{
				BusinessID: b.ID,
				DayOfWeek:  day,
				OpenTime:   defaultOpenTime,
				CloseTime:  defaultCloseTime,
				IsClosed:   day == domain.Sunday,
			}
			if _, err := s.businessRepo.UpsertOperatingHours(txCtx, hours); err != nil {
				return fmt.Errorf("%w: Onboard - seed hours: %v", ErrInternal, err)
			}
		}

		if _, err := s.catalogRepo.CreateStaff(txCtx, &domain.Staff{
			BusinessID: b.ID,
			Name:       req.OwnerName,
			Email:      &b.OwnerEmail,
			IsActive:   true,
		}); err != nil {
			return fmt.Errorf("%w: Onboard - seed owner staff: %v", ErrInternal, err)
		}

		for _, tpl := range domain.ServiceTemplates[category] {
			description := tpl.Description
			if _, err := s.catalogRepo.CreateService(txCtx, &domain.Service{
				BusinessID:      b.ID,
				Name:            tpl.Name,
				Description:     &description,
				DurationMinutes: tpl.DurationMinutes,
				Price:           tpl.Price,
				IsActive:        true,
			}); err != nil {
				return fmt.Errorf("%w: Onboard - seed services: %v", ErrInternal, err)
			}
		}

		if _, err := s.businessRepo.CreateSubscription(txCtx, &domain.Subscription{
			BusinessID: b.ID,
			Tier:       domain.TierFree,
			StartDate:  s.timeProvider.Now(),
			Status:     "active",
		}); err != nil {
			return fmt.Errorf("%w: Onboard - create subscription: %v", ErrInternal, err)
		}

		created = b
		return nil
	})
	if err != nil {
		s.logger.Error("Onboard: failed for slug=%s: %v", req.Slug, err)
		return nil, err
	}

	s.logger.Info("Onboard: created business id=%s slug=%s", created.ID, created.Slug)
	return created, nil
}

// GetByID returns one business.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("GetByID: repository error for business=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return business, nil
}

// UpdateProfile edits the business profile. The slug stays fixed.
func (s *Service) UpdateProfile(ctx context.Context, id string, name string, description, phone, address *string) error {
	s.logger.Info("UpdateProfile: business=%s", id)

	if name == "" {
		return fmt.Errorf("%w: business name is required", ErrInvalidInput)
	}

	if err := s.businessRepo.UpdateProfile(ctx, id, name, description, phone, address); err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return ErrBusinessNotFound
		}
		s.logger.Error("UpdateProfile: repository error for business=%s: %v", id, err)
		return fmt.Errorf("%w: UpdateProfile - repository error: %v", ErrInternal, err)
	}

	return nil
}

// GetOperatingHours returns the weekly schedule.
func (s *Service) GetOperatingHours(ctx context.Context, businessID string) ([]*domain.OperatingHours, error) {
	hours, err := s.businessRepo.GetOperatingHours(ctx, businessID)
	if err != nil {
		s.logger.Error("GetOperatingHours: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetOperatingHours - repository error: %v", ErrInternal, err)
	}
	return hours, nil
}

// UpdateOperatingHours applies a batch of per-day updates. An update
// with ApplyToAll copies its window to all seven days. The batch runs
// in one transaction so the week never ends up half-updated.
func (s *Service) UpdateOperatingHours(ctx context.Context, businessID string, updates []HoursUpdate) ([]*domain.OperatingHours, error) {
	s.logger.Info("UpdateOperatingHours: business=%s, updates=%d", businessID, len(updates))

	expanded := make([]HoursUpdate, 0, len(updates))
	for _, u := range updates {
		if u.ApplyToAll {
			for _, day := range domain.Weekdays {
				copied := u
				copied.DayOfWeek = string(day)
				copied.ApplyToAll = false
				expanded = append(expanded, copied)
			}
			continue
		}
		expanded = append(expanded, u)
	}

	for _, u := range expanded {
		if err := validateHoursUpdate(&u); err != nil {
			s.logger.Warn("UpdateOperatingHours: validation failed: %v", err)
			return nil, err
		}
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, u := range expanded {
			hours := &domain.OperatingHours{
				BusinessID: businessID,
				DayOfWeek:  domain.Weekday(u.DayOfWeek),
				OpenTime:   u.OpenTime,
				CloseTime:  u.CloseTime,
				IsClosed:   u.IsClosed,
			}
			if _, err := s.businessRepo.UpsertOperatingHours(txCtx, hours); err != nil {
				return fmt.Errorf("%w: UpdateOperatingHours - upsert: %v", ErrInternal, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("UpdateOperatingHours: failed for business=%s: %v", businessID, err)
		return nil, err
	}

	return s.GetOperatingHours(ctx, businessID)
}

// GetBookingPage serves the public aggregate under the business slug.
// Deactivated businesses are hidden behind not-found.
func (s *Service) GetBookingPage(ctx context.Context, slug string) (*BookingPage, error) {
	s.logger.Info("GetBookingPage: slug=%s", slug)

	business, err := s.businessRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("GetBookingPage: slug=%s not found", slug)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("GetBookingPage: repository error for slug=%s: %v", slug, err)
		return nil, fmt.Errorf("%w: GetBookingPage - repository error: %v", ErrInternal, err)
	}
	if !business.IsActive {
		s.logger.Warn("GetBookingPage: slug=%s is deactivated", slug)
		return nil, ErrBusinessNotFound
	}

	services, err := s.catalogRepo.GetServices(ctx, business.ID, true)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookingPage - get services: %v", ErrInternal, err)
	}
	staff, err := s.catalogRepo.GetStaff(ctx, business.ID, true)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookingPage - get staff: %v", ErrInternal, err)
	}
	hours, err := s.businessRepo.GetOperatingHours(ctx, business.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookingPage - get hours: %v", ErrInternal, err)
	}

	return &BookingPage{
		Business: business,
		Services: services,
		Staff:    staff,
		Hours:    hours,
	}, nil
}

// ChangeSubscription moves the business to a new tier and appends the
// subscription history record. Existing rows above a lower tier's
// limit stay active; only future additions are gated.
func (s *Service) ChangeSubscription(ctx context.Context, businessID string, tier string) (*domain.Subscription, error) {
	s.logger.Info("ChangeSubscription: business=%s, tier=%s", businessID, tier)

	switch domain.SubscriptionTier(tier) {
	case domain.TierFree, domain.TierPro, domain.TierBusiness:
	default:
		s.logger.Warn("ChangeSubscription: invalid tier=%s", tier)
		return nil, ErrInvalidTier
	}

	var created *domain.Subscription
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.businessRepo.SetSubscriptionTier(txCtx, businessID, domain.SubscriptionTier(tier)); err != nil {
			if errors.Is(err, businessRepo.ErrBusinessNotFound) {
				return ErrBusinessNotFound
			}
			return fmt.Errorf("%w: ChangeSubscription - set tier: %v", ErrInternal, err)
		}

		sub, err := s.businessRepo.CreateSubscription(txCtx, &domain.Subscription{
			BusinessID: businessID,
			Tier:       domain.SubscriptionTier(tier),
			StartDate:  s.timeProvider.Now(),
			Status:     "active",
		})
		if err != nil {
			return fmt.Errorf("%w: ChangeSubscription - create record: %v", ErrInternal, err)
		}

		created = sub
		return nil
	})
	if err != nil {
		s.logger.Error("ChangeSubscription: failed for business=%s: %v", businessID, err)
		return nil, err
	}

	return created, nil
}

// ListBusinesses returns every tenant. Platform admin only.
func (s *Service) ListBusinesses(ctx context.Context) ([]*domain.Business, error) {
	businesses, err := s.businessRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("ListBusinesses: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBusinesses - repository error: %v", ErrInternal, err)
	}
	return businesses, nil
}

// SetBusinessActive toggles a tenant. Platform admin only.
func (s *Service) SetBusinessActive(ctx context.Context, businessID string, active bool) error {
	s.logger.Info("SetBusinessActive: business=%s, active=%t", businessID, active)

	if err := s.businessRepo.SetActive(ctx, businessID, active); err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return ErrBusinessNotFound
		}
		s.logger.Error("SetBusinessActive: repository error for business=%s: %v", businessID, err)
		return fmt.Errorf("%w: SetBusinessActive - repository error: %v", ErrInternal, err)
	}

	return nil
}

// GetPlatformStats summarizes the platform for the admin panel.
func (s *Service) GetPlatformStats(ctx context.Context) (*PlatformStats, error) {
	businesses, err := s.businessRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPlatformStats - count businesses: %v", ErrInternal, err)
	}
	appointments, err := s.appointmentRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPlatformStats - count appointments: %v", ErrInternal, err)
	}
	revenue, err := s.appointmentRepo.SumPaidRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPlatformStats - sum revenue: %v", ErrInternal, err)
	}

	return &PlatformStats{
		TotalBusinesses:   businesses,
		TotalAppointments: appointments,
		PaidRevenue:       revenue,
	}, nil
}

func validateOnboardRequest(req *OnboardRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: business name is required", ErrInvalidInput)
	}
	if req.OwnerName == "" {
		return fmt.Errorf("%w: owner name is required", ErrInvalidInput)
	}
	if req.OwnerEmail == "" {
		return fmt.Errorf("%w: owner email is required", ErrInvalidInput)
	}
	if len(req.Slug) < minSlugLength || len(req.Slug) > maxSlugLength || !slugPattern.MatchString(req.Slug) {
		return fmt.Errorf("%w: slug must be %d-%d lowercase letters, digits or hyphens",
			ErrInvalidSlug, minSlugLength, maxSlugLength)
	}
	if _, ok := domain.ServiceTemplates[domain.BusinessCategory(req.Category)]; !ok {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}
	return nil
}

func validateHoursUpdate(u *HoursUpdate) error {
	if !domain.ValidWeekday(u.DayOfWeek) {
		return fmt.Errorf("%w: unknown day of week %q", ErrInvalidInput, u.DayOfWeek)
	}
	if u.IsClosed {
		return nil
	}
	if err := u.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: open time must be HH:MM", ErrInvalidInput)
	}
	if err := u.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: close time must be HH:MM", ErrInvalidInput)
	}
	if !u.OpenTime.IsBefore(u.CloseTime) {
		return fmt.Errorf("%w: open time must be before close time", ErrInvalidInput)
	}
	return nil
}
