package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janjikita/booking-service/internal/domain"
	businessRepo "github.com/janjikita/booking-service/internal/infra/storage/business"
	catalogRepo "github.com/janjikita/booking-service/internal/infra/storage/catalog"
	"github.com/janjikita/booking-service/pkg/types"
)

type fakeBusinessRepo struct {
	business *domain.Business
	hours    map[domain.Weekday]*domain.OperatingHours
}

func (f *fakeBusinessRepo) GetByID(_ context.Context, id string) (*domain.Business, error) {
	if f.business == nil || f.business.ID != id {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return f.business, nil
}

func (f *fakeBusinessRepo) GetOperatingHoursForDay(_ context.Context, _ string, day domain.Weekday) (*domain.OperatingHours, error) {
	return f.hours[day], nil
}

type fakeCatalogRepo struct {
	services map[string]*domain.Service
	staff    []*domain.Staff
}

func (f *fakeCatalogRepo) GetService(_ context.Context, id string) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return svc, nil
}

func (f *fakeCatalogRepo) GetStaff(_ context.Context, _ string, activeOnly bool) ([]*domain.Staff, error) {
	if !activeOnly {
		return f.staff, nil
	}
	active := make([]*domain.Staff, 0, len(f.staff))
	for _, s := range f.staff {
		if s.IsActive {
			active = append(active, s)
		}
	}
	return active, nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByBusinessAndDate(_ context.Context, _ string, _ time.Time, includeCancelled bool) ([]*domain.Appointment, error) {
	if includeCancelled {
		return f.appointments, nil
	}
	out := make([]*domain.Appointment, 0, len(f.appointments))
	for _, a := range f.appointments {
		if a.Status != domain.StatusCancelled {
			out = append(out, a)
		}
	}
	return out, nil
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

// date returns a calendar day at midnight UTC. 2026-09-07 is a Monday.
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newFixture(t *testing.T) (*fakeBusinessRepo, *fakeCatalogRepo, *fakeAppointmentRepo) {
	t.Helper()
	biz := &fakeBusinessRepo{
		business: &domain.Business{ID: "biz-1", IsActive: true},
		hours: map[domain.Weekday]*domain.OperatingHours{
			domain.Monday: {
				BusinessID: "biz-1",
				DayOfWeek:  domain.Monday,
				OpenTime:   mustTime(t, "09:00"),
				CloseTime:  mustTime(t, "17:00"),
			},
		},
	}
	cat := &fakeCatalogRepo{
		services: map[string]*domain.Service{
			"svc-1": {ID: "svc-1", BusinessID: "biz-1", Name: "Potong Rambut", DurationMinutes: 45, Price: 50000, IsActive: true},
		},
		staff: []*domain.Staff{
			{ID: "staff-1", BusinessID: "biz-1", Name: "Andi", IsActive: true},
		},
	}
	return biz, cat, &fakeAppointmentRepo{}
}

func newUseCase(biz *fakeBusinessRepo, cat *fakeCatalogRepo, apt *fakeAppointmentRepo, now time.Time) *UseCase {
	return NewUseCase(biz, cat, apt, nopLogger{}).WithTimeProvider(&fixedClock{now: now})
}

func TestExecute_GeneratesCadenceFromOpeningTime(t *testing.T) {
	biz, cat, apt := newFixture(t)
	uc := newUseCase(biz, cat, apt, date(2026, time.September, 1))

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: "biz-1",
		ServiceID:  "svc-1",
		Date:       date(2026, time.September, 7),
	})
	require.NoError(t, err)

	// 09:00-17:00 with a 45-minute service: last start that still fits is 16:00.
	require.Len(t, resp.Slots, 15)
	assert.Equal(t, "09:00", resp.Slots[0].Time.String())
	assert.Equal(t, "09:30", resp.Slots[1].Time.String())
	assert.Equal(t, "16:00", resp.Slots[14].Time.String())
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available, "slot %s should be free on an empty day", slot.Time)
	}
}

func TestExecute_ConflictingAppointmentBlocksOverlappingSlots(t *testing.T) {
	biz, cat, apt := newFixture(t)
	day := date(2026, time.September, 7)
	apt.appointments = []*domain.Appointment{{
		ID:         "apt-1",
		BusinessID: "biz-1",
		StaffID:    "staff-1",
		StartTime:  day.Add(10 * time.Hour),
		EndTime:    day.Add(10*time.Hour + 45*time.Minute),
		Status:     domain.StatusConfirmed,
	}}
	uc := newUseCase(biz, cat, apt, date(2026, time.September, 1))

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: "biz-1",
		ServiceID:  "svc-1",
		Date:       day,
	})
	require.NoError(t, err)

	byTime := slotMap(resp.Slots)
	// 09:30 would run 09:30-10:15, overlapping the 10:00 appointment.
	assert.False(t, byTime["09:30"])
	assert.False(t, byTime["10:00"])
	assert.False(t, byTime["10:30"])
	// 09:00 ends exactly at the appointment start and does not conflict.
	assert.True(t, byTime["09:00"])
	assert.True(t, byTime["11:00"])
}

func TestExecute_CancelledAppointmentReleasesSlot(t *testing.T) {
	biz, cat, apt := newFixture(t)
	day := date(2026, time.September, 7)
	apt.appointments = []*domain.Appointment{{
		ID:         "apt-1",
		BusinessID: "biz-1",
		StaffID:    "staff-1",
		StartTime:  day.Add(10 * time.Hour),
		EndTime:    day.Add(10*time.Hour + 45*time.Minute),
		Status:     domain.StatusCancelled,
	}}
	uc := newUseCase(biz, cat, apt, date(2026, time.September, 1))

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: "biz-1",
		ServiceID:  "svc-1",
		Date:       day,
	})
	require.NoError(t, err)

	assert.True(t, slotMap(resp.Slots)["10:00"])
}

func TestExecute_SecondStaffMemberKeepsSlotAvailable(t *testing.T) {
	biz, cat, apt := newFixture(t)
	cat.staff = append(cat.staff, &domain.Staff{ID: "staff-2", BusinessID: "biz-1", Name: "Budi", IsActive: true})

	day := date(2026, time.September, 7)
	apt.appointments = []*domain.Appointment{{
		ID:         "apt-1",
		BusinessID: "biz-1",
		StaffID:    "staff-1",
		StartTime:  day.Add(10 * time.Hour),
		EndTime:    day.Add(10*time.Hour + 45*time.Minute),
		Status:     domain.StatusConfirmed,
	}}
	uc := newUseCase(biz, cat, apt, date(2026, time.September, 1))

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: "biz-1",
		ServiceID:  "svc-1",
		Date:       day,
	})
	require.NoError(t, err)

	assert.True(t, slotMap(resp.Slots)["10:00"], "slot stays available while another staff member is free")
}

func TestExecute_StaffFilterRestrictsConflictCheck(t *testing.T) {
	biz, cat, apt := newFixture(t)
	cat.staff = append(cat.staff, &domain.Staff{ID: "staff-2", BusinessID: "biz-1", Name: "Budi", IsActive: true})

	day := date(2026, time.September, 7)
	apt.appointments = []*domain.Appointment{{
		ID:         "apt-1",
		BusinessID: "biz-1",
		StaffID:    "staff-1",
		StartTime:  day.Add(10 * time.Hour),
		EndTime:    day.Add(10*time.Hour + 45*time.Minute),
		Status:     domain.StatusConfirmed,
	}}
	uc := newUseCase(biz, cat, apt, date(2026, time.September, 1))

	staffID := "staff-1"
	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: "biz-1",
		ServiceID:  "svc-1",
		Date:       day,
		StaffID:    &staffID,
	})
	require.NoError(t, err)

	byTime := slotMap(resp.Slots)
	assert.False(t, byTime["10:00"], "the requested staff member is busy even though a colleague is free")
	assert.True(t, byTime["11:00"])

	otherID := "staff-2"
	resp, err = uc.Execute(context.Background(), &Request{
		BusinessID: "biz-1",
		ServiceID:  "svc-1",
		Date:       day,
		StaffID:    &otherID,
	})
	require.NoError(t, err)
	assert.True(t, slotMap(resp.Slots)["10:00"], "the colleague's own calendar is clear")
}

func TestExecute_UnknownStaffFilterYieldsNoAvailability(t *testing.T) {
	biz, cat, apt := newFixture(t)
	uc := newUseCase(biz, cat, apt, date(2026, time.September, 1))

	staffID := "staff-missing"
	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: "biz-1",
		ServiceID:  "svc-1",
		Date:       date(2026, time.September, 7),
		StaffID:    &staffID,
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 15)
	for _, slot := range resp.Slots {
		assert.False(t, slot.Available)
	}
}

func TestExecute_InactiveStaffDoesNotCount(t *testing.T) {
	biz, cat, apt := newFixture(t)
	cat.staff[0].IsActive = false
	uc := newUseCase(biz, cat, apt, date(2026, time.September, 1))

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: "biz-1",
		ServiceID:  "svc-1",
		Date:       date(2026, time.September, 7),
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 15)
	for _, slot := range resp.Slots {
		assert.False(t, slot.Available, "no active staff means no availability")
	}
}

func TestExecute_PastStartsUnavailableOnQueryDay(t *testing.T) {
	biz, cat, apt := newFixture(t)
	day := date(2026, time.September, 7)
	// Querying at 11:10 on the same day.
	uc := newUseCase(biz, cat, apt, day.Add(11*time.Hour+10*time.Minute))

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: "biz-1",
		ServiceID:  "svc-1",
		Date:       day,
	})
	require.NoError(t, err)

	byTime := slotMap(resp.Slots)
	assert.False(t, byTime["09:00"])
	assert.False(t, byTime["11:00"])
	assert.True(t, byTime["11:30"])
}

func TestExecute_SlotStartingExactlyNowStaysAvailable(t *testing.T) {
	biz, cat, apt := newFixture(t)
	day := date(2026, time.September, 7)
	uc := newUseCase(biz, cat, apt, day.Add(11*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: "biz-1",
		ServiceID:  "svc-1",
		Date:       day,
	})
	require.NoError(t, err)

	byTime := slotMap(resp.Slots)
	assert.False(t, byTime["10:30"])
	assert.True(t, byTime["11:00"], "only starts strictly before now are excluded")
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	biz, cat, apt := newFixture(t)
	uc := newUseCase(biz, cat, apt, date(2026, time.September, 8))

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: "biz-1",
		ServiceID:  "svc-1",
		Date:       date(2026, time.September, 7),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ClosedDayReturnsEmpty(t *testing.T) {
	biz, cat, apt := newFixture(t)
	biz.hours[domain.Monday].IsClosed = true
	uc := newUseCase(biz, cat, apt, date(2026, time.September, 1))

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: "biz-1",
		ServiceID:  "svc-1",
		Date:       date(2026, time.September, 7),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_MissingWeekdayRowReturnsEmpty(t *testing.T) {
	biz, cat, apt := newFixture(t)
	uc := newUseCase(biz, cat, apt, date(2026, time.September, 1))

	// No hours row for Tuesday.
	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: "biz-1",
		ServiceID:  "svc-1",
		Date:       date(2026, time.September, 8),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_UnknownServiceReturnsEmpty(t *testing.T) {
	biz, cat, apt := newFixture(t)
	uc := newUseCase(biz, cat, apt, date(2026, time.September, 1))

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: "biz-1",
		ServiceID:  "svc-missing",
		Date:       date(2026, time.September, 7),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ForeignServiceReturnsEmpty(t *testing.T) {
	biz, cat, apt := newFixture(t)
	cat.services["svc-other"] = &domain.Service{
		ID: "svc-other", BusinessID: "biz-2", Name: "Pijat", DurationMinutes: 60, IsActive: true,
	}
	uc := newUseCase(biz, cat, apt, date(2026, time.September, 1))

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: "biz-1",
		ServiceID:  "svc-other",
		Date:       date(2026, time.September, 7),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_InactiveServiceReturnsEmpty(t *testing.T) {
	biz, cat, apt := newFixture(t)
	cat.services["svc-1"].IsActive = false
	uc := newUseCase(biz, cat, apt, date(2026, time.September, 1))

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: "biz-1",
		ServiceID:  "svc-1",
		Date:       date(2026, time.September, 7),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_UnknownBusinessFails(t *testing.T) {
	biz, cat, apt := newFixture(t)
	uc := newUseCase(biz, cat, apt, date(2026, time.September, 1))

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: "biz-missing",
		ServiceID:  "svc-1",
		Date:       date(2026, time.September, 7),
	})
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_DeactivatedBusinessFails(t *testing.T) {
	biz, cat, apt := newFixture(t)
	biz.business.IsActive = false
	uc := newUseCase(biz, cat, apt, date(2026, time.September, 1))

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: "biz-1",
		ServiceID:  "svc-1",
		Date:       date(2026, time.September, 7),
	})
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	biz, cat, apt := newFixture(t)
	uc := newUseCase(biz, cat, apt, date(2026, time.September, 1))

	_, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: date(2026, time.September, 7)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BusinessID: "biz-1", Date: date(2026, time.September, 7)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BusinessID: "biz-1", ServiceID: "svc-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerateCandidateStarts_DurationMustFitBeforeClosing(t *testing.T) {
	starts, err := generateCandidateStarts(types.TimeString("10:00"), types.TimeString("12:00"), 90)
	require.NoError(t, err)

	// 10:00 and 10:30 fit a 90-minute service before 12:00; 11:00 does not.
	assert.Equal(t, []int{600, 630}, starts)
}

func TestGenerateCandidateStarts_NoRoomYieldsNoCandidates(t *testing.T) {
	starts, err := generateCandidateStarts(types.TimeString("10:00"), types.TimeString("11:00"), 90)
	require.NoError(t, err)
	assert.Empty(t, starts)
}

func slotMap(slots []domain.TimeSlot) map[string]bool {
	m := make(map[string]bool, len(slots))
	for _, s := range slots {
		m[s.Time.String()] = s.Available
	}
	return m
}
