package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janjikita/booking-service/internal/domain"
	appointmentRepo "github.com/janjikita/booking-service/internal/infra/storage/appointment"
	catalogRepo "github.com/janjikita/booking-service/internal/infra/storage/catalog"
	"github.com/janjikita/booking-service/pkg/ptr"
)

type fakeAppointmentRepo struct {
	appointments map[string]*domain.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{}}
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	apt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return apt, nil
}

func (f *fakeAppointmentRepo) GetByBusiness(_ context.Context, businessID string) ([]*domain.Appointment, error) {
	out := make([]*domain.Appointment, 0)
	for _, a := range f.appointments {
		if a.BusinessID == businessID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) GetByBusinessAndDate(_ context.Context, businessID string, date time.Time, includeCancelled bool) ([]*domain.Appointment, error) {
	out := make([]*domain.Appointment, 0)
	for _, a := range f.appointments {
		if a.BusinessID != businessID || !domain.SameDay(a.StartTime, date) {
			continue
		}
		if !includeCancelled && a.Status == domain.StatusCancelled {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) GetByCustomerPhone(_ context.Context, businessID, phone string) ([]*domain.Appointment, error) {
	out := make([]*domain.Appointment, 0)
	for _, a := range f.appointments {
		if a.BusinessID == businessID && a.CustomerPhone == phone {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	apt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	apt.Status = status
	return apt, nil
}

func (f *fakeAppointmentRepo) UpdatePaymentStatus(_ context.Context, id string, status domain.PaymentStatus) (*domain.Appointment, error) {
	apt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	apt.PaymentStatus = status
	return apt, nil
}

func (f *fakeAppointmentRepo) RequestReschedule(_ context.Context, id string, reason string, requestedAt time.Time) (*domain.Appointment, error) {
	apt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	apt.RescheduleRequestedAt = &requestedAt
	apt.RescheduleReason = &reason
	return apt, nil
}

func (f *fakeAppointmentRepo) SuggestRescheduleSlot(_ context.Context, id string, slot time.Time, message *string) (*domain.Appointment, error) {
	apt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	apt.SuggestedSlot = &slot
	apt.SuggestedSlotMessage = message
	return apt, nil
}

type fakeCatalogRepo struct {
	services map[string]*domain.Service
	staff    map[string]*domain.Staff
}

func (f *fakeCatalogRepo) GetService(_ context.Context, id string) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

func (f *fakeCatalogRepo) GetStaffMember(_ context.Context, id string) (*domain.Staff, error) {
	s, ok := f.staff[id]
	if !ok {
		return nil, catalogRepo.ErrStaffNotFound
	}
	return s, nil
}

type recordingNotifier struct {
	events         []string
	customerEvents []string
}

func (n *recordingNotifier) NotifyBusiness(_ string, event string, _ interface{}) {
	n.events = append(n.events, event)
}

func (n *recordingNotifier) NotifyCustomer(_ string, event string, _ interface{}) {
	n.customerEvents = append(n.customerEvents, event)
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

var now = time.Date(2026, time.September, 7, 12, 0, 0, 0, time.UTC)

type fixture struct {
	repo     *fakeAppointmentRepo
	cat      *fakeCatalogRepo
	notifier *recordingNotifier
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		repo: newFakeAppointmentRepo(),
		cat: &fakeCatalogRepo{
			services: map[string]*domain.Service{
				"svc-1": {ID: "svc-1", BusinessID: "biz-1", Name: "Potong Rambut"},
			},
			staff: map[string]*domain.Staff{
				"staff-1": {ID: "staff-1", BusinessID: "biz-1", Name: "Andi"},
			},
		},
		notifier: &recordingNotifier{},
	}
	f.svc = NewService(f.repo, f.cat, f.notifier, nopLogger{}).
		WithTimeProvider(&fixedClock{now: now})
	return f
}

func (f *fixture) seed(apt *domain.Appointment) *domain.Appointment {
	f.repo.appointments[apt.ID] = apt
	return apt
}

func pending(id string) *domain.Appointment {
	return &domain.Appointment{
		ID:            id,
		BusinessID:    "biz-1",
		ServiceID:     "svc-1",
		StaffID:       "staff-1",
		CustomerName:  "Siti",
		CustomerPhone: "+628123456789",
		StartTime:     now.Add(24 * time.Hour),
		EndTime:       now.Add(24*time.Hour + 45*time.Minute),
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentUnpaid,
		TotalPrice:    50000,
	}
}

func TestGetByID_ResolvesNames(t *testing.T) {
	f := newFixture()
	f.seed(pending("apt-1"))

	resp, err := f.svc.GetByID(context.Background(), "apt-1")
	require.NoError(t, err)

	assert.Equal(t, "Potong Rambut", resp.ServiceName)
	assert.Equal(t, "Andi", resp.StaffName)
}

func TestGetByID_MissingCatalogRowsLeaveNamesEmpty(t *testing.T) {
	f := newFixture()
	apt := pending("apt-1")
	apt.ServiceID = "svc-gone"
	apt.StaffID = "staff-gone"
	f.seed(apt)

	resp, err := f.svc.GetByID(context.Background(), "apt-1")
	require.NoError(t, err)

	assert.Empty(t, resp.ServiceName)
	assert.Empty(t, resp.StaffName)
}

func TestUpdateStatus_AllowsForwardTransitions(t *testing.T) {
	f := newFixture()
	f.seed(pending("apt-1"))

	resp, err := f.svc.UpdateStatus(context.Background(), "apt-1", "confirmed")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)

	resp, err = f.svc.UpdateStatus(context.Background(), "apt-1", "completed")
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)

	assert.Equal(t, []string{"appointment.updated", "appointment.updated"}, f.notifier.events)
}

func TestUpdateStatus_TerminalRejectsChanges(t *testing.T) {
	f := newFixture()
	apt := pending("apt-1")
	apt.Status = domain.StatusCompleted
	f.seed(apt)

	_, err := f.svc.UpdateStatus(context.Background(), "apt-1", "cancelled")
	assert.ErrorIs(t, err, ErrTerminalStatus)

	apt.Status = domain.StatusCancelled
	_, err = f.svc.UpdateStatus(context.Background(), "apt-1", "confirmed")
	assert.ErrorIs(t, err, ErrTerminalStatus)
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	f := newFixture()
	f.seed(pending("apt-1"))

	_, err := f.svc.UpdateStatus(context.Background(), "apt-1", "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdatePaymentStatus_AcceptsKnownStates(t *testing.T) {
	f := newFixture()
	f.seed(pending("apt-1"))

	for _, status := range []string{"pending", "paid", "refunded", "failed", "unpaid"} {
		resp, err := f.svc.UpdatePaymentStatus(context.Background(), "apt-1", status)
		require.NoError(t, err, "status %s", status)
		assert.Equal(t, status, resp.PaymentStatus)
	}

	_, err := f.svc.UpdatePaymentStatus(context.Background(), "apt-1", "wired")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRequestReschedule_SetsRequestFields(t *testing.T) {
	f := newFixture()
	f.seed(pending("apt-1"))

	_, err := f.svc.RequestReschedule(context.Background(), "apt-1", "ada acara keluarga")
	require.NoError(t, err)

	apt := f.repo.appointments["apt-1"]
	require.NotNil(t, apt.RescheduleRequestedAt)
	assert.Equal(t, now, *apt.RescheduleRequestedAt)
	require.NotNil(t, apt.RescheduleReason)
	assert.Equal(t, "ada acara keluarga", *apt.RescheduleReason)

	assert.Equal(t, []string{"appointment.reschedule_requested"}, f.notifier.events)
}

func TestRequestReschedule_ShortReasonRejected(t *testing.T) {
	f := newFixture()
	f.seed(pending("apt-1"))

	_, err := f.svc.RequestReschedule(context.Background(), "apt-1", "sibu")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRequestReschedule_TerminalRejected(t *testing.T) {
	f := newFixture()
	apt := pending("apt-1")
	apt.Status = domain.StatusCancelled
	f.seed(apt)

	_, err := f.svc.RequestReschedule(context.Background(), "apt-1", "ada acara keluarga")
	assert.ErrorIs(t, err, ErrTerminalStatus)
}

func TestSuggestRescheduleSlot_RequiresOpenRequest(t *testing.T) {
	f := newFixture()
	f.seed(pending("apt-1"))

	_, err := f.svc.SuggestRescheduleSlot(context.Background(), "apt-1", now.Add(48*time.Hour), nil)
	assert.ErrorIs(t, err, ErrNoRescheduleRequest)
}

func TestSuggestRescheduleSlot_KeepsRequestFields(t *testing.T) {
	f := newFixture()
	apt := pending("apt-1")
	apt.CustomerID = ptr.Ptr("cust-1")
	f.seed(apt)
	_, err := f.svc.RequestReschedule(context.Background(), "apt-1", "ada acara keluarga")
	require.NoError(t, err)

	slot := now.Add(48 * time.Hour)
	_, err = f.svc.SuggestRescheduleSlot(context.Background(), "apt-1", slot, ptr.Ptr("bagaimana jam ini?"))
	require.NoError(t, err)

	stored := f.repo.appointments["apt-1"]
	require.NotNil(t, stored.SuggestedSlot)
	assert.Equal(t, slot, *stored.SuggestedSlot)
	assert.NotNil(t, stored.RescheduleRequestedAt, "the open request stays until the customer confirms")
	assert.NotNil(t, stored.RescheduleReason)

	assert.Equal(t, []string{"appointment.slot_suggested"}, f.notifier.customerEvents)
	assert.Equal(t, []string{"appointment.reschedule_requested"}, f.notifier.events, "the suggestion goes to the customer, not back to the dashboard")
}

func TestSuggestRescheduleSlot_WalkInWithoutCustomerRecordSkipsNotify(t *testing.T) {
	f := newFixture()
	f.seed(pending("apt-1"))
	_, err := f.svc.RequestReschedule(context.Background(), "apt-1", "ada acara keluarga")
	require.NoError(t, err)

	_, err = f.svc.SuggestRescheduleSlot(context.Background(), "apt-1", now.Add(48*time.Hour), nil)
	require.NoError(t, err)

	assert.Empty(t, f.notifier.customerEvents)
}

func TestSuggestRescheduleSlot_PastSlotRejected(t *testing.T) {
	f := newFixture()
	f.seed(pending("apt-1"))
	_, err := f.svc.RequestReschedule(context.Background(), "apt-1", "ada acara keluarga")
	require.NoError(t, err)

	_, err = f.svc.SuggestRescheduleSlot(context.Background(), "apt-1", now.Add(-time.Hour), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetDashboardStats_Aggregates(t *testing.T) {
	f := newFixture()

	today := pending("apt-today")
	today.StartTime = now.Add(2 * time.Hour)
	today.EndTime = now.Add(3 * time.Hour)
	f.seed(today)

	paid := pending("apt-paid")
	paid.StartTime = now.Add(-48 * time.Hour)
	paid.EndTime = now.Add(-47 * time.Hour)
	paid.Status = domain.StatusCompleted
	paid.PaymentStatus = domain.PaymentPaid
	f.seed(paid)

	cancelled := pending("apt-cancelled")
	cancelled.StartTime = now.Add(3 * time.Hour)
	cancelled.Status = domain.StatusCancelled
	f.seed(cancelled)

	requested := pending("apt-requested")
	requested.StartTime = now.Add(72 * time.Hour)
	requestedAt := now.Add(-time.Hour)
	requested.RescheduleRequestedAt = &requestedAt
	f.seed(requested)

	stats, err := f.svc.GetDashboardStats(context.Background(), "biz-1")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TodayCount, "cancelled same-day appointments do not count")
	assert.Equal(t, 2, stats.PendingCount)
	assert.Equal(t, 2, stats.UpcomingCount)
	assert.Equal(t, int64(50000), stats.PaidRevenue)
	assert.Equal(t, 1, stats.OpenReschedule)
}

func TestGetCustomerAppointments_FiltersByPhone(t *testing.T) {
	f := newFixture()
	f.seed(pending("apt-1"))
	other := pending("apt-2")
	other.CustomerPhone = "+628000000000"
	f.seed(other)

	resp, err := f.svc.GetCustomerAppointments(context.Background(), "biz-1", "+628123456789")
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, "apt-1", resp.Appointments[0].ID)

	_, err = f.svc.GetCustomerAppointments(context.Background(), "biz-1", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_UnknownAppointment(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetByID(context.Background(), "apt-missing")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
