package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janjikita/booking-service/internal/domain"
	businessRepo "github.com/janjikita/booking-service/internal/infra/storage/business"
	catalogRepo "github.com/janjikita/booking-service/internal/infra/storage/catalog"
	customerRepo "github.com/janjikita/booking-service/internal/infra/storage/customer"
	"github.com/janjikita/booking-service/pkg/ptr"
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

func (f *fakeCatalogRepo) GetStaffMember(_ context.Context, id string) (*domain.Staff, error) {
	for _, s := range f.staff {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, catalogRepo.ErrStaffNotFound
}

type fakeCustomerRepo struct {
	customers map[string]*domain.Customer // keyed by phone
	created   []*domain.Customer
}

func (f *fakeCustomerRepo) GetByPhone(_ context.Context, _ string, phone string) (*domain.Customer, error) {
	c, ok := f.customers[phone]
	if !ok {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return c, nil
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	c.ID = "cust-new"
	f.created = append(f.created, c)
	return c, nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	created      []*domain.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	apt.ID = "apt-new"
	apt.CreatedAt = time.Now()
	f.created = append(f.created, apt)
	return apt, nil
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

type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) NotifyBusiness(_ string, event string, _ interface{}) {
	n.events = append(n.events, event)
}

type recordingMailer struct {
	sentTo []string
}

func (m *recordingMailer) SendAppointmentConfirmation(_ context.Context, to string, _ *domain.Appointment, _ *domain.Business, _ *domain.Service) error {
	m.sentTo = append(m.sentTo, to)
	return nil
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

type fixture struct {
	biz      *fakeBusinessRepo
	cat      *fakeCatalogRepo
	cust     *fakeCustomerRepo
	apt      *fakeAppointmentRepo
	notifier *recordingNotifier
	mailer   *recordingMailer
	uc       *UseCase
}

// 2026-09-07 is a Monday.
var bookingDay = time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		biz: &fakeBusinessRepo{
			business: &domain.Business{ID: "biz-1", Name: "Barber Jaya", IsActive: true},
			hours: map[domain.Weekday]*domain.OperatingHours{
				domain.Monday: {
					BusinessID: "biz-1",
					DayOfWeek:  domain.Monday,
					OpenTime:   types.TimeString("09:00"),
					CloseTime:  types.TimeString("17:00"),
				},
			},
		},
		cat: &fakeCatalogRepo{
			services: map[string]*domain.Service{
				"svc-1": {ID: "svc-1", BusinessID: "biz-1", Name: "Potong Rambut", DurationMinutes: 45, Price: 50000, IsActive: true},
			},
			staff: []*domain.Staff{
				{ID: "staff-1", BusinessID: "biz-1", Name: "Andi", IsActive: true},
			},
		},
		cust:     &fakeCustomerRepo{customers: map[string]*domain.Customer{}},
		apt:      &fakeAppointmentRepo{},
		notifier: &recordingNotifier{},
		mailer:   &recordingMailer{},
	}
	f.uc = NewUseCase(f.biz, f.cat, f.cust, f.apt, inlineTxManager{}, f.notifier, f.mailer, nopLogger{}).
		WithTimeProvider(&fixedClock{now: time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)})
	return f
}

func validRequest() *Request {
	return &Request{
		BusinessID:    "biz-1",
		ServiceID:     "svc-1",
		CustomerName:  "Siti",
		CustomerPhone: "+628123456789",
		Date:          bookingDay,
		StartTime:     types.TimeString("10:00"),
	}
}

func TestExecute_BooksPendingAppointmentWithSnapshots(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "apt-new", resp.ID)
	assert.Equal(t, "staff-1", resp.StaffID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.PaymentUnpaid), resp.PaymentStatus)
	assert.Equal(t, int64(50000), resp.TotalPrice, "price is snapshotted at booking time")
	assert.Equal(t, bookingDay.Add(10*time.Hour), resp.StartTime)
	assert.Equal(t, bookingDay.Add(10*time.Hour+45*time.Minute), resp.EndTime, "end time derives from the service duration")

	assert.Equal(t, []string{"appointment.created"}, f.notifier.events)
}

func TestExecute_CreatesCustomerOnFirstBooking(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, f.cust.created, 1)
	require.NotNil(t, resp.CustomerID)
	assert.Equal(t, "cust-new", *resp.CustomerID)
	assert.Equal(t, "+628123456789", f.cust.created[0].Phone)
}

func TestExecute_ReusesCustomerByPhone(t *testing.T) {
	f := newFixture(t)
	f.cust.customers["+628123456789"] = &domain.Customer{ID: "cust-1", BusinessID: "biz-1", Phone: "+628123456789"}

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Empty(t, f.cust.created)
	require.NotNil(t, resp.CustomerID)
	assert.Equal(t, "cust-1", *resp.CustomerID)
}

func TestExecute_SendsConfirmationEmailWhenAddressGiven(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.CustomerEmail = ptr.Ptr("siti@example.com")

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{"siti@example.com"}, f.mailer.sentTo)
}

func TestExecute_NoEmailWithoutAddress(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Empty(t, f.mailer.sentTo)
}

func TestExecute_RejectsSlotOutsideOperatingHours(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.StartTime = types.TimeString("08:00")
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)

	// 16:30 + 45 minutes runs past the 17:00 close.
	req = validRequest()
	req.StartTime = types.TimeString("16:30")
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)
}

func TestExecute_RejectsClosedDay(t *testing.T) {
	f := newFixture(t)
	f.biz.hours[domain.Monday].IsClosed = true

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBusinessClosed)
}

func TestExecute_RejectsPastStart(t *testing.T) {
	f := newFixture(t)
	f.uc.WithTimeProvider(&fixedClock{now: bookingDay.Add(11 * time.Hour)})

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ConflictWithOnlyStaffMember(t *testing.T) {
	f := newFixture(t)
	f.apt.appointments = []*domain.Appointment{{
		ID:         "apt-1",
		BusinessID: "biz-1",
		StaffID:    "staff-1",
		StartTime:  bookingDay.Add(10 * time.Hour),
		EndTime:    bookingDay.Add(10*time.Hour + 30*time.Minute),
		Status:     domain.StatusConfirmed,
	}}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNoStaffAvailable)
}

func TestExecute_AssignsFreeStaffMemberOnConflict(t *testing.T) {
	f := newFixture(t)
	f.cat.staff = append(f.cat.staff, &domain.Staff{ID: "staff-2", BusinessID: "biz-1", Name: "Budi", IsActive: true})
	f.apt.appointments = []*domain.Appointment{{
		ID:         "apt-1",
		BusinessID: "biz-1",
		StaffID:    "staff-1",
		StartTime:  bookingDay.Add(10 * time.Hour),
		EndTime:    bookingDay.Add(10*time.Hour + 30*time.Minute),
		Status:     domain.StatusConfirmed,
	}}

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "staff-2", resp.StaffID)
}

func TestExecute_ExplicitBusyStaffRejected(t *testing.T) {
	f := newFixture(t)
	f.cat.staff = append(f.cat.staff, &domain.Staff{ID: "staff-2", BusinessID: "biz-1", Name: "Budi", IsActive: true})
	f.apt.appointments = []*domain.Appointment{{
		ID:         "apt-1",
		BusinessID: "biz-1",
		StaffID:    "staff-1",
		StartTime:  bookingDay.Add(10 * time.Hour),
		EndTime:    bookingDay.Add(10*time.Hour + 30*time.Minute),
		Status:     domain.StatusConfirmed,
	}}

	req := validRequest()
	req.StaffID = ptr.Ptr("staff-1")
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ExplicitUnknownStaffRejected(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.StaffID = ptr.Ptr("staff-missing")
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.apt.appointments = []*domain.Appointment{{
		ID:         "apt-1",
		BusinessID: "biz-1",
		StaffID:    "staff-1",
		StartTime:  bookingDay.Add(10 * time.Hour),
		EndTime:    bookingDay.Add(10*time.Hour + 30*time.Minute),
		Status:     domain.StatusCancelled,
	}}

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "staff-1", resp.StaffID)
}

func TestExecute_InactiveServiceRejected(t *testing.T) {
	f := newFixture(t)
	f.cat.services["svc-1"].IsActive = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_DeactivatedBusinessRejected(t *testing.T) {
	f := newFixture(t)
	f.biz.business.IsActive = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_NotesTooLongRejected(t *testing.T) {
	f := newFixture(t)

	long := make([]byte, domain.MaxNotesLength+1)
	for i := range long {
		long[i] = 'a'
	}
	req := validRequest()
	req.Notes = ptr.Ptr(string(long))

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
