package confirm_reschedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janjikita/booking-service/internal/domain"
	appointmentRepo "github.com/janjikita/booking-service/internal/infra/storage/appointment"
)

type fakeAppointmentRepo struct {
	appointments map[string]*domain.Appointment
	day          []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	apt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return apt, nil
}

func (f *fakeAppointmentRepo) GetByBusinessAndDate(_ context.Context, _ string, _ time.Time, includeCancelled bool) ([]*domain.Appointment, error) {
	if includeCancelled {
		return f.day, nil
	}
	out := make([]*domain.Appointment, 0, len(f.day))
	for _, a := range f.day {
		if a.Status != domain.StatusCancelled {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ConfirmReschedule(_ context.Context, id string, newStart, newEnd time.Time) (*domain.Appointment, error) {
	apt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	apt.StartTime = newStart
	apt.EndTime = newEnd
	apt.Status = domain.StatusConfirmed
	apt.RescheduleRequestedAt = nil
	apt.RescheduleReason = nil
	apt.SuggestedSlot = nil
	apt.SuggestedSlotMessage = nil
	return apt, nil
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var day = time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

func pendingWithSuggestion() *domain.Appointment {
	requestedAt := day.Add(-48 * time.Hour)
	reason := "ada acara keluarga"
	slot := day.Add(14 * time.Hour)
	message := "bagaimana kalau jam 2 siang?"
	return &domain.Appointment{
		ID:                    "apt-1",
		BusinessID:            "biz-1",
		ServiceID:             "svc-1",
		StaffID:               "staff-1",
		CustomerName:          "Siti",
		CustomerPhone:         "+628123456789",
		StartTime:             day.Add(10 * time.Hour),
		EndTime:               day.Add(10*time.Hour + 45*time.Minute),
		Status:                domain.StatusPending,
		RescheduleRequestedAt: &requestedAt,
		RescheduleReason:      &reason,
		SuggestedSlot:         &slot,
		SuggestedSlotMessage:  &message,
	}
}

func newFixture(apt *domain.Appointment) (*fakeAppointmentRepo, *recordingNotifier, *UseCase) {
	repo := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{}}
	if apt != nil {
		repo.appointments[apt.ID] = apt
		repo.day = append(repo.day, apt)
	}
	notifier := &recordingNotifier{}
	uc := NewUseCase(repo, inlineTxManager{}, notifier, nopLogger{})
	return repo, notifier, uc
}

func TestExecute_MovesAppointmentAndClearsNegotiation(t *testing.T) {
	apt := pendingWithSuggestion()
	repo, notifier, uc := newFixture(apt)

	resp, err := uc.Execute(context.Background(), &Request{AppointmentID: "apt-1"})
	require.NoError(t, err)

	assert.Equal(t, day.Add(14*time.Hour), resp.StartTime)
	assert.Equal(t, day.Add(14*time.Hour+45*time.Minute), resp.EndTime, "original duration is preserved")
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	moved := repo.appointments["apt-1"]
	assert.Nil(t, moved.RescheduleRequestedAt)
	assert.Nil(t, moved.RescheduleReason)
	assert.Nil(t, moved.SuggestedSlot)
	assert.Nil(t, moved.SuggestedSlotMessage)

	assert.Equal(t, []string{"appointment.rescheduled"}, notifier.events)
}

func TestExecute_CallerSuppliedIntervalWins(t *testing.T) {
	apt := pendingWithSuggestion()
	repo, notifier, uc := newFixture(apt)

	start := day.Add(15 * time.Hour)
	end := day.Add(16 * time.Hour)
	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: "apt-1",
		NewStartTime:  &start,
		NewEndTime:    &end,
	})
	require.NoError(t, err)

	assert.Equal(t, start, resp.StartTime, "body times override the suggested slot")
	assert.Equal(t, end, resp.EndTime)
	assert.Nil(t, repo.appointments["apt-1"].SuggestedSlot)
	assert.Equal(t, []string{"appointment.rescheduled"}, notifier.events)
}

func TestExecute_CallerStartWithoutEndKeepsDuration(t *testing.T) {
	apt := pendingWithSuggestion()
	apt.SuggestedSlot = nil
	_, _, uc := newFixture(apt)

	start := day.Add(15 * time.Hour)
	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: "apt-1",
		NewStartTime:  &start,
	})
	require.NoError(t, err)

	assert.Equal(t, start.Add(45*time.Minute), resp.EndTime)
}

func TestExecute_CallerIntervalConflictRejected(t *testing.T) {
	apt := pendingWithSuggestion()
	repo, _, uc := newFixture(apt)
	repo.day = append(repo.day, &domain.Appointment{
		ID:         "apt-2",
		BusinessID: "biz-1",
		StaffID:    "staff-1",
		StartTime:  day.Add(15 * time.Hour),
		EndTime:    day.Add(16 * time.Hour),
		Status:     domain.StatusConfirmed,
	})

	start := day.Add(15*time.Hour + 30*time.Minute)
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: "apt-1",
		NewStartTime:  &start,
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_EndNotAfterStartRejected(t *testing.T) {
	apt := pendingWithSuggestion()
	_, _, uc := newFixture(apt)

	start := day.Add(15 * time.Hour)
	end := day.Add(15 * time.Hour)
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: "apt-1",
		NewStartTime:  &start,
		NewEndTime:    &end,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_EndWithoutStartRejected(t *testing.T) {
	apt := pendingWithSuggestion()
	_, _, uc := newFixture(apt)

	end := day.Add(16 * time.Hour)
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: "apt-1",
		NewEndTime:    &end,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_NoSuggestedSlotRejected(t *testing.T) {
	apt := pendingWithSuggestion()
	apt.SuggestedSlot = nil
	_, _, uc := newFixture(apt)

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: "apt-1"})
	assert.ErrorIs(t, err, ErrNoSuggestedSlot)
}

func TestExecute_TerminalAppointmentRejected(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusCancelled, domain.StatusCompleted} {
		apt := pendingWithSuggestion()
		apt.Status = status
		_, _, uc := newFixture(apt)

		_, err := uc.Execute(context.Background(), &Request{AppointmentID: "apt-1"})
		assert.ErrorIs(t, err, ErrTerminalStatus, "status %s", status)
	}
}

func TestExecute_TargetSlotTakenRejected(t *testing.T) {
	apt := pendingWithSuggestion()
	repo, _, uc := newFixture(apt)
	repo.day = append(repo.day, &domain.Appointment{
		ID:         "apt-2",
		BusinessID: "biz-1",
		StaffID:    "staff-1",
		StartTime:  day.Add(14 * time.Hour),
		EndTime:    day.Add(15 * time.Hour),
		Status:     domain.StatusConfirmed,
	})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: "apt-1"})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_OtherStaffConflictIgnored(t *testing.T) {
	apt := pendingWithSuggestion()
	repo, _, uc := newFixture(apt)
	repo.day = append(repo.day, &domain.Appointment{
		ID:         "apt-2",
		BusinessID: "biz-1",
		StaffID:    "staff-2",
		StartTime:  day.Add(14 * time.Hour),
		EndTime:    day.Add(15 * time.Hour),
		Status:     domain.StatusConfirmed,
	})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: "apt-1"})
	assert.NoError(t, err)
}

func TestExecute_CancelledConflictIgnored(t *testing.T) {
	apt := pendingWithSuggestion()
	repo, _, uc := newFixture(apt)
	repo.day = append(repo.day, &domain.Appointment{
		ID:         "apt-2",
		BusinessID: "biz-1",
		StaffID:    "staff-1",
		StartTime:  day.Add(14 * time.Hour),
		EndTime:    day.Add(15 * time.Hour),
		Status:     domain.StatusCancelled,
	})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: "apt-1"})
	assert.NoError(t, err)
}

func TestExecute_UnknownAppointmentRejected(t *testing.T) {
	_, _, uc := newFixture(nil)

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: "apt-missing"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_MissingIDRejected(t *testing.T) {
	_, _, uc := newFixture(nil)

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
