package get_available_slots

import (
	"time"

	"github.com/janjikita/booking-service/internal/domain"
	"github.com/janjikita/booking-service/pkg/types"
)

// generateCandidateStarts returns the candidate start times of the day
// in minutes from midnight. Candidates run on a fixed 30-minute cadence
// from the opening time; a candidate exists only if the full service
// duration fits before closing.
func generateCandidateStarts(openTime, closeTime types.TimeString, durationMinutes int) ([]int, error) {
	openMin, err := openTime.Minutes()
	if err != nil {
		return nil, err
	}
	closeMin, err := closeTime.Minutes()
	if err != nil {
		return nil, err
	}

	starts := make([]int, 0)
	for start := openMin; start+durationMinutes <= closeMin; start += domain.SlotIntervalMinutes {
		starts = append(starts, start)
	}

	return starts, nil
}

// markAvailability tags each candidate start. A candidate is available
// when at least one staff member in the roster has no active appointment
// overlapping the [start, start+duration) interval. On the current day,
// candidates starting strictly before now are unavailable.
func markAvailability(
	starts []int,
	date time.Time,
	now time.Time,
	durationMinutes int,
	staff []*domain.Staff,
	appointments []*domain.Appointment,
) []domain.TimeSlot {
	today := domain.SameDay(date, now)

	slots := make([]domain.TimeSlot, 0, len(starts))
	for _, startMin := range starts {
		slotStart := atMinutes(date, startMin)
		slotEnd := slotStart.Add(time.Duration(durationMinutes) * time.Minute)

		available := false
		if !today || !slotStart.Before(now) {
			available = anyStaffFree(staff, appointments, slotStart, slotEnd)
		}

		ts, _ := types.NewTimeStringFromMinutes(startMin)
		slots = append(slots, domain.TimeSlot{
			Time:      ts,
			Available: available,
		})
	}

	return slots
}

// rosterFor narrows the active roster to one requested staff member.
// An id that matches nobody yields an empty roster, so every slot comes
// back unavailable rather than erroring.
func rosterFor(staff []*domain.Staff, staffID string) []*domain.Staff {
	for _, member := range staff {
		if member.ID == staffID {
			return []*domain.Staff{member}
		}
	}
	return nil
}

// anyStaffFree reports whether at least one staff member has no active
// appointment overlapping [slotStart, slotEnd). Touching boundaries do
// not conflict.
func anyStaffFree(staff []*domain.Staff, appointments []*domain.Appointment, slotStart, slotEnd time.Time) bool {
	for _, member := range staff {
		if staffFree(member.ID, appointments, slotStart, slotEnd) {
			return true
		}
	}
	return false
}

func staffFree(staffID string, appointments []*domain.Appointment, slotStart, slotEnd time.Time) bool {
	for _, apt := range appointments {
		if apt.StaffID != staffID || !apt.IsActive() {
			continue
		}
		if apt.Overlaps(slotStart, slotEnd) {
			return false
		}
	}
	return true
}

// atMinutes anchors minutes-from-midnight to date's calendar day in
// date's location.
func atMinutes(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, date.Location())
}
