package manage_business

import (
	"github.com/janjikita/booking-service/internal/domain"
	businessService "github.com/janjikita/booking-service/internal/service/business"
	"github.com/janjikita/booking-service/pkg/types"
)

type updateProfileRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
}

type hoursUpdateRequest struct {
	Hours []hoursEntry `json:"hours"`
}

type hoursEntry struct {
	DayOfWeek  string `json:"dayOfWeek"`
	OpenTime   string `json:"openTime"`
	CloseTime  string `json:"closeTime"`
	IsClosed   bool   `json:"isClosed"`
	ApplyToAll bool   `json:"applyToAll,omitempty"`
}

type hoursResponse struct {
	Hours []hoursEntry `json:"hours"`
}

type changeSubscriptionRequest struct {
	Tier string `json:"tier"`
}

func (r *hoursUpdateRequest) toServiceUpdates() []businessService.HoursUpdate {
	updates := make([]businessService.HoursUpdate, len(r.Hours))
	for i, h := range r.Hours {
		updates[i] = businessService.HoursUpdate{
			DayOfWeek:  h.DayOfWeek,
			OpenTime:   parseTime(h.OpenTime),
			CloseTime:  parseTime(h.CloseTime),
			IsClosed:   h.IsClosed,
			ApplyToAll: h.ApplyToAll,
		}
	}
	return updates
}

// parseTime defers format validation to the service layer.
func parseTime(s string) types.TimeString {
	return types.TimeString(s)
}

func fromDomainHours(hours []*domain.OperatingHours) *hoursResponse {
	entries := make([]hoursEntry, len(hours))
	for i, h := range hours {
		entries[i] = hoursEntry{
			DayOfWeek: string(h.DayOfWeek),
			OpenTime:  h.OpenTime.String(),
			CloseTime: h.CloseTime.String(),
			IsClosed:  h.IsClosed,
		}
	}
	return &hoursResponse{Hours: entries}
}
