package get_available_slots

import (
	getSlots "github.com/janjikita/booking-service/internal/usecase/get_available_slots"
)

// SlotResponse is one candidate start time.
type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// SlotsResponse is the HTTP response model.
type SlotsResponse struct {
	BusinessID string         `json:"businessId"`
	ServiceID  string         `json:"serviceId"`
	Date       string         `json:"date"`
	Slots      []SlotResponse `json:"slots"`
}

// FromUseCaseResponse converts the use case response.
func FromUseCaseResponse(resp *getSlots.Response, date string) *SlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			Time:      s.Time.String(),
			Available: s.Available,
		}
	}
	return &SlotsResponse{
		BusinessID: resp.BusinessID,
		ServiceID:  resp.ServiceID,
		Date:       date,
		Slots:      slots,
	}
}
