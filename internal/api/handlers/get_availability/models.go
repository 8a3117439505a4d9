package get_availability

import (
	"github.com/m04kA/SMC-TireBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-TireBooking/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date     string         `json:"date"`
	Capacity int            `json:"capacity"`
	Slots    []SlotResponse `json:"slots"`
}

// SlotResponse состояние слота без персональных данных клиентов
type SlotResponse struct {
	Time       string `json:"time"`
	Status     string `json:"status"` // available | full | closed
	Booked     int    `json:"booked"`
	Remaining  int    `json:"remaining"`
	Overbooked bool   `json:"overbooked,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			Time:       slot.Time.String(),
			Status:     string(slot.Status),
			Booked:     slot.Booked,
			Remaining:  slot.Remaining,
			Overbooked: slot.Overbooked,
		})
	}
	return &AvailabilityResponse{
		Date:     resp.Date.Format(domain.DateFormat),
		Capacity: resp.Capacity,
		Slots:    slots,
	}
}
