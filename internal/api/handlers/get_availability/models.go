package get_availability

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
)

// SlotResponse HTTP модель доступности одного слота
type SlotResponse struct {
	StartTime   string `json:"startTime"` // "10:00"
	Available   bool   `json:"available"`
	BookedCount int    `json:"bookedCount"`
	SpotsLeft   int    `json:"spotsLeft"`
	Disabled    bool   `json:"disabled"`
	Expired     bool   `json:"expired"`
	IsOriginal  bool   `json:"isOriginal,omitempty"`
}

// AvailabilityResponse HTTP модель доступности дня
type AvailabilityResponse struct {
	Date        string         `json:"date"` // "2026-09-01"
	DayDisabled bool           `json:"dayDisabled"`
	Slots       []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		DayDisabled: resp.DayDisabled,
		Slots:       make([]SlotResponse, len(resp.Slots)),
	}

	for i, s := range resp.Slots {
		out.Slots[i] = SlotResponse{
			StartTime:   s.StartTime.String(),
			Available:   s.Available,
			BookedCount: s.BookedCount,
			SpotsLeft:   s.SpotsLeft,
			Disabled:    s.Disabled,
			Expired:     s.Expired,
			IsOriginal:  s.IsOriginal,
		}
	}

	return out
}
