package set_day_override

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	manageOverrides "github.com/m04kA/SMC-AppointmentService/internal/usecase/manage_overrides"
)

// SetDayOverrideRequest HTTP request model
type SetDayOverrideRequest struct {
	Date     string `json:"date"` // "2026-09-01"
	Disabled bool   `json:"disabled"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SetDayOverrideRequest) ToUseCaseRequest(userID int64) (*manageOverrides.SetDayRequest, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, domain.ServiceLocation)
	if err != nil {
		return nil, err
	}

	return &manageOverrides.SetDayRequest{
		UserID:   userID,
		Date:     date,
		Disabled: r.Disabled,
	}, nil
}
