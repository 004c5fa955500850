package set_slot_override

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	manageOverrides "github.com/m04kA/SMC-AppointmentService/internal/usecase/manage_overrides"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// SetSlotOverrideRequest HTTP request model
type SetSlotOverrideRequest struct {
	Date      string `json:"date"`      // "2026-09-01"
	StartTime string `json:"startTime"` // "10:00"
	Disabled  bool   `json:"disabled"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SetSlotOverrideRequest) ToUseCaseRequest(userID int64) (*manageOverrides.SetSlotRequest, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, domain.ServiceLocation)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &manageOverrides.SetSlotRequest{
		UserID:    userID,
		Date:      date,
		StartTime: startTime,
		Disabled:  r.Disabled,
	}, nil
}
