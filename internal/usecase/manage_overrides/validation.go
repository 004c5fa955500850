package manage_overrides

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateDayRequest валидирует запрос переключения дня
func validateDayRequest(req *SetDayRequest) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// validateSlotRequest валидирует запрос переключения слота
// Слот обязан входить в каталог: запрет несуществующего времени не
// создаётся, даже выключающий
func validateSlotRequest(schedule domain.ScheduleConfig, req *SetSlotRequest) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if !schedule.ContainsSlot(req.StartTime) {
		return fmt.Errorf("%w: %s is not a valid slot", ErrInvalidTimeSlot, req.StartTime)
	}
	return nil
}
