package create_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if strings.TrimSpace(req.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if len(req.Phone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone exceeds %d characters", ErrInvalidInput, domain.MaxPhoneLength)
	}

	if req.Age != nil && (*req.Age < domain.MinPatientAge || *req.Age > domain.MaxPatientAge) {
		return fmt.Errorf("%w: age %d out of range", ErrInvalidInput, *req.Age)
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

	if req.CaseID != nil && strings.TrimSpace(*req.CaseID) == "" {
		return fmt.Errorf("%w: caseId must not be empty when provided", ErrInvalidInput)
	}

	return nil
}

// validateSlot проверяет, что дата и слот в принципе пригодны для записи
// Проверка вместимости и запретов идёт позже, внутри транзакции
func validateSlot(schedule domain.ScheduleConfig, date time.Time, req *Request, now time.Time) error {
	if !schedule.ContainsSlot(req.StartTime) {
		return fmt.Errorf("%w: %s is not a valid slot", ErrInvalidTimeSlot, req.StartTime)
	}

	if date.Before(domain.Today(now)) {
		return ErrInvalidDate
	}

	if domain.IsSameDay(date, now) {
		instant, err := req.StartTime.At(date, domain.ServiceLocation)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
		}
		if !instant.After(now) {
			return ErrSlotExpired
		}
	}

	return nil
}
