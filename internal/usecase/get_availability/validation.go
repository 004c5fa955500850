package get_availability

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.OriginalStartTime != nil {
		if err := req.OriginalStartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid originalStartTime: %v", ErrInvalidInput, err)
		}
	}

	if req.ExcludeAppointmentID != nil && *req.ExcludeAppointmentID <= 0 {
		return fmt.Errorf("%w: excludeAppointmentId must be positive", ErrInvalidInput)
	}

	return nil
}
