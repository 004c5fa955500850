package set_day_override

import (
	"context"

	manageOverrides "github.com/m04kA/SMC-AppointmentService/internal/usecase/manage_overrides"
)

type ManageOverridesUseCase interface {
	SetDay(ctx context.Context, req *manageOverrides.SetDayRequest) (*manageOverrides.ToggleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
