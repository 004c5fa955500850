package set_slot_override

import (
	"context"

	manageOverrides "github.com/m04kA/SMC-AppointmentService/internal/usecase/manage_overrides"
)

type ManageOverridesUseCase interface {
	SetSlot(ctx context.Context, req *manageOverrides.SetSlotRequest) (*manageOverrides.ToggleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
