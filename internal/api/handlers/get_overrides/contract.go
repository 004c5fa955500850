package get_overrides

import (
	"context"

	manageOverrides "github.com/m04kA/SMC-AppointmentService/internal/usecase/manage_overrides"
)

type ManageOverridesUseCase interface {
	List(ctx context.Context, req *manageOverrides.ListRequest) (*manageOverrides.ListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
