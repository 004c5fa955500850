package manage_overrides

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// OverrideRepository интерфейс репозитория запретов расписания
type OverrideRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.ScheduleOverride, error)
	GetDayOverride(ctx context.Context, date time.Time) (*domain.ScheduleOverride, error)
	GetSlotOverride(ctx context.Context, date time.Time, startTime types.TimeString) (*domain.ScheduleOverride, error)
	Create(ctx context.Context, o *domain.ScheduleOverride) (*domain.ScheduleOverride, error)
	SetDisabled(ctx context.Context, id int64, disabled bool) error
	DeleteAllExcept(ctx context.Context, date time.Time, keepID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс моста синхронизации
type Notifier interface {
	Notify(ctx context.Context, table string, date time.Time)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
