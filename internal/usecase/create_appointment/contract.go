package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/caseid"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetForSlot(ctx context.Context, date time.Time, startTime types.TimeString) ([]*domain.Appointment, error)
	GetLatestByCaseID(ctx context.Context, caseID string) (*domain.Appointment, error)
	ExistsByCaseID(ctx context.Context, caseID string) (bool, error)
}

// OverrideRepository интерфейс репозитория запретов расписания
type OverrideRepository interface {
	GetDayOverride(ctx context.Context, date time.Time) (*domain.ScheduleOverride, error)
	GetSlotOverride(ctx context.Context, date time.Time, startTime types.TimeString) (*domain.ScheduleOverride, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс моста синхронизации
type Notifier interface {
	Notify(ctx context.Context, table string, date time.Time)
}

// IdentifierIssuer интерфейс выпуска case id (для тестирования)
type IdentifierIssuer interface {
	Issue() (string, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// RandomIssuer боевой выпуск идентификаторов через pkg/caseid
type RandomIssuer struct{}

// Issue выпускает новый case id
func (RandomIssuer) Issue() (string, error) {
	return caseid.Issue()
}
