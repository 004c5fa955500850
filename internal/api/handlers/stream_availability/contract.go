package stream_availability

import (
	"github.com/m04kA/SMC-AppointmentService/internal/events"
)

// Broadcaster интерфейс in-process части моста синхронизации
type Broadcaster interface {
	Subscribe(date string) *events.Subscription
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
