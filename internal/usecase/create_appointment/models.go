package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
// UserID - идентификатор аутентифицированного вызывающего: запись
// всегда делается от имени известной стороны, а не неявного
// глобального состояния входа
type Request struct {
	UserID int64

	Name   string
	Phone  string
	Gender *string
	Age    *int

	Date      time.Time        // дата записи (без времени)
	StartTime types.TimeString // слот, например "10:00"

	// CaseID повторного пациента; nil - новый пациент, идентификатор
	// будет выпущен
	CaseID *string
}

// Response модель ответа с созданной записью
type Response struct {
	ID     int64  `json:"id"`
	CaseID string `json:"caseId"`

	Name   string  `json:"name"`
	Phone  string  `json:"phone"`
	Gender *string `json:"gender,omitempty"`
	Age    *int    `json:"age,omitempty"`

	AppointmentDate time.Time        `json:"appointmentDate"`
	StartTime       types.TimeString `json:"startTime"`
	Status          string           `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
}
