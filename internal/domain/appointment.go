package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusMissed    AppointmentStatus = "missed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents one committed patient appointment
type Appointment struct {
	ID     int64
	CaseID string // short human-presentable retrieval code, unique

	Name   string
	Phone  string
	Gender *string
	Age    *int

	AppointmentDate time.Time        // calendar date, no time component
	StartTime       types.TimeString // one of the catalog slots
	Status          AppointmentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CountsTowardCapacity возвращает true, если запись занимает место в слоте
// В текущей модели место занимает любая не удалённая запись независимо
// от статуса; слот освобождается только административным удалением
func (a *Appointment) CountsTowardCapacity() bool {
	return true
}

// CanChangeStatus returns true if the appointment status can still be mutated by staff
func (a *Appointment) CanChangeStatus() bool {
	return a.Status == StatusScheduled
}

// ValidStatuses перечень допустимых статусов записи
var ValidStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusCompleted,
	StatusMissed,
	StatusCancelled,
}

// IsValidStatus проверяет, что статус входит в допустимый перечень
func IsValidStatus(s AppointmentStatus) bool {
	for _, valid := range ValidStatuses {
		if s == valid {
			return true
		}
	}
	return false
}
