package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// DeleteAppointmentRequest запрос на удаление записи
type DeleteAppointmentRequest struct {
	UserID int64 `json:"userId"`
}

// ListByDateRequest запрос списка записей на дату
type ListByDateRequest struct {
	UserID int64
	Date   time.Time
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID     int64  `json:"id"`
	CaseID string `json:"caseId"`

	Name   string  `json:"name"`
	Phone  string  `json:"phone"`
	Gender *string `json:"gender,omitempty"`
	Age    *int    `json:"age,omitempty"`

	AppointmentDate string `json:"appointmentDate"` // "2026-09-01"
	StartTime       string `json:"startTime"`       // "10:00"
	Status          string `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:              a.ID,
		CaseID:          a.CaseID,
		Name:            a.Name,
		Phone:           a.Phone,
		Gender:          a.Gender,
		Age:             a.Age,
		AppointmentDate: a.AppointmentDate.Format(domain.DateFormat),
		StartTime:       a.StartTime.String(),
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if apptResp := FromDomainAppointment(a); apptResp != nil {
			resp.Appointments = append(resp.Appointments, *apptResp)
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !domain.IsValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
