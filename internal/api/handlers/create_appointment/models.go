package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	Name   string  `json:"name"`
	Phone  string  `json:"phone"`
	Gender *string `json:"gender,omitempty"`
	Age    *int    `json:"age,omitempty"`

	AppointmentDate string `json:"appointmentDate"` // "2026-09-01"
	StartTime       string `json:"startTime"`       // "10:00"

	// CaseID повторного пациента; пусто для нового
	CaseID *string `json:"caseId,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID     int64  `json:"id"`
	CaseID string `json:"caseId"`

	Name   string  `json:"name"`
	Phone  string  `json:"phone"`
	Gender *string `json:"gender,omitempty"`
	Age    *int    `json:"age,omitempty"`

	AppointmentDate string `json:"appointmentDate"`
	StartTime       string `json:"startTime"`
	Status          string `json:"status"`

	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID int64) (*createAppointment.Request, error) {
	appointmentDate, err := time.ParseInLocation(domain.DateFormat, r.AppointmentDate, domain.ServiceLocation)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		UserID:    userID,
		Name:      r.Name,
		Phone:     r.Phone,
		Gender:    r.Gender,
		Age:       r.Age,
		Date:      appointmentDate,
		StartTime: startTime,
		CaseID:    r.CaseID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		CaseID:          resp.CaseID,
		Name:            resp.Name,
		Phone:           resp.Phone,
		Gender:          resp.Gender,
		Age:             resp.Age,
		AppointmentDate: resp.AppointmentDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
