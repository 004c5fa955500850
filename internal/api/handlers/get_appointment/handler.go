package get_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidCaseID = "некорректный case id"
	msgNotFound      = "запись по указанному case id не найдена"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/case/{caseId}
// По case id возвращается последняя запись: повторные пациенты
// переиспользуют идентификатор между визитами
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	caseID := vars["caseId"]

	appointment, err := h.service.GetByCaseID(r.Context(), caseID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments/case/{caseId} - Invalid case id")
			handlers.RespondBadRequest(w, msgInvalidCaseID)

		case errors.Is(err, appointments.ErrCaseNotFound):
			h.logger.Warn("GET /appointments/case/{caseId} - Case not found: case=%s", caseID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /appointments/case/{caseId} - Failed to get appointment: case=%s, error=%v",
				caseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/case/{caseId} - Appointment retrieved: id=%d, case=%s",
		appointment.ID, caseID)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}
