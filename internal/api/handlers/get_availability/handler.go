package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidExcludeID = "некорректный excludeAppointmentId"
	msgInvalidTime      = "некорректный формат времени, ожидается HH:MM"
	msgDataUnavailable  = "данные расписания временно недоступны"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Параметры: date (по умолчанию сегодня), excludeAppointmentId и
// originalTime для сценария переноса существующей записи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date := domain.Today(time.Now())
	if raw := query.Get("date"); raw != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, raw, domain.ServiceLocation)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = parsed
	}

	req := &getAvailability.Request{Date: date}

	if raw := query.Get("excludeAppointmentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("GET /availability - Invalid excludeAppointmentId: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidExcludeID)
			return
		}
		req.ExcludeAppointmentID = &id
	}

	if raw := query.Get("originalTime"); raw != "" {
		startTime, err := types.NewTimeStringFromString(raw)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid originalTime: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTime)
			return
		}
		req.OriginalStartTime = &startTime
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailability.ErrDataUnavailable):
			h.logger.Error("GET /availability - Data unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgDataUnavailable)

		default:
			h.logger.Error("GET /availability - Failed to evaluate availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
