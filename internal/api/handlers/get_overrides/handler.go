package get_overrides

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	manageOverrides "github.com/m04kA/SMC-AppointmentService/internal/usecase/manage_overrides"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDataUnavailable = "данные расписания временно недоступны"
)

type Handler struct {
	useCase ManageOverridesUseCase
	logger  Logger
}

func NewHandler(useCase ManageOverridesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/overrides?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := domain.Today(time.Now())
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, raw, domain.ServiceLocation)
		if err != nil {
			h.logger.Warn("GET /schedule/overrides - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = parsed
	}

	result, err := h.useCase.List(r.Context(), &manageOverrides.ListRequest{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, manageOverrides.ErrInvalidInput):
			h.logger.Warn("GET /schedule/overrides - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, manageOverrides.ErrDataUnavailable):
			h.logger.Error("GET /schedule/overrides - Data unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgDataUnavailable)

		default:
			h.logger.Error("GET /schedule/overrides - Failed to list overrides: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
