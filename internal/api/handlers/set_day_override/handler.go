package set_day_override

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	manageOverrides "github.com/m04kA/SMC-AppointmentService/internal/usecase/manage_overrides"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgCleanupIncomplete  = "не удалось снять послотовые запреты, день остался выключенным"
	msgScheduleCorrupted  = "конфликт данных расписания, требуется вмешательство оператора"
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

// Handle PUT /api/v1/schedule/overrides/day
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /schedule/overrides/day - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetDayOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/overrides/day - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("PUT /schedule/overrides/day - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.SetDay(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, manageOverrides.ErrInvalidInput):
			h.logger.Warn("PUT /schedule/overrides/day - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, manageOverrides.ErrCleanupIncomplete):
			h.logger.Error("PUT /schedule/overrides/day - Cleanup incomplete: date=%s, error=%v", req.Date, err)
			handlers.RespondConflict(w, msgCleanupIncomplete)

		case errors.Is(err, manageOverrides.ErrInvariantViolation):
			h.logger.Error("PUT /schedule/overrides/day - Invariant violation: date=%s, error=%v", req.Date, err)
			handlers.RespondConflict(w, msgScheduleCorrupted)

		default:
			h.logger.Error("PUT /schedule/overrides/day - Failed to toggle day: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule/overrides/day - Day toggled: date=%s, disabled=%t, changed=%t, user_id=%d",
		result.Date, result.Disabled, result.Changed, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
