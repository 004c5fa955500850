package set_slot_override

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	manageOverrides "github.com/m04kA/SMC-AppointmentService/internal/usecase/manage_overrides"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidTimeSlot    = "некорректный временной слот"
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

// Handle PUT /api/v1/schedule/overrides/slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /schedule/overrides/slot - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetSlotOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/overrides/slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("PUT /schedule/overrides/slot - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.SetSlot(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, manageOverrides.ErrInvalidInput):
			h.logger.Warn("PUT /schedule/overrides/slot - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, manageOverrides.ErrInvalidTimeSlot):
			h.logger.Warn("PUT /schedule/overrides/slot - Invalid time slot: time=%s", req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, manageOverrides.ErrInvariantViolation):
			h.logger.Error("PUT /schedule/overrides/slot - Invariant violation: date=%s, time=%s, error=%v",
				req.Date, req.StartTime, err)
			handlers.RespondConflict(w, msgScheduleCorrupted)

		default:
			h.logger.Error("PUT /schedule/overrides/slot - Failed to toggle slot: date=%s, time=%s, error=%v",
				req.Date, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule/overrides/slot - Slot toggled: date=%s, time=%s, disabled=%t, changed=%t, user_id=%d",
		result.Date, req.StartTime, result.Disabled, result.Changed, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
