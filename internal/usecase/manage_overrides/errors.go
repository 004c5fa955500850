package manage_overrides

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("manage_overrides: invalid input data")

	// ErrInvalidTimeSlot возвращается, когда время не входит в каталог слотов
	ErrInvalidTimeSlot = errors.New("manage_overrides: invalid time slot")

	// ErrCleanupIncomplete возвращается, когда при включении дня целиком не
	// удалось снести послотовые запреты. Транзакция откатывается, день
	// остаётся выключенным - состояние не бывает наполовину очищенным
	ErrCleanupIncomplete = errors.New("manage_overrides: cascading cleanup incomplete")

	// ErrInvariantViolation возвращается, когда хранилище содержит больше
	// одной записи запрета на одну цель
	ErrInvariantViolation = errors.New("manage_overrides: storage invariant violation")

	// ErrDataUnavailable возвращается, когда не удалось прочитать запреты
	ErrDataUnavailable = errors.New("manage_overrides: schedule data unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("manage_overrides: internal error")
)
