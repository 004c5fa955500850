package create_appointment

import "errors"

var (
	// ErrSlotFull возвращается, когда вместимость слота исчерпана.
	// Ожидаемый, восстановимый исход: пользователю предлагается выбрать
	// другое время после повторной загрузки доступности
	ErrSlotFull = errors.New("create_appointment: slot is full")

	// ErrSlotUnavailable возвращается, когда слот или весь день закрыт
	// административным запретом
	ErrSlotUnavailable = errors.New("create_appointment: slot is unavailable")

	// ErrSlotExpired возвращается при попытке записаться на уже
	// прошедшее время сегодняшнего дня
	ErrSlotExpired = errors.New("create_appointment: slot time has passed")

	// ErrInvalidTimeSlot возвращается, когда время не входит в каталог слотов
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrCaseNotFound возвращается, когда указанный case id повторного
	// пациента не найден
	ErrCaseNotFound = errors.New("create_appointment: case id not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
