package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrCaseNotFound возвращается, когда по case id нет ни одной записи
	ErrCaseNotFound = errors.New("case id not found")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrStatusLocked возвращается, когда статус записи уже финален и не
	// подлежит изменению
	ErrStatusLocked = errors.New("appointment status can no longer be changed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
