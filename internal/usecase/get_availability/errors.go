package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrDataUnavailable возвращается, когда хранилище недоступно.
	// Отличается от пустого результата: вызывающая сторона не должна
	// трактовать недоступность данных как "весь день свободен"
	ErrDataUnavailable = errors.New("get_availability: data source unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
