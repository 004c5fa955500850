package override

import "errors"

var (
	// ErrOverrideNotFound возвращается, когда запись запрета не найдена
	ErrOverrideNotFound = errors.New("override.repository: override not found")

	// ErrInvariantViolation возвращается, когда для одной цели (день или
	// конкретный слот) найдено больше одной записи. Частичные уникальные
	// индексы не должны такое допускать - это дефект хранилища, требующий
	// вмешательства оператора, а не тихого выбора одной из записей
	ErrInvariantViolation = errors.New("override.repository: more than one override row for target")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("override.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("override.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("override.repository: failed to scan row")
)
