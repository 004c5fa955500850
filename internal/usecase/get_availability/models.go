package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на получение доступности слотов
type Request struct {
	Date time.Time // дата (без времени)

	// Параметры сценария редактирования записи:
	// ExcludeAppointmentID исключает редактируемую запись из подсчёта
	// занятости её собственного слота, OriginalStartTime помечает
	// исходный слот как выбираемый несмотря на истёкшее время
	ExcludeAppointmentID *int64
	OriginalStartTime    *types.TimeString
}

// Response модель ответа с доступностью всех слотов даты
type Response struct {
	Date        time.Time `json:"date"`
	DayDisabled bool      `json:"dayDisabled"`
	Slots       []Slot    `json:"slots"`
}

// Slot доступность одного слота
type Slot struct {
	StartTime   types.TimeString `json:"startTime"`
	Available   bool             `json:"available"`
	BookedCount int              `json:"bookedCount"`
	SpotsLeft   int              `json:"spotsLeft"`
	Disabled    bool             `json:"disabled"`
	Expired     bool             `json:"expired"`
	IsOriginal  bool             `json:"isOriginal,omitempty"`
}
