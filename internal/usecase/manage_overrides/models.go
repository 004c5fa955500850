package manage_overrides

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// SetDayRequest модель запроса на переключение дня целиком
type SetDayRequest struct {
	UserID int64

	Date     time.Time
	Disabled bool
}

// SetSlotRequest модель запроса на переключение конкретного слота
type SetSlotRequest struct {
	UserID int64

	Date      time.Time
	StartTime types.TimeString
	Disabled  bool
}

// ToggleResponse модель ответа на переключение запрета
// Changed=false означает, что запрошенное состояние уже действовало
// и повторный вызов ничего не изменил
type ToggleResponse struct {
	Date      string            `json:"date"`
	StartTime *types.TimeString `json:"startTime,omitempty"`
	Disabled  bool              `json:"disabled"`
	Changed   bool              `json:"changed"`
}

// ListRequest модель запроса списка запретов на дату
type ListRequest struct {
	Date time.Time
}

// Override модель запрета в ответе списка
type Override struct {
	ID        int64             `json:"id"`
	Date      string            `json:"date"`
	StartTime *types.TimeString `json:"startTime,omitempty"`
	Disabled  bool              `json:"disabled"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// ListResponse модель ответа со списком запретов на дату
type ListResponse struct {
	Date        string     `json:"date"`
	DayDisabled bool       `json:"dayDisabled"`
	Overrides   []Override `json:"overrides"`
}
