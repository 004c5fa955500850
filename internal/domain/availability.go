package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// SlotAvailability derived per-slot verdict for one date at one moment in time.
// Never persisted, recomputed on every query.
type SlotAvailability struct {
	StartTime   types.TimeString
	Available   bool
	BookedCount int
	SpotsLeft   int // clamped at zero

	// Причины недоступности - вызывающей стороне нужны разные сообщения
	Disabled bool // административный запрет на слот
	Expired  bool // время слота уже прошло (только для сегодняшней даты)

	// IsOriginal помечает исходный слот редактируемой записи: он остаётся
	// выбираемым несмотря на истёкшее время, но вместимость не обходится
	IsOriginal bool
}

// DayAvailability derived availability view for a whole date.
// DayDisabled is a distinct signal from "every slot full" - callers
// render different messaging for the two cases.
type DayAvailability struct {
	Date        time.Time
	DayDisabled bool
	Slots       []SlotAvailability
}

// HasFreeSlot возвращает true, если хотя бы один слот доступен
func (d *DayAvailability) HasFreeSlot() bool {
	if d.DayDisabled {
		return false
	}
	for _, s := range d.Slots {
		if s.Available {
			return true
		}
	}
	return false
}
