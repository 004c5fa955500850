package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ScheduleOverride represents an administrator's suspension of bookability
// for a whole day or a single slot on a date.
//
// StartTime == nil means the record applies to the entire day.
// Absence of a record means the target is bookable, so "enabled" never
// has to be persisted for a target that was never disabled.
//
// Invariant: at most one day-level record per date and at most one
// record per (date, start_time) pair. Enforced by partial unique
// indexes on time_slot_settings; a second row is a storage defect.
type ScheduleOverride struct {
	ID         int64
	Date       time.Time
	StartTime  *types.TimeString
	IsDisabled bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDayLevel returns true if the override applies to the whole day
func (o *ScheduleOverride) IsDayLevel() bool {
	return o.StartTime == nil
}

// AppliesTo возвращает true, если запрет действует на указанный слот
func (o *ScheduleOverride) AppliesTo(slot types.TimeString) bool {
	if !o.IsDisabled {
		return false
	}
	if o.IsDayLevel() {
		return true
	}
	return *o.StartTime == slot
}
