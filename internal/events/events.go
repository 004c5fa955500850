// Package events is the live synchronization bridge: it fans change
// notifications for the appointments and time_slot_settings tables out
// to availability viewers, locally through an in-process hub and across
// instances through an optional RabbitMQ relay.
//
// A notification only says "this date changed". Delivery is
// at-least-once, coalescing and unordered - consumers must re-fetch and
// re-evaluate availability, never treat the payload as a state patch.
package events

import "time"

// Logical table names, matching the storage tables
const (
	TableAppointments = "appointments"
	TableOverrides    = "time_slot_settings"
)

// Change notification about a mutation affecting one date
type Change struct {
	Table string `json:"table"`
	Date  string `json:"date"` // YYYY-MM-DD in the service timezone
}

// NewChange создает уведомление об изменении
func NewChange(table string, date time.Time) Change {
	return Change{
		Table: table,
		Date:  date.Format("2006-01-02"),
	}
}
