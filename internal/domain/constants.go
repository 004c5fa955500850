package domain

import "time"

// Default schedule values: приёмные часы 09:00-23:00 с шагом 30 минут
// плюс завершающий слот в 23:00, не более 4 записей на слот
const (
	DefaultOpenHour            = 9
	DefaultCloseHour           = 23
	DefaultSlotIntervalMinutes = 30
	DefaultSlotCapacity        = 4
)

// Business validation constants
const (
	MaxNameLength  = 120
	MaxPhoneLength = 20
	MinPatientAge  = 0
	MaxPatientAge  = 130
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ServiceLocation каноническая таймзона сервиса (IST, UTC+5:30).
// Все проверки истечения слотов и нормализация календарных дат идут
// в этой зоне независимо от того, где запущен процесс - иначе около
// полуночи дата "уезжает" на соседний день.
var ServiceLocation = time.FixedZone("IST", 5*3600+30*60)

// Today возвращает начало сегодняшнего дня в таймзоне сервиса
func Today(now time.Time) time.Time {
	y, m, d := now.In(ServiceLocation).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ServiceLocation)
}

// NormalizeDate приводит дату к началу календарного дня в таймзоне сервиса
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.In(ServiceLocation).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ServiceLocation)
}

// IsSameDay проверяет, что два момента приходятся на один календарный
// день в таймзоне сервиса
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.In(ServiceLocation).Date()
	by, bm, bd := b.In(ServiceLocation).Date()
	return ay == by && am == bm && ad == bd
}
