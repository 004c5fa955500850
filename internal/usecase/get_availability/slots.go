package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// evaluateParams входные параметры чистой оценки доступности
type evaluateParams struct {
	date time.Time // нормализованная дата в таймзоне сервиса
	now  time.Time

	excludeAppointmentID *int64
	originalStartTime    *types.TimeString
}

// evaluate вычисляет доступность всех слотов даты
// Чистая функция: каталог слотов x записи x запреты x текущее время.
// Результат не кэшируется - пересчитывается на каждый запрос
func evaluate(
	cfg domain.ScheduleConfig,
	appointments []*domain.Appointment,
	overrides []*domain.ScheduleOverride,
	p evaluateParams,
) domain.DayAvailability {
	slots := cfg.GenerateSlots()
	counts := countPerSlot(appointments, p.excludeAppointmentID)

	dayDisabled := hasDayDisable(overrides)

	view := domain.DayAvailability{
		Date:        p.date,
		DayDisabled: dayDisabled,
		Slots:       make([]domain.SlotAvailability, len(slots)),
	}

	for i, slot := range slots {
		booked := counts[slot]

		spotsLeft := cfg.SlotCapacity - booked
		if spotsLeft < 0 {
			spotsLeft = 0
		}

		sa := domain.SlotAvailability{
			StartTime:   slot,
			BookedCount: booked,
			SpotsLeft:   spotsLeft,
			Disabled:    dayDisabled || hasSlotDisable(overrides, slot),
			Expired:     isExpired(slot, p.date, p.now),
		}

		sa.Available = !sa.Disabled && !sa.Expired && booked < cfg.SlotCapacity

		// Исходный слот редактируемой записи остаётся выбираемым,
		// даже если его время уже прошло. Обходится только истечение:
		// вместимость и любые запреты действуют как обычно
		if p.originalStartTime != nil && *p.originalStartTime == slot && !dayDisabled {
			sa.IsOriginal = true
			if !sa.Available && sa.Expired && !sa.Disabled && booked < cfg.SlotCapacity {
				sa.Available = true
			}
		}

		view.Slots[i] = sa
	}

	return view
}

// countPerSlot группирует записи по слотам
// Запись с excludeID не учитывается - это редактируемая запись,
// собственное место которой не должно блокировать её же слот
func countPerSlot(appointments []*domain.Appointment, excludeID *int64) map[types.TimeString]int {
	counts := make(map[types.TimeString]int)

	for _, appt := range appointments {
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}
		if !appt.CountsTowardCapacity() {
			continue
		}
		counts[appt.StartTime]++
	}

	return counts
}

// hasDayDisable возвращает true при активном дневном запрете
func hasDayDisable(overrides []*domain.ScheduleOverride) bool {
	for _, o := range overrides {
		if o.IsDayLevel() && o.IsDisabled {
			return true
		}
	}
	return false
}

// hasSlotDisable возвращает true при активном запрете конкретного слота
func hasSlotDisable(overrides []*domain.ScheduleOverride, slot types.TimeString) bool {
	for _, o := range overrides {
		if !o.IsDayLevel() && o.IsDisabled && *o.StartTime == slot {
			return true
		}
	}
	return false
}

// isExpired возвращает true, если момент слота уже наступил
// Сравнение идёт в канонической таймзоне сервиса: слот истекает для
// сегодняшней даты, будущие даты не истекают никогда
func isExpired(slot types.TimeString, date, now time.Time) bool {
	if !domain.IsSameDay(date, now) {
		// Прошедшие даты целиком в прошлом
		return domain.NormalizeDate(date).Before(domain.Today(now))
	}

	instant, err := slot.At(date, domain.ServiceLocation)
	if err != nil {
		return false
	}

	return !instant.After(now)
}
