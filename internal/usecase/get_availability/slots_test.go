package get_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func shortDayConfig(t *testing.T) domain.ScheduleConfig {
	t.Helper()
	cfg, err := domain.NewScheduleConfig(9, 11, 30, 4)
	require.NoError(t, err)
	return cfg
}

func appt(id int64, date time.Time, startTime types.TimeString) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		CaseID:          "TESTCASE1",
		Name:            "Пациент",
		Phone:           "+79990000000",
		AppointmentDate: date,
		StartTime:       startTime,
		Status:          domain.StatusScheduled,
	}
}

func dayOverride(date time.Time, disabled bool) *domain.ScheduleOverride {
	return &domain.ScheduleOverride{ID: 1, Date: date, IsDisabled: disabled}
}

func slotOverride(id int64, date time.Time, startTime types.TimeString, disabled bool) *domain.ScheduleOverride {
	return &domain.ScheduleOverride{ID: id, Date: date, StartTime: &startTime, IsDisabled: disabled}
}

func slotByTime(t *testing.T, view domain.DayAvailability, startTime types.TimeString) domain.SlotAvailability {
	t.Helper()
	for _, s := range view.Slots {
		if s.StartTime == startTime {
			return s
		}
	}
	t.Fatalf("slot %s not found in view", startTime)
	return domain.SlotAvailability{}
}

func TestEvaluate_EmptyFutureDay(t *testing.T) {
	cfg := shortDayConfig(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, domain.ServiceLocation)
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, domain.ServiceLocation)

	view := evaluate(cfg, nil, nil, evaluateParams{date: date, now: now})

	require.Len(t, view.Slots, 5)
	assert.False(t, view.DayDisabled)

	expected := []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00"}
	for i, s := range view.Slots {
		assert.Equal(t, expected[i], s.StartTime)
		assert.True(t, s.Available)
		assert.Equal(t, 0, s.BookedCount)
		assert.Equal(t, 4, s.SpotsLeft)
		assert.False(t, s.Expired)
		assert.False(t, s.Disabled)
	}
	assert.True(t, view.HasFreeSlot())
}

func TestEvaluate_CapacityExhausted(t *testing.T) {
	cfg := shortDayConfig(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, domain.ServiceLocation)
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, domain.ServiceLocation)

	appointments := []*domain.Appointment{
		appt(1, date, "10:00"),
		appt(2, date, "10:00"),
		appt(3, date, "10:00"),
		appt(4, date, "10:00"),
	}

	view := evaluate(cfg, appointments, nil, evaluateParams{date: date, now: now})

	full := slotByTime(t, view, "10:00")
	assert.False(t, full.Available)
	assert.Equal(t, 4, full.BookedCount)
	assert.Equal(t, 0, full.SpotsLeft)

	// Соседние слоты не задеты
	assert.True(t, slotByTime(t, view, "09:30").Available)
	assert.True(t, slotByTime(t, view, "10:30").Available)
}

func TestEvaluate_SpotsLeftClampedAtZero(t *testing.T) {
	cfg := shortDayConfig(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, domain.ServiceLocation)
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, domain.ServiceLocation)

	// Шесть записей в слот вместимостью четыре: дефект данных, но
	// отрицательный остаток наружу не уходит
	appointments := make([]*domain.Appointment, 0, 6)
	for i := int64(1); i <= 6; i++ {
		appointments = append(appointments, appt(i, date, "09:00"))
	}

	view := evaluate(cfg, appointments, nil, evaluateParams{date: date, now: now})

	overbooked := slotByTime(t, view, "09:00")
	assert.Equal(t, 6, overbooked.BookedCount)
	assert.Equal(t, 0, overbooked.SpotsLeft)
	assert.False(t, overbooked.Available)
}

func TestEvaluate_DayDisableSupersedesEverything(t *testing.T) {
	cfg := shortDayConfig(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, domain.ServiceLocation)
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, domain.ServiceLocation)

	overrides := []*domain.ScheduleOverride{
		dayOverride(date, true),
		// Послотовая запись "включено" не перебивает дневной запрет
		slotOverride(2, date, "10:00", false),
	}

	original := types.TimeString("09:30")
	view := evaluate(cfg, nil, overrides, evaluateParams{
		date:              date,
		now:               now,
		originalStartTime: &original,
	})

	assert.True(t, view.DayDisabled)
	assert.False(t, view.HasFreeSlot())
	for _, s := range view.Slots {
		assert.False(t, s.Available, "slot %s must be unavailable on a disabled day", s.StartTime)
		assert.True(t, s.Disabled)
		// Исходный слот редактируемой записи тоже не обходит дневной запрет
		assert.False(t, s.IsOriginal)
	}
}

func TestEvaluate_SlotDisable(t *testing.T) {
	cfg := shortDayConfig(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, domain.ServiceLocation)
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, domain.ServiceLocation)

	overrides := []*domain.ScheduleOverride{
		slotOverride(1, date, "10:00", true),
	}

	view := evaluate(cfg, nil, overrides, evaluateParams{date: date, now: now})

	assert.False(t, view.DayDisabled)

	disabled := slotByTime(t, view, "10:00")
	assert.True(t, disabled.Disabled)
	assert.False(t, disabled.Available)

	assert.True(t, slotByTime(t, view, "09:30").Available)
	assert.True(t, slotByTime(t, view, "10:30").Available)
}

func TestEvaluate_ReenabledSlotOverrideHasNoEffect(t *testing.T) {
	cfg := shortDayConfig(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, domain.ServiceLocation)
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, domain.ServiceLocation)

	overrides := []*domain.ScheduleOverride{
		slotOverride(1, date, "10:00", false),
	}

	view := evaluate(cfg, nil, overrides, evaluateParams{date: date, now: now})

	assert.True(t, slotByTime(t, view, "10:00").Available)
}

func TestEvaluate_SameDayExpiry(t *testing.T) {
	cfg := shortDayConfig(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, domain.ServiceLocation)
	// 10:05 того же дня: 09:00, 09:30 и ровно наступивший 10:00 истекли
	now := time.Date(2026, 9, 15, 10, 5, 0, 0, domain.ServiceLocation)

	view := evaluate(cfg, nil, nil, evaluateParams{date: date, now: now})

	expired := map[types.TimeString]bool{
		"09:00": true,
		"09:30": true,
		"10:00": true,
		"10:30": false,
		"11:00": false,
	}

	for slot, want := range expired {
		s := slotByTime(t, view, slot)
		assert.Equal(t, want, s.Expired, "slot %s expired", slot)
		assert.Equal(t, !want, s.Available, "slot %s available", slot)
	}
}

func TestEvaluate_ExpiryMonotonic(t *testing.T) {
	cfg := shortDayConfig(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, domain.ServiceLocation)

	// С движением времени множество истёкших слотов только растёт
	prevExpired := 0
	for _, instant := range []time.Time{
		time.Date(2026, 9, 15, 8, 0, 0, 0, domain.ServiceLocation),
		time.Date(2026, 9, 15, 9, 30, 0, 0, domain.ServiceLocation),
		time.Date(2026, 9, 15, 10, 45, 0, 0, domain.ServiceLocation),
		time.Date(2026, 9, 15, 23, 0, 0, 0, domain.ServiceLocation),
	} {
		view := evaluate(cfg, nil, nil, evaluateParams{date: date, now: instant})

		expired := 0
		for _, s := range view.Slots {
			if s.Expired {
				expired++
			}
		}

		assert.GreaterOrEqual(t, expired, prevExpired, "at %s", instant)
		prevExpired = expired
	}

	// К закрытию истёк весь день
	assert.Equal(t, len(cfg.GenerateSlots()), prevExpired)
}

func TestEvaluate_PastDateFullyExpired(t *testing.T) {
	cfg := shortDayConfig(t)
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, domain.ServiceLocation)
	now := time.Date(2026, 9, 15, 8, 0, 0, 0, domain.ServiceLocation)

	view := evaluate(cfg, nil, nil, evaluateParams{date: date, now: now})

	for _, s := range view.Slots {
		assert.True(t, s.Expired, "slot %s on a past date", s.StartTime)
		assert.False(t, s.Available)
	}
}

func TestEvaluate_EditExcludesOwnAppointment(t *testing.T) {
	cfg := shortDayConfig(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, domain.ServiceLocation)
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, domain.ServiceLocation)

	appointments := []*domain.Appointment{
		appt(1, date, "10:00"),
		appt(2, date, "10:00"),
		appt(3, date, "10:00"),
		appt(4, date, "10:00"),
	}

	// Без исключения слот полон
	view := evaluate(cfg, appointments, nil, evaluateParams{date: date, now: now})
	assert.False(t, slotByTime(t, view, "10:00").Available)

	// Редактируемая запись не блокирует собственный слот
	view = evaluate(cfg, appointments, nil, evaluateParams{
		date:                 date,
		now:                  now,
		excludeAppointmentID: ptr.Ptr(int64(3)),
	})

	edited := slotByTime(t, view, "10:00")
	assert.True(t, edited.Available)
	assert.Equal(t, 3, edited.BookedCount)
	assert.Equal(t, 1, edited.SpotsLeft)
}

func TestEvaluate_OriginalSlotBypassesExpiryOnly(t *testing.T) {
	cfg := shortDayConfig(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, domain.ServiceLocation)
	now := time.Date(2026, 9, 15, 10, 5, 0, 0, domain.ServiceLocation)

	original := types.TimeString("09:30")

	view := evaluate(cfg, nil, nil, evaluateParams{
		date:              date,
		now:               now,
		originalStartTime: &original,
	})

	// Истёкший исходный слот остаётся выбираемым
	s := slotByTime(t, view, "09:30")
	assert.True(t, s.IsOriginal)
	assert.True(t, s.Expired)
	assert.True(t, s.Available)

	// Остальные истёкшие слоты закрыты
	assert.False(t, slotByTime(t, view, "09:00").Available)
}

func TestEvaluate_OriginalSlotDoesNotBypassCapacity(t *testing.T) {
	cfg := shortDayConfig(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, domain.ServiceLocation)
	now := time.Date(2026, 9, 15, 10, 5, 0, 0, domain.ServiceLocation)

	appointments := []*domain.Appointment{
		appt(1, date, "09:30"),
		appt(2, date, "09:30"),
		appt(3, date, "09:30"),
		appt(4, date, "09:30"),
	}

	original := types.TimeString("09:30")

	view := evaluate(cfg, appointments, nil, evaluateParams{
		date:              date,
		now:               now,
		originalStartTime: &original,
	})

	s := slotByTime(t, view, "09:30")
	assert.True(t, s.IsOriginal)
	assert.False(t, s.Available, "full slot stays full even as the original")
}

func TestEvaluate_OriginalSlotDoesNotBypassSlotDisable(t *testing.T) {
	cfg := shortDayConfig(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, domain.ServiceLocation)
	now := time.Date(2026, 9, 15, 10, 5, 0, 0, domain.ServiceLocation)

	original := types.TimeString("09:30")
	overrides := []*domain.ScheduleOverride{
		slotOverride(1, date, original, true),
	}

	view := evaluate(cfg, nil, overrides, evaluateParams{
		date:              date,
		now:               now,
		originalStartTime: &original,
	})

	s := slotByTime(t, view, "09:30")
	assert.False(t, s.Available, "disabled slot stays closed even as the original")
}
