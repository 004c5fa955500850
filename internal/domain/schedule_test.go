package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func TestGenerateSlots_ShortDay(t *testing.T) {
	cfg, err := NewScheduleConfig(9, 11, 30, 4)
	require.NoError(t, err)

	slots := cfg.GenerateSlots()

	expected := []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00"}
	assert.Equal(t, expected, slots)
}

func TestGenerateSlots_DefaultDay(t *testing.T) {
	cfg, err := NewScheduleConfig(
		DefaultOpenHour,
		DefaultCloseHour,
		DefaultSlotIntervalMinutes,
		DefaultSlotCapacity,
	)
	require.NoError(t, err)

	slots := cfg.GenerateSlots()

	// 28 получасовых слотов в [09:00, 23:00) плюс завершающий 23:00
	require.Len(t, slots, 29)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("22:30"), slots[27])
	assert.Equal(t, types.TimeString("23:00"), slots[28])
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	cfg, err := NewScheduleConfig(9, 23, 30, 4)
	require.NoError(t, err)

	assert.Equal(t, cfg.GenerateSlots(), cfg.GenerateSlots())
}

func TestContainsSlot(t *testing.T) {
	cfg, err := NewScheduleConfig(9, 23, 30, 4)
	require.NoError(t, err)

	tests := []struct {
		slot types.TimeString
		want bool
	}{
		{"09:00", true},
		{"14:30", true},
		{"23:00", true},
		{"09:15", false}, // не на сетке
		{"08:30", false}, // до открытия
		{"23:30", false}, // после закрытия
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.slot), func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.ContainsSlot(tt.slot))
		})
	}
}

func TestNewScheduleConfig_Invalid(t *testing.T) {
	tests := []struct {
		name                             string
		open, close, interval, capacity int
	}{
		{"open after close", 23, 9, 30, 4},
		{"open equals close", 9, 9, 30, 4},
		{"zero interval", 9, 23, 0, 4},
		{"interval too large", 9, 23, 90, 4},
		{"zero capacity", 9, 23, 30, 0},
		{"negative open hour", -1, 23, 30, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScheduleConfig(tt.open, tt.close, tt.interval, tt.capacity)
			assert.ErrorIs(t, err, ErrInvalidScheduleConfig)
		})
	}
}

func TestNormalizeDate_ServiceTimezone(t *testing.T) {
	// 20:00 UTC 1 сентября это уже 01:30 2 сентября в IST
	utcEvening := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)

	normalized := NormalizeDate(utcEvening)

	assert.Equal(t, 2026, normalized.Year())
	assert.Equal(t, time.September, normalized.Month())
	assert.Equal(t, 2, normalized.Day())
	assert.Equal(t, 0, normalized.Hour())
	assert.Equal(t, ServiceLocation, normalized.Location())
}

func TestIsSameDay_AcrossTimezones(t *testing.T) {
	// Оба момента приходятся на 2 сентября в IST
	a := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	b := time.Date(2026, 9, 2, 10, 0, 0, 0, ServiceLocation)

	assert.True(t, IsSameDay(a, b))

	c := time.Date(2026, 9, 1, 10, 0, 0, 0, ServiceLocation)
	assert.False(t, IsSameDay(a, c))
}
