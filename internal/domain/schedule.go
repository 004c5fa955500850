package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ErrInvalidScheduleConfig возвращается при некорректной конфигурации
// рабочего дня. Это ошибка конфигурации, а не времени выполнения -
// обнаруживается при старте сервиса.
var ErrInvalidScheduleConfig = errors.New("domain: invalid schedule config")

// ScheduleConfig описывает рабочий день клиники: окно приёма,
// шаг слотов и вместимость одного слота
type ScheduleConfig struct {
	OpenHour            int // первый слот в OpenHour:00
	CloseHour           int // последний слот ровно в CloseHour:00
	SlotIntervalMinutes int
	SlotCapacity        int
}

// NewScheduleConfig создает и валидирует конфигурацию рабочего дня
func NewScheduleConfig(openHour, closeHour, intervalMinutes, capacity int) (ScheduleConfig, error) {
	cfg := ScheduleConfig{
		OpenHour:            openHour,
		CloseHour:           closeHour,
		SlotIntervalMinutes: intervalMinutes,
		SlotCapacity:        capacity,
	}
	if err := cfg.Validate(); err != nil {
		return ScheduleConfig{}, err
	}
	return cfg, nil
}

// Validate проверяет конфигурацию
func (c ScheduleConfig) Validate() error {
	if c.OpenHour < 0 || c.OpenHour > 23 {
		return fmt.Errorf("%w: openHour %d out of range", ErrInvalidScheduleConfig, c.OpenHour)
	}
	if c.CloseHour < 1 || c.CloseHour > 23 {
		return fmt.Errorf("%w: closeHour %d out of range", ErrInvalidScheduleConfig, c.CloseHour)
	}
	if c.OpenHour >= c.CloseHour {
		return fmt.Errorf("%w: openHour %d >= closeHour %d", ErrInvalidScheduleConfig, c.OpenHour, c.CloseHour)
	}
	if c.SlotIntervalMinutes <= 0 || c.SlotIntervalMinutes > 60 {
		return fmt.Errorf("%w: slot interval %d minutes", ErrInvalidScheduleConfig, c.SlotIntervalMinutes)
	}
	if c.SlotCapacity <= 0 {
		return fmt.Errorf("%w: slot capacity %d", ErrInvalidScheduleConfig, c.SlotCapacity)
	}
	return nil
}

// GenerateSlots генерирует упорядоченный список номинальных слотов
// рабочего дня: с шагом SlotIntervalMinutes внутри [OpenHour, CloseHour)
// плюс один завершающий слот ровно в CloseHour:00.
// Детерминированная чистая функция конфигурации.
func (c ScheduleConfig) GenerateSlots() []types.TimeString {
	slots := make([]types.TimeString, 0, (c.CloseHour-c.OpenHour)*60/c.SlotIntervalMinutes+1)

	for minutes := c.OpenHour * 60; minutes < c.CloseHour*60; minutes += c.SlotIntervalMinutes {
		slots = append(slots, types.TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)))
	}

	// Завершающий слот в час закрытия
	slots = append(slots, types.TimeString(fmt.Sprintf("%02d:00", c.CloseHour)))

	return slots
}

// ContainsSlot проверяет, что время входит в каталог слотов
func (c ScheduleConfig) ContainsSlot(t types.TimeString) bool {
	for _, slot := range c.GenerateSlots() {
		if slot == t {
			return true
		}
	}
	return false
}
