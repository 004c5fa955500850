package get_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// UseCase use case оценки доступности слотов на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	overrideRepo    OverrideRepository
	schedule        domain.ScheduleConfig
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	overrideRepo OverrideRepository,
	schedule domain.ScheduleConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		overrideRepo:    overrideRepo,
		schedule:        schedule,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case оценки доступности
// Недоступность хранилища возвращается как ErrDataUnavailable - пустой
// день и недоступные данные это разные ответы
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Нормализуем дату к календарному дню в таймзоне сервиса
	date := domain.NormalizeDate(req.Date)
	now := uc.timeProvider.Now()

	// 3. Загружаем записи и запреты на дату
	appointments, err := uc.appointmentRepo.GetByDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get appointments for %s: %v",
			date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: appointments: %v", ErrDataUnavailable, err)
	}

	overrides, err := uc.overrideRepo.GetByDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get overrides for %s: %v",
			date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: overrides: %v", ErrDataUnavailable, err)
	}

	// 4. Чистая оценка
	view := evaluate(uc.schedule, appointments, overrides, evaluateParams{
		date:                 date,
		now:                  now,
		excludeAppointmentID: req.ExcludeAppointmentID,
		originalStartTime:    req.OriginalStartTime,
	})

	uc.logger.Info("GetAvailability: date=%s dayDisabled=%v slots=%d appointments=%d",
		date.Format(domain.DateFormat), view.DayDisabled, len(view.Slots), len(appointments))

	return fromDomainView(view), nil
}

// fromDomainView конвертирует domain view в response
func fromDomainView(view domain.DayAvailability) *Response {
	resp := &Response{
		Date:        view.Date,
		DayDisabled: view.DayDisabled,
		Slots:       make([]Slot, len(view.Slots)),
	}

	for i, s := range view.Slots {
		resp.Slots[i] = Slot{
			StartTime:   s.StartTime,
			Available:   s.Available,
			BookedCount: s.BookedCount,
			SpotsLeft:   s.SpotsLeft,
			Disabled:    s.Disabled,
			Expired:     s.Expired,
			IsOriginal:  s.IsOriginal,
		}
	}

	return resp
}
