package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/events"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	overrideRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/override"
)

// caseIDIssueAttempts: одна перевыпускная попытка после коллизии,
// дальше - отказ с внутренней ошибкой
const caseIDIssueAttempts = 2

// UseCase use case создания записи на приём
//
// Это точка, которая закрывает гонку "посмотрел доступность - записался":
// подсчёт занятости и запреты перепроверяются в сериализуемой транзакции
// непосредственно перед вставкой. Предварительная оценка доступности
// только советует, авторитетна успешная запись в хранилище
type UseCase struct {
	appointmentRepo AppointmentRepository
	overrideRepo    OverrideRepository
	txManager       TransactionManager
	notifier        Notifier
	issuer          IdentifierIssuer
	schedule        domain.ScheduleConfig
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	overrideRepo OverrideRepository,
	txManager TransactionManager,
	notifier Notifier,
	schedule domain.ScheduleConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		overrideRepo:    overrideRepo,
		txManager:       txManager,
		notifier:        notifier,
		issuer:          RandomIssuer{},
		schedule:        schedule,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%d, date=%s, time=%s",
		req.UserID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Нормализуем дату и проверяем слот против каталога и текущего времени
	now := uc.timeProvider.Now()
	date := domain.NormalizeDate(req.Date)

	if err := validateSlot(uc.schedule, date, req, now); err != nil {
		uc.logger.Warn("CreateAppointment: slot validation failed: %v", err)
		return nil, err
	}

	// 3. Повторный пациент: подтверждаем существование case id до транзакции
	if req.CaseID != nil {
		if _, err := uc.appointmentRepo.GetLatestByCaseID(ctx, *req.CaseID); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("CreateAppointment: unknown case id for returning patient")
				return nil, ErrCaseNotFound
			}
			uc.logger.Error("CreateAppointment: failed to look up case id: %v", err)
			return nil, fmt.Errorf("%w: case lookup: %w", ErrInternal, err)
		}
	}

	var result *domain.Appointment

	// 4. Check-then-write в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Запрет на весь день
		if err := uc.checkOverrides(txCtx, date, req); err != nil {
			return err
		}

		// 4.2. Перечитываем занятость слота с блокировкой строк
		occupied, err := uc.appointmentRepo.GetForSlot(txCtx, date, req.StartTime)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to read slot occupancy: %v", err)
			return fmt.Errorf("%w: slot occupancy: %w", ErrInternal, err)
		}

		count := 0
		for _, a := range occupied {
			if a.CountsTowardCapacity() {
				count++
			}
		}

		if count >= uc.schedule.SlotCapacity {
			uc.logger.Warn("CreateAppointment: slot full, %d/%d taken at %s %s",
				count, uc.schedule.SlotCapacity, date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotFull
		}

		// 4.3. Определяем case id
		caseID, err := uc.resolveCaseID(txCtx, req)
		if err != nil {
			return err
		}

		// 4.4. Вставляем запись
		appt := &domain.Appointment{
			CaseID:          caseID,
			Name:            req.Name,
			Phone:           req.Phone,
			Gender:          req.Gender,
			Age:             req.Age,
			AppointmentDate: date,
			StartTime:       req.StartTime,
			Status:          domain.StatusScheduled,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			// Нарушение ограничения на уровне хранилища авторитетно:
			// конкурент успел первым, наш pre-check устарел
			if errors.Is(err, appointmentRepo.ErrCaseIDConflict) {
				uc.logger.Warn("CreateAppointment: case id conflict at insert")
				return fmt.Errorf("%w: case id conflict: %w", ErrInternal, err)
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: create: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created id=%d case=%s date=%s time=%s",
		result.ID, result.CaseID, date.Format(domain.DateFormat), result.StartTime)

	// 5. Уведомляем наблюдателей: доступность даты изменилась
	uc.notifier.Notify(ctx, events.TableAppointments, date)

	return &Response{
		ID:              result.ID,
		CaseID:          result.CaseID,
		Name:            result.Name,
		Phone:           result.Phone,
		Gender:          result.Gender,
		Age:             result.Age,
		AppointmentDate: result.AppointmentDate,
		StartTime:       result.StartTime,
		Status:          string(result.Status),
		CreatedAt:       result.CreatedAt,
	}, nil
}

// checkOverrides перепроверяет дневной и послотовый запреты внутри транзакции
// Нарушение инварианта хранилища (две записи на одну цель) пробрасывается
// как жёсткая ошибка, а не трактуется как один из запретов
func (uc *UseCase) checkOverrides(ctx context.Context, date time.Time, req *Request) error {
	day, err := uc.overrideRepo.GetDayOverride(ctx, date)
	if err != nil && !errors.Is(err, overrideRepo.ErrOverrideNotFound) {
		if errors.Is(err, overrideRepo.ErrInvariantViolation) {
			uc.logger.Error("CreateAppointment: override invariant violation: %v", err)
			return err
		}
		uc.logger.Error("CreateAppointment: failed to read day override: %v", err)
		return fmt.Errorf("%w: day override: %w", ErrInternal, err)
	}
	if day != nil && day.IsDisabled {
		uc.logger.Warn("CreateAppointment: day %s is disabled", date.Format(domain.DateFormat))
		return ErrSlotUnavailable
	}

	slot, err := uc.overrideRepo.GetSlotOverride(ctx, date, req.StartTime)
	if err != nil && !errors.Is(err, overrideRepo.ErrOverrideNotFound) {
		if errors.Is(err, overrideRepo.ErrInvariantViolation) {
			uc.logger.Error("CreateAppointment: override invariant violation: %v", err)
			return err
		}
		uc.logger.Error("CreateAppointment: failed to read slot override: %v", err)
		return fmt.Errorf("%w: slot override: %w", ErrInternal, err)
	}
	if slot != nil && slot.IsDisabled {
		uc.logger.Warn("CreateAppointment: slot %s %s is disabled", date.Format(domain.DateFormat), req.StartTime)
		return ErrSlotUnavailable
	}

	return nil
}

// resolveCaseID возвращает case id для вставки: указанный повторным
// пациентом или свежевыпущенный. Выпуск перепроверяется по хранилищу
// внутри той же транзакции; после двух коллизий подряд - отказ
func (uc *UseCase) resolveCaseID(ctx context.Context, req *Request) (string, error) {
	if req.CaseID != nil {
		return *req.CaseID, nil
	}

	for attempt := 0; attempt < caseIDIssueAttempts; attempt++ {
		id, err := uc.issuer.Issue()
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to issue case id: %v", err)
			return "", fmt.Errorf("%w: issue case id: %w", ErrInternal, err)
		}

		exists, err := uc.appointmentRepo.ExistsByCaseID(ctx, id)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to check case id: %v", err)
			return "", fmt.Errorf("%w: check case id: %w", ErrInternal, err)
		}
		if !exists {
			return id, nil
		}

		uc.logger.Warn("CreateAppointment: issued case id collided, reissuing (attempt %d)", attempt+1)
	}

	return "", fmt.Errorf("%w: case id collision persisted after %d attempts", ErrInternal, caseIDIssueAttempts)
}
