package manage_overrides

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/events"
	overrideRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/override"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase use case управления административными запретами расписания
//
// Переключения идемпотентны: повторный запрос того же состояния ничего
// не пишет и не шлёт уведомлений. Записи создаются только при выключении;
// включение цели без записи - no-op, слоты и дни открыты по умолчанию
type UseCase struct {
	overrideRepo OverrideRepository
	txManager    TransactionManager
	notifier     Notifier
	schedule     domain.ScheduleConfig
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	overrideRepo OverrideRepository,
	txManager TransactionManager,
	notifier Notifier,
	schedule domain.ScheduleConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		overrideRepo: overrideRepo,
		txManager:    txManager,
		notifier:     notifier,
		schedule:     schedule,
		logger:       logger,
	}
}

// SetDay переключает доступность дня целиком
// Включение дня каскадно сносит все послотовые запреты этой даты: день
// после включения чист, старые точечные запреты не всплывают
func (uc *UseCase) SetDay(ctx context.Context, req *SetDayRequest) (*ToggleResponse, error) {
	uc.logger.Info("SetDayOverride: user=%d, date=%s, disabled=%t",
		req.UserID, req.Date.Format(domain.DateFormat), req.Disabled)

	if err := validateDayRequest(req); err != nil {
		uc.logger.Warn("SetDayOverride: validation failed: %v", err)
		return nil, err
	}

	date := domain.NormalizeDate(req.Date)
	changed := false

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.overrideRepo.GetDayOverride(txCtx, date)
		if err != nil && !errors.Is(err, overrideRepo.ErrOverrideNotFound) {
			return uc.mapReadError("SetDayOverride", err)
		}

		if existing == nil {
			if !req.Disabled {
				// День и так открыт, записи нет - делать нечего
				return nil
			}

			if _, err := uc.overrideRepo.Create(txCtx, &domain.ScheduleOverride{
				Date:       date,
				IsDisabled: true,
			}); err != nil {
				uc.logger.Error("SetDayOverride: failed to create override: %v", err)
				return fmt.Errorf("%w: create day override: %w", ErrInternal, err)
			}

			changed = true
			return nil
		}

		if existing.IsDisabled == req.Disabled {
			return nil
		}

		if err := uc.overrideRepo.SetDisabled(txCtx, existing.ID, req.Disabled); err != nil {
			uc.logger.Error("SetDayOverride: failed to toggle override: %v", err)
			return fmt.Errorf("%w: toggle day override: %w", ErrInternal, err)
		}

		if !req.Disabled {
			// Каскадная очистка: включённый день не несёт послотовых запретов
			if err := uc.overrideRepo.DeleteAllExcept(txCtx, date, existing.ID); err != nil {
				uc.logger.Error("SetDayOverride: cascade cleanup failed: %v", err)
				return fmt.Errorf("%w: %w", ErrCleanupIncomplete, err)
			}
		}

		changed = true
		return nil
	})

	if err != nil {
		return nil, err
	}

	if changed {
		uc.notifier.Notify(ctx, events.TableOverrides, date)
	}

	return &ToggleResponse{
		Date:     date.Format(domain.DateFormat),
		Disabled: req.Disabled,
		Changed:  changed,
	}, nil
}

// SetSlot переключает доступность конкретного слота
func (uc *UseCase) SetSlot(ctx context.Context, req *SetSlotRequest) (*ToggleResponse, error) {
	uc.logger.Info("SetSlotOverride: user=%d, date=%s, time=%s, disabled=%t",
		req.UserID, req.Date.Format(domain.DateFormat), req.StartTime, req.Disabled)

	if err := validateSlotRequest(uc.schedule, req); err != nil {
		uc.logger.Warn("SetSlotOverride: validation failed: %v", err)
		return nil, err
	}

	date := domain.NormalizeDate(req.Date)
	changed := false

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.overrideRepo.GetSlotOverride(txCtx, date, req.StartTime)
		if err != nil && !errors.Is(err, overrideRepo.ErrOverrideNotFound) {
			return uc.mapReadError("SetSlotOverride", err)
		}

		if existing == nil {
			if !req.Disabled {
				return nil
			}

			startTime := req.StartTime
			if _, err := uc.overrideRepo.Create(txCtx, &domain.ScheduleOverride{
				Date:       date,
				StartTime:  &startTime,
				IsDisabled: true,
			}); err != nil {
				uc.logger.Error("SetSlotOverride: failed to create override: %v", err)
				return fmt.Errorf("%w: create slot override: %w", ErrInternal, err)
			}

			changed = true
			return nil
		}

		if existing.IsDisabled == req.Disabled {
			return nil
		}

		if err := uc.overrideRepo.SetDisabled(txCtx, existing.ID, req.Disabled); err != nil {
			uc.logger.Error("SetSlotOverride: failed to toggle override: %v", err)
			return fmt.Errorf("%w: toggle slot override: %w", ErrInternal, err)
		}

		changed = true
		return nil
	})

	if err != nil {
		return nil, err
	}

	if changed {
		uc.notifier.Notify(ctx, events.TableOverrides, date)
	}

	startTime := req.StartTime
	return &ToggleResponse{
		Date:      date.Format(domain.DateFormat),
		StartTime: &startTime,
		Disabled:  req.Disabled,
		Changed:   changed,
	}, nil
}

// List возвращает все запреты на дату
func (uc *UseCase) List(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date := domain.NormalizeDate(req.Date)

	overrides, err := uc.overrideRepo.GetByDate(ctx, date)
	if err != nil {
		uc.logger.Error("ListOverrides: failed to read overrides: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	resp := &ListResponse{
		Date:      date.Format(domain.DateFormat),
		Overrides: make([]Override, 0, len(overrides)),
	}

	for _, o := range overrides {
		if o.IsDayLevel() && o.IsDisabled {
			resp.DayDisabled = true
		}

		var startTime *types.TimeString
		if o.StartTime != nil {
			ts := *o.StartTime
			startTime = &ts
		}

		resp.Overrides = append(resp.Overrides, Override{
			ID:        o.ID,
			Date:      domain.NormalizeDate(o.Date).Format(domain.DateFormat),
			StartTime: startTime,
			Disabled:  o.IsDisabled,
			UpdatedAt: o.UpdatedAt,
		})
	}

	return resp, nil
}

// mapReadError переводит ошибки чтения репозитория в ошибки usecase
func (uc *UseCase) mapReadError(op string, err error) error {
	if errors.Is(err, overrideRepo.ErrInvariantViolation) {
		uc.logger.Error("%s: storage invariant violation: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	uc.logger.Error("%s: failed to read override: %v", op, err)
	return fmt.Errorf("%w: read override: %w", ErrInternal, err)
}
