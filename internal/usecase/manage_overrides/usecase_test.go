package manage_overrides

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	overrideRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/override"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Фейки

type fakeOverrideRepo struct {
	mu        sync.Mutex
	overrides []*domain.ScheduleOverride
	nextID    int64

	failCleanup bool
}

func (f *fakeOverrideRepo) GetByDate(_ context.Context, date time.Time) ([]*domain.ScheduleOverride, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*domain.ScheduleOverride
	for _, o := range f.overrides {
		if o.Date.Equal(date) {
			result = append(result, o)
		}
	}
	return result, nil
}

func (f *fakeOverrideRepo) GetDayOverride(_ context.Context, date time.Time) (*domain.ScheduleOverride, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, o := range f.overrides {
		if o.IsDayLevel() && o.Date.Equal(date) {
			return o, nil
		}
	}
	return nil, overrideRepo.ErrOverrideNotFound
}

func (f *fakeOverrideRepo) GetSlotOverride(_ context.Context, date time.Time, startTime types.TimeString) (*domain.ScheduleOverride, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, o := range f.overrides {
		if !o.IsDayLevel() && o.Date.Equal(date) && *o.StartTime == startTime {
			return o, nil
		}
	}
	return nil, overrideRepo.ErrOverrideNotFound
}

func (f *fakeOverrideRepo) Create(_ context.Context, o *domain.ScheduleOverride) (*domain.ScheduleOverride, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	created := *o
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt

	f.overrides = append(f.overrides, &created)
	return &created, nil
}

func (f *fakeOverrideRepo) SetDisabled(_ context.Context, id int64, disabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, o := range f.overrides {
		if o.ID == id {
			o.IsDisabled = disabled
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return overrideRepo.ErrOverrideNotFound
}

func (f *fakeOverrideRepo) DeleteAllExcept(_ context.Context, date time.Time, keepID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCleanup {
		return errors.New("storage gone")
	}

	kept := f.overrides[:0]
	for _, o := range f.overrides {
		if !o.Date.Equal(date) || o.ID == keepID {
			kept = append(kept, o)
		}
	}
	f.overrides = kept
	return nil
}

func (f *fakeOverrideRepo) count(date time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, o := range f.overrides {
		if o.Date.Equal(date) {
			n++
		}
	}
	return n
}

type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeNotifier) Notify(_ context.Context, table string, date time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, table+"/"+date.Format(domain.DateFormat))
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Сборка

type fixture struct {
	uc       *UseCase
	repo     *fakeOverrideRepo
	notifier *fakeNotifier
	date     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	schedule, err := domain.NewScheduleConfig(9, 11, 30, 4)
	require.NoError(t, err)

	repo := &fakeOverrideRepo{}
	notifier := &fakeNotifier{}

	return &fixture{
		uc:       NewUseCase(repo, &fakeTxManager{}, notifier, schedule, nopLogger{}),
		repo:     repo,
		notifier: notifier,
		date:     time.Date(2026, 9, 15, 0, 0, 0, 0, domain.ServiceLocation),
	}
}

func (f *fixture) dayRequest(disabled bool) *SetDayRequest {
	return &SetDayRequest{UserID: 7, Date: f.date, Disabled: disabled}
}

func (f *fixture) slotRequest(startTime types.TimeString, disabled bool) *SetSlotRequest {
	return &SetSlotRequest{UserID: 7, Date: f.date, StartTime: startTime, Disabled: disabled}
}

// Тесты

func TestSetSlot_DisableCreatesRecord(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.SetSlot(context.Background(), f.slotRequest("10:00", true))
	require.NoError(t, err)

	assert.True(t, resp.Changed)
	assert.True(t, resp.Disabled)
	assert.Equal(t, 1, f.repo.count(f.date))
	assert.Equal(t, 1, f.notifier.count())
}

func TestSetSlot_ToggleIsIdempotent(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.SetSlot(context.Background(), f.slotRequest("10:00", true))
	require.NoError(t, err)

	// Повтор того же состояния: без записи, без уведомления
	resp, err := f.uc.SetSlot(context.Background(), f.slotRequest("10:00", true))
	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.Equal(t, 1, f.repo.count(f.date))
	assert.Equal(t, 1, f.notifier.count())

	// Включение меняет состояние и уведомляет
	resp, err = f.uc.SetSlot(context.Background(), f.slotRequest("10:00", false))
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Equal(t, 2, f.notifier.count())

	// Повторное включение снова no-op
	resp, err = f.uc.SetSlot(context.Background(), f.slotRequest("10:00", false))
	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.Equal(t, 2, f.notifier.count())
}

func TestSetSlot_EnableWithoutRecordIsNoop(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.SetSlot(context.Background(), f.slotRequest("10:00", false))
	require.NoError(t, err)

	assert.False(t, resp.Changed)
	assert.Zero(t, f.repo.count(f.date))
	assert.Zero(t, f.notifier.count())
}

func TestSetSlot_RejectsUnknownSlot(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.SetSlot(context.Background(), f.slotRequest("10:15", true))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	_, err = f.uc.SetSlot(context.Background(), f.slotRequest("12:00", true))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestSetDay_DisableCreatesRecord(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.SetDay(context.Background(), f.dayRequest(true))
	require.NoError(t, err)

	assert.True(t, resp.Changed)
	assert.Nil(t, resp.StartTime)
	assert.Equal(t, 1, f.notifier.count())
}

func TestSetDay_EnableWithoutRecordIsNoop(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.SetDay(context.Background(), f.dayRequest(false))
	require.NoError(t, err)

	assert.False(t, resp.Changed)
	assert.Zero(t, f.repo.count(f.date))
	assert.Zero(t, f.notifier.count())
}

func TestSetDay_ReenableCascadesSlotCleanup(t *testing.T) {
	f := newFixture(t)

	// Выключаем день и пару слотов
	_, err := f.uc.SetDay(context.Background(), f.dayRequest(true))
	require.NoError(t, err)
	_, err = f.uc.SetSlot(context.Background(), f.slotRequest("10:00", true))
	require.NoError(t, err)
	_, err = f.uc.SetSlot(context.Background(), f.slotRequest("10:30", true))
	require.NoError(t, err)
	require.Equal(t, 3, f.repo.count(f.date))

	// Включение дня сносит все послотовые запреты даты
	resp, err := f.uc.SetDay(context.Background(), f.dayRequest(false))
	require.NoError(t, err)
	assert.True(t, resp.Changed)

	require.Equal(t, 1, f.repo.count(f.date))
	day, err := f.repo.GetDayOverride(context.Background(), f.date)
	require.NoError(t, err)
	assert.False(t, day.IsDisabled)

	// Список подтверждает: на дате не осталось следов точечных запретов
	list, err := f.uc.List(context.Background(), &ListRequest{Date: f.date})
	require.NoError(t, err)
	assert.False(t, list.DayDisabled)
	require.Len(t, list.Overrides, 1)
	assert.Nil(t, list.Overrides[0].StartTime)
}

func TestSetDay_CleanupFailureAbortsReenable(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.SetDay(context.Background(), f.dayRequest(true))
	require.NoError(t, err)
	_, err = f.uc.SetSlot(context.Background(), f.slotRequest("10:00", true))
	require.NoError(t, err)
	notified := f.notifier.count()

	f.repo.failCleanup = true

	_, err = f.uc.SetDay(context.Background(), f.dayRequest(false))
	assert.ErrorIs(t, err, ErrCleanupIncomplete)

	// Неудачная очистка не уведомляет наблюдателей
	assert.Equal(t, notified, f.notifier.count())
}

func TestList_ReportsDayAndSlotState(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.SetDay(context.Background(), f.dayRequest(true))
	require.NoError(t, err)
	_, err = f.uc.SetSlot(context.Background(), f.slotRequest("09:30", true))
	require.NoError(t, err)

	list, err := f.uc.List(context.Background(), &ListRequest{Date: f.date})
	require.NoError(t, err)

	assert.Equal(t, "2026-09-15", list.Date)
	assert.True(t, list.DayDisabled)
	require.Len(t, list.Overrides, 2)
}
