package create_appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	overrideRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/override"
	"github.com/m04kA/SMC-AppointmentService/pkg/caseid"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Фейки

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments []*domain.Appointment
	nextID       int64
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	created := *appt
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt

	f.appointments = append(f.appointments, &created)
	return &created, nil
}

func (f *fakeAppointmentRepo) GetForSlot(_ context.Context, date time.Time, startTime types.TimeString) ([]*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*domain.Appointment
	for _, a := range f.appointments {
		if a.AppointmentDate.Equal(date) && a.StartTime == startTime {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeAppointmentRepo) GetLatestByCaseID(_ context.Context, caseID string) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var latest *domain.Appointment
	for _, a := range f.appointments {
		if a.CaseID == caseID && (latest == nil || a.ID > latest.ID) {
			latest = a
		}
	}
	if latest == nil {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return latest, nil
}

func (f *fakeAppointmentRepo) ExistsByCaseID(_ context.Context, caseID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, a := range f.appointments {
		if a.CaseID == caseID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAppointmentRepo) countForSlot(date time.Time, startTime types.TimeString) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, a := range f.appointments {
		if a.AppointmentDate.Equal(date) && a.StartTime == startTime {
			count++
		}
	}
	return count
}

type fakeOverrideRepo struct {
	mu        sync.Mutex
	overrides []*domain.ScheduleOverride
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

// fakeTxManager сериализует транзакции мьютексом - поведенчески то же,
// что даёт serializable isolation настоящей базы
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

// fakeIssuer выдаёт подготовленные идентификаторы, затем случайные
type fakeIssuer struct {
	mu    sync.Mutex
	queue []string
}

func (f *fakeIssuer) Issue() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) > 0 {
		id := f.queue[0]
		f.queue = f.queue[1:]
		return id, nil
	}
	return caseid.Issue()
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Сборка

type fixture struct {
	uc        *UseCase
	repo      *fakeAppointmentRepo
	overrides *fakeOverrideRepo
	notifier  *fakeNotifier
	issuer    *fakeIssuer
	date      time.Time
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	schedule, err := domain.NewScheduleConfig(9, 11, 30, 4)
	require.NoError(t, err)

	repo := &fakeAppointmentRepo{}
	overrides := &fakeOverrideRepo{}
	notifier := &fakeNotifier{}
	issuer := &fakeIssuer{}

	uc := NewUseCase(repo, overrides, &fakeTxManager{}, notifier, schedule, nopLogger{})
	uc.issuer = issuer

	now := time.Date(2026, 9, 10, 12, 0, 0, 0, domain.ServiceLocation)
	uc.timeProvider = &fixedTimeProvider{now: now}

	return &fixture{
		uc:        uc,
		repo:      repo,
		overrides: overrides,
		notifier:  notifier,
		issuer:    issuer,
		date:      time.Date(2026, 9, 15, 0, 0, 0, 0, domain.ServiceLocation),
		now:       now,
	}
}

func (f *fixture) request() *Request {
	return &Request{
		UserID:    7,
		Name:      "Анна Иванова",
		Phone:     "+79990000001",
		Date:      f.date,
		StartTime: "10:00",
	}
}

// Тесты

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Len(t, resp.CaseID, caseid.Length)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)

	assert.Equal(t, 1, f.repo.countForSlot(f.date, "10:00"))
	assert.Equal(t, 1, f.notifier.count())
}

func TestExecute_SlotFull(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 4; i++ {
		_, err := f.uc.Execute(context.Background(), f.request())
		require.NoError(t, err)
	}

	_, err := f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrSlotFull)

	// Пятая попытка не оставила следов
	assert.Equal(t, 4, f.repo.countForSlot(f.date, "10:00"))
	assert.Equal(t, 4, f.notifier.count())
}

func TestExecute_DayDisabled(t *testing.T) {
	f := newFixture(t)
	f.overrides.overrides = []*domain.ScheduleOverride{
		{ID: 1, Date: f.date, IsDisabled: true},
	}

	_, err := f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Zero(t, f.notifier.count())
}

func TestExecute_SlotDisabled(t *testing.T) {
	f := newFixture(t)
	startTime := types.TimeString("10:00")
	f.overrides.overrides = []*domain.ScheduleOverride{
		{ID: 1, Date: f.date, StartTime: &startTime, IsDisabled: true},
	}

	_, err := f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_ReenabledOverrideDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	startTime := types.TimeString("10:00")
	f.overrides.overrides = []*domain.ScheduleOverride{
		{ID: 1, Date: f.date, IsDisabled: false},
		{ID: 2, Date: f.date, StartTime: &startTime, IsDisabled: false},
	}

	_, err := f.uc.Execute(context.Background(), f.request())
	assert.NoError(t, err)
}

func TestExecute_ExpiredSlot(t *testing.T) {
	f := newFixture(t)

	req := f.request()
	req.Date = domain.Today(f.now)
	req.StartTime = "10:00" // now 12:00 того же дня

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotExpired)
}

func TestExecute_PastDate(t *testing.T) {
	f := newFixture(t)

	req := f.request()
	req.Date = time.Date(2026, 9, 1, 0, 0, 0, 0, domain.ServiceLocation)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InvalidSlot(t *testing.T) {
	f := newFixture(t)

	req := f.request()
	req.StartTime = "10:15"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_ValidationFailures(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing name", func(r *Request) { r.Name = "  " }},
		{"missing phone", func(r *Request) { r.Phone = "" }},
		{"zero user", func(r *Request) { r.UserID = 0 }},
		{"age out of range", func(r *Request) { r.Age = ptr.Ptr(200) }},
		{"empty case id pointer", func(r *Request) { r.CaseID = ptr.Ptr("  ") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ReturningPatientReusesCaseID(t *testing.T) {
	f := newFixture(t)

	first, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	req := f.request()
	req.StartTime = "10:30"
	req.CaseID = ptr.Ptr(first.CaseID)

	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.CaseID, second.CaseID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestExecute_ReturningPatientUnknownCase(t *testing.T) {
	f := newFixture(t)

	req := f.request()
	req.CaseID = ptr.Ptr("NOSUCHONE")

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCaseNotFound)
}

func TestExecute_CaseIDCollisionReissues(t *testing.T) {
	f := newFixture(t)

	// Занимаем идентификатор COLLIDED9 существующей записью
	f.issuer.queue = []string{"COLLIDED9"}
	first, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)
	require.Equal(t, "COLLIDED9", first.CaseID)

	// Выпуск снова возвращает занятый идентификатор, затем свободный
	f.issuer.queue = []string{"COLLIDED9", "FRESHID99"}

	req := f.request()
	req.StartTime = "10:30"

	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "FRESHID99", second.CaseID)
}

func TestExecute_CaseIDCollisionExhausted(t *testing.T) {
	f := newFixture(t)

	f.issuer.queue = []string{"COLLIDED9"}
	_, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	// Обе попытки выпуска возвращают занятый идентификатор
	f.issuer.queue = []string{"COLLIDED9", "COLLIDED9"}

	req := f.request()
	req.StartTime = "10:30"

	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_ConcurrentBookingsRespectCapacity(t *testing.T) {
	f := newFixture(t)

	const attempts = 10

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(), f.request())
		}(i)
	}
	wg.Wait()

	succeeded, full := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotFull):
			full++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 4, succeeded, "exactly capacity bookings must win")
	assert.Equal(t, attempts-4, full)
	assert.Equal(t, 4, f.repo.countForSlot(f.date, "10:00"))
}
