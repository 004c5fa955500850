package override

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

var overrideColumns = []string{
	"id",
	"date",
	"start_time",
	"is_disabled",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с запретами расписания
// (таблица time_slot_settings)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория запретов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDate получает все запреты на указанную дату
// Дневной запрет (start_time IS NULL) идёт первым
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.ScheduleOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("time_slot_settings").
		Where(squirrel.Eq{"date": date}).
		OrderBy("start_time ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanOverrides(rows)
}

// GetDayOverride получает дневной запрет (start_time IS NULL) на дату
// Возвращает ErrOverrideNotFound, если записи нет, и
// ErrInvariantViolation, если записей больше одной
func (r *Repository) GetDayOverride(ctx context.Context, date time.Time) (*domain.ScheduleOverride, error) {
	return r.getSingle(ctx, date, nil, "GetDayOverride")
}

// GetSlotOverride получает запрет конкретного слота на дату
func (r *Repository) GetSlotOverride(ctx context.Context, date time.Time, startTime types.TimeString) (*domain.ScheduleOverride, error) {
	return r.getSingle(ctx, date, &startTime, "GetSlotOverride")
}

// getSingle выбирает записи по цели и проверяет инвариант "не более одной"
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы конкурентные
// переключения одной цели сериализовались
func (r *Repository) getSingle(ctx context.Context, date time.Time, startTime *types.TimeString, op string) (*domain.ScheduleOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(overrideColumns...).
		From("time_slot_settings").
		Where(squirrel.Eq{"date": date})

	if startTime == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"start_time": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"start_time": *startTime})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	overrides, err := r.scanOverrides(rows)
	if err != nil {
		return nil, err
	}

	switch len(overrides) {
	case 0:
		return nil, ErrOverrideNotFound
	case 1:
		return overrides[0], nil
	default:
		return nil, fmt.Errorf("%w: %s - %d rows for date=%s",
			ErrInvariantViolation, op, len(overrides), date.Format(domain.DateFormat))
	}
}

// Create создает запись запрета
func (r *Repository) Create(ctx context.Context, o *domain.ScheduleOverride) (*domain.ScheduleOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_slot_settings").
		Columns("date", "start_time", "is_disabled").
		Values(o.Date, o.StartTime, o.IsDisabled).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&o.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	return o, nil
}

// SetDisabled переключает флаг запрета существующей записи
func (r *Repository) SetDisabled(ctx context.Context, id int64, disabled bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slot_settings").
		Set("is_disabled", disabled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetDisabled - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetDisabled - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetDisabled - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

// DeleteAllExcept удаляет все запреты на дату, кроме записи с указанным id
// Каскадная очистка при включении дня целиком: после неё на дате не должно
// оставаться послотовых запретов
func (r *Repository) DeleteAllExcept(ctx context.Context, date time.Time, keepID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_slot_settings").
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.NotEq{"id": keepID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteAllExcept - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteAllExcept - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет запись запрета
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_slot_settings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

// scanOverrides сканирует результаты запроса в слайс запретов
func (r *Repository) scanOverrides(rows *sql.Rows) ([]*domain.ScheduleOverride, error) {
	overrides := make([]*domain.ScheduleOverride, 0)

	for rows.Next() {
		var o domain.ScheduleOverride
		var startTime sql.NullString
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&o.ID,
			&o.Date,
			&startTime,
			&o.IsDisabled,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanOverrides - scan row: %w", ErrScanRow, err)
		}

		if startTime.Valid {
			ts, err := types.NewTimeStringFromString(startTime.String)
			if err != nil {
				return nil, fmt.Errorf("%w: scanOverrides - parse start_time: %w", ErrScanRow, err)
			}
			o.StartTime = &ts
		}
		o.CreatedAt = createdAt.Time
		o.UpdatedAt = updatedAt.Time

		overrides = append(overrides, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanOverrides - rows error: %w", ErrScanRow, err)
	}

	return overrides, nil
}
