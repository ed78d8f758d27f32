package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	"github.com/barbersmart/BS-AvailabilityService/pkg/dbmetrics"
	"github.com/barbersmart/BS-AvailabilityService/pkg/psqlbuilder"
)

var specialDayColumns = []string{
	"id",
	"tenant_id",
	"unit_id",
	"date",
	"is_open",
	"open_time",
	"close_time",
	"break_start",
	"break_end",
	"note",
	"created_at",
	"updated_at",
}

var blockedDateColumns = []string{
	"id",
	"tenant_id",
	"unit_id",
	"date",
	"reason",
	"created_at",
}

// GetSpecialDay получает особый день на дату. Запись для конкретной точки
// приоритетнее общей записи тенанта, поэтому сортируем с точкой первой
// и берем первую строку.
func (r *Repository) GetSpecialDay(ctx context.Context, tenantID int64, unitID *int64, date time.Time) (*domain.SpecialDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(specialDayColumns...).
		From("special_days").
		Where(squirrel.Eq{"tenant_id": tenantID, "date": dateOnly(date)})

	if unitID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"unit_id": nil},
			squirrel.Eq{"unit_id": *unitID},
		})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"unit_id": nil})
	}

	query, args, err := selectBuilder.
		OrderBy("unit_id ASC NULLS LAST").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialDay - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	day, err := r.scanSpecialDay(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: GetSpecialDay - date %s", ErrSpecialDayNotFound, date.Format(domain.DateFormat))
		}
		return nil, err
	}

	return day, nil
}

// ListSpecialDays получает особые дни тенанта в диапазоне дат
func (r *Repository) ListSpecialDays(ctx context.Context, tenantID int64, from, to time.Time) ([]*domain.SpecialDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(specialDayColumns...).
		From("special_days").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.GtOrEq{"date": dateOnly(from)}).
		Where(squirrel.LtOrEq{"date": dateOnly(to)}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListSpecialDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSpecialDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.SpecialDay, 0)

	for rows.Next() {
		day, err := r.scanSpecialDay(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSpecialDays - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// CreateSpecialDay создает особый день
func (r *Repository) CreateSpecialDay(ctx context.Context, day *domain.SpecialDay) (*domain.SpecialDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("special_days").
		Columns("tenant_id", "unit_id", "date", "is_open", "open_time", "close_time", "break_start", "break_end", "note").
		Values(
			day.TenantID,
			day.UnitID,
			dateOnly(day.Date),
			day.IsOpen,
			day.OpenTime,
			day.CloseTime,
			day.BreakStart,
			day.BreakEnd,
			day.Note,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateSpecialDay - build insert query: %v", ErrBuildQuery, err)
	}

	created := *day
	created.Date = dateOnly(day.Date)

	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateSpecialDay - execute insert: %v", ErrExecQuery, err)
	}

	return &created, nil
}

// DeleteSpecialDay удаляет особый день по ID
func (r *Repository) DeleteSpecialDay(ctx context.Context, tenantID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("special_days").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteSpecialDay - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteSpecialDay - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteSpecialDay - rows affected: %v", ErrExecQuery, err)
	}

	if affected == 0 {
		return fmt.Errorf("%w: DeleteSpecialDay - id %d", ErrSpecialDayNotFound, id)
	}

	return nil
}

// IsDateBlocked проверяет, заблокирована ли дата для тенанта.
// Блокировка без точки действует на все точки.
func (r *Repository) IsDateBlocked(ctx context.Context, tenantID int64, unitID *int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("1").
		From("blocked_dates").
		Where(squirrel.Eq{"tenant_id": tenantID, "date": dateOnly(date)})

	if unitID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"unit_id": nil},
			squirrel.Eq{"unit_id": *unitID},
		})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"unit_id": nil})
	}

	query, args, err := selectBuilder.Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsDateBlocked - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%w: IsDateBlocked - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// ListBlockedDates получает заблокированные даты тенанта в диапазоне
func (r *Repository) ListBlockedDates(ctx context.Context, tenantID int64, from, to time.Time) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockedDateColumns...).
		From("blocked_dates").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.GtOrEq{"date": dateOnly(from)}).
		Where(squirrel.LtOrEq{"date": dateOnly(to)}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BlockedDate, 0)

	for rows.Next() {
		var bd domain.BlockedDate
		var createdAt sql.NullTime

		err := rows.Scan(
			&bd.ID,
			&bd.TenantID,
			&bd.UnitID,
			&bd.Date,
			&bd.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBlockedDates - scan row: %v", ErrScanRow, err)
		}

		bd.CreatedAt = createdAt.Time
		result = append(result, &bd)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// CreateBlockedDate блокирует дату
func (r *Repository) CreateBlockedDate(ctx context.Context, blocked *domain.BlockedDate) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_dates").
		Columns("tenant_id", "unit_id", "date", "reason").
		Values(blocked.TenantID, blocked.UnitID, dateOnly(blocked.Date), blocked.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedDate - build insert query: %v", ErrBuildQuery, err)
	}

	created := *blocked
	created.Date = dateOnly(blocked.Date)

	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedDate - execute insert: %v", ErrExecQuery, err)
	}

	return &created, nil
}

// DeleteBlockedDate снимает блокировку даты по ID
func (r *Repository) DeleteBlockedDate(ctx context.Context, tenantID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_dates").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - rows affected: %v", ErrExecQuery, err)
	}

	if affected == 0 {
		return fmt.Errorf("%w: DeleteBlockedDate - id %d", ErrBlockedDateNotFound, id)
	}

	return nil
}

// scanSpecialDay сканирует строку особого дня
func (r *Repository) scanSpecialDay(row rowScanner) (*domain.SpecialDay, error) {
	var day domain.SpecialDay
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&day.ID,
		&day.TenantID,
		&day.UnitID,
		&day.Date,
		&day.IsOpen,
		&day.OpenTime,
		&day.CloseTime,
		&day.BreakStart,
		&day.BreakEnd,
		&day.Note,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scanSpecialDay - scan row: %v", ErrScanRow, err)
	}

	day.CreatedAt = createdAt.Time
	day.UpdatedAt = updatedAt.Time

	return &day, nil
}
