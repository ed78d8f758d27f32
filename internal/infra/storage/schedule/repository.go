package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	"github.com/barbersmart/BS-AvailabilityService/pkg/dbmetrics"
	"github.com/barbersmart/BS-AvailabilityService/pkg/psqlbuilder"
)

// Колонки таблицы business_hours в порядке сканирования
var businessHoursColumns = []string{
	"id",
	"tenant_id",
	"unit_id",
	"day_of_week",
	"is_open",
	"open_time",
	"close_time",
	"break_start",
	"break_end",
	"created_at",
	"updated_at",
}

// Repository репозиторий источников расписаний: часы работы, графики
// мастеров, особые дни, заблокированные даты и политика бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBusinessWeek получает все строки часов работы тенанта.
// Если unitID задан, возвращаются общие строки тенанта и строки этой точки.
func (r *Repository) GetBusinessWeek(ctx context.Context, tenantID int64, unitID *int64) ([]*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(businessHoursColumns...).
		From("business_hours").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("day_of_week ASC, unit_id ASC NULLS FIRST")

	if unitID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"unit_id": nil},
			squirrel.Eq{"unit_id": *unitID},
		})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessWeek - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessWeek - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBusinessHours(rows)
}

// ReplaceBusinessHours заменяет часы работы тенанта (или точки) целиком.
// Неделя настраивается одним запросом из админки, поэтому замена
// атомарна на уровне tenant+unit: старые строки удаляются, новые вставляются.
// Вызывается внутри транзакции.
func (r *Repository) ReplaceBusinessHours(ctx context.Context, tenantID int64, unitID *int64, rows []*domain.BusinessHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("business_hours").
		Where(squirrel.Eq{"tenant_id": tenantID})

	if unitID == nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"unit_id": nil})
	} else {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"unit_id": *unitID})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceBusinessHours - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceBusinessHours - execute delete: %v", ErrExecQuery, err)
	}

	if len(rows) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("business_hours").
		Columns(
			"tenant_id",
			"unit_id",
			"day_of_week",
			"is_open",
			"open_time",
			"close_time",
			"break_start",
			"break_end",
		)

	for _, row := range rows {
		insertBuilder = insertBuilder.Values(
			tenantID,
			unitID,
			row.DayOfWeek,
			row.IsOpen,
			row.OpenTime,
			row.CloseTime,
			row.BreakStart,
			row.BreakEnd,
		)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceBusinessHours - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceBusinessHours - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// scanBusinessHours сканирует результаты запроса в слайс строк часов работы
func (r *Repository) scanBusinessHours(rows *sql.Rows) ([]*domain.BusinessHours, error) {
	result := make([]*domain.BusinessHours, 0)

	for rows.Next() {
		var bh domain.BusinessHours
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&bh.ID,
			&bh.TenantID,
			&bh.UnitID,
			&bh.DayOfWeek,
			&bh.IsOpen,
			&bh.OpenTime,
			&bh.CloseTime,
			&bh.BreakStart,
			&bh.BreakEnd,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBusinessHours - scan row: %v", ErrScanRow, err)
		}

		bh.CreatedAt = createdAt.Time
		bh.UpdatedAt = updatedAt.Time

		result = append(result, &bh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBusinessHours - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// dateOnly обнуляет время даты для ключевых сравнений по датам
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
