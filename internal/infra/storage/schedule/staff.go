package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	"github.com/barbersmart/BS-AvailabilityService/pkg/dbmetrics"
	"github.com/barbersmart/BS-AvailabilityService/pkg/psqlbuilder"
)

// Недельный график и переопределения по точкам хранятся в JSONB:
// структура недели фиксирована (7 дней), а реляционная развертка
// давала бы по 7+ строк на мастера без выигрыша в запросах.

var staffScheduleColumns = []string{
	"id",
	"tenant_id",
	"staff_id",
	"week",
	"unit_overrides",
	"created_at",
	"updated_at",
}

// GetStaffSchedule получает индивидуальный график мастера
func (r *Repository) GetStaffSchedule(ctx context.Context, tenantID, staffID int64) (*domain.StaffSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(staffScheduleColumns...).
		From("staff_schedules").
		Where(squirrel.Eq{"tenant_id": tenantID, "staff_id": staffID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffSchedule - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	schedule, err := r.scanStaffSchedule(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: GetStaffSchedule - staff %d", ErrScheduleNotFound, staffID)
		}
		return nil, err
	}

	return schedule, nil
}

// CreateStaffSchedule создает график мастера
func (r *Repository) CreateStaffSchedule(ctx context.Context, schedule *domain.StaffSchedule) (*domain.StaffSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	weekJSON, overridesJSON, err := encodeStaffSchedule(schedule)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("staff_schedules").
		Columns("tenant_id", "staff_id", "week", "unit_overrides").
		Values(schedule.TenantID, schedule.StaffID, weekJSON, overridesJSON).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateStaffSchedule - build insert query: %v", ErrBuildQuery, err)
	}

	created := *schedule

	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateStaffSchedule - execute insert: %v", ErrExecQuery, err)
	}

	return &created, nil
}

// UpdateStaffSchedule обновляет график мастера целиком
func (r *Repository) UpdateStaffSchedule(ctx context.Context, schedule *domain.StaffSchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	weekJSON, overridesJSON, err := encodeStaffSchedule(schedule)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Update("staff_schedules").
		Set("week", weekJSON).
		Set("unit_overrides", overridesJSON).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": schedule.TenantID, "staff_id": schedule.StaffID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStaffSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStaffSchedule - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStaffSchedule - rows affected: %v", ErrExecQuery, err)
	}

	if affected == 0 {
		return fmt.Errorf("%w: UpdateStaffSchedule - staff %d", ErrScheduleNotFound, schedule.StaffID)
	}

	return nil
}

// DeleteStaffSchedule удаляет график мастера
func (r *Repository) DeleteStaffSchedule(ctx context.Context, tenantID, staffID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("staff_schedules").
		Where(squirrel.Eq{"tenant_id": tenantID, "staff_id": staffID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteStaffSchedule - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteStaffSchedule - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteStaffSchedule - rows affected: %v", ErrExecQuery, err)
	}

	if affected == 0 {
		return fmt.Errorf("%w: DeleteStaffSchedule - staff %d", ErrScheduleNotFound, staffID)
	}

	return nil
}

// scanStaffSchedule сканирует строку и декодирует JSONB-колонки графика
func (r *Repository) scanStaffSchedule(row rowScanner) (*domain.StaffSchedule, error) {
	var schedule domain.StaffSchedule
	var weekJSON, overridesJSON []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&schedule.ID,
		&schedule.TenantID,
		&schedule.StaffID,
		&weekJSON,
		&overridesJSON,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scanStaffSchedule - scan row: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(weekJSON, &schedule.Week); err != nil {
		return nil, fmt.Errorf("%w: scanStaffSchedule - decode week: %v", ErrEncodeSchedule, err)
	}

	if len(overridesJSON) > 0 {
		// Ключи JSON-объекта - строковые ID точек
		raw := make(map[string]domain.WeekSchedule)
		if err := json.Unmarshal(overridesJSON, &raw); err != nil {
			return nil, fmt.Errorf("%w: scanStaffSchedule - decode unit overrides: %v", ErrEncodeSchedule, err)
		}
		if len(raw) > 0 {
			schedule.UnitOverrides = make(map[int64]domain.WeekSchedule, len(raw))
			for key, week := range raw {
				unitID, err := strconv.ParseInt(key, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: scanStaffSchedule - unit override key %q: %v", ErrEncodeSchedule, key, err)
				}
				schedule.UnitOverrides[unitID] = week
			}
		}
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}

// encodeStaffSchedule кодирует недельный график и переопределения в JSONB
func encodeStaffSchedule(schedule *domain.StaffSchedule) ([]byte, []byte, error) {
	weekJSON, err := json.Marshal(schedule.Week)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: encode week: %v", ErrEncodeSchedule, err)
	}

	raw := make(map[string]domain.WeekSchedule, len(schedule.UnitOverrides))
	for unitID, week := range schedule.UnitOverrides {
		raw[strconv.FormatInt(unitID, 10)] = week
	}

	overridesJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: encode unit overrides: %v", ErrEncodeSchedule, err)
	}

	return weekJSON, overridesJSON, nil
}
