package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	"github.com/barbersmart/BS-AvailabilityService/pkg/dbmetrics"
	"github.com/barbersmart/BS-AvailabilityService/pkg/psqlbuilder"
)

var bookingPolicyColumns = []string{
	"id",
	"tenant_id",
	"advance_booking_days",
	"min_booking_notice_minutes",
	"created_at",
	"updated_at",
}

// GetBookingPolicy получает политику бронирования тенанта
func (r *Repository) GetBookingPolicy(ctx context.Context, tenantID int64) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingPolicyColumns...).
		From("booking_policies").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBookingPolicy - build select query: %v", ErrBuildQuery, err)
	}

	var policy domain.BookingPolicy
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.ID,
		&policy.TenantID,
		&policy.AdvanceBookingDays,
		&policy.MinBookingNoticeMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: GetBookingPolicy - tenant %d", ErrPolicyNotFound, tenantID)
		}
		return nil, fmt.Errorf("%w: GetBookingPolicy - scan row: %v", ErrScanRow, err)
	}

	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return &policy, nil
}

// UpsertBookingPolicy создает или обновляет политику бронирования тенанта.
// На tenant_id стоит уникальный индекс, конфликт разрешается обновлением.
func (r *Repository) UpsertBookingPolicy(ctx context.Context, policy *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_policies").
		Columns("tenant_id", "advance_booking_days", "min_booking_notice_minutes").
		Values(policy.TenantID, policy.AdvanceBookingDays, policy.MinBookingNoticeMinutes).
		Suffix(`ON CONFLICT (tenant_id) DO UPDATE
			SET advance_booking_days = EXCLUDED.advance_booking_days,
			    min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			    updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertBookingPolicy - build upsert query: %v", ErrBuildQuery, err)
	}

	saved := *policy

	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertBookingPolicy - execute upsert: %v", ErrExecQuery, err)
	}

	return &saved, nil
}
