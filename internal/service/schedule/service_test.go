package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	scheduleRepo "github.com/barbersmart/BS-AvailabilityService/internal/infra/storage/schedule"
	"github.com/barbersmart/BS-AvailabilityService/internal/service/schedule/models"
	"github.com/barbersmart/BS-AvailabilityService/pkg/ptr"
	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeRepo минимальный репозиторий с фиксацией записанных значений
type fakeRepo struct {
	week          []*domain.BusinessHours
	replacedRows  []*domain.BusinessHours
	staffSchedule *domain.StaffSchedule
	createdStaff  *domain.StaffSchedule
	updatedStaff  *domain.StaffSchedule
	policy        *domain.BookingPolicy
	savedPolicy   *domain.BookingPolicy
}

func (f *fakeRepo) GetBusinessWeek(ctx context.Context, tenantID int64, unitID *int64) ([]*domain.BusinessHours, error) {
	return f.week, nil
}

func (f *fakeRepo) ReplaceBusinessHours(ctx context.Context, tenantID int64, unitID *int64, rows []*domain.BusinessHours) error {
	f.replacedRows = rows
	return nil
}

func (f *fakeRepo) GetStaffSchedule(ctx context.Context, tenantID, staffID int64) (*domain.StaffSchedule, error) {
	if f.staffSchedule == nil {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return f.staffSchedule, nil
}

func (f *fakeRepo) CreateStaffSchedule(ctx context.Context, schedule *domain.StaffSchedule) (*domain.StaffSchedule, error) {
	f.createdStaff = schedule
	return schedule, nil
}

func (f *fakeRepo) UpdateStaffSchedule(ctx context.Context, schedule *domain.StaffSchedule) error {
	f.updatedStaff = schedule
	return nil
}

func (f *fakeRepo) ListSpecialDays(ctx context.Context, tenantID int64, from, to time.Time) ([]*domain.SpecialDay, error) {
	return nil, nil
}

func (f *fakeRepo) CreateSpecialDay(ctx context.Context, day *domain.SpecialDay) (*domain.SpecialDay, error) {
	created := *day
	created.ID = 1
	return &created, nil
}

func (f *fakeRepo) DeleteSpecialDay(ctx context.Context, tenantID, id int64) error {
	return scheduleRepo.ErrSpecialDayNotFound
}

func (f *fakeRepo) ListBlockedDates(ctx context.Context, tenantID int64, from, to time.Time) ([]*domain.BlockedDate, error) {
	return nil, nil
}

func (f *fakeRepo) CreateBlockedDate(ctx context.Context, blocked *domain.BlockedDate) (*domain.BlockedDate, error) {
	created := *blocked
	created.ID = 1
	return &created, nil
}

func (f *fakeRepo) DeleteBlockedDate(ctx context.Context, tenantID, id int64) error {
	return scheduleRepo.ErrBlockedDateNotFound
}

func (f *fakeRepo) GetBookingPolicy(ctx context.Context, tenantID int64) (*domain.BookingPolicy, error) {
	if f.policy == nil {
		return nil, scheduleRepo.ErrPolicyNotFound
	}
	return f.policy, nil
}

func (f *fakeRepo) UpsertBookingPolicy(ctx context.Context, policy *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	f.savedPolicy = policy
	return policy, nil
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, fakeTxManager{}, nopLogger{})
}

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

func TestReplaceBusinessHours(t *testing.T) {
	t.Run("writes one row per requested day", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(repo)

		err := svc.ReplaceBusinessHours(context.Background(), &models.ReplaceBusinessHoursRequest{
			TenantID: 1,
			Days: map[int]models.DayScheduleRequest{
				1: {Enabled: true, Start: ptr.Ptr("09:00"), End: ptr.Ptr("18:00")},
				2: {Enabled: false},
			},
		})

		require.NoError(t, err)
		require.Len(t, repo.replacedRows, 2)
	})

	t.Run("invalid hours fail loudly", func(t *testing.T) {
		svc := newTestService(&fakeRepo{})

		err := svc.ReplaceBusinessHours(context.Background(), &models.ReplaceBusinessHoursRequest{
			TenantID: 1,
			Days: map[int]models.DayScheduleRequest{
				1: {Enabled: true, Start: ptr.Ptr("18:00"), End: ptr.Ptr("09:00")},
			},
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("enabled day requires start and end", func(t *testing.T) {
		svc := newTestService(&fakeRepo{})

		err := svc.ReplaceBusinessHours(context.Background(), &models.ReplaceBusinessHoursRequest{
			TenantID: 1,
			Days:     map[int]models.DayScheduleRequest{1: {Enabled: true}},
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("day of week out of range", func(t *testing.T) {
		svc := newTestService(&fakeRepo{})

		err := svc.ReplaceBusinessHours(context.Background(), &models.ReplaceBusinessHoursRequest{
			TenantID: 1,
			Days:     map[int]models.DayScheduleRequest{7: {Enabled: false}},
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetBusinessWeek_UnitRowWinsOverTenantRow(t *testing.T) {
	unitID := int64(2)
	repo := &fakeRepo{week: []*domain.BusinessHours{
		{TenantID: 1, UnitID: &unitID, DayOfWeek: 1, IsOpen: true,
			OpenTime: ptr.Ptr(ts(t, "12:00")), CloseTime: ptr.Ptr(ts(t, "21:00"))},
		{TenantID: 1, DayOfWeek: 1, IsOpen: true,
			OpenTime: ptr.Ptr(ts(t, "09:00")), CloseTime: ptr.Ptr(ts(t, "18:00"))},
	}}
	svc := newTestService(repo)

	resp, err := svc.GetBusinessWeek(context.Background(), 1, &unitID)

	require.NoError(t, err)
	day, ok := resp.Days[1]
	require.True(t, ok)
	require.NotNil(t, day.Start)
	assert.Equal(t, "12:00", *day.Start)
}

func TestPutStaffSchedule(t *testing.T) {
	openDay := models.DayScheduleRequest{Enabled: true, Start: ptr.Ptr("10:00"), End: ptr.Ptr("19:00")}

	t.Run("creates when missing", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(repo)

		var week [7]models.DayScheduleRequest
		week[1] = openDay

		err := svc.PutStaffSchedule(context.Background(), &models.PutStaffScheduleRequest{
			TenantID: 1,
			StaffID:  7,
			Week:     week,
		})

		require.NoError(t, err)
		require.NotNil(t, repo.createdStaff)
		assert.Nil(t, repo.updatedStaff)
		assert.True(t, repo.createdStaff.Week[1].Enabled)
	})

	t.Run("updates when present", func(t *testing.T) {
		repo := &fakeRepo{staffSchedule: &domain.StaffSchedule{TenantID: 1, StaffID: 7}}
		svc := newTestService(repo)

		var week [7]models.DayScheduleRequest
		week[1] = openDay

		err := svc.PutStaffSchedule(context.Background(), &models.PutStaffScheduleRequest{
			TenantID: 1,
			StaffID:  7,
			Week:     week,
		})

		require.NoError(t, err)
		assert.Nil(t, repo.createdStaff)
		require.NotNil(t, repo.updatedStaff)
	})

	t.Run("invalid override day fails loudly", func(t *testing.T) {
		svc := newTestService(&fakeRepo{})

		var week [7]models.DayScheduleRequest
		overrides := map[int64][7]models.DayScheduleRequest{
			3: {1: {Enabled: true, Start: ptr.Ptr("19:00"), End: ptr.Ptr("10:00")}},
		}

		err := svc.PutStaffSchedule(context.Background(), &models.PutStaffScheduleRequest{
			TenantID:      1,
			StaffID:       7,
			Week:          week,
			UnitOverrides: overrides,
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCreateSpecialDay(t *testing.T) {
	t.Run("open day requires valid hours", func(t *testing.T) {
		svc := newTestService(&fakeRepo{})

		_, err := svc.CreateSpecialDay(context.Background(), &models.CreateSpecialDayRequest{
			TenantID: 1,
			Date:     "2025-12-31",
			IsOpen:   true,
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("closed day needs no hours", func(t *testing.T) {
		svc := newTestService(&fakeRepo{})

		resp, err := svc.CreateSpecialDay(context.Background(), &models.CreateSpecialDayRequest{
			TenantID: 1,
			Date:     "2025-12-31",
			IsOpen:   false,
		})

		require.NoError(t, err)
		assert.Equal(t, "2025-12-31", resp.Date)
		assert.False(t, resp.IsOpen)
		assert.Nil(t, resp.Start)
	})

	t.Run("bad date format", func(t *testing.T) {
		svc := newTestService(&fakeRepo{})

		_, err := svc.CreateSpecialDay(context.Background(), &models.CreateSpecialDayRequest{
			TenantID: 1,
			Date:     "31.12.2025",
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestDeleteSpecialDay_NotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	err := svc.DeleteSpecialDay(context.Background(), 1, 99)

	assert.ErrorIs(t, err, ErrSpecialDayNotFound)
}

func TestDeleteBlockedDate_NotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	err := svc.DeleteBlockedDate(context.Background(), 1, 99)

	assert.ErrorIs(t, err, ErrBlockedDateNotFound)
}

func TestBookingPolicy(t *testing.T) {
	t.Run("defaults returned when policy is unset", func(t *testing.T) {
		svc := newTestService(&fakeRepo{})

		resp, err := svc.GetBookingPolicy(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, domain.DefaultAdvanceBookingDays, resp.AdvanceBookingDays)
		assert.Equal(t, domain.DefaultMinBookingNoticeMinutes, resp.MinBookingNoticeMinutes)
	})

	t.Run("upsert persists the policy", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(repo)

		resp, err := svc.UpsertBookingPolicy(context.Background(), &models.UpsertBookingPolicyRequest{
			TenantID:                1,
			AdvanceBookingDays:      14,
			MinBookingNoticeMinutes: 120,
		})

		require.NoError(t, err)
		require.NotNil(t, repo.savedPolicy)
		assert.Equal(t, 14, resp.AdvanceBookingDays)
	})

	t.Run("bounds are enforced", func(t *testing.T) {
		svc := newTestService(&fakeRepo{})

		tests := []struct {
			name string
			req  *models.UpsertBookingPolicyRequest
		}{
			{name: "advance days above maximum", req: &models.UpsertBookingPolicyRequest{TenantID: 1, AdvanceBookingDays: 366}},
			{name: "negative advance days", req: &models.UpsertBookingPolicyRequest{TenantID: 1, AdvanceBookingDays: -1}},
			{name: "notice above maximum", req: &models.UpsertBookingPolicyRequest{TenantID: 1, MinBookingNoticeMinutes: 10081}},
			{name: "negative notice", req: &models.UpsertBookingPolicyRequest{TenantID: 1, MinBookingNoticeMinutes: -1}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.UpsertBookingPolicy(context.Background(), tt.req)
				assert.ErrorIs(t, err, ErrInvalidInput)
			})
		}
	})
}
