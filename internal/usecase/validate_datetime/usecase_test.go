package validate_datetime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	scheduleRepo "github.com/barbersmart/BS-AvailabilityService/internal/infra/storage/schedule"
	"github.com/barbersmart/BS-AvailabilityService/pkg/ptr"
	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// fakeScheduleRepo управляемый репозиторий источников расписаний
type fakeScheduleRepo struct {
	blocked    bool
	blockedErr error

	special    *domain.SpecialDay
	specialErr error

	staff    *domain.StaffSchedule
	staffErr error

	week    []*domain.BusinessHours
	weekErr error

	policy    *domain.BookingPolicy
	policyErr error
}

func (f *fakeScheduleRepo) IsDateBlocked(ctx context.Context, tenantID int64, unitID *int64, date time.Time) (bool, error) {
	return f.blocked, f.blockedErr
}

func (f *fakeScheduleRepo) GetSpecialDay(ctx context.Context, tenantID int64, unitID *int64, date time.Time) (*domain.SpecialDay, error) {
	if f.specialErr != nil {
		return nil, f.specialErr
	}
	if f.special == nil {
		return nil, scheduleRepo.ErrSpecialDayNotFound
	}
	return f.special, nil
}

func (f *fakeScheduleRepo) GetStaffSchedule(ctx context.Context, tenantID, staffID int64) (*domain.StaffSchedule, error) {
	if f.staffErr != nil {
		return nil, f.staffErr
	}
	if f.staff == nil {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return f.staff, nil
}

func (f *fakeScheduleRepo) GetBusinessWeek(ctx context.Context, tenantID int64, unitID *int64) ([]*domain.BusinessHours, error) {
	return f.week, f.weekErr
}

func (f *fakeScheduleRepo) GetBookingPolicy(ctx context.Context, tenantID int64) (*domain.BookingPolicy, error) {
	if f.policyErr != nil {
		return nil, f.policyErr
	}
	if f.policy == nil {
		return nil, scheduleRepo.ErrPolicyNotFound
	}
	return f.policy, nil
}

func newTestUseCase(repo *fakeScheduleRepo, now time.Time) *UseCase {
	uc := NewUseCase(repo, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

var testNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC) // понедельник, 10:00

func TestExecute_BlockedDate(t *testing.T) {
	repo := &fakeScheduleRepo{blocked: true}
	uc := newTestUseCase(repo, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID: 1,
		Date:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.False(t, resp.Result.IsValid)
	assert.Equal(t, domain.ReasonDateBlocked, resp.Result.Reason)
}

func TestExecute_DefaultPolicyWhenUnset(t *testing.T) {
	// Политики нет - применяются дефолтные правила: горизонт не ограничен
	repo := &fakeScheduleRepo{}
	uc := newTestUseCase(repo, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID: 1,
		Date:     time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.True(t, resp.Result.IsValid)
}

func TestExecute_PolicyHorizonExceeded(t *testing.T) {
	repo := &fakeScheduleRepo{
		policy: &domain.BookingPolicy{TenantID: 1, AdvanceBookingDays: 7},
	}
	uc := newTestUseCase(repo, testNow)

	_, err := uc.Execute(context.Background(), &Request{
		TenantID: 1,
		Date:     time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(&fakeScheduleRepo{}, testNow)

	_, err := uc.Execute(context.Background(), &Request{
		TenantID: 1,
		Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeScheduleRepo{}, testNow)
	futureDate := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero tenant", req: &Request{Date: futureDate}},
		{name: "negative tenant", req: &Request{TenantID: -1, Date: futureDate}},
		{name: "zero date", req: &Request{TenantID: 1}},
		{name: "non-positive unit", req: &Request{TenantID: 1, Date: futureDate, UnitID: ptr.Ptr(int64(0))}},
		{name: "non-positive staff", req: &Request{TenantID: 1, Date: futureDate, StaffID: ptr.Ptr(int64(-5))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_SameDayNotice(t *testing.T) {
	repo := &fakeScheduleRepo{
		policy: &domain.BookingPolicy{TenantID: 1, MinBookingNoticeMinutes: 60},
	}
	uc := newTestUseCase(repo, testNow) // сейчас 10:00
	today := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	t.Run("too late for a near slot", func(t *testing.T) {
		tm := ts(t, "10:30")
		_, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: today, Time: &tm})
		assert.ErrorIs(t, err, ErrTooLateToBook)
	})

	t.Run("far enough slot passes", func(t *testing.T) {
		tm := ts(t, "12:00")
		resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: today, Time: &tm})
		require.NoError(t, err)
		assert.True(t, resp.Result.IsValid)
	})

	t.Run("notice does not apply to another day", func(t *testing.T) {
		tomorrow := today.AddDate(0, 0, 1)
		tm := ts(t, "09:00")
		resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: tomorrow, Time: &tm})
		require.NoError(t, err)
		assert.True(t, resp.Result.IsValid)
	})

	t.Run("notice skipped for day-level check", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: today})
		require.NoError(t, err)
		assert.True(t, resp.Result.IsValid)
	})

	t.Run("notice skipped when time is invalid anyway", func(t *testing.T) {
		// 10:15 слишком близко, но день с особым закрытием дает отказ раньше
		repo.special = &domain.SpecialDay{TenantID: 1, Date: today, IsOpen: false}
		defer func() { repo.special = nil }()

		tm := ts(t, "10:15")
		resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: today, Time: &tm})
		require.NoError(t, err)
		assert.False(t, resp.Result.IsValid)
		assert.Equal(t, domain.ReasonClosedSpecial, resp.Result.Reason)
	})
}

func TestExecute_TimeInsideBreak(t *testing.T) {
	repo := &fakeScheduleRepo{
		week: []*domain.BusinessHours{
			{
				TenantID:   1,
				DayOfWeek:  int(time.Tuesday),
				IsOpen:     true,
				OpenTime:   ptr.Ptr(ts(t, "09:00")),
				CloseTime:  ptr.Ptr(ts(t, "18:00")),
				BreakStart: ptr.Ptr(ts(t, "13:00")),
				BreakEnd:   ptr.Ptr(ts(t, "14:00")),
			},
		},
	}
	uc := newTestUseCase(repo, testNow)
	tm := ts(t, "13:30")

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID: 1,
		Date:     time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		Time:     &tm,
	})

	require.NoError(t, err)
	assert.False(t, resp.Result.IsValid)
	assert.Equal(t, domain.ReasonInsideBreak, resp.Result.Reason)
	require.NotNil(t, resp.Result.AvailableHours)
	assert.Equal(t, ts(t, "09:00"), resp.Result.AvailableHours.Start)
}

func TestExecute_StaffScheduleOnlyWhenRequested(t *testing.T) {
	// График мастера пустой (все дни выходные), без staffId он не участвует
	repo := &fakeScheduleRepo{staff: &domain.StaffSchedule{TenantID: 1, StaffID: 7}}
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(repo, testNow)

	withoutStaff, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: date})
	require.NoError(t, err)
	assert.True(t, withoutStaff.Result.IsValid)

	withStaff, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: date, StaffID: ptr.Ptr(int64(7))})
	require.NoError(t, err)
	assert.False(t, withStaff.Result.IsValid)
	assert.Equal(t, domain.ReasonStaffDayOff, withStaff.Result.Reason)
}

func TestExecute_StorageErrors(t *testing.T) {
	boom := errors.New("connection refused")
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		repo *fakeScheduleRepo
	}{
		{name: "policy lookup fails", repo: &fakeScheduleRepo{policyErr: boom}},
		{name: "blocked lookup fails", repo: &fakeScheduleRepo{blockedErr: boom}},
		{name: "special day lookup fails", repo: &fakeScheduleRepo{specialErr: boom}},
		{name: "business week lookup fails", repo: &fakeScheduleRepo{weekErr: boom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(tt.repo, testNow)
			_, err := uc.Execute(context.Background(), &Request{TenantID: 1, Date: date})
			assert.ErrorIs(t, err, ErrInternal)
		})
	}
}
