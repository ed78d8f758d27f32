package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	scheduleRepo "github.com/barbersmart/BS-AvailabilityService/internal/infra/storage/schedule"
	directoryClient "github.com/barbersmart/BS-AvailabilityService/internal/integrations/directory"
	"github.com/barbersmart/BS-AvailabilityService/pkg/ptr"
	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeAppointmentRepo) GetByTenantWithFilter(ctx context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, f.err
}

type fakeScheduleRepo struct {
	blocked bool
	special *domain.SpecialDay
	staff   *domain.StaffSchedule
	week    []*domain.BusinessHours
	policy  *domain.BookingPolicy
}

func (f *fakeScheduleRepo) IsDateBlocked(ctx context.Context, tenantID int64, unitID *int64, date time.Time) (bool, error) {
	return f.blocked, nil
}

func (f *fakeScheduleRepo) GetSpecialDay(ctx context.Context, tenantID int64, unitID *int64, date time.Time) (*domain.SpecialDay, error) {
	if f.special == nil {
		return nil, scheduleRepo.ErrSpecialDayNotFound
	}
	return f.special, nil
}

func (f *fakeScheduleRepo) GetStaffSchedule(ctx context.Context, tenantID, staffID int64) (*domain.StaffSchedule, error) {
	if f.staff == nil {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return f.staff, nil
}

func (f *fakeScheduleRepo) GetBusinessWeek(ctx context.Context, tenantID int64, unitID *int64) ([]*domain.BusinessHours, error) {
	return f.week, nil
}

func (f *fakeScheduleRepo) GetBookingPolicy(ctx context.Context, tenantID int64) (*domain.BookingPolicy, error) {
	if f.policy == nil {
		return nil, scheduleRepo.ErrPolicyNotFound
	}
	return f.policy, nil
}

type fakeDirectory struct {
	service *directoryClient.Service
	err     error
}

func (f *fakeDirectory) GetService(ctx context.Context, tenantID, serviceID int64) (*directoryClient.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.service, nil
}

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

func newTestUseCase(appts *fakeAppointmentRepo, sched *fakeScheduleRepo, dir *fakeDirectory, now time.Time) *UseCase {
	uc := NewUseCase(appts, sched, dir, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

var (
	testNow  = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC) // понедельник, 08:00
	testDate = time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC) // среда
)

func haircut() *directoryClient.Service {
	return &directoryClient.Service{
		ID:              10,
		TenantID:        1,
		Name:            "Стрижка",
		DurationMinutes: 60,
		IsActive:        true,
	}
}

func defaultWeek(t *testing.T) []*domain.BusinessHours {
	t.Helper()
	rows := make([]*domain.BusinessHours, 0, 6)
	for day := int(time.Monday); day <= int(time.Saturday); day++ {
		rows = append(rows, &domain.BusinessHours{
			TenantID:   1,
			DayOfWeek:  day,
			IsOpen:     true,
			OpenTime:   ptr.Ptr(ts(t, "09:00")),
			CloseTime:  ptr.Ptr(ts(t, "12:00")),
			BreakStart: ptr.Ptr(ts(t, "10:00")),
			BreakEnd:   ptr.Ptr(ts(t, "10:30")),
		})
	}
	return rows
}

func slotStarts(resp *Response) []string {
	starts := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		starts = append(starts, s.StartTime.String())
	}
	return starts
}

func TestExecute_SlotsExcludeBookedIntervals(t *testing.T) {
	// Окно 09:00-12:00, перерыв 10:00-10:30, услуга 60 минут:
	// кандидаты 09:00, 10:30 и 11:00; 09:00 занят существующей записью
	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{StartTime: ts(t, "09:00"), DurationMinutes: 60, Status: domain.StatusConfirmed},
	}}
	sched := &fakeScheduleRepo{week: defaultWeek(t)}
	uc := newTestUseCase(appts, sched, &fakeDirectory{service: haircut()}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, ServiceID: 10, Date: testDate})

	require.NoError(t, err)
	assert.Empty(t, resp.Reason)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, []string{"10:30", "11:00"}, slotStarts(resp))
}

func TestExecute_CancelledAppointmentsFreeTheSlot(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{StartTime: ts(t, "09:00"), DurationMinutes: 60, Status: domain.StatusCancelledByCustomer},
	}}
	sched := &fakeScheduleRepo{week: defaultWeek(t)}
	uc := newTestUseCase(appts, sched, &fakeDirectory{service: haircut()}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, ServiceID: 10, Date: testDate})

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:30", "11:00"}, slotStarts(resp))
}

func TestExecute_ClosedDayReturnsReasonNotError(t *testing.T) {
	sched := &fakeScheduleRepo{blocked: true}
	uc := newTestUseCase(&fakeAppointmentRepo{}, sched, &fakeDirectory{service: haircut()}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, ServiceID: 10, Date: testDate})

	require.NoError(t, err)
	assert.Equal(t, domain.ReasonDateBlocked, resp.Reason)
	assert.Empty(t, resp.Slots)
	assert.NotNil(t, resp.Slots)
}

func TestExecute_SameDayNoticeFiltersNearSlots(t *testing.T) {
	// Сейчас 09:30, интервал 60 минут: раньше 10:30 начинать нельзя
	sched := &fakeScheduleRepo{
		week:   defaultWeek(t),
		policy: &domain.BookingPolicy{TenantID: 1, MinBookingNoticeMinutes: 60},
	}
	today := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeAppointmentRepo{}, sched, &fakeDirectory{service: haircut()}, now)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, ServiceID: 10, Date: today})

	require.NoError(t, err)
	assert.Equal(t, []string{"10:30", "11:00"}, slotStarts(resp))
}

func TestExecute_StaffNotEligible(t *testing.T) {
	service := haircut()
	service.StaffIDs = []int64{3, 4}
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{}, &fakeDirectory{service: service}, testNow)

	_, err := uc.Execute(context.Background(), &Request{
		TenantID:  1,
		ServiceID: 10,
		StaffID:   ptr.Ptr(int64(7)),
		Date:      testDate,
	})

	assert.ErrorIs(t, err, ErrStaffNotEligible)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	dir := &fakeDirectory{err: directoryClient.ErrServiceNotFound}
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{}, dir, testNow)

	_, err := uc.Execute(context.Background(), &Request{TenantID: 1, ServiceID: 10, Date: testDate})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_DateValidation(t *testing.T) {
	sched := &fakeScheduleRepo{
		week:   defaultWeek(t),
		policy: &domain.BookingPolicy{TenantID: 1, AdvanceBookingDays: 14},
	}
	uc := newTestUseCase(&fakeAppointmentRepo{}, sched, &fakeDirectory{service: haircut()}, testNow)

	t.Run("past date", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			TenantID:  1,
			ServiceID: 10,
			Date:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("beyond booking horizon", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			TenantID:  1,
			ServiceID: 10,
			Date:      time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})

	t.Run("horizon boundary is allowed", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), &Request{
			TenantID:  1,
			ServiceID: 10,
			Date:      time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.NotNil(t, resp)
	})
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{}, &fakeDirectory{service: haircut()}, testNow)

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero tenant", req: &Request{ServiceID: 10, Date: testDate}},
		{name: "zero service", req: &Request{TenantID: 1, Date: testDate}},
		{name: "zero date", req: &Request{TenantID: 1, ServiceID: 10}},
		{name: "non-positive staff", req: &Request{TenantID: 1, ServiceID: 10, Date: testDate, StaffID: ptr.Ptr(int64(0))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_AppointmentLookupFailure(t *testing.T) {
	appts := &fakeAppointmentRepo{err: errors.New("connection refused")}
	sched := &fakeScheduleRepo{week: defaultWeek(t)}
	uc := newTestUseCase(appts, sched, &fakeDirectory{service: haircut()}, testNow)

	_, err := uc.Execute(context.Background(), &Request{TenantID: 1, ServiceID: 10, Date: testDate})

	assert.ErrorIs(t, err, ErrInternal)
}
