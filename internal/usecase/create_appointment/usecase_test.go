package create_appointment

import (
	"context"
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

// fakeAppointmentRepo хранит существующие записи и фиксирует созданную
type fakeAppointmentRepo struct {
	existing []*domain.Appointment
	created  *domain.Appointment
}

func (f *fakeAppointmentRepo) GetByTenantWithFilter(ctx context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.existing, nil
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	stored := *appt
	stored.ID = 100
	f.created = &stored
	return &stored, nil
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
	service    *directoryClient.Service
	serviceErr error
	staffErr   error
}

func (f *fakeDirectory) GetTenant(ctx context.Context, tenantID int64) (*directoryClient.Tenant, error) {
	return &directoryClient.Tenant{ID: tenantID, IsActive: true}, nil
}

func (f *fakeDirectory) GetService(ctx context.Context, tenantID, serviceID int64) (*directoryClient.Service, error) {
	if f.serviceErr != nil {
		return nil, f.serviceErr
	}
	return f.service, nil
}

func (f *fakeDirectory) GetStaff(ctx context.Context, tenantID, staffID int64) (*directoryClient.Staff, error) {
	if f.staffErr != nil {
		return nil, f.staffErr
	}
	return &directoryClient.Staff{ID: staffID, TenantID: tenantID, IsActive: true}, nil
}

// fakeTxManager выполняет колбэк без настоящей транзакции, считая вызовы
type fakeTxManager struct {
	serializableCalls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.serializableCalls++
	return fn(ctx)
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
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

func businessWeek(t *testing.T) []*domain.BusinessHours {
	t.Helper()
	rows := make([]*domain.BusinessHours, 0, 6)
	for day := int(time.Monday); day <= int(time.Saturday); day++ {
		rows = append(rows, &domain.BusinessHours{
			TenantID:  1,
			DayOfWeek: day,
			IsOpen:    true,
			OpenTime:  ptr.Ptr(ts(t, "09:00")),
			CloseTime: ptr.Ptr(ts(t, "18:00")),
		})
	}
	return rows
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		TenantID:      1,
		UnitID:        2,
		StaffID:       7,
		CustomerID:    42,
		ServiceID:     10,
		Date:          testDate,
		StartTime:     ts(t, "10:00"),
		CustomerPhone: "+79990001122",
	}
}

type testEnv struct {
	uc    *UseCase
	appts *fakeAppointmentRepo
	sched *fakeScheduleRepo
	dir   *fakeDirectory
	tx    *fakeTxManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		appts: &fakeAppointmentRepo{},
		sched: &fakeScheduleRepo{week: businessWeek(t)},
		dir:   &fakeDirectory{service: haircut()},
		tx:    &fakeTxManager{},
	}
	env.uc = NewUseCase(env.appts, env.sched, env.dir, env.tx, nopLogger{})
	env.uc.timeProvider = fixedTime{now: testNow}
	return env
}

func TestExecute_CreatesPendingAppointment(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.uc.Execute(context.Background(), validRequest(t))

	require.NoError(t, err)
	require.NotNil(t, resp.Appointment)

	created := env.appts.created
	require.NotNil(t, created)
	assert.Equal(t, int64(100), resp.Appointment.ID)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, 60, created.DurationMinutes)
	assert.Equal(t, "Стрижка", created.ServiceName)
	assert.Equal(t, "+79990001122", created.CustomerPhone)
	assert.Equal(t, int64(42), created.CustomerID)

	// Проверка занятости и вставка идут в сериализуемой транзакции
	assert.Equal(t, 1, env.tx.serializableCalls)
}

func TestExecute_SlotGridAlignment(t *testing.T) {
	env := newTestEnv(t)

	req := validRequest(t)
	req.StartTime = ts(t, "10:15")

	_, err := env.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	assert.Nil(t, env.appts.created)
}

func TestExecute_SlotTaken(t *testing.T) {
	env := newTestEnv(t)
	env.appts.existing = []*domain.Appointment{
		{StartTime: ts(t, "09:30"), DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	req := validRequest(t) // 10:00, пересекает [09:30, 10:30)
	_, err := env.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Nil(t, env.appts.created)
}

func TestExecute_TouchingBookingIsAllowed(t *testing.T) {
	env := newTestEnv(t)
	env.appts.existing = []*domain.Appointment{
		{StartTime: ts(t, "09:00"), DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	req := validRequest(t) // 10:00 начинается ровно на границе занятого интервала
	resp, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.NotNil(t, resp.Appointment)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	env := newTestEnv(t)
	env.appts.existing = []*domain.Appointment{
		{StartTime: ts(t, "10:00"), DurationMinutes: 60, Status: domain.StatusCancelledByTenant},
	}

	_, err := env.uc.Execute(context.Background(), validRequest(t))

	require.NoError(t, err)
	require.NotNil(t, env.appts.created)
}

func TestExecute_DateUnavailable(t *testing.T) {
	t.Run("blocked date", func(t *testing.T) {
		env := newTestEnv(t)
		env.sched.blocked = true

		_, err := env.uc.Execute(context.Background(), validRequest(t))

		assert.ErrorIs(t, err, ErrDateUnavailable)
		assert.ErrorContains(t, err, domain.ReasonDateBlocked)
	})

	t.Run("time outside business hours", func(t *testing.T) {
		env := newTestEnv(t)

		req := validRequest(t)
		req.StartTime = ts(t, "18:00")

		_, err := env.uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrDateUnavailable)
		assert.ErrorContains(t, err, domain.ReasonOutsideHours)
	})

	t.Run("service does not fit before closing", func(t *testing.T) {
		env := newTestEnv(t)

		// 17:30 внутри окна, но 60 минут не помещаются до 18:00
		req := validRequest(t)
		req.StartTime = ts(t, "17:30")

		_, err := env.uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrDateUnavailable)
		assert.ErrorContains(t, err, domain.ReasonOutsideHours)
		assert.Nil(t, env.appts.created)
	})
}

func TestExecute_StaffValidation(t *testing.T) {
	t.Run("staff not found", func(t *testing.T) {
		env := newTestEnv(t)
		env.dir.staffErr = directoryClient.ErrStaffNotFound

		_, err := env.uc.Execute(context.Background(), validRequest(t))

		assert.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("staff does not perform the service", func(t *testing.T) {
		env := newTestEnv(t)
		env.dir.service.StaffIDs = []int64{3, 4}

		_, err := env.uc.Execute(context.Background(), validRequest(t))

		assert.ErrorIs(t, err, ErrStaffNotEligible)
	})
}

func TestExecute_SameDayNotice(t *testing.T) {
	env := newTestEnv(t)
	env.sched.policy = &domain.BookingPolicy{TenantID: 1, MinBookingNoticeMinutes: 120}

	req := validRequest(t)
	req.Date = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) // сегодня
	req.StartTime = ts(t, "09:30")                          // сейчас 08:00, нужен запас 2 часа

	_, err := env.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.dir.serviceErr = directoryClient.ErrServiceNotFound

	_, err := env.uc.Execute(context.Background(), validRequest(t))

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	env := newTestEnv(t)

	longNotes := make([]byte, domain.MaxNotesLength+1)
	for i := range longNotes {
		longNotes[i] = 'x'
	}

	mutations := []struct {
		name   string
		mutate func(req *Request)
	}{
		{name: "zero tenant", mutate: func(req *Request) { req.TenantID = 0 }},
		{name: "zero unit", mutate: func(req *Request) { req.UnitID = 0 }},
		{name: "zero staff", mutate: func(req *Request) { req.StaffID = 0 }},
		{name: "zero customer", mutate: func(req *Request) { req.CustomerID = 0 }},
		{name: "zero service", mutate: func(req *Request) { req.ServiceID = 0 }},
		{name: "zero date", mutate: func(req *Request) { req.Date = time.Time{} }},
		{name: "empty start time", mutate: func(req *Request) { req.StartTime = types.TimeString{} }},
		{name: "empty phone", mutate: func(req *Request) { req.CustomerPhone = "" }},
		{name: "notes too long", mutate: func(req *Request) { req.Notes = ptr.Ptr(string(longNotes)) }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t)
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
