package appointments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	appointmentRepo "github.com/barbersmart/BS-AvailabilityService/internal/infra/storage/appointment"
	"github.com/barbersmart/BS-AvailabilityService/internal/service/appointments/models"
	"github.com/barbersmart/BS-AvailabilityService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeRepo хранит одну запись и фиксирует мутации
type fakeRepo struct {
	appt *domain.Appointment

	cancelledWith domain.AppointmentStatus
	cancelReason  string
	updatedTo     domain.AppointmentStatus
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if f.appt == nil || f.appt.ID != id {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return f.appt, nil
}

func (f *fakeRepo) GetByCustomerID(ctx context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	if f.appt != nil && f.appt.CustomerID == customerID {
		return []*domain.Appointment{f.appt}, nil
	}
	return nil, nil
}

func (f *fakeRepo) GetByTenantWithFilter(ctx context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error) {
	if f.appt != nil && f.appt.TenantID == filter.TenantID {
		return []*domain.Appointment{f.appt}, nil
	}
	return nil, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	f.updatedTo = status
	return nil
}

func (f *fakeRepo) Cancel(ctx context.Context, id int64, status domain.AppointmentStatus, reason string) error {
	f.cancelledWith = status
	f.cancelReason = reason
	return nil
}

func testAppointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:         1,
		TenantID:   10,
		UnitID:     2,
		StaffID:    7,
		CustomerID: 42,
		ServiceID:  5,
		Status:     status,
	}
}

func TestGetByID_Access(t *testing.T) {
	repo := &fakeRepo{appt: testAppointment(domain.StatusConfirmed)}
	svc := NewService(repo, nopLogger{})

	t.Run("owner sees the appointment", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, 42, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
	})

	t.Run("tenant side sees its appointment", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, 999, ptr.Ptr(int64(10)))
		require.NoError(t, err)
		assert.Equal(t, int64(10), resp.TenantID)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, 999, nil)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("foreign tenant is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, 999, ptr.Ptr(int64(11)))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing appointment", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 5, 42, nil)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("customer cancels own appointment", func(t *testing.T) {
		repo := &fakeRepo{appt: testAppointment(domain.StatusPending)}
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
			CustomerID:         42,
			CancellationReason: "передумал",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelledByCustomer, repo.cancelledWith)
		assert.Equal(t, "передумал", repo.cancelReason)
	})

	t.Run("tenant cancels any own appointment", func(t *testing.T) {
		repo := &fakeRepo{appt: testAppointment(domain.StatusConfirmed)}
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
			CustomerID: 999,
			ByTenant:   true,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelledByTenant, repo.cancelledWith)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		repo := &fakeRepo{appt: testAppointment(domain.StatusPending)}
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{CustomerID: 999})

		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	finished := []domain.AppointmentStatus{
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelledByCustomer,
		domain.StatusCancelledByTenant,
		domain.StatusNoShow,
	}

	for _, status := range finished {
		t.Run("cannot cancel in status "+string(status), func(t *testing.T) {
			repo := &fakeRepo{appt: testAppointment(status)}
			svc := NewService(repo, nopLogger{})

			err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{CustomerID: 42})

			assert.ErrorIs(t, err, ErrCannotCancel)
		})
	}
}

func TestUpdateStatus_Transitions(t *testing.T) {
	allowed := []struct {
		from domain.AppointmentStatus
		to   string
	}{
		{from: domain.StatusPending, to: "confirmed"},
		{from: domain.StatusPending, to: "no_show"},
		{from: domain.StatusConfirmed, to: "in_progress"},
		{from: domain.StatusConfirmed, to: "no_show"},
		{from: domain.StatusInProgress, to: "completed"},
	}

	for _, tt := range allowed {
		t.Run(string(tt.from)+" to "+tt.to, func(t *testing.T) {
			repo := &fakeRepo{appt: testAppointment(tt.from)}
			svc := NewService(repo, nopLogger{})

			err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: tt.to})

			require.NoError(t, err)
			assert.Equal(t, domain.AppointmentStatus(tt.to), repo.updatedTo)
		})
	}

	forbidden := []struct {
		from domain.AppointmentStatus
		to   string
	}{
		{from: domain.StatusPending, to: "completed"},
		{from: domain.StatusPending, to: "in_progress"},
		{from: domain.StatusConfirmed, to: "completed"},
		{from: domain.StatusCompleted, to: "confirmed"},
		{from: domain.StatusCancelledByCustomer, to: "confirmed"},
		{from: domain.StatusNoShow, to: "completed"},
		// Отмены идут через Cancel, не через смену статуса
		{from: domain.StatusPending, to: "cancelled_by_customer"},
	}

	for _, tt := range forbidden {
		t.Run(string(tt.from)+" to "+tt.to+" rejected", func(t *testing.T) {
			repo := &fakeRepo{appt: testAppointment(tt.from)}
			svc := NewService(repo, nopLogger{})

			err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: tt.to})

			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}

	t.Run("unknown status", func(t *testing.T) {
		repo := &fakeRepo{appt: testAppointment(domain.StatusPending)}
		svc := NewService(repo, nopLogger{})

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "done"})

		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestGetCustomerAppointments_InvalidStatusFilter(t *testing.T) {
	repo := &fakeRepo{appt: testAppointment(domain.StatusPending)}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		CustomerID: 42,
		Status:     ptr.Ptr("nonsense"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
