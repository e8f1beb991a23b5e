package booking

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/booking-api/internal/model"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
	"github.com/jwalitptl/booking-api/pkg/logger"
	"github.com/jwalitptl/booking-api/pkg/metrics"
)

// fakeAppointmentRepo mirrors the repository's atomic contract in memory:
// the availability flip and the appointment row change happen under one lock,
// so concurrent bookings of a slot admit exactly one winner.
type fakeAppointmentRepo struct {
	mu           sync.Mutex
	available    map[uuid.UUID]bool
	appointments []*model.Appointment
}

func newFakeAppointmentRepo(scheduleIDs ...uuid.UUID) *fakeAppointmentRepo {
	available := make(map[uuid.UUID]bool, len(scheduleIDs))
	for _, id := range scheduleIDs {
		available[id] = true
	}
	return &fakeAppointmentRepo{available: available}
}

func (r *fakeAppointmentRepo) Book(_ context.Context, patientID, scheduleID uuid.UUID) (*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	available, exists := r.available[scheduleID]
	if !exists {
		return nil, apperrors.NewNotFound("schedule", nil)
	}
	if !available {
		return nil, apperrors.NewConflict("slot already booked", nil)
	}

	r.available[scheduleID] = false
	appointment := &model.Appointment{
		ID:         uuid.New(),
		PatientID:  patientID,
		ScheduleID: scheduleID,
		Status:     model.AppointmentStatusBooked,
		CreatedAt:  time.Now(),
	}
	r.appointments = append(r.appointments, appointment)
	return appointment, nil
}

func (r *fakeAppointmentRepo) Cancel(_ context.Context, patientID, appointmentID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.appointments {
		if a.ID != appointmentID || a.PatientID != patientID {
			continue
		}
		if a.Status != model.AppointmentStatusBooked {
			return apperrors.NewInvalidState("cannot cancel appointment", nil)
		}
		a.Status = model.AppointmentStatusCancelled
		r.available[a.ScheduleID] = true
		return nil
	}
	return apperrors.NewNotFound("appointment", nil)
}

func (r *fakeAppointmentRepo) ListForPatient(_ context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Appointment
	for _, a := range r.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func newTestService(repo *fakeAppointmentRepo) (*Service, *metrics.Metrics) {
	m := metrics.New("test")
	log := logger.NewLogger(&logger.Config{
		Level:      logger.ErrorLevel,
		TimeFormat: time.RFC3339,
		Output:     io.Discard,
	})
	return NewService(repo, m, log), m
}

func TestCreateAppointment(t *testing.T) {
	scheduleID := uuid.New()
	patientID := uuid.New()
	svc, m := newTestService(newFakeAppointmentRepo(scheduleID))

	appointment, err := svc.CreateAppointment(context.Background(), patientID, scheduleID)
	require.NoError(t, err)
	assert.Equal(t, patientID, appointment.PatientID)
	assert.Equal(t, scheduleID, appointment.ScheduleID)
	assert.Equal(t, model.AppointmentStatusBooked, appointment.Status)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BookingsTotal))
}

func TestCreateAppointmentUnknownSchedule(t *testing.T) {
	svc, m := newTestService(newFakeAppointmentRepo())

	_, err := svc.CreateAppointment(context.Background(), uuid.New(), uuid.New())
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.BookingConflictsTotal))
}

func TestCreateAppointmentConflict(t *testing.T) {
	scheduleID := uuid.New()
	svc, m := newTestService(newFakeAppointmentRepo(scheduleID))

	_, err := svc.CreateAppointment(context.Background(), uuid.New(), scheduleID)
	require.NoError(t, err)

	_, err = svc.CreateAppointment(context.Background(), uuid.New(), scheduleID)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BookingConflictsTotal))
}

func TestConcurrentBookingSingleWinner(t *testing.T) {
	scheduleID := uuid.New()
	svc, _ := newTestService(newFakeAppointmentRepo(scheduleID))

	const attempts = 50
	results := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateAppointment(context.Background(), uuid.New(), scheduleID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case apperrors.IsConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
}

func TestCancelReleasesSlotForRebooking(t *testing.T) {
	scheduleID := uuid.New()
	first := uuid.New()
	second := uuid.New()
	svc, m := newTestService(newFakeAppointmentRepo(scheduleID))

	appointment, err := svc.CreateAppointment(context.Background(), first, scheduleID)
	require.NoError(t, err)

	_, err = svc.CreateAppointment(context.Background(), second, scheduleID)
	require.True(t, apperrors.IsConflict(err))

	require.NoError(t, svc.CancelAppointment(context.Background(), first, appointment.ID))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CancellationsTotal))

	rebooked, err := svc.CreateAppointment(context.Background(), second, scheduleID)
	require.NoError(t, err)
	assert.Equal(t, second, rebooked.PatientID)
	assert.NotEqual(t, appointment.ID, rebooked.ID)
}

func TestCancelTwice(t *testing.T) {
	scheduleID := uuid.New()
	patientID := uuid.New()
	svc, _ := newTestService(newFakeAppointmentRepo(scheduleID))

	appointment, err := svc.CreateAppointment(context.Background(), patientID, scheduleID)
	require.NoError(t, err)

	require.NoError(t, svc.CancelAppointment(context.Background(), patientID, appointment.ID))

	err = svc.CancelAppointment(context.Background(), patientID, appointment.ID)
	assert.True(t, apperrors.IsInvalidState(err))
}

func TestCancelForeignAppointment(t *testing.T) {
	scheduleID := uuid.New()
	owner := uuid.New()
	svc, _ := newTestService(newFakeAppointmentRepo(scheduleID))

	appointment, err := svc.CreateAppointment(context.Background(), owner, scheduleID)
	require.NoError(t, err)

	err = svc.CancelAppointment(context.Background(), uuid.New(), appointment.ID)
	assert.True(t, apperrors.IsNotFound(err))

	appointments, err := svc.ListAppointments(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, model.AppointmentStatusBooked, appointments[0].Status)
}

func TestListAppointmentsIncludesCancelled(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	patientID := uuid.New()
	svc, _ := newTestService(newFakeAppointmentRepo(first, second))

	a1, err := svc.CreateAppointment(context.Background(), patientID, first)
	require.NoError(t, err)
	_, err = svc.CreateAppointment(context.Background(), patientID, second)
	require.NoError(t, err)

	require.NoError(t, svc.CancelAppointment(context.Background(), patientID, a1.ID))

	appointments, err := svc.ListAppointments(context.Background(), patientID)
	require.NoError(t, err)
	require.Len(t, appointments, 2)
	assert.Equal(t, model.AppointmentStatusCancelled, appointments[0].Status)
	assert.Equal(t, model.AppointmentStatusBooked, appointments[1].Status)
}
