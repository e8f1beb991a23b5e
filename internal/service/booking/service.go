package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
	"github.com/jwalitptl/booking-api/pkg/logger"
	"github.com/jwalitptl/booking-api/pkg/metrics"
)

// Service is the booking engine. All slot state changes funnel through the
// repository's atomic Book/Cancel operations; the service never reads then
// writes availability itself, so there is no window for a double booking.
type Service struct {
	repo    repository.AppointmentRepository
	metrics *metrics.Metrics
	log     *logger.Logger
}

func NewService(repo repository.AppointmentRepository, m *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{
		repo:    repo,
		metrics: m,
		log:     log,
	}
}

// CreateAppointment books the schedule slot for the patient. Returns
// NotFound if the schedule does not exist and Conflict if the slot is
// already taken; concurrent calls on one slot yield exactly one success.
func (s *Service) CreateAppointment(ctx context.Context, patientID, scheduleID uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.Book(ctx, patientID, scheduleID)
	if err != nil {
		if apperrors.IsConflict(err) {
			s.metrics.BookingConflictsTotal.Inc()
		}
		return nil, err
	}

	s.metrics.BookingsTotal.Inc()
	s.log.Info("appointment booked",
		"appointment_id", appointment.ID.String(),
		"schedule_id", scheduleID.String(),
	)
	return appointment, nil
}

// CancelAppointment cancels the patient's booked appointment and releases its
// slot. The owner filter lives in the repository: a foreign appointment id
// reports NotFound, and a non-booked status reports InvalidState.
func (s *Service) CancelAppointment(ctx context.Context, patientID, appointmentID uuid.UUID) error {
	if err := s.repo.Cancel(ctx, patientID, appointmentID); err != nil {
		return err
	}

	s.metrics.CancellationsTotal.Inc()
	s.log.Info("appointment cancelled", "appointment_id", appointmentID.String())
	return nil
}

// ListAppointments returns every appointment owned by the patient, any
// status, oldest first. The identity always comes from the authenticated
// caller, never from a request parameter.
func (s *Service) ListAppointments(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	return s.repo.ListForPatient(ctx, patientID)
}
