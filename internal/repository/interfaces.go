package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
)

// All repository interfaces in one file
type (
	// PatientRepository handles patient account storage
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		GetByEmail(ctx context.Context, email string) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
	}

	// DoctorRepository serves immutable doctor reference data
	DoctorRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		List(ctx context.Context) ([]*model.Doctor, error)
	}

	ScheduleRepository interface {
		Create(ctx context.Context, schedule *model.Schedule) error
		Get(ctx context.Context, id uuid.UUID) (*model.Schedule, error)
		List(ctx context.Context, filters *model.ScheduleFilters) ([]*model.Schedule, error)
	}

	// AppointmentRepository owns the booking state machine's writes. Book and
	// Cancel are atomic: the slot flip and the appointment row change commit
	// together or not at all, and concurrent Book calls on one schedule
	// serialize so at most one succeeds.
	AppointmentRepository interface {
		Book(ctx context.Context, patientID, scheduleID uuid.UUID) (*model.Appointment, error)
		Cancel(ctx context.Context, patientID, appointmentID uuid.UUID) error
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error)
	}

	// TokenRepository tracks revoked access tokens until they expire
	TokenRepository interface {
		Revoke(ctx context.Context, token string, ttl time.Duration) error
		IsRevoked(ctx context.Context, token string) (bool, error)
	}
)
