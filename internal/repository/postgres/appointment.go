package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/booking-api/internal/model"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
)

// Book reserves the schedule slot and creates the appointment in one
// transaction. The availability flip is a compare-and-swap: the UPDATE only
// matches while available is still true, so of two concurrent bookings for
// the same slot exactly one sees a row affected and the other gets a
// conflict. The partial unique index on appointments(schedule_id) backstops
// the same guarantee at the storage layer.
func (r *appointmentRepository) Book(ctx context.Context, patientID, scheduleID uuid.UUID) (*model.Appointment, error) {
	var appointment *model.Appointment

	start := time.Now()
	err := r.base.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE schedules
			SET available = false
			WHERE id = $1 AND available = true
		`, scheduleID)
		if err != nil {
			return fmt.Errorf("failed to reserve slot: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			var exists bool
			if err := tx.GetContext(ctx, &exists,
				`SELECT EXISTS (SELECT 1 FROM schedules WHERE id = $1)`, scheduleID); err != nil {
				return fmt.Errorf("failed to check schedule: %w", err)
			}
			if !exists {
				return apperrors.NewNotFound("schedule", nil)
			}
			return apperrors.NewConflict("slot not available", nil)
		}

		a := &model.Appointment{
			ID:         uuid.New(),
			PatientID:  patientID,
			ScheduleID: scheduleID,
			Status:     model.AppointmentStatusBooked,
			CreatedAt:  time.Now(),
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO appointments (id, patient_id, schedule_id, status, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, a.ID, a.PatientID, a.ScheduleID, a.Status, a.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.NewConflict("slot not available", err)
			}
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		appointment = a
		return nil
	})
	r.observe("book", start, err)
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

// Cancel flips a booked appointment to cancelled and releases its slot in one
// transaction. The appointment is loaded by id and owner together, so a
// foreign appointment is indistinguishable from a missing one.
func (r *appointmentRepository) Cancel(ctx context.Context, patientID, appointmentID uuid.UUID) error {
	start := time.Now()
	err := r.base.WithTx(ctx, func(tx *sqlx.Tx) error {
		var appointment model.Appointment
		err := tx.GetContext(ctx, &appointment, `
			SELECT id, patient_id, schedule_id, status, created_at
			FROM appointments
			WHERE id = $1 AND patient_id = $2
			FOR UPDATE
		`, appointmentID, patientID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NewNotFound("appointment", err)
			}
			return fmt.Errorf("failed to get appointment: %w", err)
		}

		if appointment.Status != model.AppointmentStatusBooked {
			return apperrors.NewInvalidState("cannot cancel", nil)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE appointments SET status = $1 WHERE id = $2
		`, model.AppointmentStatusCancelled, appointment.ID); err != nil {
			return fmt.Errorf("failed to cancel appointment: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE schedules SET available = true WHERE id = $1
		`, appointment.ScheduleID); err != nil {
			return fmt.Errorf("failed to release slot: %w", err)
		}

		return nil
	})
	r.observe("cancel", start, err)
	return err
}

func (r *appointmentRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	query := `
		SELECT id, patient_id, schedule_id, status, created_at
		FROM appointments
		WHERE patient_id = $1
		ORDER BY created_at ASC
	`
	var appointments []*model.Appointment
	err := r.base.GetDB().SelectContext(ctx, &appointments, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
