package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "booked"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Active reports whether the appointment still claims its schedule slot.
// Completed appointments keep the slot; only cancellation releases it.
func (s AppointmentStatus) Active() bool {
	return s == AppointmentStatusBooked || s == AppointmentStatusCompleted
}

type Appointment struct {
	ID         uuid.UUID         `db:"id" json:"id"`
	PatientID  uuid.UUID         `db:"patient_id" json:"patient_id"`
	ScheduleID uuid.UUID         `db:"schedule_id" json:"schedule_id"`
	Status     AppointmentStatus `db:"status" json:"status"`
	CreatedAt  time.Time         `db:"created_at" json:"created_at"`
}

type CreateAppointmentRequest struct {
	ScheduleID uuid.UUID `json:"schedule_id" binding:"required"`
}
