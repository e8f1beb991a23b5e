package model

import (
	"time"

	"github.com/google/uuid"
)

// Schedule is a doctor's bookable time slot. The available flag is the single
// source of truth for bookability and is flipped only by the booking engine.
type Schedule struct {
	ID        uuid.UUID `db:"id" json:"id"`
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Date      time.Time `db:"date" json:"date"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	Available bool      `db:"available" json:"available"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateScheduleRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id" binding:"required"`
	Date      string    `json:"date" binding:"required,datetime=2006-01-02,futuredate"`
	StartTime string    `json:"start_time" binding:"required,datetime=15:04"`
	EndTime   string    `json:"end_time" binding:"required,datetime=15:04,gtfield=StartTime"`
}

// ScheduleFilters drives the read-side listing. Date and FromDate are
// mutually exclusive: a concrete Date returns every slot on that day,
// while FromDate plus OnlyAvailable serves the "future bookable slots"
// default when no date was requested.
type ScheduleFilters struct {
	DoctorID      *uuid.UUID
	Date          *time.Time
	FromDate      *time.Time
	OnlyAvailable bool
}
