package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
)

func (r *scheduleRepository) Create(ctx context.Context, schedule *model.Schedule) error {
	query := `
		INSERT INTO schedules (id, doctor_id, date, start_time, end_time, available, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	schedule.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		schedule.ID,
		schedule.DoctorID,
		schedule.Date,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Available,
		schedule.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflict("slot already exists for this doctor and time", err)
		}
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

func (r *scheduleRepository) Get(ctx context.Context, id uuid.UUID) (*model.Schedule, error) {
	query := `
		SELECT id, doctor_id, date, start_time, end_time, available, created_at
		FROM schedules
		WHERE id = $1
	`
	var schedule model.Schedule
	err := r.db.GetContext(ctx, &schedule, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("schedule", err)
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &schedule, nil
}

func (r *scheduleRepository) List(ctx context.Context, filters *model.ScheduleFilters) ([]*model.Schedule, error) {
	query := `
		SELECT id, doctor_id, date, start_time, end_time, available, created_at
		FROM schedules
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters.DoctorID != nil {
		query += fmt.Sprintf(" AND doctor_id = $%d", argCount)
		args = append(args, *filters.DoctorID)
		argCount++
	}

	if filters.Date != nil {
		query += fmt.Sprintf(" AND date = $%d", argCount)
		args = append(args, *filters.Date)
		argCount++
	}

	if filters.FromDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argCount)
		args = append(args, *filters.FromDate)
		argCount++
	}

	if filters.OnlyAvailable {
		query += " AND available = true"
	}

	query += " ORDER BY date ASC, start_time ASC"

	var schedules []*model.Schedule
	err := r.db.SelectContext(ctx, &schedules, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}
