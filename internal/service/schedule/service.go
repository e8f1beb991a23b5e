package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
)

// Service is the slot catalog: it creates and reads time slots. Availability
// is never mutated here; only the booking engine flips it.
type Service struct {
	repo repository.ScheduleRepository
}

func NewService(repo repository.ScheduleRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateSlot(ctx context.Context, req *model.CreateScheduleRequest) (*model.Schedule, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperrors.NewBadRequest("invalid date", err)
	}

	if req.EndTime <= req.StartTime {
		return nil, apperrors.NewBadRequest("end time must be after start time", nil)
	}

	schedule := &model.Schedule{
		ID:        uuid.New(),
		DoctorID:  req.DoctorID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Available: true,
	}

	if err := s.repo.Create(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Schedule, error) {
	return s.repo.Get(ctx, id)
}

// ListSchedules is the read-side slot query. With a date it returns every
// slot on that day, available or not, so callers can render full day views.
// Without a date it returns only future bookable slots. The asymmetry is part
// of the API contract.
func (s *Service) ListSchedules(ctx context.Context, doctorID *uuid.UUID, date *time.Time) ([]*model.Schedule, error) {
	filters := &model.ScheduleFilters{DoctorID: doctorID}

	if date != nil {
		filters.Date = date
	} else {
		today := startOfToday()
		filters.FromDate = &today
		filters.OnlyAvailable = true
	}

	schedules, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
