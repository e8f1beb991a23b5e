package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/booking-api/internal/model"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
)

type fakeScheduleRepo struct {
	schedules   map[uuid.UUID]*model.Schedule
	slots       map[string]bool
	lastFilters *model.ScheduleFilters
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		schedules: make(map[uuid.UUID]*model.Schedule),
		slots:     make(map[string]bool),
	}
}

func slotKey(s *model.Schedule) string {
	return s.DoctorID.String() + s.Date.Format("2006-01-02") + s.StartTime
}

func (r *fakeScheduleRepo) Create(_ context.Context, schedule *model.Schedule) error {
	key := slotKey(schedule)
	if r.slots[key] {
		return apperrors.NewConflict("slot already exists for this doctor and time", nil)
	}
	r.slots[key] = true
	r.schedules[schedule.ID] = schedule
	return nil
}

func (r *fakeScheduleRepo) Get(_ context.Context, id uuid.UUID) (*model.Schedule, error) {
	schedule, ok := r.schedules[id]
	if !ok {
		return nil, apperrors.NewNotFound("schedule", nil)
	}
	return schedule, nil
}

func (r *fakeScheduleRepo) List(_ context.Context, filters *model.ScheduleFilters) ([]*model.Schedule, error) {
	r.lastFilters = filters
	return nil, nil
}

func TestCreateSlot(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewService(repo)

	doctorID := uuid.New()
	created, err := svc.CreateSlot(context.Background(), &model.CreateScheduleRequest{
		DoctorID:  doctorID,
		Date:      "2030-06-15",
		StartTime: "09:00",
		EndTime:   "09:30",
	})
	require.NoError(t, err)
	assert.Equal(t, doctorID, created.DoctorID)
	assert.True(t, created.Available)
	assert.Equal(t, 2030, created.Date.Year())
}

func TestCreateSlotDuplicate(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewService(repo)

	req := &model.CreateScheduleRequest{
		DoctorID:  uuid.New(),
		Date:      "2030-06-15",
		StartTime: "09:00",
		EndTime:   "09:30",
	}

	_, err := svc.CreateSlot(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CreateSlot(context.Background(), req)
	assert.True(t, apperrors.IsConflict(err))
}

func TestCreateSlotInvalidTimes(t *testing.T) {
	svc := NewService(newFakeScheduleRepo())

	_, err := svc.CreateSlot(context.Background(), &model.CreateScheduleRequest{
		DoctorID:  uuid.New(),
		Date:      "2030-06-15",
		StartTime: "10:00",
		EndTime:   "09:00",
	})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrBadRequest))

	_, err = svc.CreateSlot(context.Background(), &model.CreateScheduleRequest{
		DoctorID:  uuid.New(),
		Date:      "not-a-date",
		StartTime: "09:00",
		EndTime:   "10:00",
	})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrBadRequest))
}

func TestListSchedulesWithDateShowsAllSlots(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewService(repo)

	date := time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC)
	_, err := svc.ListSchedules(context.Background(), nil, &date)
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilters)
	require.NotNil(t, repo.lastFilters.Date)
	assert.Equal(t, date, *repo.lastFilters.Date)
	assert.Nil(t, repo.lastFilters.FromDate)
	assert.False(t, repo.lastFilters.OnlyAvailable)
}

func TestListSchedulesWithoutDateShowsFutureAvailable(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewService(repo)

	doctorID := uuid.New()
	_, err := svc.ListSchedules(context.Background(), &doctorID, nil)
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilters)
	assert.Nil(t, repo.lastFilters.Date)
	require.NotNil(t, repo.lastFilters.FromDate)
	assert.True(t, repo.lastFilters.OnlyAvailable)
	require.NotNil(t, repo.lastFilters.DoctorID)
	assert.Equal(t, doctorID, *repo.lastFilters.DoctorID)
}
