package doctor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
)

const (
	cacheTTL        = 10 * time.Minute
	cleanupInterval = 30 * time.Minute

	listCacheKey = "doctors:all"
)

// Service serves doctor reference data through a read-through cache. Doctors
// are managed outside the API, so short staleness is acceptable.
type Service struct {
	repo  repository.DoctorRepository
	cache *cache.Cache
}

func NewService(repo repository.DoctorRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(cacheTTL, cleanupInterval),
	}
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	if cached, ok := s.cache.Get(listCacheKey); ok {
		return cached.([]*model.Doctor), nil
	}

	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(listCacheKey, doctors, cache.DefaultExpiration)
	return doctors, nil
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	key := "doctor:" + id.String()
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*model.Doctor), nil
	}

	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, doctor, cache.DefaultExpiration)
	return doctor, nil
}
