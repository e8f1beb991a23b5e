package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
	"github.com/jwalitptl/booking-api/pkg/auth"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
	"github.com/jwalitptl/booking-api/pkg/security"
)

type Service struct {
	patientRepo repository.PatientRepository
	tokenRepo   repository.TokenRepository
	jwtSvc      auth.JWTService
	hasher      security.PasswordHasher
	tokenTTL    time.Duration
}

func NewService(patientRepo repository.PatientRepository, tokenRepo repository.TokenRepository,
	jwtSvc auth.JWTService, hasher security.PasswordHasher, tokenTTL time.Duration) *Service {
	return &Service{
		patientRepo: patientRepo,
		tokenRepo:   tokenRepo,
		jwtSvc:      jwtSvc,
		hasher:      hasher,
		tokenTTL:    tokenTTL,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.Patient, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.NewBadRequest("invalid password", err)
	}

	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return nil, apperrors.NewBadRequest("invalid birthday", err)
	}

	patient := &model.Patient{
		ID:           uuid.New(),
		Email:        NormalizeEmail(req.Email),
		PasswordHash: hash,
		Name:         req.Name,
		Phone:        req.Phone,
		Birthday:     birthday,
	}

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}

	return patient, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// fail identically.
func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	patient, err := s.patientRepo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid credentials"))
	}

	if err := s.hasher.Compare(patient.PasswordHash, password); err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid credentials"))
	}

	token, err := s.jwtSvc.GenerateAccessToken(patient)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
	}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.tokenRepo.Revoke(ctx, token, s.tokenTTL); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *Service) ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error) {
	revoked, err := s.tokenRepo.IsRevoked(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, apperrors.Unauthorized(fmt.Errorf("token revoked"))
	}

	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	return claims, nil
}

// NormalizeEmail lowercases and trims the login identifier.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func parseBirthday(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	birthday, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, err
	}
	return &birthday, nil
}
