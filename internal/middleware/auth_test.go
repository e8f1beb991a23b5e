package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/booking-api/internal/handler"
	"github.com/jwalitptl/booking-api/internal/model"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
)

type stubValidator struct {
	claims *model.TokenClaims
}

func (s *stubValidator) ValidateToken(_ context.Context, token string) (*model.TokenClaims, error) {
	if s.claims == nil || token != "good-token" {
		return nil, apperrors.Unauthorized(nil)
	}
	return s.claims, nil
}

func setupAuthRouter(validator TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewAuthMiddleware(validator).Authenticate())
	r.GET("/whoami", func(c *gin.Context) {
		id, ok := handler.PatientID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.String())
	})
	return r
}

func TestAuthenticate(t *testing.T) {
	patientID := uuid.New()
	r := setupAuthRouter(&stubValidator{claims: &model.TokenClaims{PatientID: patientID}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, patientID.String(), w.Body.String())
}

func TestAuthenticateRejects(t *testing.T) {
	r := setupAuthRouter(&stubValidator{})

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc123",
		"bad token":      "Bearer bad-token",
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
