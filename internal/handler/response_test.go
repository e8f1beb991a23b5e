package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
)

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperrors.NewNotFound("schedule", nil), http.StatusNotFound},
		{apperrors.NewConflict("slot already booked", nil), http.StatusConflict},
		{apperrors.NewInvalidState("cannot cancel", nil), http.StatusBadRequest},
		{apperrors.Unauthorized(nil), http.StatusUnauthorized},
		{apperrors.NewBadRequest("invalid date", nil), http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", apperrors.NewConflict("slot", nil)), http.StatusConflict},
		{fmt.Errorf("plain failure"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, StatusFromError(tc.err), tc.err.Error())
	}
}
