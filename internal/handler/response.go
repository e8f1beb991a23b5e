package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// StatusFromError maps the application error taxonomy to HTTP statuses.
func StatusFromError(err error) int {
	switch {
	case apperrors.IsNotFound(err):
		return http.StatusNotFound
	case apperrors.IsConflict(err):
		return http.StatusConflict
	case apperrors.IsInvalidState(err):
		return http.StatusBadRequest
	case apperrors.IsUnauthorized(err):
		return http.StatusUnauthorized
	case apperrors.HasCode(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error writes the envelope for a service error.
func Error(c *gin.Context, err error) {
	c.JSON(StatusFromError(err), NewErrorResponse(err.Error()))
}

const ContextPatientID = "patientID"

// PatientID returns the authenticated patient id set by the auth middleware.
func PatientID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextPatientID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
