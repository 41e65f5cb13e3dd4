package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewForbiddenError(t *testing.T) {
	err := NewForbiddenError("semester belongs to another user")

	assert.True(t, errors.Is(err, ErrPermissionDenied))
	assert.Equal(t, "semester belongs to another user", err.Error())
}

func TestNewBadRequestError(t *testing.T) {
	err := NewBadRequestError("invalid semester ID")

	assert.True(t, errors.Is(err, ErrBadRequest))
	assert.Equal(t, "invalid semester ID", err.Error())
}

func TestNewCustomError(t *testing.T) {
	err := NewCustomError(ErrValidationFailed, "course code too long").
		WithCode("VAL_001").
		WithDetails(map[string]interface{}{"field": "code"})

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Equal(t, "course code too long", err.Error())
	assert.Equal(t, "VAL_001", err.Code)
	assert.Equal(t, "code", err.Details["field"])
}

func TestCustomErrorFallsBackToWrappedMessage(t *testing.T) {
	err := &CustomError{Err: ErrBadRequest}
	assert.Equal(t, ErrBadRequest.Error(), err.Error())
}
