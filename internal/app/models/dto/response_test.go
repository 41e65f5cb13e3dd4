package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAPIResponse(t *testing.T) {
	resp := NewAPIResponse(SuccessResponse{Message: "Logged out"})

	assert.Equal(t, SuccessResponse{Message: "Logged out"}, resp.Data)
	assert.Nil(t, resp.Error)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestNewAPIErrorResponse(t *testing.T) {
	resp := NewAPIErrorResponse(NewErrorDetail(ErrorCodeValidationFailed, "Validation failed"))

	assert.Nil(t, resp.Data)
	assert.Equal(t, ErrorCodeValidationFailed, resp.Error.Code)
	assert.False(t, resp.Timestamp.IsZero())
}
