package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/derya/gradepoint/internal/pkg/apperrors"
)

func handleError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleAPIError(c, err)
	return w
}

func TestHandleAPIErrorForbiddenSurfacesMessage(t *testing.T) {
	w := handleError(apperrors.NewForbiddenError("semester belongs to another user"))

	assert.Equal(t, 403, w.Code)
	assert.Contains(t, w.Body.String(), "semester belongs to another user")
}

func TestHandleAPIErrorBadRequest(t *testing.T) {
	w := handleError(apperrors.NewBadRequestError("invalid semester ID"))

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "invalid semester ID")
}

func TestHandleAPIErrorSetsTimestamp(t *testing.T) {
	w := handleError(apperrors.ErrSemesterNotFound)

	assert.Equal(t, 404, w.Code)
	assert.Contains(t, w.Body.String(), `"timestamp"`)
	assert.NotContains(t, w.Body.String(), "0001-01-01")
}

func TestHandleAPIErrorUnknownErrorIs500(t *testing.T) {
	w := handleError(assert.AnError)

	assert.Equal(t, 500, w.Code)
	assert.Contains(t, w.Body.String(), "SRV_001")
}
