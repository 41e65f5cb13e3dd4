package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/derya/gradepoint/internal/app/models/dto"
	"github.com/derya/gradepoint/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to HTTP responses. Controllers call it
// with whatever the service returned; the mapping lives in one place.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrSemesterNotFound):
		c.JSON(404, dto.NewAPIErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Semester not found")))
	case errors.Is(err, apperrors.ErrCourseNotFound):
		c.JSON(404, dto.NewAPIErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Course not found")))
	case errors.Is(err, apperrors.ErrUserNotFound), errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.NewAPIErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.NewAPIErrorResponse(withCustomMessage(err,
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"))))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.NewAPIErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.NewAPIErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")))
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		c.JSON(401, dto.NewAPIErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))
	case errors.Is(err, apperrors.ErrTokenNotFound):
		c.JSON(401, dto.NewAPIErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found")))
	case errors.Is(err, apperrors.ErrTokenRevoked):
		c.JSON(401, dto.NewAPIErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Token revoked")))
	case errors.Is(err, apperrors.ErrInvalidGrade):
		c.JSON(400, dto.NewAPIErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unrecognized letter grade").WithField("grade")))
	case errors.Is(err, apperrors.ErrInvalidCredit):
		c.JSON(400, dto.NewAPIErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Credit must be a non-negative number").WithField("credit")))
	case errors.Is(err, apperrors.ErrInvalidEmail):
		c.JSON(400, dto.NewAPIErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidEmail, "Invalid email address").WithField("email")))
	case errors.Is(err, apperrors.ErrInvalidPassword):
		c.JSON(400, dto.NewAPIErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidPassword, "Invalid password").WithDetails(err.Error())))
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.NewAPIErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(err.Error())))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(409, dto.NewAPIErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")))
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		c.JSON(409, dto.NewAPIErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Resource already exists")))
	default:
		c.JSON(500, dto.NewAPIErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}

// withCustomMessage surfaces the contextual message a CustomError carries.
func withCustomMessage(err error, detail *dto.ErrorDetail) *dto.ErrorDetail {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		return detail.WithDetails(customErr.Message)
	}
	return detail
}
