package auth

import (
	"context"
	"errors"

	"github.com/derya/gradepoint/internal/app/models"
	"github.com/derya/gradepoint/internal/pkg/apperrors"
	"github.com/derya/gradepoint/internal/pkg/logger"
)

// SemesterGetter loads a semester by ID.
type SemesterGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Semester, error)
}

// CourseGetter loads a course by ID.
type CourseGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// AuthorizationService checks ownership of record resources. Every semester
// and course belongs to exactly one user; nobody else may read or modify it.
type AuthorizationService struct {
	semesters SemesterGetter
	courses   CourseGetter
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(semesters SemesterGetter, courses CourseGetter) *AuthorizationService {
	return &AuthorizationService{
		semesters: semesters,
		courses:   courses,
	}
}

// AuthorizeSemester returns the semester if it exists and belongs to userID.
func (s *AuthorizationService) AuthorizeSemester(ctx context.Context, semesterID, userID int64) (*models.Semester, error) {
	semester, err := s.semesters.GetByID(ctx, semesterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSemesterNotFound) {
			return nil, apperrors.ErrSemesterNotFound
		}
		logger.Error().Err(err).Int64("semesterID", semesterID).Msg("Error getting semester for authorization")
		return nil, err
	}

	if semester.UserID != userID {
		return nil, apperrors.NewForbiddenError("semester belongs to another user")
	}

	return semester, nil
}

// AuthorizeCourse returns the course if it exists and its semester belongs
// to userID.
func (s *AuthorizationService) AuthorizeCourse(ctx context.Context, courseID, userID int64) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error getting course for authorization")
		return nil, err
	}

	if _, err := s.AuthorizeSemester(ctx, course.SemesterID, userID); err != nil {
		return nil, err
	}

	return course, nil
}
