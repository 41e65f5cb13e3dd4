package services

import (
	"context"
	"time"

	"github.com/derya/gradepoint/internal/app/models"
)

// Services defined in this package:
// - AuthService: registration, login and refresh-token rotation
// - RecordService: semesters, courses and computed summaries

// UserStore is the user persistence surface the services need.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// TokenStore is the refresh token persistence surface.
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// SemesterStore is the semester persistence surface.
type SemesterStore interface {
	Create(ctx context.Context, semester *models.Semester) error
	GetByID(ctx context.Context, id int64) (*models.Semester, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.Semester, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	Update(ctx context.Context, semester *models.Semester) error
	Delete(ctx context.Context, id int64) error
}

// CourseStore is the course persistence surface.
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetBySemesterID(ctx context.Context, semesterID int64) ([]*models.Course, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}
