// Package seed creates demo data for development environments.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appAuth "github.com/derya/gradepoint/internal/app/auth"
	appModels "github.com/derya/gradepoint/internal/app/models"
	appRepos "github.com/derya/gradepoint/internal/app/repositories"
	appServices "github.com/derya/gradepoint/internal/app/services"
	"github.com/derya/gradepoint/internal/pkg/auth"
)

const (
	demoEmail    = "demo@gradepoint.app"
	demoPassword = "demo1234"
)

// CreateDefaultData creates a demo account with a populated record if it does
// not already exist. Intended for development mode only; it is skipped when
// the demo user is present.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	semesterRepo := appRepos.NewSemesterRepository(dbPool)
	courseRepo := appRepos.NewCourseRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, demoEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if demo user exists")
		return err
	}
	if exists {
		lgr.Info().Msg("Demo user already exists, skipping seed")
		return nil
	}

	lgr.Info().Str("email", demoEmail).Msg("Creating demo user...")

	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		return err
	}

	user := &appModels.User{
		Email:        demoEmail,
		PasswordHash: hash,
		FirstName:    "Demo",
		LastName:     "Student",
	}
	if err := userRepo.Create(ctx, user); err != nil {
		lgr.Error().Err(err).Msg("Error creating demo user")
		return err
	}

	authz := appAuth.NewAuthorizationService(semesterRepo, courseRepo)
	records := appServices.NewRecordService(semesterRepo, courseRepo, authz)

	var finalErr error
	for _, sem := range demoSemesters() {
		semester, err := records.CreateSemester(ctx, user.ID, sem.name)
		if err != nil {
			lgr.Error().Err(err).Str("semester", sem.name).Msg("Error seeding semester")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		// CreateSemester seeds one blank course; fill it with the first
		// entry and append the rest.
		for i, c := range sem.courses {
			courseID := semester.Courses[0].ID
			if i > 0 {
				added, err := records.AddCourse(ctx, semester.ID, user.ID)
				if err != nil {
					finalErr = errors.Join(finalErr, err)
					continue
				}
				courseID = added.ID
			}
			credit := c.credit
			if _, err := records.UpdateCourse(ctx, courseID, user.ID, appServices.CourseEdit{
				Code:   c.code,
				Title:  c.title,
				Credit: &credit,
				Grade:  c.grade,
			}); err != nil {
				lgr.Error().Err(err).Str("course", c.code).Msg("Error seeding course")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if finalErr == nil {
		lgr.Info().Int64("userID", user.ID).Msg("Demo user created")
	}
	return finalErr
}

type seedCourse struct {
	code   string
	title  string
	credit float64
	grade  appModels.Grade
}

type seedSemester struct {
	name    string
	courses []seedCourse
}

func demoSemesters() []seedSemester {
	return []seedSemester{
		{
			name: "Semester 1",
			courses: []seedCourse{
				{"CSE101", "Structured Programming", 3, appModels.GradeA},
				{"MAT101", "Calculus I", 3, appModels.GradeBPlus},
				{"PHY101", "Physics I", 3, appModels.GradeAMinus},
				{"ENG101", "English Composition", 2, appModels.GradeAPlus},
			},
		},
		{
			name: "Semester 2",
			courses: []seedCourse{
				{"CSE102", "Data Structures", 3, appModels.GradeAPlus},
				{"MAT102", "Calculus II", 3, appModels.GradeF},
				{"PHY102", "Physics II", 3, appModels.GradeB},
			},
		},
	}
}
