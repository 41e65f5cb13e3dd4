package services

import (
	"context"
	"fmt"
	"strings"

	appauth "github.com/derya/gradepoint/internal/app/auth"
	"github.com/derya/gradepoint/internal/app/grading"
	"github.com/derya/gradepoint/internal/app/models"
	"github.com/derya/gradepoint/internal/pkg/apperrors"
	"github.com/derya/gradepoint/internal/pkg/validation"
)

// DefaultSemesterName names the starter semester created with a new account.
const DefaultSemesterName = "Semester 1"

// Transcript is a user's full record with every summary computed.
type Transcript struct {
	Semesters []*models.Semester
	Summaries []grading.SemesterSummary
	Aggregate grading.AggregateSummary
}

// CourseEdit carries a field edit for one course. A nil Credit stores the
// "unset" sentinel, excluding the course from aggregation.
type CourseEdit struct {
	Code   string
	Title  string
	Credit *float64
	Grade  models.Grade
}

// RecordService owns semesters, courses and their computed summaries.
// Summaries are never stored; they are recomputed from the raw courses on
// every read.
type RecordService struct {
	semesterRepo SemesterStore
	courseRepo   CourseStore
	authz        *appauth.AuthorizationService
}

// NewRecordService creates a new record service instance
func NewRecordService(semesterRepo SemesterStore, courseRepo CourseStore, authz *appauth.AuthorizationService) *RecordService {
	return &RecordService{
		semesterRepo: semesterRepo,
		courseRepo:   courseRepo,
		authz:        authz,
	}
}

// InitializeRecord creates the starter semester with one blank course.
// Called once per user at registration; a user who already owns semesters
// is rejected, so a retried registration cannot stack starter semesters.
// Afterwards the user is free to empty the collection entirely.
func (s *RecordService) InitializeRecord(ctx context.Context, userID int64) (*models.Semester, error) {
	count, err := s.semesterRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error initializing record: %w", err)
	}
	if count > 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, "record already initialized")
	}

	semester := &models.Semester{
		UserID: userID,
		Name:   DefaultSemesterName,
	}
	if err := s.semesterRepo.Create(ctx, semester); err != nil {
		return nil, fmt.Errorf("error initializing record: %w", err)
	}

	course := blankCourse(semester.ID)
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating starter course: %w", err)
	}
	semester.Courses = []*models.Course{course}

	return semester, nil
}

// ListSemesters returns the user's semesters in display order, with courses.
func (s *RecordService) ListSemesters(ctx context.Context, userID int64) ([]*models.Semester, error) {
	semesters, err := s.semesterRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing semesters: %w", err)
	}

	if err := s.attachCourses(ctx, userID, semesters); err != nil {
		return nil, err
	}

	return semesters, nil
}

// GetSemester returns one semester with courses, after an ownership check.
func (s *RecordService) GetSemester(ctx context.Context, semesterID, userID int64) (*models.Semester, error) {
	semester, err := s.authz.AuthorizeSemester(ctx, semesterID, userID)
	if err != nil {
		return nil, err
	}

	courses, err := s.courseRepo.GetBySemesterID(ctx, semesterID)
	if err != nil {
		return nil, fmt.Errorf("error loading courses: %w", err)
	}
	semester.Courses = courses

	return semester, nil
}

// CreateSemester adds a semester at the end of the collection. Like the
// starter semester it begins with one blank course.
func (s *RecordService) CreateSemester(ctx context.Context, userID int64, name string) (*models.Semester, error) {
	if err := validateSemesterName(name); err != nil {
		return nil, err
	}

	semester := &models.Semester{
		UserID: userID,
		Name:   strings.TrimSpace(name),
	}
	if err := s.semesterRepo.Create(ctx, semester); err != nil {
		return nil, fmt.Errorf("error creating semester: %w", err)
	}

	course := blankCourse(semester.ID)
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating starter course: %w", err)
	}
	semester.Courses = []*models.Course{course}

	return semester, nil
}

// RenameSemester updates a semester's display name.
func (s *RecordService) RenameSemester(ctx context.Context, semesterID, userID int64, name string) (*models.Semester, error) {
	if err := validateSemesterName(name); err != nil {
		return nil, err
	}

	semester, err := s.authz.AuthorizeSemester(ctx, semesterID, userID)
	if err != nil {
		return nil, err
	}

	semester.Name = strings.TrimSpace(name)
	if err := s.semesterRepo.Update(ctx, semester); err != nil {
		return nil, fmt.Errorf("error renaming semester: %w", err)
	}

	return s.GetSemester(ctx, semesterID, userID)
}

// DeleteSemester removes a semester and its courses. Removing the last
// semester is allowed; the collection may be left empty.
func (s *RecordService) DeleteSemester(ctx context.Context, semesterID, userID int64) error {
	if _, err := s.authz.AuthorizeSemester(ctx, semesterID, userID); err != nil {
		return err
	}

	if err := s.semesterRepo.Delete(ctx, semesterID); err != nil {
		return fmt.Errorf("error deleting semester: %w", err)
	}

	return nil
}

// AddCourse appends a blank course to a semester: empty code and title,
// unset credit, best grade preselected.
func (s *RecordService) AddCourse(ctx context.Context, semesterID, userID int64) (*models.Course, error) {
	if _, err := s.authz.AuthorizeSemester(ctx, semesterID, userID); err != nil {
		return nil, err
	}

	course := blankCourse(semesterID)
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("error adding course: %w", err)
	}

	return course, nil
}

// UpdateCourse edits a course's fields in place. The grade must be one of
// the recognized letters; the credit must be unset or a usable non-negative
// number. The aggregation core itself never rejects anything, so the strict
// check lives here, at the mutation boundary.
func (s *RecordService) UpdateCourse(ctx context.Context, courseID, userID int64, edit CourseEdit) (*models.Course, error) {
	if !edit.Grade.IsValid() {
		return nil, apperrors.ErrInvalidGrade
	}
	if !validation.ValidCredit(edit.Credit) {
		return nil, apperrors.ErrInvalidCredit
	}
	if !validation.NewStringValidation(edit.Code).WithRequired(false).WithMaxLength(validation.CourseCodeMaxLength).Validate() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "course code too long")
	}
	if !validation.NewStringValidation(edit.Title).WithRequired(false).WithMaxLength(validation.CourseTitleMaxLength).Validate() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "course title too long")
	}

	course, err := s.authz.AuthorizeCourse(ctx, courseID, userID)
	if err != nil {
		return nil, err
	}

	course.Code = strings.TrimSpace(edit.Code)
	course.Title = strings.TrimSpace(edit.Title)
	course.Credit = edit.Credit
	course.Grade = edit.Grade

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("error updating course: %w", err)
	}

	return course, nil
}

// DeleteCourse removes a course. Removing the last course of a semester is
// allowed.
func (s *RecordService) DeleteCourse(ctx context.Context, courseID, userID int64) error {
	if _, err := s.authz.AuthorizeCourse(ctx, courseID, userID); err != nil {
		return err
	}

	if err := s.courseRepo.Delete(ctx, courseID); err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	return nil
}

// GetSemesterSummary loads a semester and computes its summary.
func (s *RecordService) GetSemesterSummary(ctx context.Context, semesterID, userID int64) (*models.Semester, grading.SemesterSummary, error) {
	semester, err := s.GetSemester(ctx, semesterID, userID)
	if err != nil {
		return nil, grading.SemesterSummary{}, err
	}

	return semester, grading.ComputeSemesterSummary(semester), nil
}

// GetTranscript loads the whole record and computes every per-semester
// summary plus the aggregate.
func (s *RecordService) GetTranscript(ctx context.Context, userID int64) (*Transcript, error) {
	semesters, err := s.ListSemesters(ctx, userID)
	if err != nil {
		return nil, err
	}

	transcript := &Transcript{
		Semesters: semesters,
		Summaries: make([]grading.SemesterSummary, 0, len(semesters)),
		Aggregate: grading.ComputeAggregate(semesters),
	}
	for _, semester := range semesters {
		transcript.Summaries = append(transcript.Summaries, grading.ComputeSemesterSummary(semester))
	}

	return transcript, nil
}

// attachCourses loads all the user's courses in one query and distributes
// them to their semesters, keeping display order.
func (s *RecordService) attachCourses(ctx context.Context, userID int64, semesters []*models.Semester) error {
	if len(semesters) == 0 {
		return nil
	}

	courses, err := s.courseRepo.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("error loading courses: %w", err)
	}

	bySemester := make(map[int64][]*models.Course, len(semesters))
	for _, course := range courses {
		bySemester[course.SemesterID] = append(bySemester[course.SemesterID], course)
	}

	for _, semester := range semesters {
		semester.Courses = bySemester[semester.ID]
		if semester.Courses == nil {
			semester.Courses = []*models.Course{}
		}
	}

	return nil
}

func blankCourse(semesterID int64) *models.Course {
	return &models.Course{
		SemesterID: semesterID,
		Grade:      models.GradeAPlus,
	}
}

func validateSemesterName(name string) error {
	if !validation.NewStringValidation(strings.TrimSpace(name)).WithMaxLength(validation.SemesterNameMaxLength).Validate() {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("semester name must be 1-%d characters", validation.SemesterNameMaxLength))
	}
	return nil
}
