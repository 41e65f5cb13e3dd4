package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/derya/gradepoint/internal/app/auth"
	"github.com/derya/gradepoint/internal/app/models"
	"github.com/derya/gradepoint/internal/pkg/apperrors"
)

// memSemesterStore is an in-memory SemesterStore for service tests.
type memSemesterStore struct {
	nextID    int64
	semesters map[int64]*models.Semester
}

func newMemSemesterStore() *memSemesterStore {
	return &memSemesterStore{nextID: 1, semesters: make(map[int64]*models.Semester)}
}

func (s *memSemesterStore) Create(_ context.Context, semester *models.Semester) error {
	semester.ID = s.nextID
	s.nextID++
	pos := 0
	for _, existing := range s.semesters {
		if existing.UserID == semester.UserID && existing.Position > pos {
			pos = existing.Position
		}
	}
	semester.Position = pos + 1
	stored := *semester
	stored.Courses = nil
	s.semesters[semester.ID] = &stored
	return nil
}

func (s *memSemesterStore) GetByID(_ context.Context, id int64) (*models.Semester, error) {
	semester, ok := s.semesters[id]
	if !ok {
		return nil, apperrors.ErrSemesterNotFound
	}
	copied := *semester
	return &copied, nil
}

func (s *memSemesterStore) GetByUserID(_ context.Context, userID int64) ([]*models.Semester, error) {
	var out []*models.Semester
	for id := int64(1); id < s.nextID; id++ {
		if semester, ok := s.semesters[id]; ok && semester.UserID == userID {
			copied := *semester
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *memSemesterStore) CountByUserID(_ context.Context, userID int64) (int64, error) {
	var count int64
	for _, semester := range s.semesters {
		if semester.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (s *memSemesterStore) Update(_ context.Context, semester *models.Semester) error {
	stored, ok := s.semesters[semester.ID]
	if !ok {
		return apperrors.ErrSemesterNotFound
	}
	stored.Name = semester.Name
	return nil
}

func (s *memSemesterStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.semesters[id]; !ok {
		return apperrors.ErrSemesterNotFound
	}
	delete(s.semesters, id)
	return nil
}

// memCourseStore is an in-memory CourseStore. Deleting a semester from the
// semester store does not cascade here; tests that need the cascade assert
// through the service API only.
type memCourseStore struct {
	nextID    int64
	courses   map[int64]*models.Course
	semesters *memSemesterStore
}

func newMemCourseStore(semesters *memSemesterStore) *memCourseStore {
	return &memCourseStore{nextID: 1, courses: make(map[int64]*models.Course), semesters: semesters}
}

func (s *memCourseStore) Create(_ context.Context, course *models.Course) error {
	course.ID = s.nextID
	s.nextID++
	pos := 0
	for _, existing := range s.courses {
		if existing.SemesterID == course.SemesterID && existing.Position > pos {
			pos = existing.Position
		}
	}
	course.Position = pos + 1
	stored := *course
	s.courses[course.ID] = &stored
	return nil
}

func (s *memCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	copied := *course
	return &copied, nil
}

func (s *memCourseStore) GetBySemesterID(_ context.Context, semesterID int64) ([]*models.Course, error) {
	var out []*models.Course
	for id := int64(1); id < s.nextID; id++ {
		if course, ok := s.courses[id]; ok && course.SemesterID == semesterID {
			copied := *course
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *memCourseStore) GetByUserID(ctx context.Context, userID int64) ([]*models.Course, error) {
	semesters, _ := s.semesters.GetByUserID(ctx, userID)
	var out []*models.Course
	for _, semester := range semesters {
		courses, _ := s.GetBySemesterID(ctx, semester.ID)
		out = append(out, courses...)
	}
	return out, nil
}

func (s *memCourseStore) Update(_ context.Context, course *models.Course) error {
	stored, ok := s.courses[course.ID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	stored.Code = course.Code
	stored.Title = course.Title
	stored.Credit = course.Credit
	stored.Grade = course.Grade
	return nil
}

func (s *memCourseStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(s.courses, id)
	return nil
}

func newTestRecordService() (*RecordService, *memSemesterStore, *memCourseStore) {
	semesters := newMemSemesterStore()
	courses := newMemCourseStore(semesters)
	authz := appauth.NewAuthorizationService(semesters, courses)
	return NewRecordService(semesters, courses, authz), semesters, courses
}

func creditOf(v float64) *float64 { return &v }

func TestInitializeRecordCreatesStarterSemester(t *testing.T) {
	svc, _, _ := newTestRecordService()

	semester, err := svc.InitializeRecord(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, DefaultSemesterName, semester.Name)
	require.Len(t, semester.Courses, 1)

	course := semester.Courses[0]
	assert.Empty(t, course.Code)
	assert.Empty(t, course.Title)
	assert.Nil(t, course.Credit)
	assert.Equal(t, models.GradeAPlus, course.Grade)
}

func TestInitializeRecordOnlyOnce(t *testing.T) {
	svc, _, _ := newTestRecordService()
	ctx := context.Background()

	_, err := svc.InitializeRecord(ctx, 1)
	require.NoError(t, err)

	_, err = svc.InitializeRecord(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)

	semesters, err := svc.ListSemesters(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, semesters, 1)

	// A different user still gets a starter semester.
	_, err = svc.InitializeRecord(ctx, 2)
	require.NoError(t, err)
}

func TestCreateSemesterStartsWithBlankCourse(t *testing.T) {
	svc, _, _ := newTestRecordService()

	semester, err := svc.CreateSemester(context.Background(), 1, "Fall 2025")
	require.NoError(t, err)
	assert.Equal(t, "Fall 2025", semester.Name)
	require.Len(t, semester.Courses, 1)
	assert.Nil(t, semester.Courses[0].Credit)
}

func TestCreateSemesterRejectsBadName(t *testing.T) {
	svc, _, _ := newTestRecordService()

	_, err := svc.CreateSemester(context.Background(), 1, "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.CreateSemester(context.Background(), 1, strings.Repeat("x", 101))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRenameSemester(t *testing.T) {
	svc, _, _ := newTestRecordService()
	ctx := context.Background()

	semester, err := svc.CreateSemester(ctx, 1, "Semester 1")
	require.NoError(t, err)

	renamed, err := svc.RenameSemester(ctx, semester.ID, 1, "Spring 2026")
	require.NoError(t, err)
	assert.Equal(t, "Spring 2026", renamed.Name)
	assert.Len(t, renamed.Courses, 1)
}

func TestSemesterOwnership(t *testing.T) {
	svc, _, _ := newTestRecordService()
	ctx := context.Background()

	semester, err := svc.CreateSemester(ctx, 1, "Semester 1")
	require.NoError(t, err)

	_, err = svc.GetSemester(ctx, semester.ID, 2)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = svc.DeleteSemester(ctx, semester.ID, 2)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.GetSemester(ctx, 999, 1)
	assert.ErrorIs(t, err, apperrors.ErrSemesterNotFound)
}

func TestDeleteLastSemesterAllowed(t *testing.T) {
	svc, _, _ := newTestRecordService()
	ctx := context.Background()

	semester, err := svc.InitializeRecord(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSemester(ctx, semester.ID, 1))

	semesters, err := svc.ListSemesters(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, semesters)
}

func TestAddAndUpdateCourse(t *testing.T) {
	svc, _, _ := newTestRecordService()
	ctx := context.Background()

	semester, err := svc.CreateSemester(ctx, 1, "Semester 1")
	require.NoError(t, err)

	course, err := svc.AddCourse(ctx, semester.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.GradeAPlus, course.Grade)
	assert.Equal(t, 2, course.Position)

	updated, err := svc.UpdateCourse(ctx, course.ID, 1, CourseEdit{
		Code:   "CSE101",
		Title:  "Structured Programming",
		Credit: creditOf(3),
		Grade:  models.GradeAMinus,
	})
	require.NoError(t, err)
	assert.Equal(t, "CSE101", updated.Code)
	assert.Equal(t, models.GradeAMinus, updated.Grade)
	require.NotNil(t, updated.Credit)
	assert.Equal(t, 3.0, *updated.Credit)
}

func TestUpdateCourseRejectsUnknownGrade(t *testing.T) {
	svc, _, _ := newTestRecordService()
	ctx := context.Background()

	semester, err := svc.CreateSemester(ctx, 1, "Semester 1")
	require.NoError(t, err)
	course := semester.Courses[0]

	_, err = svc.UpdateCourse(ctx, course.ID, 1, CourseEdit{Grade: "E"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidGrade)
}

func TestUpdateCourseRejectsBadCredit(t *testing.T) {
	svc, _, _ := newTestRecordService()
	ctx := context.Background()

	semester, err := svc.CreateSemester(ctx, 1, "Semester 1")
	require.NoError(t, err)
	course := semester.Courses[0]

	_, err = svc.UpdateCourse(ctx, course.ID, 1, CourseEdit{Grade: models.GradeA, Credit: creditOf(-1)})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredit)

	// Clearing the credit back to unset is always allowed.
	updated, err := svc.UpdateCourse(ctx, course.ID, 1, CourseEdit{Grade: models.GradeA, Credit: nil})
	require.NoError(t, err)
	assert.Nil(t, updated.Credit)
}

func TestUpdateCourseOwnership(t *testing.T) {
	svc, _, _ := newTestRecordService()
	ctx := context.Background()

	semester, err := svc.CreateSemester(ctx, 1, "Semester 1")
	require.NoError(t, err)
	course := semester.Courses[0]

	_, err = svc.UpdateCourse(ctx, course.ID, 2, CourseEdit{Grade: models.GradeA})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = svc.DeleteCourse(ctx, course.ID, 2)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestDeleteLastCourseAllowed(t *testing.T) {
	svc, _, _ := newTestRecordService()
	ctx := context.Background()

	semester, err := svc.CreateSemester(ctx, 1, "Semester 1")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCourse(ctx, semester.Courses[0].ID, 1))

	reloaded, err := svc.GetSemester(ctx, semester.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Courses)
}

func TestGetSemesterSummary(t *testing.T) {
	svc, _, _ := newTestRecordService()
	ctx := context.Background()

	semester, err := svc.CreateSemester(ctx, 1, "Semester 1")
	require.NoError(t, err)

	_, err = svc.UpdateCourse(ctx, semester.Courses[0].ID, 1, CourseEdit{
		Code: "CSE101", Credit: creditOf(3), Grade: models.GradeA,
	})
	require.NoError(t, err)

	failing, err := svc.AddCourse(ctx, semester.ID, 1)
	require.NoError(t, err)
	_, err = svc.UpdateCourse(ctx, failing.ID, 1, CourseEdit{
		Code: "MAT101", Credit: creditOf(3), Grade: models.GradeF,
	})
	require.NoError(t, err)

	_, summary, err := svc.GetSemesterSummary(ctx, semester.ID, 1)
	require.NoError(t, err)

	// (3*3.75 + 3*0) / 6 = 1.875 -> 1.88
	assert.Equal(t, 1.88, summary.GPA)
	assert.Equal(t, 6.0, summary.CreditsAttempted)
	assert.Equal(t, 3.0, summary.CreditsEarned)
	require.Len(t, summary.BacklogCourses, 1)
	assert.Equal(t, "MAT101", summary.BacklogCourses[0].Code)
}

func TestGetTranscript(t *testing.T) {
	svc, _, _ := newTestRecordService()
	ctx := context.Background()

	for i, grade := range []models.Grade{models.GradeA, models.GradeB} {
		semester, err := svc.CreateSemester(ctx, 1, "Semester "+string(rune('1'+i)))
		require.NoError(t, err)
		_, err = svc.UpdateCourse(ctx, semester.Courses[0].ID, 1, CourseEdit{
			Credit: creditOf(3), Grade: grade,
		})
		require.NoError(t, err)
	}

	transcript, err := svc.GetTranscript(ctx, 1)
	require.NoError(t, err)

	require.Len(t, transcript.Semesters, 2)
	require.Len(t, transcript.Summaries, 2)
	assert.Equal(t, 3.75, transcript.Summaries[0].GPA)
	assert.Equal(t, 3.0, transcript.Summaries[1].GPA)

	// (3*3.75 + 3*3.00) / 6 = 3.375 -> 3.38
	assert.Equal(t, 3.38, transcript.Aggregate.CGPA)
	assert.Equal(t, 2, transcript.Aggregate.TotalSemesters)
	assert.Equal(t, 6.0, transcript.Aggregate.TotalCreditsAttempted)
	assert.Empty(t, transcript.Aggregate.BacklogCourses)
}

func TestListSemestersKeepsDisplayOrder(t *testing.T) {
	svc, _, _ := newTestRecordService()
	ctx := context.Background()

	names := []string{"Semester 1", "Semester 2", "Semester 3"}
	for _, name := range names {
		_, err := svc.CreateSemester(ctx, 1, name)
		require.NoError(t, err)
	}

	semesters, err := svc.ListSemesters(ctx, 1)
	require.NoError(t, err)
	require.Len(t, semesters, 3)
	for i, semester := range semesters {
		assert.Equal(t, names[i], semester.Name)
		assert.Equal(t, i+1, semester.Position)
	}
}
