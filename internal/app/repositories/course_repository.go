package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derya/gradepoint/internal/app/models"
	"github.com/derya/gradepoint/internal/pkg/apperrors"
	"github.com/derya/gradepoint/internal/pkg/dberrors"
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// Create inserts a new course at the end of its semester
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (semester_id, code, title, credit, grade, position)
		VALUES ($1, $2, $3, $4, $5, (SELECT COALESCE(MAX(position), 0) + 1 FROM courses WHERE semester_id = $1))
		RETURNING id, position, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		course.SemesterID, course.Code, course.Title, course.Credit, course.Grade,
	).Scan(&course.ID, &course.Position, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrSemesterNotFound
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT id, semester_id, code, title, credit, grade, position, created_at, updated_at
		FROM courses
		WHERE id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.SemesterID,
		&course.Code,
		&course.Title,
		&course.Credit,
		&course.Grade,
		&course.Position,
		&course.CreatedAt,
		&course.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// GetBySemesterID retrieves all courses of one semester in display order
func (r *CourseRepository) GetBySemesterID(ctx context.Context, semesterID int64) ([]*models.Course, error) {
	query := `
		SELECT id, semester_id, code, title, credit, grade, position, created_at, updated_at
		FROM courses
		WHERE semester_id = $1
		ORDER BY position, id
	`

	rows, err := r.db.Query(ctx, query, semesterID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	defer rows.Close()

	return scanCourses(rows)
}

// GetByUserID retrieves every course of a user, semester order then course
// order. Used to load the full record in one query instead of one query per
// semester.
func (r *CourseRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.semester_id, c.code, c.title, c.credit, c.grade, c.position, c.created_at, c.updated_at
		FROM courses c
		JOIN semesters s ON s.id = c.semester_id
		WHERE s.user_id = $1
		ORDER BY s.position, s.id, c.position, c.id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving user courses: %w", err)
	}
	defer rows.Close()

	return scanCourses(rows)
}

// Update edits the mutable fields of a course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET code = $1, title = $2, credit = $3, grade = $4, updated_at = NOW()
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		course.Code, course.Title, course.Credit, course.Grade, course.ID)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete deletes a course by ID
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

func scanCourses(rows pgx.Rows) ([]*models.Course, error) {
	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.SemesterID,
			&course.Code,
			&course.Title,
			&course.Credit,
			&course.Grade,
			&course.Position,
			&course.CreatedAt,
			&course.UpdatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}
