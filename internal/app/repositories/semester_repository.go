package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derya/gradepoint/internal/app/models"
	"github.com/derya/gradepoint/internal/pkg/apperrors"
)

// SemesterRepository handles database operations for semesters
type SemesterRepository struct {
	db *pgxpool.Pool
}

// NewSemesterRepository creates a new semester repository
func NewSemesterRepository(db *pgxpool.Pool) *SemesterRepository {
	return &SemesterRepository{
		db: db,
	}
}

// Create inserts a new semester at the end of the user's collection
func (r *SemesterRepository) Create(ctx context.Context, semester *models.Semester) error {
	query := `
		INSERT INTO semesters (user_id, name, position)
		VALUES ($1, $2, (SELECT COALESCE(MAX(position), 0) + 1 FROM semesters WHERE user_id = $1))
		RETURNING id, position, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, semester.UserID, semester.Name).Scan(
		&semester.ID,
		&semester.Position,
		&semester.CreatedAt,
		&semester.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating semester: %w", err)
	}

	return nil
}

// GetByID retrieves a semester by ID, without courses
func (r *SemesterRepository) GetByID(ctx context.Context, id int64) (*models.Semester, error) {
	query := `
		SELECT id, user_id, name, position, created_at, updated_at
		FROM semesters
		WHERE id = $1
	`

	var semester models.Semester
	err := r.db.QueryRow(ctx, query, id).Scan(
		&semester.ID,
		&semester.UserID,
		&semester.Name,
		&semester.Position,
		&semester.CreatedAt,
		&semester.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSemesterNotFound
		}
		return nil, fmt.Errorf("error retrieving semester: %w", err)
	}

	return &semester, nil
}

// GetByUserID retrieves all semesters for a user in display order,
// without courses
func (r *SemesterRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Semester, error) {
	query := `
		SELECT id, user_id, name, position, created_at, updated_at
		FROM semesters
		WHERE user_id = $1
		ORDER BY position, id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving semesters: %w", err)
	}
	defer rows.Close()

	var semesters []*models.Semester
	for rows.Next() {
		var semester models.Semester
		if err := rows.Scan(
			&semester.ID,
			&semester.UserID,
			&semester.Name,
			&semester.Position,
			&semester.CreatedAt,
			&semester.UpdatedAt,
		); err != nil {
			return nil, err
		}
		semesters = append(semesters, &semester)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return semesters, nil
}

// CountByUserID returns the number of semesters a user owns
func (r *SemesterRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM semesters WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting semesters: %w", err)
	}
	return count, nil
}

// Update renames a semester
func (r *SemesterRepository) Update(ctx context.Context, semester *models.Semester) error {
	query := `
		UPDATE semesters
		SET name = $1, updated_at = NOW()
		WHERE id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, semester.Name, semester.ID)
	if err != nil {
		return fmt.Errorf("error updating semester: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSemesterNotFound
	}

	return nil
}

// Delete deletes a semester; its courses go with it (ON DELETE CASCADE)
func (r *SemesterRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM semesters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting semester: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSemesterNotFound
	}

	return nil
}
