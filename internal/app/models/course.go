package models

import "time"

// Course is a single course entry inside a semester.
// Credit is nil when the user has not entered a credit value yet; a course
// with unset credit is excluded from every aggregate and from backlog
// classification.
type Course struct {
	ID         int64     `json:"id" db:"id"`
	SemesterID int64     `json:"semesterId" db:"semester_id"`
	Code       string    `json:"code" db:"code"`
	Title      string    `json:"title" db:"title"`
	Credit     *float64  `json:"credit" db:"credit"` // Nullable
	Grade      Grade     `json:"grade" db:"grade"`
	Position   int       `json:"position" db:"position"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}
