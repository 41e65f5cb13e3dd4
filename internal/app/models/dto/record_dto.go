package dto

import (
	"github.com/derya/gradepoint/internal/app/grading"
	"github.com/derya/gradepoint/internal/app/models"
)

// CreateSemesterRequest represents a request to add a semester
type CreateSemesterRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UpdateSemesterRequest represents a request to rename a semester
type UpdateSemesterRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UpdateCourseRequest represents a field edit on a course. Credit may be
// null, which stores the "unset" sentinel and excludes the course from
// aggregation.
type UpdateCourseRequest struct {
	Code   string       `json:"code" binding:"max=32"`
	Title  string       `json:"title" binding:"max=200"`
	Credit *float64     `json:"credit"`
	Grade  models.Grade `json:"grade" binding:"required"`
}

// CourseResponse represents a course entry
type CourseResponse struct {
	ID       int64        `json:"id"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Credit   *float64     `json:"credit"`
	Grade    models.Grade `json:"grade"`
	Backlog  bool         `json:"backlog"`
	Position int          `json:"position"`
}

// SemesterResponse represents a semester with its courses
type SemesterResponse struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	Position int              `json:"position"`
	Courses  []CourseResponse `json:"courses"`
}

// SemesterSummaryResponse pairs a semester with its computed summary
type SemesterSummaryResponse struct {
	Semester SemesterResponse        `json:"semester"`
	Summary  grading.SemesterSummary `json:"summary"`
}

// TranscriptResponse is the full record: every semester with its summary
// plus the cross-semester aggregate
type TranscriptResponse struct {
	Semesters []SemesterSummaryResponse `json:"semesters"`
	Aggregate grading.AggregateSummary  `json:"aggregate"`
}

// GradeScaleEntry is one row of the fixed grade table
type GradeScaleEntry struct {
	Grade  models.Grade `json:"grade"`
	Points float64      `json:"points"`
}

// GradeScaleResponse exposes the fixed grade table so clients can populate
// their grade selection control
type GradeScaleResponse struct {
	Scale    []GradeScaleEntry `json:"scale"`
	PassMark float64           `json:"passMark"`
}

// FromCourse converts a course model to its response form
func FromCourse(course *models.Course) CourseResponse {
	if course == nil {
		return CourseResponse{}
	}
	return CourseResponse{
		ID:       course.ID,
		Code:     course.Code,
		Title:    course.Title,
		Credit:   course.Credit,
		Grade:    course.Grade,
		Backlog:  grading.IsCourseBacklog(course),
		Position: course.Position,
	}
}

// FromSemester converts a semester model to its response form
func FromSemester(sem *models.Semester) SemesterResponse {
	resp := SemesterResponse{
		Courses: []CourseResponse{},
	}
	if sem == nil {
		return resp
	}
	resp.ID = sem.ID
	resp.Name = sem.Name
	resp.Position = sem.Position
	for _, course := range sem.Courses {
		resp.Courses = append(resp.Courses, FromCourse(course))
	}
	return resp
}

// NewGradeScaleResponse builds the fixed-scale response in display order
func NewGradeScaleResponse() GradeScaleResponse {
	resp := GradeScaleResponse{
		Scale:    make([]GradeScaleEntry, 0, len(models.Grades)),
		PassMark: grading.PassMark,
	}
	for _, g := range models.Grades {
		resp.Scale = append(resp.Scale, GradeScaleEntry{Grade: g, Points: grading.GradePoint(g)})
	}
	return resp
}
