package grading

import (
	"math"

	"github.com/derya/gradepoint/internal/app/models"
)

// PassMark is the grade point at or above which a course's credits count as
// earned. Below it the course is a backlog.
const PassMark = 2.0

// Scale maps each letter grade to its grade point value. It is fixed,
// process-wide and never mutated; clients use the same table to populate
// their grade selection control. A grade missing from the table is worth 0
// points (map zero value), so lookups never fail.
var Scale = map[models.Grade]float64{
	models.GradeAPlus:  4.00,
	models.GradeA:      3.75,
	models.GradeAMinus: 3.50,
	models.GradeBPlus:  3.25,
	models.GradeB:      3.00,
	models.GradeBMinus: 2.75,
	models.GradeCPlus:  2.50,
	models.GradeC:      2.25,
	models.GradeD:      2.00,
	models.GradeF:      0.00,
}

// GradePoint returns the grade point value for a letter grade, 0 for any
// unrecognized grade.
func GradePoint(g models.Grade) float64 {
	return Scale[g]
}

// SemesterSummary is the computed result for one semester.
type SemesterSummary struct {
	GPA              float64          `json:"gpa"`
	CreditsAttempted float64          `json:"creditsAttempted"`
	CreditsEarned    float64          `json:"creditsEarned"`
	BacklogCourses   []*models.Course `json:"backlogCourses"`
}

// AggregateSummary is the computed result across all semesters.
type AggregateSummary struct {
	TotalSemesters        int              `json:"totalSemesters"`
	TotalCreditsAttempted float64          `json:"totalCreditsAttempted"`
	TotalGradePoints      float64          `json:"totalGradePoints"`
	CGPA                  float64          `json:"cgpa"`
	BacklogCourses        []*models.Course `json:"backlogCourses"`
}

// HasCredit reports whether a course carries a usable credit value.
// Negative, NaN or infinite credits are treated the same as unset.
func HasCredit(c *models.Course) bool {
	if c == nil || c.Credit == nil {
		return false
	}
	v := *c.Credit
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// IsCourseBacklog reports whether a course was attempted but not passed.
// Courses with unset credit are never backlogs. The classification here must
// agree exactly with the one inside ComputeSemesterSummary.
func IsCourseBacklog(c *models.Course) bool {
	if !HasCredit(c) {
		return false
	}
	return GradePoint(c.Grade) < PassMark
}

// ComputeSemesterSummary derives GPA, attempted/earned credits and the
// backlog list for a single semester. It is a pure function: no I/O, no
// shared state, and it never fails. Courses with unset credit contribute
// nothing.
func ComputeSemesterSummary(sem *models.Semester) SemesterSummary {
	summary := SemesterSummary{BacklogCourses: []*models.Course{}}
	if sem == nil {
		return summary
	}

	var gradePoints float64
	for _, course := range sem.Courses {
		if !HasCredit(course) {
			continue
		}
		credit := *course.Credit
		point := GradePoint(course.Grade)

		gradePoints += point * credit
		summary.CreditsAttempted += credit
		if point >= PassMark {
			summary.CreditsEarned += credit
		} else {
			summary.BacklogCourses = append(summary.BacklogCourses, course)
		}
	}

	if summary.CreditsAttempted > 0 {
		// Rounded once, at the final division only.
		summary.GPA = Round2(gradePoints / summary.CreditsAttempted)
	}
	return summary
}

// ComputeAggregate derives the cross-semester totals and CGPA.
//
// Total attempted credits come from independent per-semester summaries while
// total grade points come from a separate pass over the raw courses. The two
// derivations are mathematically equivalent; grading_test.go asserts that
// equivalence so a future change to either pass cannot drift silently.
func ComputeAggregate(semesters []*models.Semester) AggregateSummary {
	agg := AggregateSummary{
		TotalSemesters: len(semesters),
		BacklogCourses: []*models.Course{},
	}

	for _, sem := range semesters {
		sub := ComputeSemesterSummary(sem)
		agg.TotalCreditsAttempted += sub.CreditsAttempted
		agg.BacklogCourses = append(agg.BacklogCourses, sub.BacklogCourses...)
	}

	for _, sem := range semesters {
		if sem == nil {
			continue
		}
		for _, course := range sem.Courses {
			if !HasCredit(course) {
				continue
			}
			agg.TotalGradePoints += GradePoint(course.Grade) * *course.Credit
		}
	}

	if agg.TotalCreditsAttempted > 0 {
		agg.CGPA = Round2(agg.TotalGradePoints / agg.TotalCreditsAttempted)
	}
	return agg
}

// Round2 rounds half away from zero to exactly two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
