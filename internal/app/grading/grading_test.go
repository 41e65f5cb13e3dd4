package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/derya/gradepoint/internal/app/models"
)

func credit(v float64) *float64 {
	return &v
}

func course(code string, cr *float64, grade models.Grade) *models.Course {
	return &models.Course{Code: code, Title: code, Credit: cr, Grade: grade}
}

func semester(name string, courses ...*models.Course) *models.Semester {
	return &models.Semester{Name: name, Courses: courses}
}

func TestScaleValues(t *testing.T) {
	expected := map[models.Grade]float64{
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
	assert.Equal(t, expected, Scale)

	// Every listed grade has an entry, unknown grades default to zero.
	for _, g := range models.Grades {
		_, ok := Scale[g]
		assert.True(t, ok)
	}
	assert.Equal(t, 0.0, GradePoint(models.Grade("X")))
}

func TestComputeSemesterSummaryEmpty(t *testing.T) {
	sum := ComputeSemesterSummary(semester("Empty"))

	assert.Equal(t, 0.0, sum.GPA)
	assert.Equal(t, 0.0, sum.CreditsAttempted)
	assert.Equal(t, 0.0, sum.CreditsEarned)
	assert.Empty(t, sum.BacklogCourses)
}

func TestComputeSemesterSummaryNilSemester(t *testing.T) {
	sum := ComputeSemesterSummary(nil)

	assert.Equal(t, 0.0, sum.GPA)
	assert.Empty(t, sum.BacklogCourses)
}

func TestComputeSemesterSummaryAllCreditsUnset(t *testing.T) {
	sum := ComputeSemesterSummary(semester("S1",
		course("CSE101", nil, models.GradeA),
		course("CSE102", nil, models.GradeF),
	))

	assert.Equal(t, 0.0, sum.GPA)
	assert.Equal(t, 0.0, sum.CreditsAttempted)
	assert.Equal(t, 0.0, sum.CreditsEarned)
	assert.Empty(t, sum.BacklogCourses)
}

func TestComputeSemesterSummarySingleCourse(t *testing.T) {
	sum := ComputeSemesterSummary(semester("S1",
		course("CSE101", credit(3), models.GradeA),
	))

	assert.Equal(t, 3.75, sum.GPA)
	assert.Equal(t, 3.0, sum.CreditsAttempted)
	assert.Equal(t, 3.0, sum.CreditsEarned)
	assert.Empty(t, sum.BacklogCourses)
}

func TestComputeSemesterSummaryWithBacklog(t *testing.T) {
	failed := course("CSE102", credit(3), models.GradeF)
	sum := ComputeSemesterSummary(semester("S1",
		course("CSE101", credit(3), models.GradeA),
		failed,
	))

	// 3*3.75 + 3*0 = 11.25 over 6 credits -> 1.88 after rounding.
	assert.Equal(t, 1.88, sum.GPA)
	assert.Equal(t, 6.0, sum.CreditsAttempted)
	assert.Equal(t, 3.0, sum.CreditsEarned)
	assert.Len(t, sum.BacklogCourses, 1)
	assert.Same(t, failed, sum.BacklogCourses[0])
}

func TestComputeSemesterSummaryLinearity(t *testing.T) {
	for _, g := range models.Grades {
		sum := ComputeSemesterSummary(semester("S1", course("C", credit(4), g)))
		point := GradePoint(g)

		assert.Equal(t, Round2(point), sum.GPA)
		assert.Equal(t, 4.0, sum.CreditsAttempted)
		if point >= PassMark {
			assert.Equal(t, 4.0, sum.CreditsEarned)
			assert.Empty(t, sum.BacklogCourses)
		} else {
			assert.Equal(t, 0.0, sum.CreditsEarned)
			assert.Len(t, sum.BacklogCourses, 1)
		}
	}
}

func TestBacklogOrderPreserved(t *testing.T) {
	first := course("CSE101", credit(3), models.GradeF)
	second := course("CSE102", credit(2), models.GradeF)
	third := course("CSE103", credit(1), models.GradeF)

	sum := ComputeSemesterSummary(semester("S1",
		first,
		course("CSE104", credit(3), models.GradeB),
		second,
		third,
	))

	assert.Equal(t, []*models.Course{first, second, third}, sum.BacklogCourses)
}

func TestIsCourseBacklogAgreesWithSummary(t *testing.T) {
	courses := []*models.Course{
		course("A+", credit(3), models.GradeAPlus),
		course("D", credit(3), models.GradeD),
		course("F", credit(3), models.GradeF),
		course("C", credit(2), models.GradeC),
		course("unset-F", nil, models.GradeF),
		course("zero-credit-F", credit(0), models.GradeF),
	}
	sum := ComputeSemesterSummary(semester("S1", courses...))

	inBacklog := map[*models.Course]bool{}
	for _, c := range sum.BacklogCourses {
		inBacklog[c] = true
	}
	for _, c := range courses {
		assert.Equal(t, inBacklog[c], IsCourseBacklog(c), "course %s", c.Code)
	}
}

func TestIsCourseBacklogUnsetCredit(t *testing.T) {
	assert.False(t, IsCourseBacklog(course("CSE101", nil, models.GradeF)))
	assert.False(t, IsCourseBacklog(nil))
	assert.True(t, IsCourseBacklog(course("CSE101", credit(3), models.GradeF)))
	assert.False(t, IsCourseBacklog(course("CSE101", credit(3), models.GradeD)))
}

func TestComputeAggregateTwoIdenticalSemesters(t *testing.T) {
	s1 := semester("S1", course("CSE101", credit(3), models.GradeA))
	s2 := semester("S2", course("CSE201", credit(3), models.GradeA))

	agg := ComputeAggregate([]*models.Semester{s1, s2})

	assert.Equal(t, 2, agg.TotalSemesters)
	assert.Equal(t, 6.0, agg.TotalCreditsAttempted)
	assert.Equal(t, 3.75, agg.CGPA)
	assert.Empty(t, agg.BacklogCourses)
}

func TestComputeAggregateEmpty(t *testing.T) {
	agg := ComputeAggregate(nil)

	assert.Equal(t, 0, agg.TotalSemesters)
	assert.Equal(t, 0.0, agg.TotalCreditsAttempted)
	assert.Equal(t, 0.0, agg.TotalGradePoints)
	assert.Equal(t, 0.0, agg.CGPA)
	assert.Empty(t, agg.BacklogCourses)
}

func TestComputeAggregateBacklogConcatenation(t *testing.T) {
	f1 := course("CSE102", credit(3), models.GradeF)
	f2 := course("CSE201", credit(3), models.GradeF)
	f3 := course("CSE203", credit(2), models.GradeF)

	agg := ComputeAggregate([]*models.Semester{
		semester("S1", course("CSE101", credit(3), models.GradeA), f1),
		semester("S2", f2, course("CSE202", credit(4), models.GradeB), f3),
	})

	// Semester order, then course order within each semester.
	assert.Equal(t, []*models.Course{f1, f2, f3}, agg.BacklogCourses)
}

func TestComputeAggregateBacklogExcludesPassingGrades(t *testing.T) {
	fail := course("PHY101", credit(3), models.GradeF)

	// C (2.25) and D (2.00) are at or above the pass mark.
	agg := ComputeAggregate([]*models.Semester{
		semester("S1",
			course("CSE101", credit(2), models.GradeC),
			course("MAT101", credit(2), models.GradeD),
			fail,
		),
	})

	assert.Equal(t, []*models.Course{fail}, agg.BacklogCourses)
}

func TestComputeAggregateFailedCreditsStillCount(t *testing.T) {
	agg := ComputeAggregate([]*models.Semester{
		semester("S1",
			course("CSE101", credit(3), models.GradeA),
			course("CSE102", credit(3), models.GradeF),
		),
	})

	// Failed courses contribute to attempted credits and grade points.
	assert.Equal(t, 6.0, agg.TotalCreditsAttempted)
	assert.Equal(t, 11.25, agg.TotalGradePoints)
	assert.Equal(t, 1.88, agg.CGPA)
}

func TestUnsetCreditExcludedEverywhere(t *testing.T) {
	ghost := course("GHOST", nil, models.GradeF)
	sem := semester("S1", course("CSE101", credit(3), models.GradeA), ghost)

	sum := ComputeSemesterSummary(sem)
	agg := ComputeAggregate([]*models.Semester{sem})

	assert.Equal(t, 3.75, sum.GPA)
	assert.Equal(t, 3.0, sum.CreditsAttempted)
	assert.NotContains(t, sum.BacklogCourses, ghost)
	assert.NotContains(t, agg.BacklogCourses, ghost)
	assert.Equal(t, 3.0, agg.TotalCreditsAttempted)
}

func TestMalformedCreditsTreatedAsUnset(t *testing.T) {
	neg := -3.0
	sem := semester("S1",
		&models.Course{Code: "NEG", Credit: &neg, Grade: models.GradeF},
		course("CSE101", credit(3), models.GradeA),
	)

	sum := ComputeSemesterSummary(sem)
	assert.Equal(t, 3.0, sum.CreditsAttempted)
	assert.Empty(t, sum.BacklogCourses)
}

func TestIdempotence(t *testing.T) {
	sems := []*models.Semester{
		semester("S1",
			course("CSE101", credit(3), models.GradeA),
			course("CSE102", credit(3), models.GradeF),
		),
		semester("S2", course("CSE201", credit(2.5), models.GradeBPlus)),
	}

	first := ComputeAggregate(sems)
	second := ComputeAggregate(sems)
	assert.Equal(t, first, second)

	sumFirst := ComputeSemesterSummary(sems[0])
	sumSecond := ComputeSemesterSummary(sems[0])
	assert.Equal(t, sumFirst, sumSecond)
}

// The aggregate computes total grade points over raw courses but attempted
// credits via per-semester summaries. Both must stay equivalent to summing
// the per-semester numbers.
func TestAggregateDerivationsAgree(t *testing.T) {
	sems := []*models.Semester{
		semester("S1",
			course("CSE101", credit(3), models.GradeA),
			course("CSE102", credit(3), models.GradeF),
			course("CSE103", nil, models.GradeB),
		),
		semester("S2",
			course("CSE201", credit(2), models.GradeCPlus),
			course("CSE202", credit(4.5), models.GradeD),
		),
		semester("S3"),
	}

	agg := ComputeAggregate(sems)

	var attempted, points float64
	for _, sem := range sems {
		sub := ComputeSemesterSummary(sem)
		attempted += sub.CreditsAttempted
		for _, c := range sem.Courses {
			if HasCredit(c) {
				points += GradePoint(c.Grade) * *c.Credit
			}
		}
	}

	assert.InDelta(t, attempted, agg.TotalCreditsAttempted, 1e-9)
	assert.InDelta(t, points, agg.TotalGradePoints, 1e-9)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.88, Round2(11.25/6))
	assert.Equal(t, 3.75, Round2(3.75))
	assert.Equal(t, 0.13, Round2(0.125)) // half rounds away from zero
	assert.Equal(t, -0.13, Round2(-0.125))
	assert.Equal(t, 2.67, Round2(8.0/3))
}
