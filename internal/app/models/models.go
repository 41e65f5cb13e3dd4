package models

// Grade is a letter grade on the fixed 4.00-equivalent scale.
type Grade string

// Recognized letter grades, best to worst.
const (
	GradeAPlus  Grade = "A+"
	GradeA      Grade = "A"
	GradeAMinus Grade = "A-"
	GradeBPlus  Grade = "B+"
	GradeB      Grade = "B"
	GradeBMinus Grade = "B-"
	GradeCPlus  Grade = "C+"
	GradeC      Grade = "C"
	GradeD      Grade = "D"
	GradeF      Grade = "F"
)

// Grades lists every recognized grade in display order. The order is what
// clients use to populate their grade selection control.
var Grades = []Grade{
	GradeAPlus, GradeA, GradeAMinus,
	GradeBPlus, GradeB, GradeBMinus,
	GradeCPlus, GradeC,
	GradeD, GradeF,
}

// IsValid reports whether g is one of the recognized letter grades.
func (g Grade) IsValid() bool {
	for _, known := range Grades {
		if g == known {
			return true
		}
	}
	return false
}
