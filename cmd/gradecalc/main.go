// Command gradecalc computes GPA, CGPA and backlog from a transcript file
// without running the API server. The input is a YAML file listing semesters
// and courses; see example.yaml next to this file.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/derya/gradepoint/internal/app/grading"
	"github.com/derya/gradepoint/internal/app/models"
)

type fileCourse struct {
	Code   string   `yaml:"code"`
	Title  string   `yaml:"title"`
	Credit *float64 `yaml:"credit"`
	Grade  string   `yaml:"grade"`
}

type fileSemester struct {
	Name    string       `yaml:"name"`
	Courses []fileCourse `yaml:"courses"`
}

type transcriptFile struct {
	Semesters []fileSemester `yaml:"semesters"`
}

func main() {
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <transcript.yaml>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *noColor {
		color.NoColor = true
	}

	semesters, err := loadTranscript(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "gradecalc: %v\n", err)
		os.Exit(1)
	}

	for _, semester := range semesters {
		printSemester(semester)
	}
	printAggregate(semesters)
}

func loadTranscript(path string) ([]*models.Semester, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var file transcriptFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	semesters := make([]*models.Semester, 0, len(file.Semesters))
	for i, fs := range file.Semesters {
		semester := &models.Semester{
			Name:     fs.Name,
			Position: i + 1,
		}
		if semester.Name == "" {
			semester.Name = fmt.Sprintf("Semester %d", i+1)
		}
		for j, fc := range fs.Courses {
			grade := models.Grade(fc.Grade)
			if !grade.IsValid() {
				return nil, fmt.Errorf("%s, course %d: unrecognized grade %q", semester.Name, j+1, fc.Grade)
			}
			semester.Courses = append(semester.Courses, &models.Course{
				Code:     fc.Code,
				Title:    fc.Title,
				Credit:   fc.Credit,
				Grade:    grade,
				Position: j + 1,
			})
		}
		semesters = append(semesters, semester)
	}

	return semesters, nil
}

func printSemester(semester *models.Semester) {
	summary := grading.ComputeSemesterSummary(semester)

	color.Cyan("\n%s", semester.Name)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Code", "Title", "Credit", "Grade", "Points", "Status"})

	red := color.New(color.FgRed).SprintFunc()
	for _, course := range semester.Courses {
		status := "pass"
		grade := string(course.Grade)
		if !grading.HasCredit(course) {
			status = "excluded"
		} else if grading.IsCourseBacklog(course) {
			status = red("backlog")
			grade = red(grade)
		}
		table.Append([]string{
			course.Code,
			course.Title,
			formatCredit(course.Credit),
			grade,
			formatPoints(course.Grade),
			status,
		})
	}
	table.Render()

	fmt.Printf("GPA: %s   Credits attempted: %s   Credits earned: %s\n",
		color.GreenString("%.2f", summary.GPA),
		formatFloat(summary.CreditsAttempted),
		formatFloat(summary.CreditsEarned))
}

func printAggregate(semesters []*models.Semester) {
	aggregate := grading.ComputeAggregate(semesters)

	color.Yellow("\nOverall")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Semesters", "Credits Attempted", "Grade Points", "CGPA", "Backlog"})
	table.Append([]string{
		strconv.Itoa(aggregate.TotalSemesters),
		formatFloat(aggregate.TotalCreditsAttempted),
		formatFloat(aggregate.TotalGradePoints),
		fmt.Sprintf("%.2f", aggregate.CGPA),
		strconv.Itoa(len(aggregate.BacklogCourses)),
	})
	table.Render()

	if len(aggregate.BacklogCourses) > 0 {
		color.Red("\nBacklog courses:")
		for _, course := range aggregate.BacklogCourses {
			fmt.Printf("  %s %s (%s credits, grade %s)\n",
				course.Code, course.Title, formatCredit(course.Credit), course.Grade)
		}
	}
}

func formatCredit(credit *float64) string {
	if credit == nil {
		return "-"
	}
	return formatFloat(*credit)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPoints(grade models.Grade) string {
	return fmt.Sprintf("%.2f", grading.GradePoint(grade))
}
