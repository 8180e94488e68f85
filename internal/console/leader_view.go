package console

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-console/internal/models"
	"github.com/noah-isme/academic-console/internal/service"
	appErrors "github.com/noah-isme/academic-console/pkg/errors"
)

// LeaderView is the panel of a group leader. All actions are scoped to the
// leader's own group.
type LeaderView struct {
	session  *Session
	prompter *Prompter
	deps     Dependencies
}

// Run shows the group leader menu until the user exits.
func (v *LeaderView) Run(ctx context.Context) error {
	return runMenu(ctx, v.prompter, "GROUP LEADER PANEL", []menuItem{
		{label: "View group grades", action: v.showGroupGrades},
		{label: "Add grade", action: v.addGrade},
		{label: "Mark attendance", action: v.markAttendance},
		{label: "Group statistics", action: v.showStatistics},
		{label: "Export group report to JSON", action: v.exportReport},
	}, "Exit")
}

func (v *LeaderView) showGroupGrades(ctx context.Context) error {
	p := v.prompter
	group := v.session.GroupName()
	p.Printf("\n=== GROUP %s GRADES ===\n", group)
	rows, err := v.deps.Groups.Grades(ctx, group)
	if err != nil {
		showError(p, v.deps.Logger, "Failed to load group grades.", err)
		return nil
	}
	if len(rows) == 0 {
		p.Println("No grades yet.")
		return nil
	}
	current := ""
	for i, row := range rows {
		if i == 0 || row.FullName != current {
			current = row.FullName
			p.Printf("\n%s:\n", row.FullName)
		}
		p.Printf("  %s: %d (%s)\n", row.Subject, row.Grade, row.Date)
	}
	return nil
}

func (v *LeaderView) addGrade(ctx context.Context) error {
	p := v.prompter
	group := v.session.GroupName()
	p.Println("\n=== ADD GRADE ===")

	students, err := v.deps.Groups.Students(ctx, group)
	if err != nil {
		showError(p, v.deps.Logger, "Failed to load group students.", err)
		return nil
	}
	if len(students) == 0 {
		p.Println("No students in the group.")
		return nil
	}

	p.Println("\nStudents:")
	for i, s := range students {
		p.Printf("%d. %s\n", i+1, s.FullName)
	}
	studentIndex, err := p.ReadInt("\nChoose a student: ")
	if err != nil {
		return v.inputFailed(err)
	}
	if studentIndex < 1 || studentIndex > len(students) {
		p.Println("Invalid student choice!")
		return nil
	}

	v.printSubjects()
	subjectIndex, err := p.ReadInt("Choose a subject: ")
	if err != nil {
		return v.inputFailed(err)
	}
	if _, ok := models.CatalogSubject(subjectIndex - 1); !ok {
		p.Println("Invalid subject choice!")
		return nil
	}

	grade, err := p.ReadInt("Grade (2-5): ")
	if err != nil {
		return v.inputFailed(err)
	}
	if grade < models.MinGradeValue || grade > models.MaxGradeValue {
		p.Println("Grade must be between 2 and 5!")
		return nil
	}

	teacher, err := p.ReadLine("Teacher full name: ")
	if err != nil {
		return err
	}

	_, err = v.deps.Groups.RecordGrade(ctx, group, service.RecordGradeRequest{
		StudentIndex: studentIndex,
		SubjectIndex: subjectIndex,
		Grade:        grade,
		Teacher:      strings.TrimSpace(teacher),
	})
	if err != nil {
		showError(p, v.deps.Logger, "Failed to add the grade!", err)
		return nil
	}
	p.Println("Grade added!")
	return nil
}

func (v *LeaderView) markAttendance(ctx context.Context) error {
	p := v.prompter
	group := v.session.GroupName()
	p.Println("\n=== MARK ATTENDANCE ===")

	students, err := v.deps.Groups.Students(ctx, group)
	if err != nil {
		showError(p, v.deps.Logger, "Failed to load group students.", err)
		return nil
	}
	if len(students) == 0 {
		p.Println("No students in the group.")
		return nil
	}

	v.printSubjects()
	subjectIndex, err := p.ReadInt("Choose a subject: ")
	if err != nil {
		return v.inputFailed(err)
	}
	subject, ok := models.CatalogSubject(subjectIndex - 1)
	if !ok {
		p.Println("Invalid subject choice!")
		return nil
	}

	p.Printf("\nAttendance for %s:\n", subject)
	presence := make([]bool, 0, len(students))
	for _, s := range students {
		answer, err := p.ReadLine(s.FullName + " present? (y/n): ")
		if err != nil {
			return err
		}
		presence = append(presence, strings.EqualFold(strings.TrimSpace(answer), "y"))
	}

	if _, err := v.deps.Groups.RecordAttendance(ctx, group, service.RecordAttendanceRequest{SubjectIndex: subjectIndex, Presence: presence}); err != nil {
		showError(p, v.deps.Logger, "Failed to mark attendance!", err)
		return nil
	}
	p.Println("Attendance marked for all students!")
	return nil
}

func (v *LeaderView) showStatistics(ctx context.Context) error {
	p := v.prompter
	group := v.session.GroupName()
	p.Printf("\n=== GROUP %s STATISTICS ===\n", group)

	breakdown, err := v.deps.Groups.Statistics(ctx, group)
	if err != nil {
		if errors.Is(err, appErrors.ErrNoReportData) {
			p.Println("No data for statistics.")
			return nil
		}
		showError(p, v.deps.Logger, "Failed to compute statistics.", err)
		return nil
	}

	p.Println("\nStudent averages:")
	for _, avg := range breakdown.StudentAverages {
		p.Printf("  %s: %.2f\n", avg.Name, avg.Average)
	}
	p.Println("\nSubject averages:")
	for _, avg := range breakdown.SubjectAverages {
		p.Printf("  %s: %.2f\n", avg.Name, avg.Average)
	}
	p.Println("\nGroup totals:")
	p.Printf("  Average grade: %.2f\n", breakdown.OverallAverage)
	p.Printf("  Excellent: %d\n", breakdown.Excellent)
	p.Printf("  Good: %d\n", breakdown.Good)
	p.Printf("  Satisfactory: %d\n", breakdown.Satisfactory)
	p.Printf("  Unsatisfactory: %d\n", breakdown.Unsatisfactory)
	return nil
}

func (v *LeaderView) exportReport(ctx context.Context) error {
	p := v.prompter
	group := v.session.GroupName()
	p.Println("\n=== EXPORT GROUP JSON REPORT ===")

	result, err := v.deps.Reports.ExportGroup(ctx, group)
	if err != nil {
		if errors.Is(err, appErrors.ErrNoReportData) {
			p.Println("No data for the group report.")
			return nil
		}
		showError(p, v.deps.Logger, "Failed to save the report.", err)
		return nil
	}

	stats := result.Report.GroupStatistics
	p.Printf("Group report saved to file: %s\n", result.Path)
	p.Println("Report contents:")
	p.Printf("- Group: %s\n", result.Report.GroupName)
	p.Printf("- Students: %d\n", len(result.Report.Students))
	p.Printf("- Group average grade: %.2f\n", stats.AverageGroupGrade)
	p.Printf("- Group average attendance: %.1f%%\n", stats.AverageGroupAttendance)
	p.Println("- Detailed information for every student")
	for _, companion := range result.Companions {
		p.Printf("Also written: %s\n", companion)
	}
	v.deps.Logger.Debug("group report exported", zap.String("session", v.session.ID.String()), zap.String("file", result.Filename))
	return nil
}

func (v *LeaderView) printSubjects() {
	v.prompter.Println("\nSubjects:")
	for i, subject := range models.SubjectCatalog {
		v.prompter.Printf("%d. %s\n", i+1, subject)
	}
}

// inputFailed reports a malformed number and keeps the menu running. Other
// errors end the panel.
func (v *LeaderView) inputFailed(err error) error {
	if errors.Is(err, errInvalidNumber) {
		v.prompter.Println("Input error!")
		return nil
	}
	return err
}
