package console

import (
	"context"

	"go.uber.org/zap"
)

// StudentView is the panel of a student.
type StudentView struct {
	session  *Session
	prompter *Prompter
	deps     Dependencies
}

// Run shows the student menu until the user exits.
func (v *StudentView) Run(ctx context.Context) error {
	return runMenu(ctx, v.prompter, "STUDENT PANEL", []menuItem{
		{label: "View grades", action: v.showGrades},
		{label: "View attendance", action: v.showAttendance},
		{label: "Average grade per subject", action: v.showAverages},
		{label: "Export report to JSON", action: v.exportReport},
	}, "Exit")
}

func (v *StudentView) showGrades(ctx context.Context) error {
	p := v.prompter
	p.Println("\n=== YOUR GRADES ===")
	rows, err := v.deps.Students.Grades(ctx, v.session.User.ID)
	if err != nil {
		showError(p, v.deps.Logger, "Failed to load grades.", err)
		return nil
	}
	if len(rows) == 0 {
		p.Println("No grades yet.")
		return nil
	}
	current := ""
	for i, row := range rows {
		if i == 0 || row.Subject != current {
			current = row.Subject
			p.Printf("\n%s:\n", row.Subject)
		}
		p.Printf("  %s: %d (teacher: %s)\n", row.Date, row.Grade, row.Teacher)
	}
	return nil
}

func (v *StudentView) showAttendance(ctx context.Context) error {
	p := v.prompter
	p.Println("\n=== YOUR ATTENDANCE ===")
	recent, err := v.deps.Students.Attendance(ctx, v.session.User.ID)
	if err != nil {
		showError(p, v.deps.Logger, "Failed to load attendance.", err)
		return nil
	}
	if len(recent.Records) == 0 {
		p.Println("No attendance records.")
		return nil
	}
	p.Println("\nRecent classes:")
	for _, row := range recent.Records {
		status := "Absent"
		if row.Present {
			status = "Present"
		}
		p.Printf("  %s - %s: %s\n", row.Date, row.Subject, status)
	}
	p.Printf("\nOverall attendance: %.1f%%\n", recent.Rate)
	return nil
}

func (v *StudentView) showAverages(ctx context.Context) error {
	p := v.prompter
	p.Println("\n=== AVERAGE GRADE PER SUBJECT ===")
	averages, err := v.deps.Students.SubjectAverages(ctx, v.session.User.ID)
	if err != nil {
		showError(p, v.deps.Logger, "Failed to load grades.", err)
		return nil
	}
	if len(averages) == 0 {
		p.Println("No grades yet to compute an average.")
		return nil
	}
	for _, avg := range averages {
		p.Printf("%s: %.2f (%d grades)\n", avg.Name, avg.Average, avg.Count)
	}
	return nil
}

func (v *StudentView) exportReport(ctx context.Context) error {
	p := v.prompter
	p.Println("\n=== EXPORT JSON REPORT ===")
	result, err := v.deps.Reports.ExportStudent(ctx, v.session.User.ID)
	if err != nil {
		showError(p, v.deps.Logger, "Failed to save the report.", err)
		return nil
	}
	p.Printf("Report saved to file: %s\n", result.Path)
	p.Println("Report contents:")
	p.Println("- Personal information")
	p.Println("- Grades for every subject")
	p.Println("- Attendance statistics")
	p.Println("- Average grades")
	p.Println("- Overall statistics")
	for _, companion := range result.Companions {
		p.Printf("Also written: %s\n", companion)
	}
	v.deps.Logger.Debug("student report exported", zap.String("session", v.session.ID.String()), zap.String("file", result.Filename))
	return nil
}
