// Package stats folds raw grade and attendance rows into report statistics.
// Every function is pure: no I/O and no mutation of its inputs.
package stats

import "github.com/noah-isme/academic-console/internal/models"

// SubjectGrades groups grades per subject keeping row order and the last seen teacher.
// Averages are only computed for subjects that received at least one grade.
func SubjectGrades(rows []models.StudentGradeRow) map[string]models.SubjectGradeStats {
	result := make(map[string]models.SubjectGradeStats)
	for _, row := range rows {
		entry := result[row.Subject]
		entry.Grades = append(entry.Grades, row.Grade)
		entry.Teacher = row.Teacher
		result[row.Subject] = entry
	}
	for subject, entry := range result {
		if len(entry.Grades) > 0 {
			entry.Average = mean(entry.Grades)
		}
		result[subject] = entry
	}
	return result
}

// SubjectAttendance counts present marks per subject and derives the rate in percent.
func SubjectAttendance(rows []models.StudentAttendanceRow) map[string]models.SubjectAttendanceStats {
	result := make(map[string]models.SubjectAttendanceStats)
	for _, row := range rows {
		entry := result[row.Subject]
		entry.Total++
		if row.Present {
			entry.Present++
		}
		result[row.Subject] = entry
	}
	for subject, entry := range result {
		entry.AttendanceRate = Rate(entry.Present, entry.Total)
		result[subject] = entry
	}
	return result
}

// StudentSummary derives overall statistics. The average is weighted by grade count:
// every individual grade counts once regardless of its subject.
func StudentSummary(subjects map[string]models.SubjectGradeStats, attendance map[string]models.SubjectAttendanceStats) models.StudentSummary {
	var sum, count int
	for _, entry := range subjects {
		for _, g := range entry.Grades {
			sum += g
		}
		count += len(entry.Grades)
	}
	var present, total int
	for _, entry := range attendance {
		present += entry.Present
		total += entry.Total
	}

	summary := models.StudentSummary{
		TotalGrades:       count,
		TotalClasses:      total,
		OverallAttendance: Rate(present, total),
	}
	if count > 0 {
		summary.AverageGrade = float64(sum) / float64(count)
	}
	return summary
}

// GroupSummary averages student summaries without weighting: each student
// contributes one value no matter how many grades or classes they have.
func GroupSummary(students []models.StudentSummary) models.GroupSummary {
	summary := models.GroupSummary{TotalStudents: len(students)}
	if len(students) == 0 {
		return summary
	}
	var gradeSum, attendanceSum float64
	for _, s := range students {
		gradeSum += s.AverageGrade
		attendanceSum += s.OverallAttendance
		summary.TotalGrades += s.TotalGrades
		summary.TotalClasses += s.TotalClasses
	}
	n := float64(len(students))
	summary.AverageGroupGrade = gradeSum / n
	summary.AverageGroupAttendance = attendanceSum / n
	return summary
}

// Rate returns part/total in percent, or 0 when total is 0.
func Rate(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func mean(values []int) float64 {
	var sum int
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}
