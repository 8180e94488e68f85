package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-console/internal/models"
)

func TestSubjectGradesAverage(t *testing.T) {
	rows := []models.StudentGradeRow{
		{Subject: models.SubjectMath, Grade: 5, Date: "2024-09-01", Teacher: "Кузнецова"},
		{Subject: models.SubjectMath, Grade: 3, Date: "2024-09-02", Teacher: "Смирнов"},
		{Subject: models.SubjectHistory, Grade: 4, Date: "2024-09-03", Teacher: "Орлова"},
	}

	got := SubjectGrades(rows)
	require.Len(t, got, 2)
	math := got[models.SubjectMath]
	assert.Equal(t, []int{5, 3}, math.Grades)
	assert.InDelta(t, 4.0, math.Average, 1e-9)
	assert.Equal(t, "Смирнов", math.Teacher)
	assert.InDelta(t, 4.0, got[models.SubjectHistory].Average, 1e-9)
}

func TestSubjectGradesEmpty(t *testing.T) {
	got := SubjectGrades(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSubjectAttendanceRate(t *testing.T) {
	rows := []models.StudentAttendanceRow{
		{Subject: models.SubjectPhysics, Date: "2024-09-03", Present: true},
		{Subject: models.SubjectPhysics, Date: "2024-09-02", Present: false},
		{Subject: models.SubjectPhysics, Date: "2024-09-01", Present: true},
		{Subject: models.SubjectEnglish, Date: "2024-09-01", Present: false},
	}

	got := SubjectAttendance(rows)
	physics := got[models.SubjectPhysics]
	assert.Equal(t, 2, physics.Present)
	assert.Equal(t, 3, physics.Total)
	assert.InDelta(t, 66.666, physics.AttendanceRate, 0.01)
	assert.Equal(t, 0.0, got[models.SubjectEnglish].AttendanceRate)
}

func TestRateZeroTotal(t *testing.T) {
	assert.Equal(t, 0.0, Rate(0, 0))
	assert.Equal(t, 50.0, Rate(1, 2))
}

func TestStudentSummaryWeightsByCount(t *testing.T) {
	subjects := map[string]models.SubjectGradeStats{
		"A": {Grades: []int{5, 5}, Average: 5},
		"B": {Grades: []int{2}, Average: 2},
	}
	attendance := map[string]models.SubjectAttendanceStats{
		"A": {Present: 1, Total: 2},
		"B": {Present: 2, Total: 2},
	}

	summary := StudentSummary(subjects, attendance)
	assert.InDelta(t, 4.0, summary.AverageGrade, 1e-9)
	assert.NotEqual(t, 3.5, summary.AverageGrade)
	assert.Equal(t, 3, summary.TotalGrades)
	assert.Equal(t, 4, summary.TotalClasses)
	assert.InDelta(t, 75.0, summary.OverallAttendance, 1e-9)
}

func TestStudentSummaryEmpty(t *testing.T) {
	summary := StudentSummary(map[string]models.SubjectGradeStats{}, map[string]models.SubjectAttendanceStats{})
	assert.Equal(t, models.StudentSummary{}, summary)
}

func TestGroupSummaryIsMeanOfMeans(t *testing.T) {
	students := []models.StudentSummary{
		{AverageGrade: 4.0, OverallAttendance: 100, TotalGrades: 10, TotalClasses: 4},
		{AverageGrade: 2.0, OverallAttendance: 50, TotalGrades: 1, TotalClasses: 2},
	}

	summary := GroupSummary(students)
	assert.Equal(t, 2, summary.TotalStudents)
	assert.InDelta(t, 3.0, summary.AverageGroupGrade, 1e-9)
	assert.InDelta(t, 75.0, summary.AverageGroupAttendance, 1e-9)
	assert.Equal(t, 11, summary.TotalGrades)
	assert.Equal(t, 6, summary.TotalClasses)
}

func TestGroupSummaryNoStudents(t *testing.T) {
	assert.Equal(t, models.GroupSummary{}, GroupSummary(nil))
}
