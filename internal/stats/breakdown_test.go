package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-console/internal/models"
)

func TestGroupBreakdown(t *testing.T) {
	rows := []models.GroupGradeRow{
		{FullName: "Иванов Иван Иванович", Subject: models.SubjectMath, Grade: 5},
		{FullName: "Иванов Иван Иванович", Subject: models.SubjectPhysics, Grade: 4},
		{FullName: "Петров Петр Петрович", Subject: models.SubjectMath, Grade: 3},
		{FullName: "Петров Петр Петрович", Subject: models.SubjectMath, Grade: 2},
	}

	got := GroupBreakdown(rows)
	require.Len(t, got.StudentAverages, 2)
	assert.Equal(t, "Иванов Иван Иванович", got.StudentAverages[0].Name)
	assert.InDelta(t, 4.5, got.StudentAverages[0].Average, 1e-9)
	assert.InDelta(t, 2.5, got.StudentAverages[1].Average, 1e-9)

	require.Len(t, got.SubjectAverages, 2)
	assert.Equal(t, models.SubjectMath, got.SubjectAverages[0].Name)
	assert.Equal(t, 3, got.SubjectAverages[0].Count)
	assert.InDelta(t, 10.0/3.0, got.SubjectAverages[0].Average, 1e-9)

	assert.InDelta(t, 3.5, got.OverallAverage, 1e-9)
	assert.Equal(t, 1, got.Excellent)
	assert.Equal(t, 1, got.Good)
	assert.Equal(t, 1, got.Satisfactory)
	assert.Equal(t, 1, got.Unsatisfactory)
}

func TestGroupBreakdownEmpty(t *testing.T) {
	assert.Equal(t, models.GroupGradeBreakdown{}, GroupBreakdown(nil))
}

func TestSubjectAverages(t *testing.T) {
	rows := []models.StudentGradeRow{
		{Subject: models.SubjectEnglish, Grade: 4},
		{Subject: models.SubjectEnglish, Grade: 5},
		{Subject: models.SubjectHistory, Grade: 3},
	}

	got := SubjectAverages(rows)
	require.Len(t, got, 2)
	assert.Equal(t, models.NamedAverage{Name: models.SubjectEnglish, Average: 4.5, Count: 2}, got[0])
	assert.Equal(t, models.NamedAverage{Name: models.SubjectHistory, Average: 3, Count: 1}, got[1])
}

func TestRecentAttendanceLimit(t *testing.T) {
	rows := make([]models.StudentAttendanceRow, 0, 12)
	for i := 0; i < 12; i++ {
		rows = append(rows, models.StudentAttendanceRow{Subject: models.SubjectMath, Present: i < 5})
	}

	recent, rate := RecentAttendance(rows, 10)
	assert.Len(t, recent, 10)
	assert.InDelta(t, 50.0, rate, 1e-9)

	none, rate := RecentAttendance(nil, 10)
	assert.Empty(t, none)
	assert.Equal(t, 0.0, rate)
}
