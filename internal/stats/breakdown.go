package stats

import "github.com/noah-isme/academic-console/internal/models"

// GroupBreakdown computes the per-student and per-subject averages and the grade
// distribution shown on the group statistics screen. Names keep first appearance order.
func GroupBreakdown(rows []models.GroupGradeRow) models.GroupGradeBreakdown {
	var breakdown models.GroupGradeBreakdown
	if len(rows) == 0 {
		return breakdown
	}

	students := newAccumulator()
	subjects := newAccumulator()
	var sum int
	for _, row := range rows {
		students.add(row.FullName, row.Grade)
		subjects.add(row.Subject, row.Grade)
		sum += row.Grade
		switch row.Grade {
		case 5:
			breakdown.Excellent++
		case 4:
			breakdown.Good++
		case 3:
			breakdown.Satisfactory++
		case 2:
			breakdown.Unsatisfactory++
		}
	}

	breakdown.StudentAverages = students.averages()
	breakdown.SubjectAverages = subjects.averages()
	breakdown.OverallAverage = float64(sum) / float64(len(rows))
	return breakdown
}

// SubjectAverages returns per-subject averages in order of first appearance.
func SubjectAverages(rows []models.StudentGradeRow) []models.NamedAverage {
	acc := newAccumulator()
	for _, row := range rows {
		acc.add(row.Subject, row.Grade)
	}
	return acc.averages()
}

// RecentAttendance returns at most limit rows from the head of rows (already ordered
// newest first) and the presence rate over them.
func RecentAttendance(rows []models.StudentAttendanceRow, limit int) ([]models.StudentAttendanceRow, float64) {
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	present := 0
	for _, row := range rows {
		if row.Present {
			present++
		}
	}
	return rows, Rate(present, len(rows))
}

type accumulator struct {
	order  []string
	sums   map[string]int
	counts map[string]int
}

func newAccumulator() *accumulator {
	return &accumulator{sums: make(map[string]int), counts: make(map[string]int)}
}

func (a *accumulator) add(name string, value int) {
	if _, ok := a.counts[name]; !ok {
		a.order = append(a.order, name)
	}
	a.sums[name] += value
	a.counts[name]++
}

func (a *accumulator) averages() []models.NamedAverage {
	result := make([]models.NamedAverage, 0, len(a.order))
	for _, name := range a.order {
		count := a.counts[name]
		result = append(result, models.NamedAverage{
			Name:    name,
			Average: float64(a.sums[name]) / float64(count),
			Count:   count,
		})
	}
	return result
}
