package models

// SubjectGradeStats summarises the grades of one subject for a student.
type SubjectGradeStats struct {
	Grades  []int   `json:"grades"`
	Teacher string  `json:"teacher"`
	Average float64 `json:"average"`
}

// SubjectAttendanceStats summarises attendance of one subject for a student.
type SubjectAttendanceStats struct {
	Present        int     `json:"present"`
	Total          int     `json:"total"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// StudentSummary holds the overall statistics of a student.
type StudentSummary struct {
	AverageGrade      float64 `json:"average_grade"`
	OverallAttendance float64 `json:"overall_attendance"`
	TotalGrades       int     `json:"total_grades"`
	TotalClasses      int     `json:"total_classes"`
}

// StudentInfo is the personal block of a student report.
type StudentInfo struct {
	FullName  string `json:"full_name"`
	Group     string `json:"group"`
	StudentID int64  `json:"student_id"`
}

// StudentReport is the detailed report of a single student.
type StudentReport struct {
	StudentInfo       StudentInfo                       `json:"student_info"`
	Subjects          map[string]SubjectGradeStats      `json:"subjects"`
	Attendance        map[string]SubjectAttendanceStats `json:"attendance"`
	OverallStatistics StudentSummary                    `json:"overall_statistics"`
}

// GroupSummary holds group level statistics derived from student summaries.
type GroupSummary struct {
	TotalStudents          int     `json:"total_students"`
	AverageGroupGrade      float64 `json:"average_group_grade"`
	AverageGroupAttendance float64 `json:"average_group_attendance"`
	TotalGrades            int     `json:"total_grades"`
	TotalClasses           int     `json:"total_classes"`
}

// GroupReport nests the detailed report of every student in a group.
type GroupReport struct {
	GroupName       string          `json:"group_name"`
	ReportDate      string          `json:"report_date"`
	Students        []StudentReport `json:"students"`
	GroupStatistics GroupSummary    `json:"group_statistics"`
}

// NamedAverage pairs a label with an average grade.
type NamedAverage struct {
	Name    string  `json:"name"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// GroupGradeBreakdown is the statistics screen of a group leader.
type GroupGradeBreakdown struct {
	StudentAverages []NamedAverage `json:"student_averages"`
	SubjectAverages []NamedAverage `json:"subject_averages"`
	OverallAverage  float64        `json:"overall_average"`
	Excellent       int            `json:"excellent"`
	Good            int            `json:"good"`
	Satisfactory    int            `json:"satisfactory"`
	Unsatisfactory  int            `json:"unsatisfactory"`
}
