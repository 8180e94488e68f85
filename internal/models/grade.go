package models

const (
	MinGradeValue = 2
	MaxGradeValue = 5
)

// StudentGradeRow is a grade joined with its subject name for one student.
type StudentGradeRow struct {
	Subject string `db:"subject_name" json:"subject"`
	Grade   int    `db:"grade" json:"grade"`
	Date    string `db:"date" json:"date"`
	Teacher string `db:"teacher_name" json:"teacher"`
}

// GroupGradeRow is a grade joined with student and subject names for a group.
type GroupGradeRow struct {
	FullName string `db:"full_name" json:"full_name"`
	Subject  string `db:"subject_name" json:"subject"`
	Grade    int    `db:"grade" json:"grade"`
	Date     string `db:"date" json:"date"`
	Teacher  string `db:"teacher_name" json:"teacher"`
}
