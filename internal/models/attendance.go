package models

// StudentAttendanceRow is an attendance mark joined with its subject name.
type StudentAttendanceRow struct {
	Subject string `db:"subject_name" json:"subject"`
	Date    string `db:"date" json:"date"`
	Present bool   `db:"present" json:"present"`
}
