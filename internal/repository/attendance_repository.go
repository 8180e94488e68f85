package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/academic-console/internal/models"
	appErrors "github.com/noah-isme/academic-console/pkg/errors"
)

// AttendanceRepository handles attendance persistence. Marks are append-only.
type AttendanceRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewAttendanceRepository creates a new attendance repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db, now: time.Now}
}

// ListByStudent returns a student's attendance newest first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.StudentAttendanceRow, error) {
	query := r.db.Rebind(`SELECT s.name AS subject_name, a.date, a.present
        FROM attendance a
        JOIN subjects s ON a.subject_id = s.id
        WHERE a.student_id = ?
        ORDER BY a.date DESC`)
	rows := []models.StudentAttendanceRow{}
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list student attendance: %w", err)
	}
	return rows, nil
}

// Create stores an attendance mark dated today; unknown subjects write nothing.
func (r *AttendanceRepository) Create(ctx context.Context, studentID int64, subjectName string, present bool) error {
	query := r.db.Rebind(`INSERT INTO attendance (student_id, subject_id, date, present)
        SELECT CAST(? AS INTEGER), s.id, CAST(? AS TEXT), CAST(? AS BOOLEAN)
        FROM subjects s WHERE s.name = ?`)
	res, err := r.db.ExecContext(ctx, query, studentID, r.now().Format(dateLayout), present, subjectName)
	if err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("create attendance rows affected: %w", err)
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrSubjectNotFound, fmt.Sprintf("subject %q not found", subjectName))
	}
	return nil
}
