package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/academic-console/internal/models"
	appErrors "github.com/noah-isme/academic-console/pkg/errors"
)

const dateLayout = "2006-01-02"

// GradeRepository handles grade persistence. Grades are append-only.
type GradeRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewGradeRepository creates a new grade repository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db, now: time.Now}
}

// ListByStudent returns a student's grades ordered by subject name then date.
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.StudentGradeRow, error) {
	query := r.db.Rebind(`SELECT s.name AS subject_name, g.grade, g.date, g.teacher_name
        FROM grades g
        JOIN subjects s ON g.subject_id = s.id
        WHERE g.student_id = ?
        ORDER BY s.name, g.date`)
	rows := []models.StudentGradeRow{}
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list student grades: %w", err)
	}
	return rows, nil
}

// ListByGroup returns every grade of a group ordered by student then subject.
func (r *GradeRepository) ListByGroup(ctx context.Context, groupName string) ([]models.GroupGradeRow, error) {
	query := r.db.Rebind(`SELECT u.full_name, s.name AS subject_name, g.grade, g.date, g.teacher_name
        FROM grades g
        JOIN users u ON g.student_id = u.id
        JOIN subjects s ON g.subject_id = s.id
        WHERE u.group_name = ?
        ORDER BY u.full_name, s.name`)
	rows := []models.GroupGradeRow{}
	if err := r.db.SelectContext(ctx, &rows, query, groupName); err != nil {
		return nil, fmt.Errorf("list group grades: %w", err)
	}
	return rows, nil
}

// Create stores a grade dated today. The subject is resolved inside the same
// statement; when the name is not in the catalog nothing is written and
// ErrSubjectNotFound is returned.
func (r *GradeRepository) Create(ctx context.Context, studentID int64, subjectName string, grade int, teacherName string) error {
	query := r.db.Rebind(`INSERT INTO grades (student_id, subject_id, grade, date, teacher_name)
        SELECT CAST(? AS INTEGER), s.id, CAST(? AS INTEGER), CAST(? AS TEXT), CAST(? AS TEXT)
        FROM subjects s WHERE s.name = ?`)
	res, err := r.db.ExecContext(ctx, query, studentID, grade, r.now().Format(dateLayout), teacherName, subjectName)
	if err != nil {
		return fmt.Errorf("create grade: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("create grade rows affected: %w", err)
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrSubjectNotFound, fmt.Sprintf("subject %q not found", subjectName))
	}
	return nil
}
