package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-console/internal/models"
	"github.com/noah-isme/academic-console/internal/stats"
	appErrors "github.com/noah-isme/academic-console/pkg/errors"
)

// RecentAttendanceLimit is the number of marks shown on the attendance screen.
const RecentAttendanceLimit = 10

type studentUserReader interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

type studentGradeReader interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.StudentGradeRow, error)
}

type studentAttendanceReader interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.StudentAttendanceRow, error)
}

// RecentAttendance is the attendance screen of a student.
type RecentAttendance struct {
	Records []models.StudentAttendanceRow
	Rate    float64
}

// StudentService exposes the read side of a student's record.
type StudentService struct {
	users      studentUserReader
	grades     studentGradeReader
	attendance studentAttendanceReader
	cache      *CacheService
	metrics    *MetricsService
	logger     *zap.Logger
}

// NewStudentService constructs StudentService. cache and metrics may be nil.
func NewStudentService(users studentUserReader, grades studentGradeReader, attendance studentAttendanceReader, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{users: users, grades: grades, attendance: attendance, cache: cache, metrics: metrics, logger: logger}
}

// Grades lists a student's grades ordered by subject then date.
func (s *StudentService) Grades(ctx context.Context, studentID int64) ([]models.StudentGradeRow, error) {
	start := time.Now()
	rows, err := s.grades.ListByStudent(ctx, studentID)
	s.metrics.ObserveDBQuery("grades_by_student", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to load grades")
	}
	return rows, nil
}

// Attendance returns the latest marks and the presence rate over them.
func (s *StudentService) Attendance(ctx context.Context, studentID int64) (*RecentAttendance, error) {
	rows, err := s.attendanceRows(ctx, studentID)
	if err != nil {
		return nil, err
	}
	recent, rate := stats.RecentAttendance(rows, RecentAttendanceLimit)
	return &RecentAttendance{Records: recent, Rate: rate}, nil
}

// SubjectAverages returns the average grade per subject.
func (s *StudentService) SubjectAverages(ctx context.Context, studentID int64) ([]models.NamedAverage, error) {
	rows, err := s.Grades(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return stats.SubjectAverages(rows), nil
}

// DetailedReport builds the full report of a student, served from cache when possible.
func (s *StudentService) DetailedReport(ctx context.Context, studentID int64) (*models.StudentReport, error) {
	key := studentReportKey(studentID)
	var cached models.StudentReport
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	start := time.Now()
	user, err := s.users.FindByID(ctx, studentID)
	s.metrics.ObserveDBQuery("user_by_id", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to load student")
	}

	grades, err := s.Grades(ctx, studentID)
	if err != nil {
		return nil, err
	}
	attendance, err := s.attendanceRows(ctx, studentID)
	if err != nil {
		return nil, err
	}

	subjects := stats.SubjectGrades(grades)
	presence := stats.SubjectAttendance(attendance)
	report := &models.StudentReport{
		StudentInfo: models.StudentInfo{
			FullName:  user.FullName,
			Group:     user.GroupName,
			StudentID: user.ID,
		},
		Subjects:          subjects,
		Attendance:        presence,
		OverallStatistics: stats.StudentSummary(subjects, presence),
	}

	s.cache.Set(ctx, key, report)
	return report, nil
}

func (s *StudentService) attendanceRows(ctx context.Context, studentID int64) ([]models.StudentAttendanceRow, error) {
	start := time.Now()
	rows, err := s.attendance.ListByStudent(ctx, studentID)
	s.metrics.ObserveDBQuery("attendance_by_student", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to load attendance")
	}
	return rows, nil
}
