package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-console/internal/models"
	"github.com/noah-isme/academic-console/internal/stats"
	appErrors "github.com/noah-isme/academic-console/pkg/errors"
)

// ReportDateLayout formats the report_date field of a group report.
const ReportDateLayout = "2006-01-02 15:04:05"

type groupStudentReader interface {
	ListStudentsByGroup(ctx context.Context, groupName string) ([]models.GroupStudent, error)
}

type groupGradeRepository interface {
	ListByGroup(ctx context.Context, groupName string) ([]models.GroupGradeRow, error)
	Create(ctx context.Context, studentID int64, subjectName string, grade int, teacherName string) error
}

type groupAttendanceWriter interface {
	Create(ctx context.Context, studentID int64, subjectName string, present bool) error
}

type studentReporter interface {
	DetailedReport(ctx context.Context, studentID int64) (*models.StudentReport, error)
}

// RecordGradeRequest adds one grade. Indexes are 1-based as shown in the menus.
type RecordGradeRequest struct {
	StudentIndex int `validate:"min=1"`
	SubjectIndex int `validate:"min=1"`
	Grade        int `validate:"min=2,max=5"`
	Teacher      string
}

// RecordAttendanceRequest marks one subject for the whole group. Presence holds
// one flag per student in the order returned by Students.
type RecordAttendanceRequest struct {
	SubjectIndex int    `validate:"min=1"`
	Presence     []bool `validate:"required"`
}

// RecordedGrade describes a stored grade for confirmation output.
type RecordedGrade struct {
	Student models.GroupStudent
	Subject string
	Grade   int
}

// GroupService implements the group leader use cases.
type GroupService struct {
	users      groupStudentReader
	grades     groupGradeRepository
	attendance groupAttendanceWriter
	reports    studentReporter
	cache      *CacheService
	metrics    *MetricsService
	validator  *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
}

// NewGroupService constructs GroupService.
func NewGroupService(users groupStudentReader, grades groupGradeRepository, attendance groupAttendanceWriter, reports studentReporter, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *GroupService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroupService{
		users:      users,
		grades:     grades,
		attendance: attendance,
		reports:    reports,
		cache:      cache,
		metrics:    metrics,
		validator:  validate,
		logger:     logger,
		now:        time.Now,
	}
}

// Students lists the students of a group ordered by full name.
func (s *GroupService) Students(ctx context.Context, groupName string) ([]models.GroupStudent, error) {
	start := time.Now()
	students, err := s.users.ListStudentsByGroup(ctx, groupName)
	s.metrics.ObserveDBQuery("students_by_group", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to load group students")
	}
	return students, nil
}

// Grades lists every grade of the group.
func (s *GroupService) Grades(ctx context.Context, groupName string) ([]models.GroupGradeRow, error) {
	start := time.Now()
	rows, err := s.grades.ListByGroup(ctx, groupName)
	s.metrics.ObserveDBQuery("grades_by_group", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to load group grades")
	}
	return rows, nil
}

// Statistics computes the grade breakdown of the group.
func (s *GroupService) Statistics(ctx context.Context, groupName string) (*models.GroupGradeBreakdown, error) {
	rows, err := s.Grades(ctx, groupName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNoReportData, "no grades recorded for the group")
	}
	breakdown := stats.GroupBreakdown(rows)
	return &breakdown, nil
}

// RecordGrade validates the request and stores one grade dated today.
func (s *GroupService) RecordGrade(ctx context.Context, groupName string, req RecordGradeRequest) (*RecordedGrade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, gradeValidationMessage(err))
	}

	students, err := s.Students(ctx, groupName)
	if err != nil {
		return nil, err
	}
	if req.StudentIndex > len(students) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid student number")
	}
	subject, ok := models.CatalogSubject(req.SubjectIndex - 1)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid subject number")
	}

	student := students[req.StudentIndex-1]
	if err := s.grades.Create(ctx, student.ID, subject, req.Grade, req.Teacher); err != nil {
		if errors.Is(err, appErrors.ErrSubjectNotFound) {
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to record grade")
	}

	s.cache.Invalidate(ctx, studentReportKey(student.ID))
	s.metrics.RecordGrade()
	s.logger.Info("grade recorded",
		zap.String("group", groupName),
		zap.Int64("student_id", student.ID),
		zap.String("subject", subject),
		zap.Int("grade", req.Grade),
	)
	return &RecordedGrade{Student: student, Subject: subject, Grade: req.Grade}, nil
}

// RecordAttendance marks one subject for every student of the group. All input is
// checked before the first write; it returns the number of marks stored.
func (s *GroupService) RecordAttendance(ctx context.Context, groupName string, req RecordAttendanceRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid attendance input")
	}
	subject, ok := models.CatalogSubject(req.SubjectIndex - 1)
	if !ok {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid subject number")
	}

	students, err := s.Students(ctx, groupName)
	if err != nil {
		return 0, err
	}
	if len(students) == 0 {
		return 0, appErrors.Clone(appErrors.ErrNoReportData, "no students in the group")
	}
	if len(req.Presence) != len(students) {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("expected %d attendance marks, got %d", len(students), len(req.Presence)))
	}

	written := 0
	for i, student := range students {
		if err := s.attendance.Create(ctx, student.ID, subject, req.Presence[i]); err != nil {
			s.metrics.RecordAttendance(written)
			if errors.Is(err, appErrors.ErrSubjectNotFound) {
				return written, err
			}
			return written, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to record attendance")
		}
		written++
		s.cache.Invalidate(ctx, studentReportKey(student.ID))
	}

	s.metrics.RecordAttendance(written)
	s.logger.Info("attendance recorded", zap.String("group", groupName), zap.String("subject", subject), zap.Int("marks", written))
	return written, nil
}

// DetailedReport composes the detailed report of every student of the group.
func (s *GroupService) DetailedReport(ctx context.Context, groupName string) (*models.GroupReport, error) {
	students, err := s.Students(ctx, groupName)
	if err != nil {
		return nil, err
	}

	report := &models.GroupReport{
		GroupName:  groupName,
		ReportDate: s.now().Format(ReportDateLayout),
		Students:   make([]models.StudentReport, 0, len(students)),
	}
	summaries := make([]models.StudentSummary, 0, len(students))
	for _, student := range students {
		studentReport, err := s.reports.DetailedReport(ctx, student.ID)
		if err != nil {
			return nil, err
		}
		report.Students = append(report.Students, *studentReport)
		summaries = append(summaries, studentReport.OverallStatistics)
	}
	report.GroupStatistics = stats.GroupSummary(summaries)
	return report, nil
}

func gradeValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Field() {
			case "Grade":
				return fmt.Sprintf("grade must be between %d and %d", models.MinGradeValue, models.MaxGradeValue)
			case "StudentIndex":
				return "invalid student number"
			case "SubjectIndex":
				return "invalid subject number"
			}
		}
	}
	return "invalid grade input"
}
