package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-console/internal/models"
	appErrors "github.com/noah-isme/academic-console/pkg/errors"
	"github.com/noah-isme/academic-console/pkg/export"
)

const fileTimestampLayout = "20060102_150405"

type groupReporter interface {
	DetailedReport(ctx context.Context, groupName string) (*models.GroupReport, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
}

// DatasetRenderer turns a tabular dataset into a companion file.
type DatasetRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
	Extension() string
}

// ExportResult describes the files written for one export.
type ExportResult struct {
	Filename   string
	Path       string
	Companions []string
}

// StudentExport is the outcome of a student report export.
type StudentExport struct {
	ExportResult
	Report *models.StudentReport
}

// GroupExport is the outcome of a group report export.
type GroupExport struct {
	ExportResult
	Report *models.GroupReport
}

// ReportService writes detailed reports to storage as JSON plus optional companions.
type ReportService struct {
	students  studentReporter
	groups    groupReporter
	storage   fileStorage
	renderers []DatasetRenderer
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewReportService constructs ReportService. renderers may be empty.
func NewReportService(students studentReporter, groups groupReporter, storage fileStorage, renderers []DatasetRenderer, metrics *MetricsService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		students:  students,
		groups:    groups,
		storage:   storage,
		renderers: renderers,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// ExportStudent writes student_report_<id>_<timestamp>.json.
func (s *ReportService) ExportStudent(ctx context.Context, studentID int64) (*StudentExport, error) {
	report, err := s.students.DetailedReport(ctx, studentID)
	if err != nil {
		return nil, err
	}

	base := fmt.Sprintf("student_report_%d_%s", studentID, s.now().Format(fileTimestampLayout))
	result, err := s.write(base, report)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("%s (%s)", report.StudentInfo.FullName, report.StudentInfo.Group)
	result.Companions = s.companions(base, title, studentDataset(report))

	s.metrics.RecordReport("student")
	s.logger.Info("student report exported", zap.Int64("student_id", studentID), zap.String("file", result.Path))
	return &StudentExport{ExportResult: *result, Report: report}, nil
}

// ExportGroup writes group_report_<group>_<timestamp>.json. Nothing is written for
// a group without students.
func (s *ReportService) ExportGroup(ctx context.Context, groupName string) (*GroupExport, error) {
	report, err := s.groups.DetailedReport(ctx, groupName)
	if err != nil {
		return nil, err
	}
	if len(report.Students) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNoReportData, "no students in the group")
	}

	base := fmt.Sprintf("group_report_%s_%s", safeName(groupName), s.now().Format(fileTimestampLayout))
	result, err := s.write(base, report)
	if err != nil {
		return nil, err
	}
	result.Companions = s.companions(base, groupName, groupDataset(report))

	s.metrics.RecordReport("group")
	s.logger.Info("group report exported", zap.String("group", groupName), zap.String("file", result.Path))
	return &GroupExport{ExportResult: *result, Report: report}, nil
}

func (s *ReportService) write(base string, report interface{}) (*ExportResult, error) {
	payload, err := export.RenderJSON(report)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to encode report")
	}
	filename := base + ".json"
	path, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to save report")
	}
	return &ExportResult{Filename: filename, Path: path}, nil
}

// companions renders the extra formats. Failures are logged and skipped.
func (s *ReportService) companions(base, title string, data export.Dataset) []string {
	var written []string
	for _, renderer := range s.renderers {
		filename := base + "." + renderer.Extension()
		payload, err := renderer.Render(data, title)
		if err != nil {
			s.logger.Warn("render companion report failed", zap.String("file", filename), zap.Error(err))
			continue
		}
		if _, err := s.storage.Save(filename, payload); err != nil {
			s.logger.Warn("save companion report failed", zap.String("file", filename), zap.Error(err))
			continue
		}
		written = append(written, filename)
	}
	return written
}

var studentHeaders = []string{"Subject", "Grades", "Average", "Teacher", "Present", "Classes", "Attendance %"}

func studentDataset(report *models.StudentReport) export.Dataset {
	names := make(map[string]struct{}, len(report.Subjects)+len(report.Attendance))
	for name := range report.Subjects {
		names[name] = struct{}{}
	}
	for name := range report.Attendance {
		names[name] = struct{}{}
	}
	ordered := make([]string, 0, len(names))
	for name := range names {
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)

	rows := make([]map[string]string, 0, len(ordered))
	for _, name := range ordered {
		grades := report.Subjects[name]
		presence := report.Attendance[name]
		values := make([]string, len(grades.Grades))
		for i, g := range grades.Grades {
			values[i] = strconv.Itoa(g)
		}
		rows = append(rows, map[string]string{
			"Subject":      name,
			"Grades":       strings.Join(values, " "),
			"Average":      formatFloat(grades.Average),
			"Teacher":      grades.Teacher,
			"Present":      strconv.Itoa(presence.Present),
			"Classes":      strconv.Itoa(presence.Total),
			"Attendance %": formatFloat(presence.AttendanceRate),
		})
	}
	return export.Dataset{Headers: studentHeaders, Rows: rows}
}

var groupHeaders = []string{"Student", "Average", "Grades", "Attendance %", "Classes"}

func groupDataset(report *models.GroupReport) export.Dataset {
	rows := make([]map[string]string, 0, len(report.Students))
	for _, student := range report.Students {
		summary := student.OverallStatistics
		rows = append(rows, map[string]string{
			"Student":      student.StudentInfo.FullName,
			"Average":      formatFloat(summary.AverageGrade),
			"Grades":       strconv.Itoa(summary.TotalGrades),
			"Attendance %": formatFloat(summary.OverallAttendance),
			"Classes":      strconv.Itoa(summary.TotalClasses),
		})
	}
	return export.Dataset{Headers: groupHeaders, Rows: rows}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func safeName(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(name)
}
