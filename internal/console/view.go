package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-console/internal/models"
	"github.com/noah-isme/academic-console/internal/service"
	appErrors "github.com/noah-isme/academic-console/pkg/errors"
)

// StudentRecords is the read side used by the student panel.
type StudentRecords interface {
	Grades(ctx context.Context, studentID int64) ([]models.StudentGradeRow, error)
	Attendance(ctx context.Context, studentID int64) (*service.RecentAttendance, error)
	SubjectAverages(ctx context.Context, studentID int64) ([]models.NamedAverage, error)
}

// GroupRecords is used by the group leader panel.
type GroupRecords interface {
	Students(ctx context.Context, groupName string) ([]models.GroupStudent, error)
	Grades(ctx context.Context, groupName string) ([]models.GroupGradeRow, error)
	Statistics(ctx context.Context, groupName string) (*models.GroupGradeBreakdown, error)
	RecordGrade(ctx context.Context, groupName string, req service.RecordGradeRequest) (*service.RecordedGrade, error)
	RecordAttendance(ctx context.Context, groupName string, req service.RecordAttendanceRequest) (int, error)
}

// ReportExporter writes report files.
type ReportExporter interface {
	ExportStudent(ctx context.Context, studentID int64) (*service.StudentExport, error)
	ExportGroup(ctx context.Context, groupName string) (*service.GroupExport, error)
}

// Dependencies bundles what the role panels need.
type Dependencies struct {
	Students StudentRecords
	Groups   GroupRecords
	Reports  ReportExporter
	Logger   *zap.Logger
}

// View is a role specific panel run until the user chooses to leave.
type View interface {
	Run(ctx context.Context) error
}

// NewView selects the panel for the session user's role.
func NewView(session *Session, p *Prompter, deps Dependencies) (View, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	switch session.User.Role {
	case models.RoleStudent:
		return &StudentView{session: session, prompter: p, deps: deps}, nil
	case models.RoleHeadman:
		return &LeaderView{session: session, prompter: p, deps: deps}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("role %q has no panel", session.User.Role))
	}
}

type menuItem struct {
	label  string
	action func(ctx context.Context) error
}

// runMenu shows items until the exit entry, numbered after the items, is chosen.
// Only input exhaustion and context cancellation end the loop early.
func runMenu(ctx context.Context, p *Prompter, title string, items []menuItem, exitLabel string) error {
	exit := len(items) + 1
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.Printf("\n=== %s ===\n", title)
		for i, item := range items {
			p.Printf("%d. %s\n", i+1, item.label)
		}
		p.Printf("%d. %s\n", exit, exitLabel)

		choice, err := p.ReadLine("Choose an action: ")
		if err != nil {
			return err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(choice))
		switch {
		case convErr == nil && n == exit:
			return nil
		case convErr == nil && n >= 1 && n < exit:
			if err := items[n-1].action(ctx); err != nil {
				return err
			}
		default:
			p.Println("Invalid choice!")
		}
	}
}

// showError prints a user facing message. Unexpected failures are logged and
// reported generically.
func showError(p *Prompter, logger *zap.Logger, fallback string, err error) {
	appErr := appErrors.FromError(err)
	switch appErr.Code {
	case appErrors.ErrInternal.Code, appErrors.ErrSubjectNotFound.Code:
		logger.Error(fallback, zap.Error(err))
		p.Println(fallback)
	default:
		p.Println(appErr.Message)
	}
}

// isInputEnd reports whether err means the session can no longer read input.
func isInputEnd(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
