package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-console/internal/models"
	appErrors "github.com/noah-isme/academic-console/pkg/errors"
)

type subjectLister interface {
	List(ctx context.Context) ([]models.Subject, error)
}

// CatalogService checks that the stored subjects cover the menu catalog.
type CatalogService struct {
	subjects subjectLister
	logger   *zap.Logger
}

// NewCatalogService constructs CatalogService.
func NewCatalogService(subjects subjectLister, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{subjects: subjects, logger: logger}
}

// Verify returns ErrSubjectNotFound naming every catalog subject absent from the store.
// Writes for those subjects would be rejected.
func (s *CatalogService) Verify(ctx context.Context) error {
	stored, err := s.subjects.List(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to list subjects")
	}
	known := make(map[string]struct{}, len(stored))
	for _, subject := range stored {
		known[subject.Name] = struct{}{}
	}
	var missing []string
	for _, name := range models.SubjectCatalog {
		if _, ok := known[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return appErrors.Clone(appErrors.ErrSubjectNotFound, fmt.Sprintf("subjects missing from store: %s", strings.Join(missing, ", ")))
	}
	s.logger.Debug("subject catalog verified", zap.Int("subjects", len(stored)))
	return nil
}
