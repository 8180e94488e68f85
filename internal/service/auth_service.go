package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-console/internal/models"
	appErrors "github.com/noah-isme/academic-console/pkg/errors"
)

type authUserRepository interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// LoginRequest carries the credentials typed at the login prompt.
type LoginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// AuthService provides authentication use cases.
type AuthService struct {
	repo      authUserRepository
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{repo: repo, validator: validate, metrics: metrics, logger: logger}
}

// Login matches the credentials exactly against the stored account.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	req := LoginRequest{Username: username, Password: password}
	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordLogin(false)
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "username and password are required")
	}

	user, err := s.repo.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		s.metrics.RecordLogin(false)
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Info("login rejected", zap.String("username", req.Username))
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid username or password")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to authenticate user")
	}

	if !user.Role.Valid() {
		s.metrics.RecordLogin(false)
		s.logger.Warn("login with unsupported role", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
		return nil, appErrors.Clone(appErrors.ErrForbidden, "account role is not supported")
	}

	s.metrics.RecordLogin(true)
	s.logger.Info("login succeeded", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}
