package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-console/internal/models"
	appErrors "github.com/noah-isme/academic-console/pkg/errors"
)

type mockAuthRepo struct {
	users map[string]models.User
	err   error
	calls int
}

func (m *mockAuthRepo) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[username]
	if !ok || user.Password != password {
		return nil, sql.ErrNoRows
	}
	return &user, nil
}

func newAuthFixture() (*AuthService, *mockAuthRepo, *MetricsService) {
	repo := &mockAuthRepo{users: map[string]models.User{
		"student1": {ID: 1, Username: "student1", Password: "pass123", FullName: "Иванов Иван Иванович", Role: models.RoleStudent, GroupName: "ИВТ-21"},
		"odd":      {ID: 9, Username: "odd", Password: "x", Role: models.UserRole("admin")},
	}}
	metrics := NewMetricsService()
	return NewAuthService(repo, nil, metrics, zap.NewNop()), repo, metrics
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	svc, _, metrics := newAuthFixture()

	user, err := svc.Login(context.Background(), "student1", "pass123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.Equal(t, uint64(1), metrics.Snapshot().LoginsSucceeded)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, _, metrics := newAuthFixture()

	_, err := svc.Login(context.Background(), "student1", "PASS123")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	assert.Equal(t, uint64(1), metrics.Snapshot().LoginsFailed)
}

func TestAuthServiceLoginEmptyInputSkipsStore(t *testing.T) {
	svc, repo, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	assert.Zero(t, repo.calls)
}

func TestAuthServiceLoginUnsupportedRole(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), "odd", "x")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestAuthServiceLoginStoreFailure(t *testing.T) {
	svc, repo, _ := newAuthFixture()
	repo.err = errors.New("database is locked")

	_, err := svc.Login(context.Background(), "student1", "pass123")
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	assert.NotErrorIs(t, err, appErrors.ErrInvalidCredentials)
}
