package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-console/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

var userColumns = []string{"id", "username", "password", "full_name", "role", "group_name"}

func TestAuthenticate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows(userColumns).
		AddRow(1, "student1", "123456", "Иванов Иван Иванович", "student", "Группа 101")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, password, full_name, role, group_name FROM users WHERE username = ? AND password = ? LIMIT 1")).
		WithArgs("student1", "123456").
		WillReturnRows(rows)

	user, err := repo.Authenticate(context.Background(), "student1", "123456")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.Equal(t, "Группа 101", user.GroupName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticateWrongPassword(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("FROM users WHERE username = \\? AND password = \\?").
		WithArgs("student1", "wrong").
		WillReturnRows(sqlmock.NewRows(userColumns))

	user, err := repo.Authenticate(context.Background(), "student1", "wrong")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = ? LIMIT 1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(3, "headman1", "123456", "Сидоров Алексей", "headman", "Группа 101"))

	user, err := repo.FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, models.RoleHeadman, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListStudentsByGroup(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "full_name", "username"}).
		AddRow(1, "Иванов Иван Иванович", "student1").
		AddRow(2, "Петров Петр Петрович", "student2")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, full_name, username FROM users WHERE group_name = ? AND role = ? ORDER BY full_name")).
		WithArgs("Группа 101", "student").
		WillReturnRows(rows)

	students, err := repo.ListStudentsByGroup(context.Background(), "Группа 101")
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "student2", students[1].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}
