package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/academic-console/internal/models"
)

// UserRepository provides read access to seeded accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Authenticate returns the user whose username and password both match exactly.
// sql.ErrNoRows is returned unwrapped when nothing matches.
func (r *UserRepository) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	query := r.db.Rebind(`SELECT id, username, password, full_name, role, group_name FROM users WHERE username = ? AND password = ? LIMIT 1`)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, username, password); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("authenticate user: %w", err)
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := r.db.Rebind(`SELECT id, username, password, full_name, role, group_name FROM users WHERE id = ? LIMIT 1`)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// ListStudentsByGroup returns the students of a group ordered by full name.
func (r *UserRepository) ListStudentsByGroup(ctx context.Context, groupName string) ([]models.GroupStudent, error) {
	query := r.db.Rebind(`SELECT id, full_name, username FROM users WHERE group_name = ? AND role = ? ORDER BY full_name`)
	students := []models.GroupStudent{}
	if err := r.db.SelectContext(ctx, &students, query, groupName, models.RoleStudent); err != nil {
		return nil, fmt.Errorf("list group students: %w", err)
	}
	return students, nil
}
