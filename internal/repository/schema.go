package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/academic-console/internal/models"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        username TEXT UNIQUE NOT NULL,
        password TEXT NOT NULL,
        full_name TEXT NOT NULL,
        role TEXT NOT NULL,
        group_name TEXT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS subjects (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT UNIQUE NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS grades (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        student_id INTEGER NOT NULL REFERENCES users (id),
        subject_id INTEGER NOT NULL REFERENCES subjects (id),
        grade INTEGER NOT NULL CHECK (grade BETWEEN 2 AND 5),
        date TEXT NOT NULL,
        teacher_name TEXT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS attendance (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        student_id INTEGER NOT NULL REFERENCES users (id),
        subject_id INTEGER NOT NULL REFERENCES subjects (id),
        date TEXT NOT NULL,
        present BOOLEAN NOT NULL
    )`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
        id SERIAL PRIMARY KEY,
        username TEXT UNIQUE NOT NULL,
        password TEXT NOT NULL,
        full_name TEXT NOT NULL,
        role TEXT NOT NULL,
        group_name TEXT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS subjects (
        id SERIAL PRIMARY KEY,
        name TEXT UNIQUE NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS grades (
        id SERIAL PRIMARY KEY,
        student_id INTEGER NOT NULL REFERENCES users (id),
        subject_id INTEGER NOT NULL REFERENCES subjects (id),
        grade INTEGER NOT NULL CHECK (grade BETWEEN 2 AND 5),
        date TEXT NOT NULL,
        teacher_name TEXT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS attendance (
        id SERIAL PRIMARY KEY,
        student_id INTEGER NOT NULL REFERENCES users (id),
        subject_id INTEGER NOT NULL REFERENCES subjects (id),
        date TEXT NOT NULL,
        present BOOLEAN NOT NULL
    )`,
}

// DemoUsers are seeded on first run: two students and one group leader of the same group.
var DemoUsers = []models.User{
	{Username: "student1", Password: "123456", FullName: "Иванов Иван Иванович", Role: models.RoleStudent, GroupName: "Группа 101"},
	{Username: "student2", Password: "123456", FullName: "Петров Петр Петрович", Role: models.RoleStudent, GroupName: "Группа 101"},
	{Username: "headman1", Password: "123456", FullName: "Сидоров Алексей", Role: models.RoleHeadman, GroupName: "Группа 101"},
}

// Bootstrap creates missing tables and seeds the subject catalog, plus the demo
// accounts when seedDemo is set. Running it again is a no-op.
func Bootstrap(ctx context.Context, db *sqlx.DB, seedDemo bool) error {
	schema := sqliteSchema
	if db.DriverName() == "postgres" {
		schema = postgresSchema
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	subjectQuery := db.Rebind(`INSERT INTO subjects (name) VALUES (?) ON CONFLICT (name) DO NOTHING`)
	for _, name := range models.SubjectCatalog {
		if _, err := db.ExecContext(ctx, subjectQuery, name); err != nil {
			return fmt.Errorf("seed subject %s: %w", name, err)
		}
	}

	if !seedDemo {
		return nil
	}
	userQuery := db.Rebind(`INSERT INTO users (username, password, full_name, role, group_name) VALUES (?, ?, ?, ?, ?) ON CONFLICT (username) DO NOTHING`)
	for _, u := range DemoUsers {
		if _, err := db.ExecContext(ctx, userQuery, u.Username, u.Password, u.FullName, u.Role, u.GroupName); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}
	return nil
}
