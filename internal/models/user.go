package models

// UserRole represents the roles recognised by the console.
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleHeadman UserRole = "headman"
)

// Valid returns true when the role is a supported value.
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleHeadman:
		return true
	default:
		return false
	}
}

// User describes an account in the users table. Passwords are stored as plain text.
type User struct {
	ID        int64    `db:"id" json:"id"`
	Username  string   `db:"username" json:"username"`
	Password  string   `db:"password" json:"-"`
	FullName  string   `db:"full_name" json:"full_name"`
	Role      UserRole `db:"role" json:"role"`
	GroupName string   `db:"group_name" json:"group_name"`
}

// GroupStudent is a student row listed for a group.
type GroupStudent struct {
	ID       int64  `db:"id" json:"id"`
	FullName string `db:"full_name" json:"full_name"`
	Username string `db:"username" json:"username"`
}
