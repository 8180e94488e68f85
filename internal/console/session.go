package console

import (
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/academic-console/internal/models"
)

// Session is the state of one logged-in user. It lives from login until the
// user leaves their panel.
type Session struct {
	ID        uuid.UUID
	User      models.User
	StartedAt time.Time
}

// NewSession starts a session for user.
func NewSession(user models.User, now time.Time) *Session {
	return &Session{ID: uuid.New(), User: user, StartedAt: now}
}

// GroupName is the group the session user belongs to.
func (s *Session) GroupName() string {
	return s.User.GroupName
}
