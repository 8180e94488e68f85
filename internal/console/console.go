package console

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-console/internal/models"
)

// Authenticator checks login credentials.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
}

// Console runs the top level menu: log in or leave.
type Console struct {
	prompter *Prompter
	auth     Authenticator
	deps     Dependencies
	logger   *zap.Logger
	now      func() time.Time
}

// New constructs the console.
func New(p *Prompter, auth Authenticator, deps Dependencies, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Logger == nil {
		deps.Logger = logger
	}
	return &Console{prompter: p, auth: auth, deps: deps, logger: logger, now: time.Now}
}

// Run blocks until the user exits, the input ends or ctx is cancelled. Reaching
// the end of input is a normal exit.
func (c *Console) Run(ctx context.Context) error {
	err := runMenu(ctx, c.prompter, "ACADEMIC MONITORING SYSTEM", []menuItem{
		{label: "Log in", action: c.login},
	}, "Exit")
	if err != nil && !isInputEnd(err) {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	c.prompter.Println("Goodbye!")
	return nil
}

func (c *Console) login(ctx context.Context) error {
	p := c.prompter
	username, err := p.ReadLine("Username: ")
	if err != nil {
		return err
	}
	password, err := p.ReadPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := c.auth.Login(ctx, username, password)
	if err != nil {
		showError(p, c.logger, "Login failed.", err)
		return nil
	}

	session := NewSession(*user, c.now())
	view, err := NewView(session, p, c.deps)
	if err != nil {
		showError(p, c.logger, "Login failed.", err)
		return nil
	}

	p.Printf("Welcome, %s!\n", user.FullName)
	c.logger.Info("session started",
		zap.String("session", session.ID.String()),
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)

	runErr := view.Run(ctx)
	c.logger.Info("session ended",
		zap.String("session", session.ID.String()),
		zap.Duration("duration", c.now().Sub(session.StartedAt)),
	)
	if runErr != nil {
		return runErr
	}
	p.Println("You have logged out.")
	return nil
}
