package cli

import (
	"context"

	"github.com/portfolio-site/portfolio-backend/internal/admin"
	authdomain "github.com/portfolio-site/portfolio-backend/internal/auth/domain"
)

// Sessions is satisfied by *service.Gate.
type Sessions interface {
	admin.SessionSource
	SignIn(ctx context.Context, email, password string) (*authdomain.Session, error)
	SignOut(ctx context.Context) error
	Restore(ctx context.Context) error
	Close()
}

// Data is the database and storage backed part of the admin surface.
type Data struct {
	Projects admin.Projects
	Messages admin.Messages
	Close    func()
}

// Backend opens the pieces a command needs. Login only touches Sessions, so
// Data is opened lazily.
type Backend struct {
	Sessions func(ctx context.Context) (Sessions, error)
	Data     func(ctx context.Context) (*Data, error)
}
