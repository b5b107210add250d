package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/portfolio-site/portfolio-backend/internal/apperr"
	authdomain "github.com/portfolio-site/portfolio-backend/internal/auth/domain"
	"github.com/portfolio-site/portfolio-backend/internal/messages/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Message, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// Inbox is the admin view over contact messages. Messages are created only
// by the public contact form, never here.
type Inbox struct {
	repo Repository
}

func NewInbox(repo Repository) *Inbox {
	return &Inbox{repo: repo}
}

func (i *Inbox) List(ctx context.Context, sess *authdomain.Session) ([]domain.Message, error) {
	if err := authdomain.RequireSession(sess); err != nil {
		return nil, err
	}
	items, err := i.repo.List(ctx)
	if err != nil {
		return nil, apperr.Persist("list messages", err)
	}
	return items, nil
}

// MarkRead is idempotent; an id that matches nothing is not an error.
func (i *Inbox) MarkRead(ctx context.Context, sess *authdomain.Session, id string) error {
	if err := authdomain.RequireSession(sess); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	return apperr.Persist("mark message read", i.repo.MarkRead(ctx, id))
}

// Delete removes the message unconditionally.
func (i *Inbox) Delete(ctx context.Context, sess *authdomain.Session, id string) error {
	if err := authdomain.RequireSession(sess); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	return apperr.Persist("delete message", i.repo.Delete(ctx, id))
}
