package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/portfolio-site/portfolio-backend/internal/apperr"
	"github.com/portfolio-site/portfolio-backend/internal/auth/domain"
)

type listener struct {
	id     uint64
	fn     func(*domain.Session)
	active atomic.Bool
}

// Gate holds the admin session for one process and notifies subscribers on
// every transition, including expiry.
type Gate struct {
	provider IdentityProvider
	store    SessionStore
	now      func() time.Time

	// emitMu serializes transitions so subscribers observe them in order.
	emitMu sync.Mutex

	mu        sync.Mutex
	session   *domain.Session
	listeners []*listener
	nextID    uint64
	timer     *time.Timer
	gen       uint64
	closed    bool
}

type GateOption func(*Gate)

// WithStore makes the gate save and restore the session through s.
func WithStore(s SessionStore) GateOption {
	return func(g *Gate) { g.store = s }
}

func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) { g.now = now }
}

func NewGate(provider IdentityProvider, opts ...GateOption) *Gate {
	g := &Gate{provider: provider, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SignIn exchanges credentials for a session. Provider failures come back as
// *domain.AuthError carrying the provider message.
func (g *Gate) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperr.Invalid("email", "is required")
	}
	if password == "" {
		return nil, apperr.Invalid("password", "is required")
	}

	s, err := g.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		var ae *domain.AuthError
		if !errors.As(err, &ae) {
			err = &domain.AuthError{Message: err.Error(), Err: err}
		}
		return nil, err
	}

	if g.store != nil {
		if err := g.store.Save(s); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("auth: failed to persist session")
		}
	}
	g.transition(s)
	return s, nil
}

// SignOut clears the local session first; the provider is told afterwards so
// a provider failure never leaves the process signed in.
func (g *Gate) SignOut(ctx context.Context) error {
	prev := g.CurrentSession()
	g.clearStore(ctx)
	g.transition(nil)
	if prev == nil {
		return nil
	}
	return g.provider.SignOut(ctx, prev)
}

// CurrentSession returns the active session or nil.
func (g *Gate) CurrentSession() *domain.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.session.Active(g.now()) {
		return nil
	}
	return g.session
}

// OnSessionChange registers fn and immediately calls it with the current
// session. The returned func unsubscribes; it is safe to call more than once.
// fn runs while transitions are serialized and must not call SignIn or SignOut.
func (g *Gate) OnSessionChange(fn func(*domain.Session)) (unsubscribe func()) {
	g.emitMu.Lock()
	defer g.emitMu.Unlock()

	g.mu.Lock()
	g.nextID++
	l := &listener{id: g.nextID, fn: fn}
	l.active.Store(true)
	g.listeners = append(g.listeners, l)
	cur := g.session
	if !cur.Active(g.now()) {
		cur = nil
	}
	g.mu.Unlock()

	fn(cur)

	var once sync.Once
	return func() {
		once.Do(func() { g.remove(l.id) })
	}
}

// Restore loads a previously saved session and keeps it only if it is still
// valid and the provider accepts its token.
func (g *Gate) Restore(ctx context.Context) error {
	if g.store == nil {
		return nil
	}
	s, err := g.store.Load()
	if err != nil {
		return err
	}
	if s == nil {
		return nil
	}
	if !s.Active(g.now()) {
		g.clearStore(ctx)
		return nil
	}
	if _, err := g.provider.Verify(ctx, s.IDToken); err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Msg("auth: stored session rejected")
		g.clearStore(ctx)
		return nil
	}
	g.transition(s)
	return nil
}

// Close stops the expiry timer and drops every subscriber.
func (g *Gate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	for _, l := range g.listeners {
		l.active.Store(false)
	}
	g.listeners = nil
}

func (g *Gate) transition(s *domain.Session) {
	g.emitMu.Lock()
	defer g.emitMu.Unlock()

	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.session = s
	g.arm(s)
	ls := append([]*listener(nil), g.listeners...)
	g.mu.Unlock()

	emit(ls, s)
}

// arm schedules expiry for s. Caller holds g.mu.
func (g *Gate) arm(s *domain.Session) {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.gen++
	if s == nil {
		return
	}
	gen := g.gen
	d := s.ExpiresAt.Sub(g.now())
	if d < 0 {
		d = 0
	}
	g.timer = time.AfterFunc(d, func() { g.expire(gen) })
}

func (g *Gate) expire(gen uint64) {
	g.emitMu.Lock()
	defer g.emitMu.Unlock()

	g.mu.Lock()
	if g.closed || g.gen != gen || g.session == nil {
		g.mu.Unlock()
		return
	}
	g.session = nil
	g.timer = nil
	ls := append([]*listener(nil), g.listeners...)
	g.mu.Unlock()

	g.clearStore(context.Background())
	emit(ls, nil)
}

func (g *Gate) remove(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, l := range g.listeners {
		if l.id == id {
			l.active.Store(false)
			g.listeners = append(g.listeners[:i], g.listeners[i+1:]...)
			return
		}
	}
}

func (g *Gate) clearStore(ctx context.Context) {
	if g.store == nil {
		return
	}
	if err := g.store.Clear(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("auth: failed to clear stored session")
	}
}

func emit(ls []*listener, s *domain.Session) {
	for _, l := range ls {
		if l.active.Load() {
			l.fn(s)
		}
	}
}
