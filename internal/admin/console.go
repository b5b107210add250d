// Package admin holds the state of one admin surface: which view is shown,
// the project form and the cached lists. The CLI drives it.
package admin

import (
	"context"
	"errors"
	"sync"

	authdomain "github.com/portfolio-site/portfolio-backend/internal/auth/domain"
	"github.com/portfolio-site/portfolio-backend/internal/media"
	msgdomain "github.com/portfolio-site/portfolio-backend/internal/messages/domain"
	projdomain "github.com/portfolio-site/portfolio-backend/internal/projects/domain"
	projservice "github.com/portfolio-site/portfolio-backend/internal/projects/service"
)

// ErrBusy is returned by Submit while a previous submission is running.
var ErrBusy = errors.New("a submission is already in progress")

type View int

const (
	ViewProjects View = iota
	ViewEditor
	ViewMessages
)

func (v View) String() string {
	switch v {
	case ViewProjects:
		return "projects"
	case ViewEditor:
		return "editor"
	case ViewMessages:
		return "messages"
	default:
		return "unknown"
	}
}

type SessionSource interface {
	CurrentSession() *authdomain.Session
	OnSessionChange(fn func(*authdomain.Session)) (unsubscribe func())
}

type Projects interface {
	List(ctx context.Context) ([]projdomain.Project, error)
	Create(ctx context.Context, sess *authdomain.Session, f projdomain.Fields, files []media.File) (*projservice.CreateResult, error)
	Update(ctx context.Context, sess *authdomain.Session, id string, f projdomain.Fields) error
	Delete(ctx context.Context, sess *authdomain.Session, id string, images []string) (*projservice.DeleteResult, error)
}

type Messages interface {
	List(ctx context.Context, sess *authdomain.Session) ([]msgdomain.Message, error)
	MarkRead(ctx context.Context, sess *authdomain.Session, id string) error
	Delete(ctx context.Context, sess *authdomain.Session, id string) error
}

// Form is the add/edit project form. TechInput is the raw comma separated
// text; Files are only used when creating.
type Form struct {
	Title       string
	Description string
	Link        string
	TechInput   string
	Category    projdomain.Category
	Files       []media.File
}

func emptyForm() Form {
	return Form{Category: projdomain.CategoryWeb}
}

func (f Form) fields() projdomain.Fields {
	return projdomain.Fields{
		Title:       f.Title,
		Description: f.Description,
		Link:        f.Link,
		Tech:        projdomain.ParseTech(f.TechInput),
		Category:    f.Category,
	}
}

// SubmitResult reports a successful submission. ReloadErr is set when the
// follow-up list reload failed; the cached list is then stale.
type SubmitResult struct {
	Project   *projdomain.Project
	Updated   bool
	ReloadErr error
}

// MutationResult reports the follow-up reload of a delete or mark-read.
type MutationResult struct {
	Delete    *projservice.DeleteResult
	ReloadErr error
}

type Console struct {
	projects Projects
	messages Messages

	mu          sync.Mutex
	session     *authdomain.Session
	view        View
	form        Form
	editing     *projdomain.Project
	projectList []projdomain.Project
	messageList []msgdomain.Message
	inFlight    bool

	unsubscribe func()
}

// NewConsole subscribes to gate. Close must be called to unsubscribe.
func NewConsole(gate SessionSource, projects Projects, messages Messages) *Console {
	c := &Console{
		projects: projects,
		messages: messages,
		form:     emptyForm(),
	}
	c.unsubscribe = gate.OnSessionChange(c.onSessionChange)
	return c
}

func (c *Console) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

func (c *Console) onSessionChange(s *authdomain.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
	if s == nil {
		c.view = ViewProjects
		c.editing = nil
		c.form = emptyForm()
		c.projectList = nil
		c.messageList = nil
	}
}

func (c *Console) Session() *authdomain.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *Console) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *Console) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// EditForm applies fn to the form.
func (c *Console) EditForm(fn func(*Form)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.form)
}

// Editing returns the project being edited, or nil in create mode.
func (c *Console) Editing() *projdomain.Project {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing
}

func (c *Console) Projects() []projdomain.Project {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectList
}

func (c *Console) Messages() []msgdomain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.messageList
}

func (c *Console) requireSession() (*authdomain.Session, error) {
	c.mu.Lock()
	s := c.session
	c.mu.Unlock()
	if err := authdomain.RequireSession(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Select switches view. Entering projects or messages reloads that list.
// The editor keeps its form and any project picked with BeginEdit, so a
// later Submit still updates that project.
func (c *Console) Select(ctx context.Context, v View) error {
	if _, err := c.requireSession(); err != nil {
		return err
	}

	c.mu.Lock()
	c.view = v
	c.mu.Unlock()

	switch v {
	case ViewProjects:
		return c.ReloadProjects(ctx)
	case ViewMessages:
		return c.ReloadMessages(ctx)
	}
	return nil
}

// NewProject opens the editor on an empty create form, dropping any project
// picked for editing.
func (c *Console) NewProject() error {
	if _, err := c.requireSession(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = nil
	c.form = emptyForm()
	c.view = ViewEditor
	return nil
}

// BeginEdit opens the editor for p. Only title, description and link are
// copied into the form; tech and category keep whatever the form held.
func (c *Console) BeginEdit(p projdomain.Project) error {
	if _, err := c.requireSession(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = &p
	c.form.Title = p.Title
	c.form.Description = p.Description
	c.form.Link = p.Link
	c.view = ViewEditor
	return nil
}

// Submit creates or updates from the form. A second call while one is
// running returns ErrBusy. On failure the form is left untouched.
func (c *Console) Submit(ctx context.Context) (*SubmitResult, error) {
	sess, err := c.requireSession()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	c.inFlight = true
	form := c.form
	editing := c.editing
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	res := &SubmitResult{}
	if editing != nil {
		if err := c.projects.Update(ctx, sess, editing.ID, form.fields()); err != nil {
			return nil, err
		}
		res.Updated = true
	} else {
		created, err := c.projects.Create(ctx, sess, form.fields(), form.Files)
		if err != nil {
			return nil, &CreateError{Result: created, Err: err}
		}
		res.Project = created.Project
	}

	c.mu.Lock()
	c.form = emptyForm()
	c.editing = nil
	c.mu.Unlock()

	res.ReloadErr = c.ReloadProjects(ctx)
	return res, nil
}

// CreateError carries the partial outcome of a failed create.
type CreateError struct {
	Result *projservice.CreateResult
	Err    error
}

func (e *CreateError) Error() string { return e.Err.Error() }

func (e *CreateError) Unwrap() error { return e.Err }

// Orphaned lists storage paths left behind by the failed create.
func (e *CreateError) Orphaned() []string {
	if e.Result == nil {
		return nil
	}
	return e.Result.Orphaned
}

func (c *Console) DeleteProject(ctx context.Context, p projdomain.Project) (*MutationResult, error) {
	sess, err := c.requireSession()
	if err != nil {
		return nil, err
	}
	dres, err := c.projects.Delete(ctx, sess, p.ID, p.Images)
	if err != nil {
		return &MutationResult{Delete: dres}, err
	}
	return &MutationResult{Delete: dres, ReloadErr: c.ReloadProjects(ctx)}, nil
}

func (c *Console) MarkRead(ctx context.Context, id string) (*MutationResult, error) {
	sess, err := c.requireSession()
	if err != nil {
		return nil, err
	}
	if err := c.messages.MarkRead(ctx, sess, id); err != nil {
		return nil, err
	}
	return &MutationResult{ReloadErr: c.ReloadMessages(ctx)}, nil
}

func (c *Console) DeleteMessage(ctx context.Context, id string) (*MutationResult, error) {
	sess, err := c.requireSession()
	if err != nil {
		return nil, err
	}
	if err := c.messages.Delete(ctx, sess, id); err != nil {
		return nil, err
	}
	return &MutationResult{ReloadErr: c.ReloadMessages(ctx)}, nil
}

// ReloadProjects refreshes the cached list. On failure the previous list is
// kept.
func (c *Console) ReloadProjects(ctx context.Context) error {
	if _, err := c.requireSession(); err != nil {
		return err
	}
	items, err := c.projects.List(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.projectList = items
	c.mu.Unlock()
	return nil
}

func (c *Console) ReloadMessages(ctx context.Context) error {
	sess, err := c.requireSession()
	if err != nil {
		return err
	}
	items, err := c.messages.List(ctx, sess)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.messageList = items
	c.mu.Unlock()
	return nil
}
