package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "github.com/portfolio-site/portfolio-backend/internal/auth/domain"
	"github.com/portfolio-site/portfolio-backend/internal/media"
	msgdomain "github.com/portfolio-site/portfolio-backend/internal/messages/domain"
	"github.com/portfolio-site/portfolio-backend/internal/projects/domain"
	projservice "github.com/portfolio-site/portfolio-backend/internal/projects/service"
)

type fakeSessions struct {
	s         *authdomain.Session
	signedOut bool
}

func (f *fakeSessions) CurrentSession() *authdomain.Session { return f.s }

func (f *fakeSessions) OnSessionChange(fn func(*authdomain.Session)) func() {
	fn(f.s)
	return func() {}
}

func (f *fakeSessions) SignIn(_ context.Context, email, password string) (*authdomain.Session, error) {
	if password != "hunter2" {
		return nil, &authdomain.AuthError{Message: "INVALID_PASSWORD"}
	}
	f.s = &authdomain.Session{UID: "u1", Email: email, IDToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}
	return f.s, nil
}

func (f *fakeSessions) SignOut(context.Context) error {
	f.s = nil
	f.signedOut = true
	return nil
}

func (f *fakeSessions) Restore(context.Context) error { return nil }
func (f *fakeSessions) Close()                        {}

type fakeProjects struct {
	items   []domain.Project
	created domain.Fields
	files   []media.File
	updated map[string]domain.Fields
	deleted []string
}

func (f *fakeProjects) List(context.Context) ([]domain.Project, error) { return f.items, nil }

func (f *fakeProjects) Create(_ context.Context, _ *authdomain.Session, fields domain.Fields, files []media.File) (*projservice.CreateResult, error) {
	f.created = fields
	f.files = files
	p := &domain.Project{ID: "new", Title: fields.Title, Images: []string{"u"}}
	return &projservice.CreateResult{Phase: projservice.PhaseDone, Project: p}, nil
}

func (f *fakeProjects) Update(_ context.Context, _ *authdomain.Session, id string, fields domain.Fields) error {
	if f.updated == nil {
		f.updated = map[string]domain.Fields{}
	}
	f.updated[id] = fields
	return nil
}

func (f *fakeProjects) Delete(_ context.Context, _ *authdomain.Session, id string, images []string) (*projservice.DeleteResult, error) {
	f.deleted = append(f.deleted, id)
	return &projservice.DeleteResult{RowDeleted: true}, nil
}

type fakeMessages struct {
	items []msgdomain.Message
	calls []string
}

func (f *fakeMessages) List(context.Context, *authdomain.Session) ([]msgdomain.Message, error) {
	f.calls = append(f.calls, "list")
	return f.items, nil
}

func (f *fakeMessages) MarkRead(_ context.Context, _ *authdomain.Session, id string) error {
	f.calls = append(f.calls, "read:"+id)
	return nil
}

func (f *fakeMessages) Delete(_ context.Context, _ *authdomain.Session, id string) error {
	f.calls = append(f.calls, "delete:"+id)
	return nil
}

type env struct {
	sessions *fakeSessions
	projects *fakeProjects
	messages *fakeMessages
}

func newEnv(signedIn bool) *env {
	e := &env{
		sessions: &fakeSessions{},
		projects: &fakeProjects{items: []domain.Project{
			{ID: "p2", Title: "Scanner", Category: domain.CategorySecurity, Tech: []string{"Go"}, Images: []string{"a", "b"}},
			{ID: "p1", Title: "Shop", Category: domain.CategoryWeb, Tech: []string{"React", "Node"}, Images: []string{"c"}},
		}},
		messages: &fakeMessages{items: []msgdomain.Message{{ID: "m1", Name: "Ada", Message: "hello\nthere"}}},
	}
	if signedIn {
		e.sessions.s = &authdomain.Session{UID: "u1", Email: "me@example.com", IDToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}
	}
	return e
}

func (e *env) backend() Backend {
	return Backend{
		Sessions: func(context.Context) (Sessions, error) { return e.sessions, nil },
		Data: func(context.Context) (*Data, error) {
			return &Data{Projects: e.projects, Messages: e.messages}, nil
		},
	}
}

func run(e *env, stdin string, args ...string) (string, string, error) {
	root := NewRootCmd(e.backend())
	var out, errOut bytes.Buffer
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestLogin(t *testing.T) {
	e := newEnv(false)

	out, _, err := run(e, "hunter2\n", "login", "--email", "me@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as me@example.com")
	assert.NotNil(t, e.sessions.s)
}

func TestLogin_ProviderMessage(t *testing.T) {
	_, _, err := run(newEnv(false), "wrong\n", "login", "--email", "me@example.com")
	require.Error(t, err)
	assert.Equal(t, "INVALID_PASSWORD", err.Error())
}

func TestWhoami(t *testing.T) {
	_, _, err := run(newEnv(false), "", "whoami")
	assert.ErrorIs(t, err, authdomain.ErrNoSession)

	out, _, err := run(newEnv(true), "", "whoami", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"email": "me@example.com"`)
	assert.NotContains(t, out, "tok")
}

func TestLogout(t *testing.T) {
	e := newEnv(true)
	out, _, err := run(e, "", "logout")
	require.NoError(t, err)
	assert.True(t, e.sessions.signedOut)
	assert.Contains(t, out, "Signed out")
}

func TestUnknownOutput(t *testing.T) {
	_, _, err := run(newEnv(true), "", "whoami", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestProjectsList_Filter(t *testing.T) {
	out, _, err := run(newEnv(true), "", "projects", "list", "--category", "security", "-o", "json")
	require.NoError(t, err)

	var items []domain.Project
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ID)
}

func TestProjectsList_RequiresSession(t *testing.T) {
	_, _, err := run(newEnv(false), "", "projects", "list")
	assert.ErrorIs(t, err, authdomain.ErrNoSession)
}

func TestProjectsShow_DisplayOrder(t *testing.T) {
	out, _, err := run(newEnv(true), "", "projects", "show", "p2", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "display_images:\n  - b\n  - a\n")
}

func TestProjectsAdd(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "shot one.png")
	require.NoError(t, os.WriteFile(img, []byte("\x89PNG\r\n\x1a\n"), 0o600))

	e := newEnv(true)
	out, _, err := run(e, "", "projects", "add",
		"--title", "New", "--tech", "Go, Redis", "--category", "security", "--image", img)
	require.NoError(t, err)
	assert.Contains(t, out, "Created new")

	assert.Equal(t, "New", e.projects.created.Title)
	assert.Equal(t, []string{"Go", "Redis"}, e.projects.created.Tech)
	assert.Equal(t, domain.CategorySecurity, e.projects.created.Category)
	require.Len(t, e.projects.files, 1)
	assert.Equal(t, "shot one.png", e.projects.files[0].Name)
}

func TestProjectsEdit_KeepsStoredTagsAndCategory(t *testing.T) {
	e := newEnv(true)
	_, _, err := run(e, "", "projects", "edit", "p2", "--title", "Scanner v2")
	require.NoError(t, err)

	got := e.projects.updated["p2"]
	assert.Equal(t, "Scanner v2", got.Title)
	assert.Equal(t, []string{"Go"}, got.Tech)
	assert.Equal(t, domain.CategorySecurity, got.Category)
}

func TestProjectsDelete(t *testing.T) {
	e := newEnv(true)
	_, _, err := run(e, "", "projects", "delete", "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, e.projects.deleted)

	_, _, err = run(e, "", "projects", "delete", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMessages(t *testing.T) {
	e := newEnv(true)

	out, _, err := run(e, "", "messages", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "hello there")

	_, _, err = run(e, "", "messages", "read", "m1")
	require.NoError(t, err)
	_, _, err = run(e, "", "messages", "delete", "m1")
	require.NoError(t, err)

	assert.Equal(t, []string{"list", "read:m1", "list", "delete:m1", "list"}, e.messages.calls)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "a b", preview("a\nb", 10))
	assert.Equal(t, "abcd…", preview("abcdefgh", 5))
}
