package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-site/portfolio-backend/internal/auth/domain"
)

func TestSessionFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")
	f := NewSessionFile(path)

	got, err := f.Load()
	require.NoError(t, err)
	assert.Nil(t, got, "missing file means no session")

	s := &domain.Session{
		UID:       "uid-1",
		Email:     "admin@example.com",
		IDToken:   "tok",
		ExpiresAt: time.Date(2030, 5, 6, 7, 8, 9, 0, time.UTC),
	}
	require.NoError(t, f.Save(s))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err = f.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s.UID, got.UID)
	assert.Equal(t, s.IDToken, got.IDToken)
	assert.True(t, s.ExpiresAt.Equal(got.ExpiresAt))

	require.NoError(t, f.Clear())
	require.NoError(t, f.Clear(), "clearing twice is fine")
	got, err = f.Load()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionFile_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("uid: [unterminated"), 0o600))

	_, err := NewSessionFile(path).Load()
	assert.Error(t, err)
}
