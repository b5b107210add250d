package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/portfolio-site/portfolio-backend/internal/auth/domain"
)

// SessionFile persists the admin CLI session as YAML in the user's home.
type SessionFile struct {
	path string
}

func NewSessionFile(path string) *SessionFile {
	return &SessionFile{path: path}
}

func (f *SessionFile) Path() string { return f.path }

func (f *SessionFile) Load() (*domain.Session, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var s domain.Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session file %s: %w", f.path, err)
	}
	if s.IDToken == "" {
		return nil, nil
	}
	return &s, nil
}

func (f *SessionFile) Save(s *domain.Session) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

func (f *SessionFile) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
