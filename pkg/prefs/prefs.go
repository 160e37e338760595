// Package prefs persists user preferences between runs.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	appDir   = "metadata-explorer"
	fileName = "preferences.yaml"

	dirPerm  = 0o750
	filePerm = 0o600
)

// Preferences is the persisted document.
type Preferences struct {
	LastFile string `yaml:"last_file,omitempty"`
}

// Store reads and writes preferences at Path.
type Store struct {
	Path string
}

// DefaultStore returns a store under the user's configuration directory.
func DefaultStore() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("locate config dir: %w", err)
	}

	return &Store{Path: filepath.Join(dir, appDir, fileName)}, nil
}

// Load reads the preferences. A missing file yields empty preferences.
func (s *Store) Load() (Preferences, error) {
	var p Preferences

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}

	if err != nil {
		return p, fmt.Errorf("read preferences: %w", err)
	}

	err = yaml.Unmarshal(data, &p)
	if err != nil {
		return Preferences{}, fmt.Errorf("parse preferences %s: %w", s.Path, err)
	}

	return p, nil
}

// Save writes the preferences, creating the directory when needed.
func (s *Store) Save(p Preferences) error {
	err := os.MkdirAll(filepath.Dir(s.Path), dirPerm)
	if err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	err = os.WriteFile(s.Path, data, filePerm)
	if err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}

	return nil
}

// LastFile returns the last opened dataset path, or "" when none was
// recorded, the preferences are unreadable, or the file no longer exists.
func (s *Store) LastFile() string {
	p, err := s.Load()
	if err != nil || p.LastFile == "" {
		return ""
	}

	if _, err := os.Stat(p.LastFile); err != nil {
		return ""
	}

	return p.LastFile
}

// SaveLastFile records path as the last opened dataset.
func (s *Store) SaveLastFile(path string) error {
	p, err := s.Load()
	if err != nil {
		p = Preferences{}
	}

	p.LastFile = path

	return s.Save(p)
}
