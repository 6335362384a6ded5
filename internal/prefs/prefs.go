// Package prefs persists logscope UI preferences in ~/.config/logscope/prefs.toml.
// Only cosmetic settings live here; analysis results are never written to disk.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences.
type Prefs struct {
	Theme string `toml:"theme"`
}

const (
	defaultPrefsPath = "~/.config/logscope/prefs.toml"
	defaultTheme     = "Dracula"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// File is a preferences file on disk.
type File struct {
	path string
}

// Open returns a File for path, or the default location when path is empty.
// Nothing is read or created until Load or Save.
func Open(path string) File {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return File{path: path}
}

// Path returns the unexpanded path the File was opened with.
func (f File) Path() string {
	return f.path
}

// Load reads preferences, degrading to defaults when the file is missing or broken.
func (f File) Load() Prefs {
	p := Prefs{Theme: defaultTheme}

	resolved, err := expandPath(f.path)
	if err != nil {
		return p
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return p
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return Prefs{Theme: defaultTheme}
	}
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}
	return p
}

// Save writes preferences, creating parent directories as needed.
func (f File) Save(p Prefs) error {
	resolved, err := expandPath(f.path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// SaveTheme updates only the theme, keeping any other stored preferences.
func (f File) SaveTheme(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("theme name is empty")
	}
	p := f.Load()
	p.Theme = name
	return f.Save(p)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
