package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvPath names a config file that is read before the search path.
const EnvPath = "SKETCHPAD_CONFIG"

const (
	fileName   = "config.rc"
	legacyName = "sketchpad.rc"
	devName    = ".sketchpadrc"
)

// Loader finds and parses the sketchpad rc file.
type Loader struct {
	Version      string // "dev" builds also look in the working directory
	OverridePath string // set at link time for packaged builds
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Dir returns the sketchpad config directory, honouring XDG_CONFIG_HOME.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sketchpad"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(home, ".config", "sketchpad"), nil
}

// DefaultPath is where a new configuration file is written.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Candidates lists the files GetConfigPath tries, most specific first.
func (l *Loader) Candidates() []string {
	var paths []string
	if l.OverridePath != "" {
		paths = append(paths, l.OverridePath)
	}
	if p := os.Getenv(EnvPath); p != "" {
		paths = append(paths, p)
	}
	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			paths = append(paths, filepath.Join(wd, devName))
		}
	}
	if dir, err := Dir(); err == nil {
		paths = append(paths, filepath.Join(dir, fileName), filepath.Join(dir, legacyName))
	}
	return paths
}

// GetConfigPath returns the first candidate that is a regular file, or ""
// when there is none.
func (l *Loader) GetConfigPath() string {
	for _, p := range l.Candidates() {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
	}
	return ""
}

// Load parses the config file, or returns defaults when none exists.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
