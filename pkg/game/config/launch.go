// Package config holds the launch configuration and the persisted user settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// Launch is read once at startup from an optional TOML file.
type Launch struct {
	AppName      string `toml:"app_name"`
	Language     string `toml:"language"`
	WindowWidth  int    `toml:"window_width"`
	WindowHeight int    `toml:"window_height"`

	// DisablePersistence keeps settings and saves in memory only.
	DisablePersistence bool `toml:"disable_persistence"`
}

// DefaultLaunch returns the launch configuration used without a file.
func DefaultLaunch() *Launch {
	return &Launch{
		AppName:      "frontier",
		Language:     "en",
		WindowWidth:  1280,
		WindowHeight: 800,
	}
}

// LoadLaunch reads the launch configuration from path.
// A missing file yields the defaults; a malformed one is an error.
func LoadLaunch(path string) (*Launch, error) {
	if path == "" {
		return DefaultLaunch(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultLaunch(), nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadLaunchFrom(f)
}

// LoadLaunchFrom decodes a launch configuration over the defaults.
func LoadLaunchFrom(r io.Reader) (*Launch, error) {
	cfg := DefaultLaunch()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decoding launch config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values a decoded file may have broken.
func (l *Launch) Validate() error {
	if l.AppName == "" {
		return fmt.Errorf("launch config: app_name must not be empty")
	}
	if l.WindowWidth <= 0 || l.WindowHeight <= 0 {
		return fmt.Errorf("launch config: window size %dx%d must be positive", l.WindowWidth, l.WindowHeight)
	}
	return nil
}
