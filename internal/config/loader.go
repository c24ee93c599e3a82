package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > Defaults and env-default tags.
//
// The file is path when non-empty, else NOOKCLASS_CONFIG, else
// $XDG_CONFIG_HOME/nookclass/config.yaml. A missing file is only an error
// when it was named explicitly.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	explicitPath := path != ""
	if !explicitPath {
		path = os.Getenv("NOOKCLASS_CONFIG")
		explicitPath = path != ""
	}
	if !explicitPath {
		path = DefaultConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/nookclass/config.yaml,
// falling back to ~/.config.
func DefaultConfigPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "nookclass", "config.yaml")
}

// DefaultLogPath returns $XDG_STATE_HOME/nookclass/nookclass.log,
// falling back to ~/.local/state.
func DefaultLogPath() string {
	return filepath.Join(xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state")), "nookclass", "nookclass.log")
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), fallback)
	}
	return filepath.Join(home, fallback)
}
