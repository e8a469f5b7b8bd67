// Package config loads server configuration.
//
// Precedence, lowest to highest: built-in defaults, the eamcp.toml config
// file, environment variables. The only setting the server truly needs is
// the EA project file path.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	env "github.com/caarlos0/env/v11"
)

// FileName is the config file looked up in the working directory when no
// explicit path is given.
const FileName = "eamcp.toml"

// Config holds the server configuration.
type Config struct {
	// ProjectFile is the path to the EA project file (.qea). The file is
	// EA's native SQLite format.
	ProjectFile string `toml:"project_file" env:"EA_PROJECT_FILE"`

	// CreateIfMissing bootstraps a fresh project file (with a root Model
	// package) when ProjectFile does not exist.
	CreateIfMissing bool `toml:"create_if_missing" env:"EA_CREATE_IF_MISSING"`
}

// Default returns the built-in configuration: a project file under the
// user's home directory, created on first use.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		ProjectFile:     filepath.Join(home, ".eamcp", "model.qea"),
		CreateIfMissing: true,
	}
}

// Load builds the effective configuration. path names an explicit config
// file; when empty, eamcp.toml in the working directory is used if it
// exists. A named file that is missing is an error; a defaulted one is
// not.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = FileName
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
		if explicit {
			return Config{}, fmt.Errorf("config: %s does not exist", path)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: environment: %w", err)
	}

	if cfg.ProjectFile == "" {
		return Config{}, fmt.Errorf("config: project_file must not be empty")
	}

	return cfg, nil
}
