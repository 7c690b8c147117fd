package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Environment variable names overlaying the file configuration.
const (
	EnvMaxWindowSize = "BLOCKWIN_MAX_WINDOW_SIZE"
	EnvEdgeOffset    = "BLOCKWIN_EDGE_OFFSET"
)

// Load reads configuration from a TOML file, overlays environment
// variables and validates the result. An empty path or a missing file
// yields the defaults (not an error).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("reading config file %s: %w", path, err)
			}
		} else if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	}

	applyEnv(&cfg)
	cfg.Validate()
	return cfg, nil
}

// applyEnv overlays recognized environment variables. Unparseable
// values are ignored.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvMaxWindowSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxWindowSize = n
		}
	}
	if v := os.Getenv(EnvEdgeOffset); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.EdgeOffset = n
		}
	}
}
