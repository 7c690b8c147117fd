// Package config holds the windowing configuration and its TOML/env
// loading.
package config

// Defaults for the rendering window.
const (
	// DefaultMaxWindowSize is the default bounded window size.
	DefaultMaxWindowSize = 50

	// DefaultEdgeOffset is the default boundary buffer in blocks.
	DefaultEdgeOffset = 4
)

// Config is the engine configuration.
type Config struct {
	// MaxWindowSize bounds the number of blocks materialized at once.
	MaxWindowSize int `toml:"max_window_size"`

	// EdgeOffset is the distance (in blocks) between the literal
	// window edge and the observed boundary block.
	EdgeOffset int `toml:"edge_offset"`

	// Document is the block document the host opens on start.
	Document string `toml:"document"`

	// Plugins are Lua files run at startup to register templates.
	Plugins []string `toml:"plugins"`

	// WatchDocument reloads the document when the file changes.
	WatchDocument bool `toml:"watch_document"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		MaxWindowSize: DefaultMaxWindowSize,
		EdgeOffset:    DefaultEdgeOffset,
		WatchDocument: true,
	}
}

// Validate normalizes out-of-range values instead of failing: a window
// too small to center a focus is clamped, a negative offset zeroed, and
// an offset that would consume the whole window halved down.
func (c *Config) Validate() {
	if c.MaxWindowSize < 2 {
		c.MaxWindowSize = DefaultMaxWindowSize
	}
	if c.EdgeOffset < 0 {
		c.EdgeOffset = DefaultEdgeOffset
	}
	if c.EdgeOffset >= c.MaxWindowSize/2 {
		c.EdgeOffset = c.MaxWindowSize / 4
	}
}
