package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.MaxWindowSize != 50 {
		t.Errorf("MaxWindowSize = %d, want 50", cfg.MaxWindowSize)
	}
	if cfg.EdgeOffset != 4 {
		t.Errorf("EdgeOffset = %d, want 4", cfg.EdgeOffset)
	}
	if !cfg.WatchDocument {
		t.Error("WatchDocument should default to true")
	}
}

func TestValidateClampsValues(t *testing.T) {
	cfg := Config{MaxWindowSize: 1, EdgeOffset: -3}
	cfg.Validate()

	if cfg.MaxWindowSize != DefaultMaxWindowSize {
		t.Errorf("MaxWindowSize = %d, want %d", cfg.MaxWindowSize, DefaultMaxWindowSize)
	}
	if cfg.EdgeOffset != DefaultEdgeOffset {
		t.Errorf("EdgeOffset = %d, want %d", cfg.EdgeOffset, DefaultEdgeOffset)
	}
}

func TestValidateOversizedEdgeOffset(t *testing.T) {
	cfg := Config{MaxWindowSize: 10, EdgeOffset: 8}
	cfg.Validate()

	if cfg.EdgeOffset != 2 {
		t.Errorf("EdgeOffset = %d, want 2 (quarter window)", cfg.EdgeOffset)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MaxWindowSize != DefaultMaxWindowSize {
		t.Errorf("MaxWindowSize = %d, want default", cfg.MaxWindowSize)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockwin.toml")
	content := []byte("max_window_size = 80\nedge_offset = 6\ndocument = \"doc.yaml\"\nwatch_document = false\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.MaxWindowSize != 80 {
		t.Errorf("MaxWindowSize = %d, want 80", cfg.MaxWindowSize)
	}
	if cfg.EdgeOffset != 6 {
		t.Errorf("EdgeOffset = %d, want 6", cfg.EdgeOffset)
	}
	if cfg.Document != "doc.yaml" {
		t.Errorf("Document = %q, want doc.yaml", cfg.Document)
	}
	if cfg.WatchDocument {
		t.Error("WatchDocument = true, want false")
	}
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("max_window_size = {"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("err = %T, want *ParseError", err)
	}
}

func TestLoadEnvOverlay(t *testing.T) {
	t.Setenv(EnvMaxWindowSize, "120")
	t.Setenv(EnvEdgeOffset, "9")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.MaxWindowSize != 120 {
		t.Errorf("MaxWindowSize = %d, want 120 from env", cfg.MaxWindowSize)
	}
	if cfg.EdgeOffset != 9 {
		t.Errorf("EdgeOffset = %d, want 9 from env", cfg.EdgeOffset)
	}
}

func TestLoadEnvInvalidIgnored(t *testing.T) {
	t.Setenv(EnvMaxWindowSize, "lots")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MaxWindowSize != DefaultMaxWindowSize {
		t.Errorf("MaxWindowSize = %d, want default", cfg.MaxWindowSize)
	}
}
