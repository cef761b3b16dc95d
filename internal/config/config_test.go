package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Library != "archipelago" || cfg.LibraryTarget != "selaco_archipelago" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.WindowBytes != 2000 {
		t.Fatalf("window = %d", cfg.WindowBytes)
	}
	if len(cfg.Executables) == 0 || cfg.Executables[0] != "selaco" {
		t.Fatalf("executables = %v", cfg.Executables)
	}
	if len(cfg.Sources) != 6 {
		t.Fatalf("sources = %v", cfg.Sources)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Library != Default().Library {
		t.Fatalf("empty path must return defaults, got %+v", cfg)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ap.yaml")
	yaml := "library: multiworld\nwindow_bytes: 500\nkeywords: [doom]\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Library != "multiworld" || cfg.WindowBytes != 500 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.Keywords) != 1 || cfg.Keywords[0] != "doom" {
		t.Fatalf("keywords = %v", cfg.Keywords)
	}
	// Untouched fields keep their defaults.
	if cfg.LibraryTarget != "selaco_archipelago" || cfg.WebsocketsTag != "v4.3.3" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("library: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}
