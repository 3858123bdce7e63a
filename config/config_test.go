package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.LeafMaxSize <= 0 || cfg.InternalMaxSize <= 0 {
		t.Errorf("Default() = %+v, want positive max sizes", cfg)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := "tree_name: custom\nleaf_max_size: 16\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TreeName != "custom" {
		t.Errorf("TreeName = %q, want %q", cfg.TreeName, "custom")
	}
	if cfg.LeafMaxSize != 16 {
		t.Errorf("LeafMaxSize = %d, want 16", cfg.LeafMaxSize)
	}
	if cfg.InternalMaxSize != Default().InternalMaxSize {
		t.Errorf("InternalMaxSize = %d, want default %d", cfg.InternalMaxSize, Default().InternalMaxSize)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file error = nil, want error")
	}
}
