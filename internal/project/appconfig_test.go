package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/AtlasPack/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultMode = model.ModeDynamic
	cfg.DefaultMaxBinDimension = 2048
	cfg.DefaultPadding = 0
	cfg.ReportTitle = "UI Atlas"
	cfg.RecentProjects = []string{"/tmp/ui.atlas.json", "/tmp/fx.atlas.json"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultMode != model.ModeDynamic {
		t.Errorf("expected DefaultMode=dynamic, got %s", loaded.DefaultMode)
	}
	if loaded.DefaultMaxBinDimension != 2048 {
		t.Errorf("expected DefaultMaxBinDimension=2048, got %d", loaded.DefaultMaxBinDimension)
	}
	if loaded.DefaultPadding != 0 {
		t.Errorf("expected DefaultPadding=0, got %d", loaded.DefaultPadding)
	}
	if loaded.ReportTitle != "UI Atlas" {
		t.Errorf("expected ReportTitle='UI Atlas', got %s", loaded.ReportTitle)
	}
	if len(loaded.RecentProjects) != 2 {
		t.Errorf("expected 2 recent projects, got %d", len(loaded.RecentProjects))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultMaxBinDimension != defaults.DefaultMaxBinDimension {
		t.Errorf("expected default max bin dimension %d, got %d", defaults.DefaultMaxBinDimension, cfg.DefaultMaxBinDimension)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
}

func TestLoadAppConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"default_padding": 4}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.DefaultPadding != 4 {
		t.Errorf("expected DefaultPadding=4, got %d", cfg.DefaultPadding)
	}
	if cfg.DefaultMaxBinDimension != 1024 {
		t.Errorf("expected missing field to keep default 1024, got %d", cfg.DefaultMaxBinDimension)
	}
	if cfg.ReportTitle != "AtlasPack" {
		t.Errorf("expected default report title, got %q", cfg.ReportTitle)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("expected filename config.json, got %s", filepath.Base(path))
	}
	if dir := filepath.Base(filepath.Dir(path)); dir != ".atlaspack" {
		t.Errorf("expected parent dir .atlaspack, got %s", dir)
	}
}
