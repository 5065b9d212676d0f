package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matsen/bibval/internal/matcher"
)

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("missing config file should not be an error, got %v", err)
	}
	if cfg.Mailto != "" || cfg.TimeoutSeconds != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadAndSave(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{Mailto: "you@example.org", TimeoutSeconds: 45}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Mailto != "you@example.org" || loaded.TimeoutSeconds != 45 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestLoadThresholdOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	yml := `mailto: you@example.org
thresholds:
  title_match: 0.95
  max_year_difference: 1
`
	path := filepath.Join(dir, ConfigDir, ConfigFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got := cfg.MatcherThresholds()
	defaults := matcher.DefaultThresholds()

	if got.TitleMatch != 0.95 {
		t.Errorf("TitleMatch = %f, want override 0.95", got.TitleMatch)
	}
	if got.MaxYearDifference != 1 {
		t.Errorf("MaxYearDifference = %d, want override 1", got.MaxYearDifference)
	}
	if got.TitleWarning != defaults.TitleWarning {
		t.Errorf("TitleWarning = %f, want default %f", got.TitleWarning, defaults.TitleWarning)
	}
	if got.AuthorMatch != defaults.AuthorMatch {
		t.Errorf("AuthorMatch = %f, want default %f", got.AuthorMatch, defaults.AuthorMatch)
	}
}

func TestMatcherThresholdsWithoutOverrides(t *testing.T) {
	cfg := &Config{}
	if cfg.MatcherThresholds() != matcher.DefaultThresholds() {
		t.Error("no overrides should yield the defaults")
	}
}
