package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithNoConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ImpactDepth != 3 {
		t.Fatalf("expected default impact depth 3, got %d", cfg.ImpactDepth)
	}
	if cfg.Debounce != 2 {
		t.Fatalf("expected default debounce 2, got %d", cfg.Debounce)
	}
}

func TestLoadReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	content := "impact_depth: 5\nignore:\n  - \"*.generated.go\"\n"
	if err := os.WriteFile(filepath.Join(dir, ".codegraph.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ImpactDepth != 5 {
		t.Fatalf("expected impact depth 5 from file, got %d", cfg.ImpactDepth)
	}
	if len(cfg.Ignore) != 1 || cfg.Ignore[0] != "*.generated.go" {
		t.Fatalf("expected ignore pattern from file, got %+v", cfg.Ignore)
	}
}

func TestLoadEnvOverridesDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CODEGRAPH_IMPACT_DEPTH", "7")
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ImpactDepth != 7 {
		t.Fatalf("expected env override to set impact depth 7, got %d", cfg.ImpactDepth)
	}
}
