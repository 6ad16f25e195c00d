package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/pathviz/internal/grid"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Algorithm != "bfs" {
		t.Errorf("expected algorithm bfs, got %s", cfg.Algorithm)
	}
	if cfg.SpeedMs != 10 {
		t.Errorf("expected speed 10, got %d", cfg.SpeedMs)
	}
	if cfg.Width != 50 || cfg.Height != 20 {
		t.Errorf("expected 50x20 grid, got %dx%d", cfg.Width, cfg.Height)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathviz.yaml")

	cfg := DefaultConfig()
	cfg.Algorithm = "astar"
	cfg.SpeedMs = 25
	cfg.Timeout = 5 * time.Second
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Algorithm != "astar" {
		t.Errorf("expected astar, got %s", loaded.Algorithm)
	}
	if loaded.SpeedMs != 25 {
		t.Errorf("expected speed 25, got %d", loaded.SpeedMs)
	}
	if loaded.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %s", loaded.Timeout)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("algorithm: dfs\ntimeout: 2s\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Algorithm != "dfs" {
		t.Errorf("expected dfs, got %s", cfg.Algorithm)
	}
	if cfg.Timeout != 2*time.Second {
		t.Errorf("expected 2s, got %s", cfg.Timeout)
	}
	if cfg.SpeedMs != DefaultSpeed {
		t.Errorf("expected default speed, got %d", cfg.SpeedMs)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown algorithm", func(c *Config) { c.Algorithm = "greedy" }},
		{"speed too low", func(c *Config) { c.SpeedMs = 0 }},
		{"speed too high", func(c *Config) { c.SpeedMs = 105 }},
		{"speed off step", func(c *Config) { c.SpeedMs = 12 }},
		{"path factor", func(c *Config) { c.PathFactor = 0 }},
		{"same endpoints", func(c *Config) { c.Finish = c.Start }},
		{"finish outside", func(c *Config) { c.Finish = grid.Coord{Row: 20, Col: 0} }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestClampSpeed(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 5}, {5, 5}, {12, 10}, {100, 100}, {250, 100},
	}
	for _, tt := range tests {
		if got := ClampSpeed(tt.in); got != tt.want {
			t.Errorf("ClampSpeed(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("fast")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.SpeedMs != 5 {
		t.Errorf("expected speed 5, got %d", cfg.SpeedMs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyOverrides([]string{
		"speed_ms=20",
		"algorithm=dijkstra",
		"timeout=3s",
		"start.row=4",
	})
	if err != nil {
		t.Fatalf("overrides failed: %v", err)
	}
	if cfg.SpeedMs != 20 {
		t.Errorf("expected speed 20, got %d", cfg.SpeedMs)
	}
	if cfg.Algorithm != "dijkstra" {
		t.Errorf("expected dijkstra, got %s", cfg.Algorithm)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("expected 3s, got %s", cfg.Timeout)
	}
	if cfg.Start != (grid.Coord{Row: 4, Col: grid.DefaultStartCol}) {
		t.Errorf("expected start (4,15), got %s", cfg.Start)
	}
}

func TestApplyOverrides_Errors(t *testing.T) {
	for _, pairs := range [][]string{{"speed_ms"}, {"=3"}, {"nope=1"}, {"speed_ms=fast"}} {
		if err := DefaultConfig().ApplyOverrides(pairs); err == nil {
			t.Errorf("expected error for %v", pairs)
		}
	}
}
