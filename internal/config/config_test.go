package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDefaultYAMLParsesAndValidates(t *testing.T) {
	var cfg GameConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded default YAML does not parse: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("embedded default YAML does not validate: %v", err)
	}
	if cfg != DefaultGameConfig() {
		t.Errorf("embedded YAML diverged from hardcoded defaults:\n%+v\nvs\n%+v", cfg, DefaultGameConfig())
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	// No custom path, no user config file expected in a test environment.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config invalid: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")

	custom := DefaultGameConfig()
	custom.Timing.BaseDurationMs = 1500
	custom.Palette.BaseColors = 3

	data, err := yaml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) failed: %v", path, err)
	}
	if cfg.Timing.BaseDurationMs != 1500 {
		t.Errorf("Expected base_duration_ms 1500, got %d", cfg.Timing.BaseDurationMs)
	}
	if cfg.Palette.BaseColors != 3 {
		t.Errorf("Expected base_colors 3, got %d", cfg.Palette.BaseColors)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing custom config")
	}

	// An invalid custom config must fail loudly instead of falling back
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	bad := DefaultGameConfig()
	bad.Timing.MinDurationMs = 0
	data, _ := yaml.Marshal(bad)
	os.WriteFile(path, data, 0o644)

	if _, err := Load(path); err == nil {
		t.Error("Expected validation error for invalid custom config")
	}
}

func TestValidate(t *testing.T) {
	mutations := map[string]func(*GameConfig){
		"zero min duration":   func(c *GameConfig) { c.Timing.MinDurationMs = 0 },
		"zero base duration":  func(c *GameConfig) { c.Timing.BaseDurationMs = 0 },
		"zero base colors":    func(c *GameConfig) { c.Palette.BaseColors = 0 },
		"too many colors":     func(c *GameConfig) { c.Palette.BaseColors = 99 },
		"zero hits per level": func(c *GameConfig) { c.Palette.HitsPerLevel = 0 },
		"zero countdown hold": func(c *GameConfig) { c.Countdown.StepHoldMs = 0 },
		"inverted bpm range":  func(c *GameConfig) { c.Tempo.MaxBPM = c.Tempo.MinBPM },
	}

	for name, mutate := range mutations {
		cfg := DefaultGameConfig()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}

	if err := DefaultGameConfig().Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConverters(t *testing.T) {
	cfg := DefaultGameConfig()

	p := cfg.DifficultyParams()
	if p.BaseDuration != time.Second {
		t.Errorf("Expected 1s base duration, got %v", p.BaseDuration)
	}
	if p.MinDuration != 250*time.Millisecond {
		t.Errorf("Expected 250ms min duration, got %v", p.MinDuration)
	}
	if p.BaseColors != 4 || p.HitsPerLevel != 5 {
		t.Errorf("Unexpected palette params: %+v", p)
	}

	cd := cfg.CountdownParams()
	if cd.StepHold != time.Second || cd.GoHold != 400*time.Millisecond {
		t.Errorf("Unexpected countdown params: %+v", cd)
	}

	tp := cfg.TempoParams()
	if tp.MinBPM != 60 || tp.MaxBPM != 200 {
		t.Errorf("Unexpected tempo range: %+v", tp)
	}

	if cfg.TempoTimeout() != 3*time.Second {
		t.Errorf("Expected 3s tempo timeout, got %v", cfg.TempoTimeout())
	}
}

func TestApplyPreset(t *testing.T) {
	easy := DefaultGameConfig()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Timing.BaseDurationMs <= DefaultGameConfig().Timing.BaseDurationMs {
		t.Error("easy preset should slow the base cadence")
	}

	hard := DefaultGameConfig()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Timing.BaseDurationMs >= DefaultGameConfig().Timing.BaseDurationMs {
		t.Error("hard preset should speed up the base cadence")
	}

	fixed := DefaultGameConfig()
	ApplyPreset(&fixed, DifficultyFixed)
	if fixed.Timing.SyncedLevelStep != 0 || fixed.Timing.FallbackLevelStep != 0 {
		t.Error("fixed preset should disable speed-up")
	}

	normal := DefaultGameConfig()
	ApplyPreset(&normal, DifficultyNormal)
	if normal != DefaultGameConfig() {
		t.Error("normal preset should leave defaults untouched")
	}

	for _, cfg := range []GameConfig{easy, hard, fixed, normal} {
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset produced invalid config: %v", err)
		}
	}
}
