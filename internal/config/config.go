// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

import (
	"fmt"
	"time"

	"github.com/ksamsonov/chromatap/internal/core"
	"github.com/ksamsonov/chromatap/internal/countdown"
	"github.com/ksamsonov/chromatap/internal/difficulty"
	"github.com/ksamsonov/chromatap/internal/tempo"
)

// GameConfig contains all tunable parameters of the game.
type GameConfig struct {
	Timing    TimingConfig    `yaml:"timing"`
	Palette   PaletteConfig   `yaml:"palette"`
	Countdown CountdownConfig `yaml:"countdown"`
	Tempo     TempoConfig     `yaml:"tempo"`
}

// TimingConfig defines the beat duration derivation.
type TimingConfig struct {
	BaseDurationMs    int     `yaml:"base_duration_ms"`
	MinDurationMs     int     `yaml:"min_duration_ms"`
	SyncedLevelStep   float64 `yaml:"synced_level_step"`
	SyncedFloor       float64 `yaml:"synced_floor"`
	FallbackLevelStep float64 `yaml:"fallback_level_step"`
	FallbackFloor     float64 `yaml:"fallback_floor"`
}

// PaletteConfig defines palette growth.
type PaletteConfig struct {
	BaseColors   int `yaml:"base_colors"`
	HitsPerLevel int `yaml:"hits_per_level"`
}

// CountdownConfig defines the pre-game countdown pacing.
type CountdownConfig struct {
	StepHoldMs int `yaml:"step_hold_ms"`
	GoHoldMs   int `yaml:"go_hold_ms"`
}

// TempoConfig defines the tempo estimator tuning and the start timeout.
type TempoConfig struct {
	FrameSize   int     `yaml:"frame_size"`
	MinBPM      float64 `yaml:"min_bpm"`
	MaxBPM      float64 `yaml:"max_bpm"`
	Sensitivity float64 `yaml:"sensitivity"`
	MinOnsets   int     `yaml:"min_onsets"`
	TimeoutMs   int     `yaml:"timeout_ms"`
}

// Validate checks the invariants a playable config must satisfy.
func (c GameConfig) Validate() error {
	if c.Timing.MinDurationMs <= 0 {
		return fmt.Errorf("config: min_duration_ms must be positive, got %d", c.Timing.MinDurationMs)
	}
	if c.Timing.BaseDurationMs <= 0 {
		return fmt.Errorf("config: base_duration_ms must be positive, got %d", c.Timing.BaseDurationMs)
	}
	if c.Palette.BaseColors < 1 || c.Palette.BaseColors > core.TotalColors {
		return fmt.Errorf("config: base_colors must be in [1, %d], got %d", core.TotalColors, c.Palette.BaseColors)
	}
	if c.Palette.HitsPerLevel < 1 {
		return fmt.Errorf("config: hits_per_level must be positive, got %d", c.Palette.HitsPerLevel)
	}
	if c.Countdown.StepHoldMs <= 0 || c.Countdown.GoHoldMs <= 0 {
		return fmt.Errorf("config: countdown holds must be positive")
	}
	if c.Tempo.MinBPM <= 0 || c.Tempo.MaxBPM <= c.Tempo.MinBPM {
		return fmt.Errorf("config: tempo range [%v, %v] is invalid", c.Tempo.MinBPM, c.Tempo.MaxBPM)
	}
	return nil
}

// DifficultyParams converts the config to difficulty tuning.
func (c GameConfig) DifficultyParams() difficulty.Params {
	return difficulty.Params{
		BaseColors:        c.Palette.BaseColors,
		MaxColors:         core.TotalColors,
		HitsPerLevel:      c.Palette.HitsPerLevel,
		BaseDuration:      time.Duration(c.Timing.BaseDurationMs) * time.Millisecond,
		MinDuration:       time.Duration(c.Timing.MinDurationMs) * time.Millisecond,
		SyncedLevelStep:   c.Timing.SyncedLevelStep,
		SyncedFloor:       c.Timing.SyncedFloor,
		FallbackLevelStep: c.Timing.FallbackLevelStep,
		FallbackFloor:     c.Timing.FallbackFloor,
	}
}

// CountdownConfig converts the config to sequencer pacing.
func (c GameConfig) CountdownParams() countdown.Config {
	return countdown.Config{
		StepHold: time.Duration(c.Countdown.StepHoldMs) * time.Millisecond,
		GoHold:   time.Duration(c.Countdown.GoHoldMs) * time.Millisecond,
	}
}

// TempoParams converts the config to estimator tuning.
func (c GameConfig) TempoParams() tempo.Config {
	return tempo.Config{
		FrameSize:   c.Tempo.FrameSize,
		MinBPM:      c.Tempo.MinBPM,
		MaxBPM:      c.Tempo.MaxBPM,
		Sensitivity: c.Tempo.Sensitivity,
		MinOnsets:   c.Tempo.MinOnsets,
	}
}

// TempoTimeout is how long game start waits for a tempo estimate before
// falling back to the fixed cadence.
func (c GameConfig) TempoTimeout() time.Duration {
	return time.Duration(c.Tempo.TimeoutMs) * time.Millisecond
}
