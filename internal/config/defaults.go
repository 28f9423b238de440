package config

import (
	_ "embed"
)

//go:embed defaults/chromatap.yaml
var defaultYAML []byte

// DefaultGameConfig returns the hardcoded default configuration, used when
// the embedded YAML cannot be parsed.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Timing: TimingConfig{
			BaseDurationMs:    1000,
			MinDurationMs:     250,
			SyncedLevelStep:   0.05,
			SyncedFloor:       0.75,
			FallbackLevelStep: 0.1,
			FallbackFloor:     0.35,
		},
		Palette: PaletteConfig{
			BaseColors:   4,
			HitsPerLevel: 5,
		},
		Countdown: CountdownConfig{
			StepHoldMs: 1000,
			GoHoldMs:   400,
		},
		Tempo: TempoConfig{
			FrameSize:   1024,
			MinBPM:      60,
			MaxBPM:      200,
			Sensitivity: 1.5,
			MinOnsets:   8,
			TimeoutMs:   3000,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
