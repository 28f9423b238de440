package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ApplyPreset modifies the config based on a difficulty preset.
// "fixed" disables per-level speed-up entirely; the other presets scale the
// base cadence.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Timing.BaseDurationMs = 1300
		cfg.Timing.FallbackLevelStep = 0.07
	case DifficultyHard:
		cfg.Timing.BaseDurationMs = 800
		cfg.Timing.FallbackLevelStep = 0.12
		cfg.Timing.SyncedLevelStep = 0.07
	case DifficultyFixed:
		cfg.Timing.SyncedLevelStep = 0
		cfg.Timing.FallbackLevelStep = 0
	}
}
