package model

import "strings"

// Built-in preset ids. These are stable: a custom preset saved under one of
// these ids shadows the generated built-in in listings.
const (
	PresetIDCompetition = "default_competition"
	PresetIDPractice    = "default_practice"
	PresetIDQuick       = "default_quick"
)

// TimerPreset is a named timer configuration.
type TimerPreset struct {
	ID            string
	Name          string
	Configuration TimerConfiguration
	IsDefault     bool
}

// IsValid reports whether the preset can be stored and used.
func (preset TimerPreset) IsValid() bool {
	return strings.TrimSpace(preset.Name) != "" && preset.Configuration.IsValid()
}

// BuiltinPresets returns the built-in preset catalog. The catalog is
// regenerated on every call and never persisted; deletions and edits of
// built-ins are overlays applied by the preset store.
func BuiltinPresets() []TimerPreset {
	return []TimerPreset{
		{
			ID:   PresetIDCompetition,
			Name: "Competition",
			Configuration: TimerConfiguration{
				StageOneDurationSeconds: 300,
				StageTwoDurationSeconds: 180,
			},
			IsDefault: true,
		},
		{
			ID:   PresetIDPractice,
			Name: "Practice",
			Configuration: TimerConfiguration{
				StageOneDurationSeconds: 180,
				StageTwoDurationSeconds: 120,
			},
			IsDefault: true,
		},
		{
			ID:   PresetIDQuick,
			Name: "Quick Drill",
			Configuration: TimerConfiguration{
				StageOneDurationSeconds: 60,
				StageTwoDurationSeconds: 30,
			},
			IsDefault: true,
		},
	}
}
