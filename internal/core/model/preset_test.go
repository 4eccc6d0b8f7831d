package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinPresetsCatalog(t *testing.T) {
	presets := BuiltinPresets()
	require.Len(t, presets, 3)

	ids := make(map[string]bool)
	for _, preset := range presets {
		ids[preset.ID] = true
		assert.True(t, preset.IsDefault)
		assert.True(t, preset.IsValid())
	}
	assert.True(t, ids[PresetIDCompetition])
	assert.True(t, ids[PresetIDPractice])
	assert.True(t, ids[PresetIDQuick])
}

func TestBuiltinPresetsAreRegenerated(t *testing.T) {
	first := BuiltinPresets()
	first[0].Name = "mangled"
	first[0].Configuration.StageOneDurationSeconds = -1

	second := BuiltinPresets()
	assert.Equal(t, "Competition", second[0].Name)
	assert.Equal(t, 300, second[0].Configuration.StageOneDurationSeconds)
}

func TestPresetIsValid(t *testing.T) {
	valid := TimerConfiguration{StageOneDurationSeconds: 60, StageTwoDurationSeconds: 30}

	tests := []struct {
		name   string
		preset TimerPreset
		valid  bool
	}{
		{"valid", TimerPreset{ID: "p1", Name: "Drill", Configuration: valid}, true},
		{"blank name", TimerPreset{ID: "p1", Name: "   ", Configuration: valid}, false},
		{"empty name", TimerPreset{ID: "p1", Configuration: valid}, false},
		{"invalid config", TimerPreset{ID: "p1", Name: "Drill", Configuration: TimerConfiguration{}}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.valid, test.preset.IsValid())
		})
	}
}
