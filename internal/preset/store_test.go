package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rangetimer/internal/core/model"
	"rangetimer/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.MemoryStore) {
	t.Helper()
	kv := storage.NewMemoryStore()
	return NewStore(kv), kv
}

func customPreset(name string) model.TimerPreset {
	return model.TimerPreset{
		Name: name,
		Configuration: model.TimerConfiguration{
			StageOneDurationSeconds: 45,
			StageTwoDurationSeconds: 20,
		},
	}
}

func TestGetAllPresetsReturnsBuiltins(t *testing.T) {
	store, _ := newTestStore(t)

	presets := store.GetAllPresets()
	require.Len(t, presets, 3)
	for _, preset := range presets {
		assert.True(t, preset.IsDefault)
	}
}

func TestSavePresetRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.SavePreset(customPreset("Rapid Fire"), false))

	presets := store.GetAllPresets()
	require.Len(t, presets, 4)

	saved := presets[3]
	assert.Equal(t, "Rapid Fire", saved.Name)
	assert.Equal(t, 45, saved.Configuration.StageOneDurationSeconds)
	assert.Equal(t, 20, saved.Configuration.StageTwoDurationSeconds)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.IsDefault)
}

func TestSavePresetRejectsInvalid(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.SavePreset(model.TimerPreset{Name: "  "}, false)
	assert.ErrorIs(t, err, ErrInvalidPreset)
	assert.Empty(t, store.GetCustomPresets())
}

func TestSavePresetUpsertsByID(t *testing.T) {
	store, _ := newTestStore(t)

	original := customPreset("Drill A")
	original.ID = "custom-1"
	require.NoError(t, store.SavePreset(original, false))

	edited := original
	edited.Name = "Drill B"
	edited.Configuration.StageTwoDurationSeconds = 25
	require.NoError(t, store.SavePreset(edited, true))

	customs := store.GetCustomPresets()
	require.Len(t, customs, 1)
	assert.Equal(t, "Drill B", customs[0].Name)
	assert.Equal(t, 25, customs[0].Configuration.StageTwoDurationSeconds)
}

func TestEditedBuiltinShadowsOriginal(t *testing.T) {
	store, _ := newTestStore(t)

	edited := customPreset("My Competition")
	edited.ID = model.PresetIDCompetition
	edited.IsDefault = true
	require.NoError(t, store.SavePreset(edited, true))

	presets := store.GetAllPresets()
	require.Len(t, presets, 3)

	var shadowing *model.TimerPreset
	for index, preset := range presets {
		if preset.ID == model.PresetIDCompetition {
			require.Nil(t, shadowing, "built-in id must appear exactly once")
			shadowing = &presets[index]
		}
	}
	require.NotNil(t, shadowing)
	assert.Equal(t, "My Competition", shadowing.Name)
	assert.False(t, shadowing.IsDefault)
}

func TestDeleteCustomPreset(t *testing.T) {
	store, _ := newTestStore(t)

	preset := customPreset("Short Drill")
	preset.ID = "custom-1"
	require.NoError(t, store.SavePreset(preset, false))
	require.NoError(t, store.DeletePreset("custom-1"))

	assert.Empty(t, store.GetCustomPresets())
	assert.Len(t, store.GetAllPresets(), 3)
}

func TestDeleteBuiltinPresetSoftDeletes(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.DeletePreset(model.PresetIDQuick))

	presets := store.GetAllPresets()
	require.Len(t, presets, 2)
	for _, preset := range presets {
		assert.NotEqual(t, model.PresetIDQuick, preset.ID)
	}
}

func TestDeleteClearsCurrentPointer(t *testing.T) {
	store, _ := newTestStore(t)

	preset := customPreset("Selected")
	preset.ID = "custom-1"
	require.NoError(t, store.SavePreset(preset, false))
	require.NoError(t, store.SetCurrentPreset(&preset))

	_, ok := store.GetCurrentPresetID()
	require.True(t, ok)

	require.NoError(t, store.DeletePreset("custom-1"))
	_, ok = store.GetCurrentPresetID()
	assert.False(t, ok)
}

func TestCurrentPresetResolution(t *testing.T) {
	store, _ := newTestStore(t)

	builtin := model.BuiltinPresets()[1]
	require.NoError(t, store.SetCurrentPreset(&builtin))

	current, ok := store.GetCurrentPreset()
	require.True(t, ok)
	assert.Equal(t, builtin.ID, current.ID)

	require.NoError(t, store.SetCurrentPreset(nil))
	_, ok = store.GetCurrentPreset()
	assert.False(t, ok)
}

func TestCurrentPresetUnresolvedAfterSoftDelete(t *testing.T) {
	store, _ := newTestStore(t)

	builtin := model.BuiltinPresets()[0]
	require.NoError(t, store.SetCurrentPreset(&builtin))
	require.NoError(t, store.DeletePreset(builtin.ID))

	_, ok := store.GetCurrentPreset()
	assert.False(t, ok)
}

func TestGetCustomPresetsAbsorbsMalformedJSON(t *testing.T) {
	store, kv := newTestStore(t)

	require.NoError(t, kv.SetString(keyCustomPresets, "{definitely not json"))
	assert.Empty(t, store.GetCustomPresets())
	assert.Len(t, store.GetAllPresets(), 3)
}

func TestGetCustomPresetsDropsInvalidEntries(t *testing.T) {
	store, kv := newTestStore(t)

	raw := `[
		{"id":"good","name":"Good","stageOneDuration":30,"stageTwoDuration":15,"isDefault":false},
		{"id":"bad","name":"","stageOneDuration":30,"stageTwoDuration":15,"isDefault":false},
		{"id":"worse","name":"Worse","stageOneDuration":0,"stageTwoDuration":15,"isDefault":false}
	]`
	require.NoError(t, kv.SetString(keyCustomPresets, raw))

	customs := store.GetCustomPresets()
	require.Len(t, customs, 1)
	assert.Equal(t, "good", customs[0].ID)
}

func TestPresetNameExists(t *testing.T) {
	store, _ := newTestStore(t)

	preset := customPreset("Night Drill")
	preset.ID = "custom-1"
	require.NoError(t, store.SavePreset(preset, false))

	assert.True(t, store.PresetNameExists("night drill", ""))
	assert.True(t, store.PresetNameExists("  NIGHT DRILL  ", ""))
	assert.False(t, store.PresetNameExists("night drill", "custom-1"))
	assert.True(t, store.PresetNameExists("competition", ""))
	assert.False(t, store.PresetNameExists("unheard of", ""))
}

func TestLastConfigurationDefaults(t *testing.T) {
	store, _ := newTestStore(t)

	config := store.LastConfiguration()
	assert.Equal(t, 300, config.StageOneDurationSeconds)
	assert.Equal(t, 180, config.StageTwoDurationSeconds)

	saved := model.TimerConfiguration{StageOneDurationSeconds: 90, StageTwoDurationSeconds: 45}
	require.NoError(t, store.SaveConfiguration(saved))
	assert.Equal(t, saved, store.LastConfiguration())
}
