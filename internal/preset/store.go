package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"rangetimer/internal/core/model"
	"rangetimer/internal/storage"
)

// ErrInvalidPreset indicates a preset failed validation and was not saved.
var ErrInvalidPreset = errors.New("invalid preset")

// Storage keys. Built-in presets are never stored; deletions of built-ins
// are a denylist overlay and edits of built-ins become shadowing custom
// presets under the same id.
const (
	keyCustomPresets   = "custom_presets"
	keyDeletedDefaults = "deleted_default_presets"
	keyCurrentPreset   = "current_preset_id"
	keyStageOne        = "stage_one_duration_seconds"
	keyStageTwo        = "stage_two_duration_seconds"
)

const (
	defaultStageOneSeconds = 300
	defaultStageTwoSeconds = 180
)

// storedPreset is the persisted JSON shape of a custom preset.
type storedPreset struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	StageOneDuration int    `json:"stageOneDuration"`
	StageTwoDuration int    `json:"stageTwoDuration"`
	IsDefault        bool   `json:"isDefault"`
}

// Store persists timer presets and the current-preset pointer in a flat
// key-value backend.
type Store struct {
	kv storage.KeyValue
}

// NewStore creates a preset store over the provided backend.
func NewStore(kv storage.KeyValue) *Store {
	return &Store{kv: kv}
}

// GetAllPresets returns the built-in catalog minus soft-deleted and shadowed
// entries, followed by all custom presets.
func (store *Store) GetAllPresets() []model.TimerPreset {
	deleted := store.deletedDefaultIDs()
	customs := store.GetCustomPresets()

	shadowed := make(map[string]bool, len(customs))
	for _, custom := range customs {
		shadowed[custom.ID] = true
	}

	var presets []model.TimerPreset
	for _, builtin := range model.BuiltinPresets() {
		if deleted[builtin.ID] || shadowed[builtin.ID] {
			continue
		}
		presets = append(presets, builtin)
	}
	return append(presets, customs...)
}

// GetCustomPresets returns the persisted custom presets. Malformed JSON
// reads as an empty list and entries failing validation are dropped.
func (store *Store) GetCustomPresets() []model.TimerPreset {
	raw, ok := store.kv.GetString(keyCustomPresets)
	if !ok || raw == "" {
		return nil
	}

	var stored []storedPreset
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil
	}

	var presets []model.TimerPreset
	for _, entry := range stored {
		preset := entry.toPreset()
		if preset.IsValid() {
			presets = append(presets, preset)
		}
	}
	return presets
}

// SavePreset upserts a preset into the custom list. Editing a preset whose
// id matches a built-in stores it as a non-default shadowing copy. A preset
// without an id is assigned a fresh one.
func (store *Store) SavePreset(preset model.TimerPreset, isEditing bool) error {
	if !preset.IsValid() {
		return ErrInvalidPreset
	}
	if preset.ID == "" {
		preset.ID = uuid.NewString()
	}
	if isEditing && isBuiltinID(preset.ID) {
		preset.IsDefault = false
	}

	customs := store.GetCustomPresets()
	replaced := false
	for index, existing := range customs {
		if existing.ID == preset.ID {
			customs[index] = preset
			replaced = true
			break
		}
	}
	if !replaced {
		customs = append(customs, preset)
	}
	return store.saveCustomPresets(customs)
}

// DeletePreset removes the preset with the given id. Built-in ids are
// soft-deleted via the denylist; custom presets are removed from the list.
// Either way a current-preset pointer at this id is cleared.
func (store *Store) DeletePreset(id string) error {
	if isBuiltinID(id) {
		deleted := store.deletedDefaultIDs()
		if !deleted[id] {
			ids := store.deletedDefaultList()
			ids = append(ids, id)
			if err := store.saveDeletedDefaults(ids); err != nil {
				return err
			}
		}
	} else {
		customs := store.GetCustomPresets()
		remaining := customs[:0]
		for _, custom := range customs {
			if custom.ID != id {
				remaining = append(remaining, custom)
			}
		}
		if err := store.saveCustomPresets(remaining); err != nil {
			return err
		}
	}

	if currentID, ok := store.GetCurrentPresetID(); ok && currentID == id {
		return store.kv.Delete(keyCurrentPreset)
	}
	return nil
}

// SetCurrentPreset records which preset is selected; nil clears the pointer.
func (store *Store) SetCurrentPreset(preset *model.TimerPreset) error {
	if preset == nil {
		return store.kv.Delete(keyCurrentPreset)
	}
	return store.kv.SetString(keyCurrentPreset, preset.ID)
}

// GetCurrentPresetID returns the persisted current-preset pointer.
func (store *Store) GetCurrentPresetID() (string, bool) {
	id, ok := store.kv.GetString(keyCurrentPreset)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// GetCurrentPreset resolves the current-preset pointer against the full
// listing. A pointer at a preset that no longer resolves reports absent.
func (store *Store) GetCurrentPreset() (model.TimerPreset, bool) {
	id, ok := store.GetCurrentPresetID()
	if !ok {
		return model.TimerPreset{}, false
	}
	for _, preset := range store.GetAllPresets() {
		if preset.ID == id {
			return preset, true
		}
	}
	return model.TimerPreset{}, false
}

// PresetNameExists reports whether any preset other than excludeID already
// uses the name, ignoring case and surrounding whitespace.
func (store *Store) PresetNameExists(name, excludeID string) bool {
	trimmed := strings.TrimSpace(name)
	for _, preset := range store.GetAllPresets() {
		if preset.ID == excludeID {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(preset.Name), trimmed) {
			return true
		}
	}
	return false
}

// LastConfiguration returns the most recently saved stage durations, or the
// factory defaults when nothing has been saved yet.
func (store *Store) LastConfiguration() model.TimerConfiguration {
	return model.TimerConfiguration{
		StageOneDurationSeconds: store.kv.GetInt(keyStageOne, defaultStageOneSeconds),
		StageTwoDurationSeconds: store.kv.GetInt(keyStageTwo, defaultStageTwoSeconds),
	}
}

// SaveConfiguration persists the stage durations for the next launch.
func (store *Store) SaveConfiguration(config model.TimerConfiguration) error {
	if err := store.kv.SetInt(keyStageOne, config.StageOneDurationSeconds); err != nil {
		return err
	}
	return store.kv.SetInt(keyStageTwo, config.StageTwoDurationSeconds)
}

func (store *Store) saveCustomPresets(presets []model.TimerPreset) error {
	stored := make([]storedPreset, 0, len(presets))
	for _, preset := range presets {
		stored = append(stored, toStored(preset))
	}
	serialized, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshal custom presets: %w", err)
	}
	return store.kv.SetString(keyCustomPresets, string(serialized))
}

func (store *Store) deletedDefaultList() []string {
	raw, ok := store.kv.GetString(keyDeletedDefaults)
	if !ok || raw == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	return ids
}

func (store *Store) deletedDefaultIDs() map[string]bool {
	ids := store.deletedDefaultList()
	deleted := make(map[string]bool, len(ids))
	for _, id := range ids {
		deleted[id] = true
	}
	return deleted
}

func (store *Store) saveDeletedDefaults(ids []string) error {
	serialized, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal deleted defaults: %w", err)
	}
	return store.kv.SetString(keyDeletedDefaults, string(serialized))
}

func isBuiltinID(id string) bool {
	for _, builtin := range model.BuiltinPresets() {
		if builtin.ID == id {
			return true
		}
	}
	return false
}

func (entry storedPreset) toPreset() model.TimerPreset {
	return model.TimerPreset{
		ID:   entry.ID,
		Name: entry.Name,
		Configuration: model.TimerConfiguration{
			StageOneDurationSeconds: entry.StageOneDuration,
			StageTwoDurationSeconds: entry.StageTwoDuration,
		},
		IsDefault: entry.IsDefault,
	}
}

func toStored(preset model.TimerPreset) storedPreset {
	return storedPreset{
		ID:               preset.ID,
		Name:             preset.Name,
		StageOneDuration: preset.Configuration.StageOneDurationSeconds,
		StageTwoDuration: preset.Configuration.StageTwoDurationSeconds,
		IsDefault:        preset.IsDefault,
	}
}
