package preferences

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"rangetimer/internal/core/model"
)

// PresetLibrary is the slice of the preset store the preferences window
// drives.
type PresetLibrary interface {
	GetAllPresets() []model.TimerPreset
	SavePreset(preset model.TimerPreset, isEditing bool) error
	DeletePreset(id string) error
	SetCurrentPreset(preset *model.TimerPreset) error
	GetCurrentPreset() (model.TimerPreset, bool)
	PresetNameExists(name, excludeID string) bool
	LastConfiguration() model.TimerConfiguration
	SaveConfiguration(config model.TimerConfiguration) error
}

// Window handles the settings UI: stage durations, preset management and
// display options.
type Window struct {
	window   fyne.Window
	library  PresetLibrary
	settings Settings
	onSave   func(Settings, model.TimerConfiguration)

	stageOne     *widget.Entry
	stageTwo     *widget.Entry
	presetSelect *widget.Select
	presetName   *widget.Entry
	announce     *widget.Check
	fullscreen   *widget.Check
	flashSecs    *widget.Entry
	presets      []model.TimerPreset
}

// New creates a preferences window.
func New(app fyne.App, library PresetLibrary, settings Settings, onSave func(Settings, model.TimerConfiguration)) *Window {
	window := app.NewWindow("RangeTimer Settings")

	prefs := &Window{
		window:   window,
		library:  library,
		settings: settings,
		onSave:   onSave,
	}

	config := library.LastConfiguration()
	prefs.stageOne = widget.NewEntry()
	prefs.stageTwo = widget.NewEntry()
	prefs.stageOne.SetText(strconv.Itoa(config.StageOneDurationSeconds))
	prefs.stageTwo.SetText(strconv.Itoa(config.StageTwoDurationSeconds))

	prefs.presetName = widget.NewEntry()
	prefs.presetName.SetPlaceHolder("Preset name")
	prefs.presetSelect = widget.NewSelect(nil, prefs.handlePresetSelected)

	savePreset := widget.NewButton("Save Preset", prefs.handleSavePreset)
	deletePreset := widget.NewButton("Delete Preset", prefs.handleDeletePreset)

	prefs.announce = widget.NewCheck("Announce phase changes", nil)
	prefs.announce.SetChecked(settings.AnnounceEnabled)
	prefs.fullscreen = widget.NewCheck("Fullscreen timer display", nil)
	prefs.fullscreen.SetChecked(settings.Fullscreen)
	prefs.flashSecs = widget.NewEntry()
	prefs.flashSecs.SetText(strconv.Itoa(settings.FlashWarningSeconds))

	form := container.NewVBox(
		widget.NewLabelWithStyle("Stage durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Preparation stage"), prefs.stageOne, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Shooting stage"), prefs.stageTwo, widget.NewLabel("sec")),
		widget.NewLabelWithStyle("Presets", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.presetSelect,
		prefs.presetName,
		container.NewHBox(savePreset, deletePreset),
		widget.NewLabelWithStyle("Display", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.announce,
		prefs.fullscreen,
		container.NewHBox(widget.NewLabel("Flash during final"), prefs.flashSecs, widget.NewLabel("sec")),
	)

	applyButton := widget.NewButton("Apply", prefs.handleApply)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(applyButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 480))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs.refreshPresets()
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.refreshPresets()
	prefs.window.Show()
	prefs.window.RequestFocus()
}

func (prefs *Window) refreshPresets() {
	prefs.presets = prefs.library.GetAllPresets()
	names := make([]string, 0, len(prefs.presets))
	for _, preset := range prefs.presets {
		names = append(names, preset.Name)
	}
	prefs.presetSelect.Options = names
	if current, ok := prefs.library.GetCurrentPreset(); ok {
		prefs.presetSelect.Selected = current.Name
	} else {
		prefs.presetSelect.Selected = ""
	}
	prefs.presetSelect.Refresh()
}

func (prefs *Window) selectedPreset() *model.TimerPreset {
	for index, preset := range prefs.presets {
		if preset.Name == prefs.presetSelect.Selected {
			return &prefs.presets[index]
		}
	}
	return nil
}

func (prefs *Window) handlePresetSelected(string) {
	preset := prefs.selectedPreset()
	if preset == nil {
		return
	}
	prefs.stageOne.SetText(strconv.Itoa(preset.Configuration.StageOneDurationSeconds))
	prefs.stageTwo.SetText(strconv.Itoa(preset.Configuration.StageTwoDurationSeconds))
	prefs.presetName.SetText(preset.Name)
	if err := prefs.library.SetCurrentPreset(preset); err != nil {
		dialog.ShowError(err, prefs.window)
	}
}

func (prefs *Window) handleSavePreset() {
	config, ok := prefs.parseDurations()
	if !ok {
		return
	}

	name := strings.TrimSpace(prefs.presetName.Text)
	if name == "" {
		dialog.ShowError(errors.New("preset name must not be empty"), prefs.window)
		return
	}

	preset := model.TimerPreset{Name: name, Configuration: config}
	isEditing := false
	if selected := prefs.selectedPreset(); selected != nil && strings.EqualFold(strings.TrimSpace(selected.Name), name) {
		// Same name as the selection means edit-in-place, keeping the id.
		// Editing a built-in stores a shadowing custom copy under its id.
		preset.ID = selected.ID
		preset.IsDefault = selected.IsDefault
		isEditing = true
	}

	if prefs.library.PresetNameExists(name, preset.ID) {
		dialog.ShowError(fmt.Errorf("a preset named %q already exists", name), prefs.window)
		return
	}

	if err := prefs.library.SavePreset(preset, isEditing); err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}
	prefs.refreshPresets()
	prefs.presetSelect.SetSelected(name)
}

func (prefs *Window) handleDeletePreset() {
	preset := prefs.selectedPreset()
	if preset == nil {
		return
	}
	if err := prefs.library.DeletePreset(preset.ID); err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}
	prefs.presetName.SetText("")
	prefs.refreshPresets()
}

func (prefs *Window) handleApply() {
	config, ok := prefs.parseDurations()
	if !ok {
		return
	}

	settings := prefs.settings
	if seconds, err := strconv.Atoi(strings.TrimSpace(prefs.flashSecs.Text)); err == nil && seconds >= 0 {
		settings.FlashWarningSeconds = seconds
	}
	settings.AnnounceEnabled = prefs.announce.Checked
	settings.Fullscreen = prefs.fullscreen.Checked
	prefs.settings = settings

	if err := prefs.library.SaveConfiguration(config); err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}
	if prefs.onSave != nil {
		prefs.onSave(settings, config)
	}
	prefs.window.Hide()
}

// parseDurations reads both stage entries; the engine never validates, so
// only strictly positive durations leave this window.
func (prefs *Window) parseDurations() (model.TimerConfiguration, bool) {
	stageOne, okOne := parsePositiveInt(prefs.stageOne.Text)
	stageTwo, okTwo := parsePositiveInt(prefs.stageTwo.Text)
	if !okOne || !okTwo {
		dialog.ShowError(errors.New("stage durations must be positive whole seconds"), prefs.window)
		return model.TimerConfiguration{}, false
	}
	return model.TimerConfiguration{
		StageOneDurationSeconds: stageOne,
		StageTwoDurationSeconds: stageTwo,
	}, true
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
