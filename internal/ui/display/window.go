package display

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"rangetimer/internal/core/model"
)

// Callbacks defines timer display action handlers.
type Callbacks struct {
	OnStart          func()
	OnTogglePause    func()
	OnStop           func()
	OnPresetSelected func(model.TimerPreset)
	OnPreferences    func()
}

// Options defines display visuals.
type Options struct {
	Fullscreen   bool
	FlashSeconds int
}

var (
	colorPreparation = color.NRGBA{R: 255, G: 160, B: 0, A: 255}
	colorShooting    = color.NRGBA{R: 56, G: 142, B: 60, A: 255}
	colorCompleted   = color.NRGBA{R: 198, G: 40, B: 40, A: 255}
	colorText        = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Window is the main countdown display.
type Window struct {
	window       fyne.Window
	options      Options
	callbacks    Callbacks
	background   *canvas.Rectangle
	timerLabel   *canvas.Text
	stageLabel   *canvas.Text
	progress     *widget.ProgressBar
	pauseButton  *widget.Button
	presetSelect *widget.Select
	presets      []model.TimerPreset
	flash        *flasher
}

// New creates the timer display window.
func New(app fyne.App, options Options, callbacks Callbacks) *Window {
	window := app.NewWindow("RangeTimer")

	display := &Window{
		window:    window,
		options:   options,
		callbacks: callbacks,
	}

	display.background = canvas.NewRectangle(colorPreparation)

	display.timerLabel = canvas.NewText("--:--", colorText)
	display.timerLabel.Alignment = fyne.TextAlignCenter
	display.timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	display.timerLabel.TextSize = 96

	display.stageLabel = canvas.NewText("Ready", colorText)
	display.stageLabel.Alignment = fyne.TextAlignCenter
	display.stageLabel.TextStyle = fyne.TextStyle{Bold: true}
	display.stageLabel.TextSize = 24

	display.progress = widget.NewProgressBar()

	startButton := widget.NewButton("Start", func() {
		if display.callbacks.OnStart != nil {
			display.callbacks.OnStart()
		}
	})
	display.pauseButton = widget.NewButton("Pause", func() {
		if display.callbacks.OnTogglePause != nil {
			display.callbacks.OnTogglePause()
		}
	})
	stopButton := widget.NewButton("Stop", func() {
		if display.callbacks.OnStop != nil {
			display.callbacks.OnStop()
		}
	})
	preferencesButton := widget.NewButton("Settings", func() {
		if display.callbacks.OnPreferences != nil {
			display.callbacks.OnPreferences()
		}
	})

	display.presetSelect = widget.NewSelect(nil, display.handlePresetSelected)
	display.presetSelect.PlaceHolder = "Preset"

	controls := container.NewHBox(startButton, display.pauseButton, stopButton, display.presetSelect, preferencesButton)
	content := container.NewVBox(display.stageLabel, display.timerLabel, display.progress, container.NewCenter(controls))
	window.SetContent(container.NewStack(display.background, content))
	window.Resize(fyne.NewSize(520, 340))
	window.SetFullScreen(options.Fullscreen)

	display.flash = newFlasher(display.timerLabel)
	return display
}

// Show displays the window.
func (display *Window) Show() {
	display.window.Show()
	display.window.RequestFocus()
}

// Hide conceals the window without quitting the app.
func (display *Window) Hide() {
	display.window.Hide()
}

// SetCloseHandler intercepts window close.
func (display *Window) SetCloseHandler(handler func()) {
	display.window.SetCloseIntercept(handler)
}

// ShowState renders a timer snapshot. Safe to call from any goroutine; the
// engine invokes it synchronously from its tick context.
func (display *Window) ShowState(state model.TimerState) {
	fyne.Do(func() {
		display.timerLabel.Text = state.FormattedTime()
		display.timerLabel.Refresh()

		display.stageLabel.Text = stageTitle(state)
		display.stageLabel.Refresh()

		display.background.FillColor = stageColor(state.Stage)
		canvas.Refresh(display.background)

		display.progress.SetValue(state.StageProgress())

		if state.Running {
			display.pauseButton.SetText("Pause")
			display.pauseButton.Enable()
		} else if state.Stage == model.StageCompleted {
			display.pauseButton.SetText("Pause")
			display.pauseButton.Disable()
		} else {
			display.pauseButton.SetText("Resume")
			display.pauseButton.Enable()
		}
	})

	shouldFlash := state.Running &&
		state.Stage == model.StageShooting &&
		display.options.FlashSeconds > 0 &&
		state.RemainingSeconds <= display.options.FlashSeconds
	if shouldFlash {
		display.flash.start()
	} else {
		display.flash.stop()
	}
}

// SetPresets replaces the preset selector entries.
func (display *Window) SetPresets(presets []model.TimerPreset, currentID string) {
	display.presets = presets
	names := make([]string, 0, len(presets))
	selected := ""
	for _, preset := range presets {
		names = append(names, preset.Name)
		if preset.ID == currentID {
			selected = preset.Name
		}
	}
	fyne.Do(func() {
		display.presetSelect.Options = names
		display.presetSelect.Selected = selected
		display.presetSelect.Refresh()
	})
}

// UpdateOptions applies new display settings.
func (display *Window) UpdateOptions(options Options) {
	display.options = options
	fyne.Do(func() {
		display.window.SetFullScreen(options.Fullscreen)
	})
}

func (display *Window) handlePresetSelected(name string) {
	if display.callbacks.OnPresetSelected == nil {
		return
	}
	for _, preset := range display.presets {
		if preset.Name == name {
			display.callbacks.OnPresetSelected(preset)
			return
		}
	}
}

func stageTitle(state model.TimerState) string {
	switch state.Stage {
	case model.StagePreparation:
		if !state.Running && state.StageProgress() == 0 {
			return "Ready"
		}
		return "Preparation"
	case model.StageShooting:
		return "Shooting"
	case model.StageCompleted:
		return "Cease Fire"
	default:
		return ""
	}
}

func stageColor(stage model.TimerStage) color.NRGBA {
	switch stage {
	case model.StageShooting:
		return colorShooting
	case model.StageCompleted:
		return colorCompleted
	default:
		return colorPreparation
	}
}
