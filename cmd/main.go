package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"rangetimer/internal/announce"
	"rangetimer/internal/core/engine"
	"rangetimer/internal/core/model"
	"rangetimer/internal/platform"
	"rangetimer/internal/preset"
	"rangetimer/internal/storage"
	"rangetimer/internal/ui/display"
	"rangetimer/internal/ui/preferences"
	"rangetimer/internal/ui/tray"
)

const appName = "RangeTimer"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.rangetimer.app")

	var kv storage.KeyValue
	fileStore, err := storage.NewFileStore(appName)
	if err != nil {
		log.Printf("state storage unavailable, presets will not persist: %v", err)
		kv = storage.NewMemoryStore()
	} else {
		kv = fileStore
	}
	presetStore := preset.NewStore(kv)

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v", err)
	}

	var announcer announce.Announcer = announce.Silent{}
	if settings.AnnounceEnabled {
		announcer = announce.NewNotifier(fyneApp)
	}

	config := presetStore.LastConfiguration()
	if current, ok := presetStore.GetCurrentPreset(); ok {
		config = current.Configuration
	}

	var timerEngine *engine.Engine
	var displayWindow *display.Window
	var trayManager *tray.Manager
	var prefsWindow *preferences.Window

	displayWindow = display.New(fyneApp, display.Options{
		Fullscreen:   settings.Fullscreen,
		FlashSeconds: settings.FlashWarningSeconds,
	}, display.Callbacks{
		OnStart: func() {
			timerEngine.Start()
		},
		OnTogglePause: func() {
			state := timerEngine.CurrentState()
			if state.Running {
				timerEngine.Pause()
			} else {
				timerEngine.Resume()
			}
		},
		OnStop: func() {
			timerEngine.Stop()
		},
		OnPresetSelected: func(selected model.TimerPreset) {
			if err := presetStore.SetCurrentPreset(&selected); err != nil {
				log.Printf("select preset: %v", err)
			}
			if err := presetStore.SaveConfiguration(selected.Configuration); err != nil {
				log.Printf("save configuration: %v", err)
			}
			timerEngine.UpdateConfiguration(selected.Configuration)
		},
		OnPreferences: func() {
			prefsWindow.Show()
		},
	})

	lastStage := model.StagePreparation
	timerEngine = engine.New(config, engine.Callbacks{
		OnUpdate: func(state model.TimerState) {
			displayWindow.ShowState(state)
			if trayManager != nil {
				trayManager.SetStatus(statusFor(state))
				trayManager.SetTimerState(state.Running, !state.Running && state.Stage != model.StageCompleted)
			}
			// The preparation->shooting edge is announced here; the
			// shooting->completed edge is covered by OnComplete.
			if state.Stage == model.StageShooting && lastStage == model.StagePreparation {
				announcer.StageStarted(model.StageShooting)
			}
			lastStage = state.Stage
		},
		OnComplete: func() {
			announcer.Completed()
		},
	}, engine.Options{})

	prefsWindow = preferences.New(fyneApp, presetStore, settings, func(updated preferences.Settings, updatedConfig model.TimerConfiguration) {
		settings = updated
		if err := storage.SaveSettings(appName, settings); err != nil {
			log.Printf("save settings: %v", err)
		}
		if settings.AnnounceEnabled {
			announcer = announce.NewNotifier(fyneApp)
		} else {
			announcer = announce.Silent{}
		}
		displayWindow.UpdateOptions(display.Options{
			Fullscreen:   settings.Fullscreen,
			FlashSeconds: settings.FlashWarningSeconds,
		})
		timerEngine.UpdateConfiguration(updatedConfig)
		refreshPresetSelector(displayWindow, presetStore)
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShowTimer: func() {
				displayWindow.Show()
			},
			OnPreferences: func() {
				prefsWindow.Show()
			},
			OnStart: func() {
				timerEngine.Start()
			},
			OnTogglePause: func() {
				state := timerEngine.CurrentState()
				if state.Running {
					timerEngine.Pause()
				} else {
					timerEngine.Resume()
				}
			},
			OnStop: func() {
				timerEngine.Stop()
			},
			OnQuit: func() {
				timerEngine.Cleanup()
				fyneApp.Quit()
			},
		})
		displayWindow.SetCloseHandler(func() {
			// Tray keeps the app alive; closing the display only hides it.
			displayWindow.Hide()
		})
	}

	refreshPresetSelector(displayWindow, presetStore)
	displayWindow.ShowState(timerEngine.CurrentState())
	displayWindow.Show()

	fyneApp.Run()
	timerEngine.Cleanup()
}

func refreshPresetSelector(displayWindow *display.Window, presetStore *preset.Store) {
	currentID := ""
	if id, ok := presetStore.GetCurrentPresetID(); ok {
		currentID = id
	}
	displayWindow.SetPresets(presetStore.GetAllPresets(), currentID)
}

func statusFor(state model.TimerState) string {
	switch {
	case state.Stage == model.StageCompleted:
		return "cease fire"
	case state.Running:
		return fmt.Sprintf("%s %s", state.Stage, state.FormattedTime())
	default:
		return fmt.Sprintf("paused %s", state.FormattedTime())
	}
}
