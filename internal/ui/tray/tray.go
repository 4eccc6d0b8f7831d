package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowTimer   func()
	OnPreferences func()
	OnStart       func()
	OnTogglePause func()
	OnStop        func()
	OnQuit        func()
}

// Manager handles the system tray menu state.
type Manager struct {
	app         desktop.App
	callbacks   Callbacks
	statusLabel string
	paused      bool
	running     bool
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "idle",
	}
	manager.rebuildMenu()
	return manager
}

// SetStatus updates the remaining-time status line.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.rebuildMenu()
}

// SetTimerState toggles menu items for the running and paused flags.
func (manager *Manager) SetTimerState(running, paused bool) {
	manager.running = running
	manager.paused = paused
	manager.rebuildMenu()
}

func (manager *Manager) rebuildMenu() {
	if manager.app == nil {
		return
	}

	status := fyne.NewMenuItem(fmt.Sprintf("Status: %s", manager.statusLabel), nil)
	status.Disabled = true

	pauseLabel := "Pause"
	if manager.paused {
		pauseLabel = "Resume"
	}
	pause := fyne.NewMenuItem(pauseLabel, manager.invoke(manager.callbacks.OnTogglePause))
	pause.Disabled = !manager.running && !manager.paused

	stop := fyne.NewMenuItem("Stop", manager.invoke(manager.callbacks.OnStop))
	stop.Disabled = !manager.running && !manager.paused

	manager.app.SetSystemTrayMenu(fyne.NewMenu("RangeTimer",
		status,
		fyne.NewMenuItem("Show Timer", manager.invoke(manager.callbacks.OnShowTimer)),
		fyne.NewMenuItem("Start", manager.invoke(manager.callbacks.OnStart)),
		pause,
		stop,
		fyne.NewMenuItem("Preferences", manager.invoke(manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", manager.invoke(manager.callbacks.OnQuit)),
	))
}

func (manager *Manager) invoke(callback func()) func() {
	return func() {
		if callback != nil {
			callback()
		}
	}
}
