package announce

import (
	"fyne.io/fyne/v2"

	"rangetimer/internal/core/model"
)

// Announcer is the phase announcement sink. The engine itself never
// announces; the application drives these hooks on observed
// stage-transition edges.
type Announcer interface {
	StageStarted(stage model.TimerStage)
	Completed()
}

// Notifier posts desktop notifications for phase changes.
type Notifier struct {
	app fyne.App
}

// NewNotifier creates an announcer backed by the fyne notification service.
func NewNotifier(app fyne.App) *Notifier {
	return &Notifier{app: app}
}

func (notifier *Notifier) StageStarted(stage model.TimerStage) {
	switch stage {
	case model.StagePreparation:
		notifier.send("Standby", "Preparation stage started")
	case model.StageShooting:
		notifier.send("Fire", "Shooting stage started")
	}
}

func (notifier *Notifier) Completed() {
	notifier.send("Cease fire", "Timer completed")
}

func (notifier *Notifier) send(title, content string) {
	notifier.app.SendNotification(fyne.NewNotification(title, content))
}

// Silent is a no-op announcer for headless use or muted settings.
type Silent struct{}

func (Silent) StageStarted(model.TimerStage) {}

func (Silent) Completed() {}
