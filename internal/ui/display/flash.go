package display

import (
	"context"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

const flashFrameInterval = 250 * time.Millisecond

// flasher pulses the countdown text during the final seconds of the
// shooting stage. One pulse goroutine runs at a time; starting while
// already flashing is a no-op and stop cancels immediately.
type flasher struct {
	mu     sync.Mutex
	label  *canvas.Text
	cancel context.CancelFunc
}

func newFlasher(label *canvas.Text) *flasher {
	return &flasher{label: label}
}

func (flash *flasher) start() {
	flash.mu.Lock()
	defer flash.mu.Unlock()
	if flash.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	flash.cancel = cancel
	go flash.run(ctx)
}

func (flash *flasher) stop() {
	flash.mu.Lock()
	defer flash.mu.Unlock()
	if flash.cancel == nil {
		return
	}
	flash.cancel()
	flash.cancel = nil
	flash.setVisible(true)
}

func (flash *flasher) run(ctx context.Context) {
	ticker := time.NewTicker(flashFrameInterval)
	defer ticker.Stop()

	visible := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			visible = !visible
			flash.setVisible(visible)
		}
	}
}

func (flash *flasher) setVisible(visible bool) {
	fyne.Do(func() {
		if visible {
			flash.label.Show()
		} else {
			flash.label.Hide()
		}
		flash.label.Refresh()
	})
}
