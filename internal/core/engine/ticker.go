package engine

import (
	"sync"
	"time"
)

// TickSource provides periodic callback invocation. Start replaces any
// countdown already running on the source; Cancel stops delivery. The engine
// additionally guards against late ticks from a cancelled countdown, so
// implementations only need best-effort cancellation.
type TickSource interface {
	Start(interval time.Duration, onTick func())
	Cancel()
}

// tickerSource drives ticks from a time.Ticker in its own goroutine.
type tickerSource struct {
	mu     sync.Mutex
	stopCh chan struct{}
}

// NewTickerSource returns the production tick source backed by real time.
func NewTickerSource() TickSource {
	return &tickerSource{}
}

func (source *tickerSource) Start(interval time.Duration, onTick func()) {
	source.mu.Lock()
	if source.stopCh != nil {
		close(source.stopCh)
	}
	stopCh := make(chan struct{})
	source.stopCh = stopCh
	source.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				select {
				case <-stopCh:
					return
				default:
				}
				onTick()
			}
		}
	}()
}

func (source *tickerSource) Cancel() {
	source.mu.Lock()
	defer source.mu.Unlock()
	if source.stopCh != nil {
		close(source.stopCh)
		source.stopCh = nil
	}
}
