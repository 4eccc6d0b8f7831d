package engine

import (
	"sync"
	"time"

	"rangetimer/internal/core/model"
)

// Callbacks receive timer updates. OnUpdate fires on every tick and on every
// stage transition with a fresh snapshot; OnComplete fires exactly once per
// full run, after the shooting stage reaches zero. Both are invoked
// synchronously from whichever context drives ticks and operations.
type Callbacks struct {
	OnUpdate   func(model.TimerState)
	OnComplete func()
}

// Options contains runtime options for the engine.
type Options struct {
	TickInterval time.Duration
	TickSource   TickSource
}

// Engine is the two-stage countdown state machine. It owns at most one
// active countdown at a time; every operation that starts a countdown first
// invalidates the previous one.
type Engine struct {
	mu         sync.Mutex
	config     model.TimerConfiguration
	state      model.TimerState
	remaining  time.Duration
	interval   time.Duration
	ticks      TickSource
	callbacks  Callbacks
	generation uint64
}

// New creates an engine holding the provided configuration. The engine does
// not validate the configuration; callers check IsValid before use. A stage
// with a non-positive duration completes on the first tick after it begins.
func New(config model.TimerConfiguration, callbacks Callbacks, options Options) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = 100 * time.Millisecond
	}
	if options.TickSource == nil {
		options.TickSource = NewTickerSource()
	}

	engine := &Engine{
		config:    config,
		interval:  options.TickInterval,
		ticks:     options.TickSource,
		callbacks: callbacks,
	}
	engine.state = idleState(config)
	engine.remaining = stageRemaining(engine.state)
	return engine
}

// Start resets the timer to the beginning of the preparation stage and
// begins counting down. Any in-flight countdown is cancelled first.
func (engine *Engine) Start() {
	engine.mu.Lock()
	engine.generation++
	generation := engine.generation
	engine.ticks.Cancel()

	engine.state = model.TimerState{
		Stage:            model.StagePreparation,
		RemainingSeconds: clampSeconds(engine.config.StageOneDurationSeconds),
		Running:          true,
		Configuration:    engine.config,
	}
	engine.remaining = stageRemaining(engine.state)
	snapshot := engine.state
	engine.mu.Unlock()

	engine.emitUpdate(snapshot)
	engine.ticks.Start(engine.interval, func() {
		engine.tick(generation)
	})
}

// Pause freezes the countdown without altering the remaining time. Pausing
// an already paused or completed timer is a no-op.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	if !engine.state.Running {
		engine.mu.Unlock()
		return
	}
	engine.generation++
	engine.ticks.Cancel()
	engine.state.Running = false
	snapshot := engine.state
	engine.mu.Unlock()

	engine.emitUpdate(snapshot)
}

// Resume continues a paused countdown from its exact remaining time.
// Resuming a running or completed timer is a no-op.
func (engine *Engine) Resume() {
	engine.mu.Lock()
	if engine.state.Running || engine.state.Stage == model.StageCompleted {
		engine.mu.Unlock()
		return
	}
	engine.generation++
	generation := engine.generation
	engine.state.Running = true
	snapshot := engine.state
	engine.mu.Unlock()

	engine.emitUpdate(snapshot)
	engine.ticks.Start(engine.interval, func() {
		engine.tick(generation)
	})
}

// Stop cancels any countdown and resets to the same fresh state as a just
// constructed engine.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	engine.generation++
	engine.ticks.Cancel()
	engine.state = idleState(engine.config)
	engine.remaining = stageRemaining(engine.state)
	snapshot := engine.state
	engine.mu.Unlock()

	engine.emitUpdate(snapshot)
}

// UpdateConfiguration replaces the held configuration and performs an
// implicit Stop. The timer does not auto-resume.
func (engine *Engine) UpdateConfiguration(config model.TimerConfiguration) {
	engine.mu.Lock()
	engine.generation++
	engine.ticks.Cancel()
	engine.config = config
	engine.state = idleState(config)
	engine.remaining = stageRemaining(engine.state)
	snapshot := engine.state
	engine.mu.Unlock()

	engine.emitUpdate(snapshot)
}

// CurrentState returns the latest snapshot.
func (engine *Engine) CurrentState() model.TimerState {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.state
}

// Cleanup cancels any active countdown and releases timer resources. Safe
// to call repeatedly and after any other operation.
func (engine *Engine) Cleanup() {
	engine.mu.Lock()
	engine.generation++
	engine.ticks.Cancel()
	engine.mu.Unlock()
}

func (engine *Engine) tick(generation uint64) {
	engine.mu.Lock()
	if generation != engine.generation || !engine.state.Running {
		engine.mu.Unlock()
		return
	}

	engine.remaining -= engine.interval
	if engine.remaining > 0 {
		engine.state.RemainingSeconds = wholeSeconds(engine.remaining)
		snapshot := engine.state
		engine.mu.Unlock()
		engine.emitUpdate(snapshot)
		return
	}

	next := advance(engine.state)
	if next.Stage == engine.state.Stage {
		// Exhaustion in the completed stage is unreachable; the shooting
		// transition cancels the countdown before it can fire again.
		engine.mu.Unlock()
		return
	}
	engine.state = next
	engine.remaining = stageRemaining(next)
	completed := next.Stage == model.StageCompleted
	if completed {
		engine.generation++
		engine.ticks.Cancel()
	}
	snapshot := engine.state
	engine.mu.Unlock()

	engine.emitUpdate(snapshot)
	if completed {
		engine.emitComplete()
	}
}

func (engine *Engine) emitUpdate(state model.TimerState) {
	if engine.callbacks.OnUpdate != nil {
		engine.callbacks.OnUpdate(state)
	}
}

func (engine *Engine) emitComplete() {
	if engine.callbacks.OnComplete != nil {
		engine.callbacks.OnComplete()
	}
}

// advance returns the snapshot that follows an exhausted stage countdown.
// It is pure: transition rules are checkable without a tick source.
func advance(state model.TimerState) model.TimerState {
	switch state.Stage {
	case model.StagePreparation:
		return model.TimerState{
			Stage:            model.StageShooting,
			RemainingSeconds: clampSeconds(state.Configuration.StageTwoDurationSeconds),
			Running:          true,
			Configuration:    state.Configuration,
		}
	case model.StageShooting:
		return model.TimerState{
			Stage:            model.StageCompleted,
			RemainingSeconds: 0,
			Running:          false,
			Configuration:    state.Configuration,
		}
	default:
		return state
	}
}

func idleState(config model.TimerConfiguration) model.TimerState {
	return model.TimerState{
		Stage:            model.StagePreparation,
		RemainingSeconds: clampSeconds(config.StageOneDurationSeconds),
		Running:          false,
		Configuration:    config,
	}
}

func clampSeconds(seconds int) int {
	if seconds < 0 {
		return 0
	}
	return seconds
}

func stageRemaining(state model.TimerState) time.Duration {
	return time.Duration(state.RemainingSeconds) * time.Second
}

// wholeSeconds reports the integer seconds left, rounded up so the display
// only drops a second once it has fully elapsed.
func wholeSeconds(remaining time.Duration) int {
	if remaining <= 0 {
		return 0
	}
	return int((remaining + time.Second - 1) / time.Second)
}
