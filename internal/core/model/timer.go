package model

import "fmt"

// TimerStage represents the current countdown phase.
type TimerStage string

const (
	StagePreparation TimerStage = "preparation"
	StageShooting    TimerStage = "shooting"
	StageCompleted   TimerStage = "completed"
)

// TimerConfiguration holds the stage durations for one timer run.
type TimerConfiguration struct {
	StageOneDurationSeconds int
	StageTwoDurationSeconds int
}

// IsValid reports whether both stage durations are usable.
func (config TimerConfiguration) IsValid() bool {
	return config.StageOneDurationSeconds > 0 && config.StageTwoDurationSeconds > 0
}

// StageDuration returns the configured duration for a stage in seconds.
// The completed stage has no duration.
func (config TimerConfiguration) StageDuration(stage TimerStage) int {
	switch stage {
	case StagePreparation:
		return config.StageOneDurationSeconds
	case StageShooting:
		return config.StageTwoDurationSeconds
	default:
		return 0
	}
}

// TimerState is an immutable snapshot of a running timer. The engine
// replaces its current snapshot wholesale on every change; callers never
// see a snapshot mutate underneath them.
type TimerState struct {
	Stage            TimerStage
	RemainingSeconds int
	Running          bool
	Configuration    TimerConfiguration
}

// FormattedTime renders the remaining time as MM:SS.
func (state TimerState) FormattedTime() string {
	seconds := state.RemainingSeconds
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// StageProgress returns the elapsed fraction of the current stage in [0,1].
// A completed timer and a zero-duration stage both report 1.
func (state TimerState) StageProgress() float64 {
	if state.Stage == StageCompleted {
		return 1
	}
	total := state.Configuration.StageDuration(state.Stage)
	if total <= 0 {
		return 1
	}
	progress := 1 - float64(state.RemainingSeconds)/float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}
