// Package control implements the debug control layer (L2): the line hook,
// the step/pause/resume state machine, breakpoint catalogs, condition/hit
// count/logpoint evaluation, and hot module replacement.
package control

import (
	"sync/atomic"
)

// StepMode is the requested step granularity for an armed step.
type StepMode uint8

const (
	// StepNone means no step is armed.
	StepNone StepMode = iota
	StepIn
	StepOver
	StepOut
)

func (m StepMode) String() string {
	switch m {
	case StepIn:
		return "in"
	case StepOver:
		return "over"
	case StepOut:
		return "out"
	default:
		return "none"
	}
}

// PauseReason identifies why a "stopped" event is due.
type PauseReason string

const (
	ReasonBreakpoint PauseReason = "breakpoint"
	ReasonStep       PauseReason = "step"
	ReasonPause      PauseReason = "pause"
)

// stepState packs StepMode and baseline call depth into one machine word so
// the hook observes them together, the way it observes currentLine and
// currentSource together (spec §5: "the session never reads paused before
// the hook has set the accompanying line/source for the same event").
type stepState struct {
	mode     StepMode
	baseline int32
}

func packStep(s stepState) uint64 {
	return uint64(s.mode)<<32 | uint64(uint32(s.baseline))
}

func unpackStep(v uint64) stepState {
	return stepState{
		mode:     StepMode(v >> 32),
		baseline: int32(uint32(v)),
	}
}

// ExecutionState is the process-wide mutable state described in spec
// §4.3.1, implemented as independent atomics with sequentially consistent
// ordering (the Go default for the sync/atomic API used here). It is
// grounded on the teacher's eventloop.FastState cache-line-padded atomic
// state machine: where FastState packs a 5-value loop lifecycle into one
// atomic.Uint64 with pure CAS transitions and no validation on the hot
// path, ExecutionState generalizes the same shape to the independent
// flags spec.md's hook/session coordination actually needs.
type ExecutionState struct {
	_ [64]byte //nolint:unused // cache-line padding, as in the teacher's FastState

	paused        atomic.Bool
	stepArmed     atomic.Bool
	stepTriggered atomic.Bool
	step          atomic.Uint64 // packed stepState
	currentLine   atomic.Int64
	currentSource atomic.Pointer[string]

	_ [24]byte //nolint:unused // pad remaining fields to a cache line
}

// NewExecutionState returns a fresh, unpaused, unarmed state.
func NewExecutionState() *ExecutionState {
	s := &ExecutionState{}
	empty := ""
	s.currentSource.Store(&empty)
	return s
}

// Paused reports whether the hook has (tentatively) stopped execution.
func (s *ExecutionState) Paused() bool { return s.paused.Load() }

// SetPaused sets the paused flag directly — used for explicit pause
// requests (spec §4.3.3).
func (s *ExecutionState) SetPaused(v bool) { s.paused.Store(v) }

// ArmStep arms a step of the given mode at the given baseline call depth.
func (s *ExecutionState) ArmStep(mode StepMode, baselineDepth int) {
	s.step.Store(packStep(stepState{mode: mode, baseline: int32(baselineDepth)}))
	s.stepTriggered.Store(false)
	s.stepArmed.Store(true)
}

// DisarmStep clears step arming, e.g. after `continue`.
func (s *ExecutionState) DisarmStep() {
	s.stepArmed.Store(false)
	s.stepTriggered.Store(false)
}

// StepArmed reports whether a step is currently armed.
func (s *ExecutionState) StepArmed() bool { return s.stepArmed.Load() }

// StepTriggered reports the step-triggered flag without clearing it (see
// ClearStepTriggered), distinct from paused so step-triggered and
// breakpoint-triggered pauses can be differentiated (spec §4.3.1).
func (s *ExecutionState) StepTriggered() bool { return s.stepTriggered.Load() }

// ClearStepTriggered clears step-triggered for the next step cycle.
func (s *ExecutionState) ClearStepTriggered() { s.stepTriggered.Store(false) }

// stepSnapshot returns the currently armed step mode and baseline depth.
func (s *ExecutionState) stepSnapshot() stepState {
	return unpackStep(s.step.Load())
}

// PublishPosition atomically publishes the current line and source,
// cloning the source string only when it differs from the previously
// published one (spec §4.3.2: "Source strings are cloned only when the
// source changes").
func (s *ExecutionState) PublishPosition(line int, source string) {
	s.currentLine.Store(int64(line))
	if prev := s.currentSource.Load(); prev == nil || *prev != source {
		src := source
		s.currentSource.Store(&src)
	}
}

// CurrentPosition returns the last position published by the hook.
func (s *ExecutionState) CurrentPosition() (line int, source string) {
	line = int(s.currentLine.Load())
	if p := s.currentSource.Load(); p != nil {
		source = *p
	}
	return
}

// EvaluateStepPredicate applies the step predicate from spec §4.3.2 given
// the current call depth, returning true if the step should trigger. It
// does not itself mutate state; callers set stepTriggered/paused on a true
// result.
func EvaluateStepPredicate(mode StepMode, baselineDepth, currentDepth int) bool {
	switch mode {
	case StepIn:
		return true
	case StepOver:
		return currentDepth <= baselineDepth
	case StepOut:
		return currentDepth < baselineDepth
	default:
		return false
	}
}

// TryTriggerStep evaluates the armed step predicate against currentDepth
// and, if it fires, sets stepTriggered and paused. Returns whether it
// fired.
func (s *ExecutionState) TryTriggerStep(currentDepth int) bool {
	if !s.stepArmed.Load() {
		return false
	}
	ss := s.stepSnapshot()
	if EvaluateStepPredicate(ss.mode, int(ss.baseline), currentDepth) {
		s.stepTriggered.Store(true)
		s.paused.Store(true)
		return true
	}
	return false
}
