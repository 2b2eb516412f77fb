package control

// StopEvent is the resolved reason and position for a "stopped" DAP event,
// produced once per transition into the paused state.
type StopEvent struct {
	Reason     PauseReason
	Line       int
	Source     string
	ThreadID   int
	HitBreakID int // 0 if not a breakpoint stop
	Text       string
}

// ResolvePause inspects ExecutionState immediately after the hook has
// observed paused==true and decides which of the three stop reasons (spec
// §4.3.3: breakpoint, step, explicit pause) applies, consulting the
// breakpoint manager to see whether the published position actually has an
// armed, non-logpoint line breakpoint. Precedence, highest first:
//
//  1. A verified, non-logpoint breakpoint at the current position —
//     ReasonBreakpoint. This takes priority over an in-flight step so a
//     step that happens to land on a breakpoint is still reported as a
//     breakpoint stop.
//  2. A triggered step — ReasonStep.
//  3. Otherwise — ReasonPause (an explicit pause request arrived between
//     hook ticks with no step armed and no breakpoint at this line).
//
// It is the caller's responsibility to clear stepTriggered (via
// ClearStepTriggered) and disarm the step once the event has been
// delivered.
func ResolvePause(state *ExecutionState, mgr *BreakpointManager, threadID int) StopEvent {
	line, source := state.CurrentPosition()

	if bp, ok := mgr.LineBreakpointAt(source, line); ok && !bp.IsLogpoint() {
		return StopEvent{Reason: ReasonBreakpoint, Line: line, Source: source, ThreadID: threadID, HitBreakID: bp.ID}
	}

	if state.StepTriggered() {
		return StopEvent{Reason: ReasonStep, Line: line, Source: source, ThreadID: threadID}
	}

	return StopEvent{Reason: ReasonPause, Line: line, Source: source, ThreadID: threadID}
}
