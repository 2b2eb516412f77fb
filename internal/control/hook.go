package control

// FrameInfo is the minimal per-call-stack-level information the hook needs
// on every line event: the current line, the short source identifier, and
// the current call depth (used by the step predicate).
type FrameInfo struct {
	Line   int
	Source string
	Depth  int
}

// DebugInfoSource is implemented by the L1 interpreter state wrapper,
// supplying the line hook with debug info at the current call level
// without the control package depending on luastate directly (the hook
// must remain testable without a real interpreter loaded).
type DebugInfoSource interface {
	// CurrentFrame retrieves debug info for the line currently executing.
	// ok is false if retrieval failed (spec §4.3.2 step 1: "If retrieval
	// fails, return without state change").
	CurrentFrame() (FrameInfo, bool)
}

// Hook is the line-event callback installed on the interpreter (spec
// §4.3.2). It holds no heap-allocating state on its fast path: Tick is
// called synchronously from the script thread on every instrumented line.
type Hook struct {
	State   *ExecutionState
	Metrics *Metrics
}

// NewHook constructs a Hook bound to the given execution state.
func NewHook(state *ExecutionState, metrics *Metrics) *Hook {
	return &Hook{State: state, Metrics: metrics}
}

// Tick runs the hook body for one LINE event, per spec §4.3.2:
//  1. Retrieve debug info; return on failure without state change.
//  2. Publish current line and source.
//  3. If a step is armed, apply the step predicate; set stepTriggered and
//     paused on a match.
//  4. Return; the surrounding call loop observes `paused`.
func (h *Hook) Tick(src DebugInfoSource) {
	if h.Metrics != nil {
		h.Metrics.hookInvocations.Add(1)
	}

	frame, ok := src.CurrentFrame()
	if !ok {
		return
	}

	h.State.PublishPosition(frame.Line, frame.Source)

	if h.State.TryTriggerStep(frame.Depth) && h.Metrics != nil {
		h.Metrics.stepTransitions.Add(1)
	}
}
