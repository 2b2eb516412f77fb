package control

import "sync/atomic"

// Metrics tracks in-process counters for operator visibility, supplementing
// spec.md per the original implementation's memory/profiling modules
// (original_source/crates/wayfinder-core/src/profiling/mod.rs). This is
// deliberately not a telemetry dashboard (explicitly out of scope per spec
// §1) — just a handful of atomic counters exposed through Snapshot. The
// counters are not logged at session end and no DAP request surfaces them.
type Metrics struct {
	hookInvocations atomic.Int64
	breakpointHits  atomic.Int64
	conditionsEval  atomic.Int64
	stepTransitions atomic.Int64
}

// MetricsSnapshot is a point-in-time copy of Metrics' counters.
type MetricsSnapshot struct {
	HookInvocations int64
	BreakpointHits  int64
	ConditionsEval  int64
	StepTransitions int64
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	return MetricsSnapshot{
		HookInvocations: m.hookInvocations.Load(),
		BreakpointHits:  m.breakpointHits.Load(),
		ConditionsEval:  m.conditionsEval.Load(),
		StepTransitions: m.stepTransitions.Load(),
	}
}

func (m *Metrics) recordBreakpointHit() {
	if m != nil {
		m.breakpointHits.Add(1)
	}
}

func (m *Metrics) recordConditionEval() {
	if m != nil {
		m.conditionsEval.Add(1)
	}
}
