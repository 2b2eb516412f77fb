package control

import (
	"github.com/wayfinder-dap/wayfinder/internal/value"
)

// Evaluator evaluates a host-language expression string in the context of
// a paused frame, returning the resulting Value or an evaluation error. It
// is implemented by the L1 state wrapper (via a protected call into the
// interpreter) and is the only way L2 reaches back into the interpreter to
// evaluate user-supplied text.
type Evaluator interface {
	Evaluate(frameID int, expr string) (value.Value, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(frameID int, expr string) (value.Value, error)

func (f EvaluatorFunc) Evaluate(frameID int, expr string) (value.Value, error) {
	return f(frameID, expr)
}

// conditionShouldBreak evaluates a breakpoint's condition expression per
// spec §4.3.5 step 1: empty/absent conditions always pass; the result is
// interpreted by host truthiness rules; evaluation errors are logged by
// the caller and treated as "should break", so a buggy condition never
// silently swallows a real hit.
func conditionShouldBreak(eval Evaluator, frameID int, condition string) (shouldBreak bool, evalErr error) {
	if condition == "" {
		return true, nil
	}
	v, err := eval.Evaluate(frameID, condition)
	if err != nil {
		return true, err
	}
	return v.Truthy(), nil
}

// ShouldBreakResult is the outcome of applying the full hit-evaluation
// pipeline (condition, then hit count) to a line breakpoint hit.
type ShouldBreakResult struct {
	ShouldBreak  bool
	HitCount     int
	ConditionErr error
	HitCondErr   error
}

// EvaluateHit applies spec §4.3.5 steps 1–2 to a line breakpoint that has
// just been reached: condition first, then hit count (incremented only once
// the condition passes, then matched against the hit-condition grammar).
// Logpoints (step 3) are handled separately by EvaluateLogpoint, since they
// never reach this function's "should stop" semantics.
func EvaluateHit(eval Evaluator, frameID int, bp *LineBreakpoint, metrics *Metrics) ShouldBreakResult {
	metrics.recordConditionEval()

	condOK, condErr := conditionShouldBreak(eval, frameID, bp.Condition)
	if !condOK {
		return ShouldBreakResult{ShouldBreak: false, HitCount: bp.HitCount(), ConditionErr: condErr}
	}

	hitCount := bp.IncrementHitCount()
	hitOK, hitErr := EvaluateHitCondition(bp.HitCondition, hitCount)
	if hitErr != nil {
		// An invalid hit-condition expression is an error; per spec.md
		// §4.3.5 conditions errors are treated as "should break" to avoid
		// silently swallowing a user bug, and the same conservative
		// default is applied here.
		return ShouldBreakResult{ShouldBreak: true, HitCount: hitCount, ConditionErr: condErr, HitCondErr: hitErr}
	}

	if hitOK {
		metrics.recordBreakpointHit()
	}
	return ShouldBreakResult{ShouldBreak: hitOK, HitCount: hitCount, ConditionErr: condErr}
}
