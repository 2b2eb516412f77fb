package luastate

import (
	"runtime"

	"github.com/wayfinder-dap/wayfinder/internal/value"
	"github.com/wayfinder-dap/wayfinder/internal/wferr"
)

// statusOK is LUA_OK (0), stable across all four supported versions.
const statusOK int32 = 0

// LoadString compiles source under chunkName, leaving the compiled
// function on top of the stack on success (spec §4.2: "load/compile a
// chunk from a string or file, returning either readiness to call or an
// error-string popped from the stack").
func (s *State) LoadString(source, chunkName string) error {
	status, warning := s.binding.LoadChunk(s.L, []byte(source), chunkName, "t")
	if warning != nil {
		s.warnShim(warning.Message)
	}
	if status != statusOK {
		return s.popCompileError()
	}
	return nil
}

func (s *State) popCompileError() error {
	msg := s.binding.ToLString(s.L, s.StackTop())
	s.Pop(1)
	return &wferr.InterpreterCompileError{Message: msg}
}

// CallProtected calls the function (and its nargs arguments) already on
// top of the stack, expecting nresults return values, popping and
// returning any error value on failure (spec §4.2: "protected-call with
// specified argument/result counts; on failure, pop the error and return
// it").
//
// The call is wrapped in runtime.LockOSThread/UnlockOSThread: purego's
// registered C calls block the calling OS thread, and pinning it for the
// duration of the call is what makes "the script thread" a stable,
// meaningful concept for the line hook's callback, which the native
// runtime invokes back on that same OS thread (spec §5).
func (s *State) CallProtected(nargs, nresults int32) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	status, warning := s.binding.ProtectedCall(s.L, nargs, nresults, 0, 0)
	if warning != nil {
		s.warnShim(warning.Message)
	}
	if status != statusOK {
		msg := s.binding.ToLString(s.L, s.StackTop())
		s.Pop(1)
		return &wferr.InterpreterRuntimeError{Message: msg}
	}
	return nil
}

// Evaluate compiles expr as `return <expr>`, calls it with zero arguments,
// and converts its single return value, implementing control.Evaluator so
// L2's condition/hit-count/logpoint/watchpoint machinery can ask the
// interpreter to evaluate user-supplied text. It delegates to
// EvaluateInFrame, which always runs expr in the global environment;
// frameID is accepted for interface compatibility only.
func (s *State) Evaluate(frameID int, expr string) (value.Value, error) {
	return s.EvaluateInFrame(frameID, expr)
}
