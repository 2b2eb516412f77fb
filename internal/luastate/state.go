// Package luastate implements the interpreter state wrapper (L1): a safe,
// typed facade over internal/luaabi's raw bindings. Each State owns exactly
// one native lua_State; construction opens the standard library set,
// destruction closes it idempotently.
package luastate

import (
	"sync"
	"sync/atomic"

	"github.com/wayfinder-dap/wayfinder/internal/luaabi"
	"github.com/wayfinder-dap/wayfinder/internal/obslog"
	"github.com/wayfinder-dap/wayfinder/internal/wferr"
)

// State wraps one native interpreter state. All methods assume they are
// called from the script thread: callers that need to call in from the
// session thread must route through a single-goroutine executor that has
// pinned itself with runtime.LockOSThread, since the underlying C state is
// not safe for concurrent use (spec §5).
type State struct {
	binding *luaabi.Binding
	L       luaabi.LuaState
	log     *obslog.Logger

	closeOnce sync.Once
	closed    atomic.Bool
}

// SetLogger attaches log as the destination for shim warnings raised by
// LoadString/CallProtected (spec §4.1's required continuation/chunk-mode
// fallback warnings). A State with no logger attached drops them silently,
// the same nil-safe convention control.LogpointEmitterConfig.Log uses.
func (s *State) SetLogger(log *obslog.Logger) { s.log = log }

// warnShim logs a shim fallback warning if a logger is attached.
func (s *State) warnShim(message string) {
	if s.log != nil {
		s.log.Warning().Str("warning", message).Log("ABI shim fallback")
	}
}

// New opens a fresh interpreter state against binding and loads the
// standard library set, per spec §4.2: "construction initializes the state
// and opens the standard library set."
func New(binding *luaabi.Binding) (*State, error) {
	L := binding.NewState()
	if L == 0 {
		return nil, &wferr.InterpreterLoadError{
			Version: binding.HostVersionOf().String(),
			Cause:   errNewStateFailed,
		}
	}
	binding.OpenLibs(L)
	return &State{binding: binding, L: L}, nil
}

var errNewStateFailed = stateError("luaL_newstate returned a null state")

type stateError string

func (e stateError) Error() string { return string(e) }

// Close releases the native state. Idempotent: a second call is a no-op.
func (s *State) Close() {
	s.closeOnce.Do(func() {
		s.binding.Close(s.L)
		s.closed.Store(true)
	})
}

// Closed reports whether Close has run.
func (s *State) Closed() bool { return s.closed.Load() }

// Binding exposes the underlying L0 binding, e.g. for version-dependent
// decisions in L2 (capabilities, host version string for diagnostics).
func (s *State) Binding() *luaabi.Binding { return s.binding }

// Handle exposes the raw native state handle, for operations (hook
// install, coroutine resume) that must address it directly.
func (s *State) Handle() luaabi.LuaState { return s.L }

// StackTop returns the current stack size (spec §4.2: "set/get top").
func (s *State) StackTop() int32 { return s.binding.GetTop(s.L) }

// SetStackTop truncates or extends (with nils) the stack to idx.
func (s *State) SetStackTop(idx int32) { s.binding.SetTop(s.L, idx) }

// Pop removes n values from the top of the stack.
func (s *State) Pop(n int32) { s.binding.Pop(s.L, n) }
