package luastate

import (
	"github.com/wayfinder-dap/wayfinder/internal/control"
	"github.com/wayfinder-dap/wayfinder/internal/luaabi"
)

// CurrentFrame implements control.DebugInfoSource, translating the raw
// level-0 activation record into the minimal FrameInfo the line hook needs
// on every tick (spec §4.3.2 step 1).
func (s *State) CurrentFrame() (control.FrameInfo, bool) {
	info, ok := s.binding.GetStack(s.L, 0)
	if !ok {
		return control.FrameInfo{}, false
	}
	return control.FrameInfo{
		Line:   int(info.CurrentLine),
		Source: info.ShortSource,
		Depth:  s.CallDepth(),
	}, true
}

// CallDepth counts activation records by probing increasing lua_getstack
// levels until the first failure, per spec §4.3.4's step predicates
// comparing call depth against the depth recorded when a step was armed.
// Bounded at a generous depth to guard against a misbehaving native call
// never failing (e.g. a corrupt state); legitimate Lua call stacks are
// limited by LUAI_MAXCCALLS long before this bound is reached.
func (s *State) CallDepth() int {
	const maxProbeDepth = 4096
	depth := 0
	for level := int32(0); level < maxProbeDepth; level++ {
		if _, ok := s.binding.GetStack(s.L, level); !ok {
			break
		}
		depth++
	}
	return depth
}

// FrameAt retrieves full debug info for the activation record at level
// (0 = currently executing), used by stack-trace and scopes/variables
// handling once paused (spec §4.3.6).
func (s *State) FrameAt(level int32) (luaabi.DebugInfo, bool) {
	return s.binding.GetStack(s.L, level)
}
