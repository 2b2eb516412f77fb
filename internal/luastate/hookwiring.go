package luastate

import (
	"github.com/wayfinder-dap/wayfinder/internal/control"
	"github.com/wayfinder-dap/wayfinder/internal/luaabi"
)

// InstallLineHook wires the interpreter's native LINE-event callback to
// hook.Tick, bridging L0's raw hook mechanism to L2's control.Hook (spec
// §4.3.2). The returned unregister func clears the native hook; it does
// not release s itself.
func (s *State) InstallLineHook(hook *control.Hook) (unregister func()) {
	return s.binding.SetLineHook(s.L, func(luaabi.LuaState, []byte) {
		hook.Tick(s)
	})
}
