package luaabi

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

// Hook event mask bits, consistent across all four supported versions.
const (
	MaskCall  int32 = 1 << 0
	MaskRet   int32 = 1 << 1
	MaskLine  int32 = 1 << 2
	MaskCount int32 = 1 << 3
)

// LineHookFunc is the Go-side signature invoked on every LINE event once
// installed via SetLineHook. L is the interpreter state the hook fired on
// (relevant when a coroutine has its own hook); ar is a ready-to-decode
// activation-record buffer valid only for the duration of the call.
type LineHookFunc func(L LuaState, ar []byte)

// SetLineHook installs fn on the LINE event mask only (spec §4.3.2: "The
// hook is installed on the LINE event mask"), wrapping it in a
// purego.NewCallback-generated C function pointer so the native
// interpreter can call directly into Go. The returned unregister func
// clears the hook; callers must keep a reference to the Binding alive for
// as long as the hook may fire, since the callback closes over fn.
func (b *Binding) SetLineHook(L LuaState, fn LineHookFunc) (unregister func()) {
	cb := func(state uintptr, ar uintptr) {
		// The native hook passes its own `lua_Debug *`, already carrying
		// the event/currentline fields; request source info into the same
		// record, then view that native memory directly as our
		// decodeDebugInfo buffer rather than copying it.
		b.getInfoRaw(LuaState(state), "l S", ar)
		buf := (*[luaDebugSize]byte)(unsafe.Pointer(ar))[:]
		fn(LuaState(state), buf)
	}
	ptr := purego.NewCallback(cb)
	b.setHookRaw(L, ptr, MaskLine, 0)
	return func() {
		b.setHookRaw(L, 0, 0, 0)
	}
}
