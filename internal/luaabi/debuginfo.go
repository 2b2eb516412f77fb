package luaabi

import (
	"encoding/binary"
	"unsafe"
)

// luaDebugSize is sized generously for a `lua_Debug` activation record on a
// 64-bit target: the struct in lua_ffi.rs mixes c_int fields, pointers, and
// a fixed 60-byte short_src buffer; over-allocating avoids needing an
// exact per-platform sizeof and costs one small heap allocation per debug
// query. The line hook queries debug info on every line event (the
// current frame plus a call-depth probe), so those allocations happen on
// the hook path too, not only while paused.
const luaDebugSize = 256

// debugInfoLayout records the byte offsets this package reads/writes
// within the allocated lua_Debug buffer, matching the field order of the
// `lua_Debug` struct in the bound C library (event, name, namewhat, what,
// source, currentline, linedefined, lastlinedefined, nups, nparams,
// isvararg, istailcall, short_src[60], i_ci). Pointer-sized fields are
// read as uintptr and, where they reference a C string, copied out with
// readCString.
type debugInfoLayout struct {
	name, namewhat, what, source uintptr // pointer-sized field offsets
	currentLine, lineDefined, lastLineDefined,
	nups, nparams, isVararg, isTailcall int
	shortSrc int
}

var layout64 = debugInfoLayout{
	name: 8, namewhat: 16, what: 24, source: 32,
	currentLine: 40, lineDefined: 44, lastLineDefined: 48,
	nups: 52, nparams: 56, isVararg: 60, isTailcall: 64,
	shortSrc: 65,
}

// GetStack retrieves the activation record at level, then immediately
// decodes it into a DebugInfo value (spec §4.2: "debug-info retrieval at a
// given stack level"). Returns ok=false if the native call fails (no such
// level).
func (b *Binding) GetStack(L LuaState, level int32) (DebugInfo, bool) {
	buf := make([]byte, luaDebugSize)
	ar := uintptr(unsafe.Pointer(&buf[0]))

	if b.getStackRaw(L, level, ar) == 0 {
		return DebugInfo{}, false
	}
	if b.getInfoRaw(L, "nSlu", ar) == 0 {
		return DebugInfo{}, false
	}
	return decodeDebugInfo(buf), true
}

// GetInfo re-populates the fields selected by what on an already-retrieved
// activation record. Exposed separately from GetStack so callers that
// already hold a buffer (e.g. during a hook tick) can request additional
// fields without a second lua_getstack.
func (b *Binding) GetInfo(L LuaState, what string, buf []byte) (DebugInfo, bool) {
	if len(buf) < luaDebugSize {
		return DebugInfo{}, false
	}
	ar := uintptr(unsafe.Pointer(&buf[0]))
	if b.getInfoRaw(L, what, ar) == 0 {
		return DebugInfo{}, false
	}
	return decodeDebugInfo(buf), true
}

// StackBuffer retrieves the activation record at level into a fresh
// buffer without decoding it, for callers (GetLocal/SetLocal) that need to
// pass the same `lua_Debug *` the native API expects rather than a
// decoded DebugInfo value.
func (b *Binding) StackBuffer(L LuaState, level int32) ([]byte, bool) {
	buf := NewDebugBuffer()
	ar := uintptr(unsafe.Pointer(&buf[0]))
	if b.getStackRaw(L, level, ar) == 0 {
		return nil, false
	}
	return buf, true
}

func decodeDebugInfo(buf []byte) DebugInfo {
	l := layout64
	return DebugInfo{
		Name:            readCString(buf, l.name),
		What:            readCString(buf, l.what),
		Source:          readCString(buf, l.source),
		ShortSource:     readFixedCString(buf[l.shortSrc:]),
		CurrentLine:     int32(binary.LittleEndian.Uint32(buf[l.currentLine:])),
		LineDefined:     int32(binary.LittleEndian.Uint32(buf[l.lineDefined:])),
		LastLineDefined: int32(binary.LittleEndian.Uint32(buf[l.lastLineDefined:])),
		NumUpvalues:     int32(buf[l.nups]),
		NumParams:       int32(buf[l.nparams]),
		IsVararg:        buf[l.isVararg] != 0,
	}
}

// readCString dereferences the pointer-sized field at offset as a
// null-terminated C string and copies it into a Go string. Returns "" for
// a nil pointer, which the native API uses when a field wasn't requested
// or doesn't apply to this activation record.
func readCString(buf []byte, offset uintptr) string {
	ptr := uintptr(binary.LittleEndian.Uint64(buf[offset:]))
	if ptr == 0 {
		return ""
	}
	return goStringFromCString(ptr)
}

// readFixedCString reads a null-terminated string out of an inline fixed
// buffer (the 60-byte short_src field), rather than following a pointer.
func readFixedCString(fixed []byte) string {
	n := 0
	for n < len(fixed) && fixed[n] != 0 {
		n++
	}
	return string(fixed[:n])
}

// goStringFromCString walks memory at ptr until a NUL byte. Bounded at 4KiB
// as a defensive backstop against a corrupt pointer from a misbehaving
// native library; debug-info strings are never legitimately that long.
func goStringFromCString(ptr uintptr) string {
	const maxLen = 4096
	b := (*[maxLen]byte)(unsafe.Pointer(ptr)) //nolint:govet // raw C string walk
	n := 0
	for n < maxLen && b[n] != 0 {
		n++
	}
	return string(b[:n])
}

// GetLocal reads the name of local variable n at the activation record in
// buf (spec §4.2: "local variable read/write at a debug-info slot"). The
// native call also pushes the value onto the interpreter stack on success;
// callers pop it via the usual stack contract. ok is false if n is out of
// range for this activation record.
func (b *Binding) GetLocal(L LuaState, buf []byte, n int32) (name string, ok bool) {
	ar := uintptr(unsafe.Pointer(&buf[0]))
	namePtr := b.getLocalRaw(L, ar, n)
	if namePtr == 0 {
		return "", false
	}
	return goStringFromCString(namePtr), true
}

// SetLocal writes the value already pushed on top of the stack into local
// n, popping it on success.
func (b *Binding) SetLocal(L LuaState, buf []byte, n int32) (name string, ok bool) {
	ar := uintptr(unsafe.Pointer(&buf[0]))
	namePtr := b.setLocalRaw(L, ar, n)
	if namePtr == 0 {
		return "", false
	}
	return goStringFromCString(namePtr), true
}

// GetUpvalue reads upvalue n of the function at funcIndex.
func (b *Binding) GetUpvalue(L LuaState, funcIndex, n int32) (name string, ok bool) {
	namePtr := b.getUpvalueRaw(L, funcIndex, n)
	if namePtr == 0 {
		return "", false
	}
	return goStringFromCString(namePtr), true
}

// SetUpvalue writes the value on top of the stack into upvalue n.
func (b *Binding) SetUpvalue(L LuaState, funcIndex, n int32) (name string, ok bool) {
	namePtr := b.setUpvalueRaw(L, funcIndex, n)
	if namePtr == 0 {
		return "", false
	}
	return goStringFromCString(namePtr), true
}

// NewDebugBuffer allocates a zeroed activation-record buffer suitable for
// GetStack/GetInfo/GetLocal/SetLocal.
func NewDebugBuffer() []byte {
	return make([]byte, luaDebugSize)
}
