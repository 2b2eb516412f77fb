package luaabi

// Pseudo-indices differ between 5.1 and the 5.2+ family: 5.1 exposes
// LUA_GLOBALSINDEX directly; 5.2+ removed it in favor of a registry slot
// (LUA_RIDX_GLOBALS) fetched through lua_pushglobaltable/lua_rawgeti.
const (
	lua51GlobalsIndex   int32 = -10002
	lua52PlusRegistryIndex int32 = -1001000
	lua52PlusRidxGlobals   int32 = 2
)

// PushGlobalsTable pushes the globals table onto the stack, per spec
// §4.1's "global-table access" shim: 5.2+ have a dedicated primitive;
// 5.1 emulates it by pushing the LUA_GLOBALSINDEX pseudo-index value,
// which accesses the same fixed slot the C API treats as the globals
// table in that version.
func (b *Binding) PushGlobalsTable(L LuaState) {
	if b.Capabilities.HasPushGlobalTable && b.pushGlobalTable != nil {
		b.pushGlobalTable(L)
		return
	}
	b.PushValue(L, lua51GlobalsIndex)
}

// Length returns the length of the value at idx, dispatching to whichever
// length primitive the loaded version exposes (spec §4.1: "length operator
// semantics differ; the binding exposes a single length call that
// dispatches to whichever primitive is present").
func (b *Binding) Length(L LuaState, idx int32) int64 {
	if b.Capabilities.HasRawLen && b.rawLen != nil {
		return b.rawLen(L, idx)
	}
	if b.objLen != nil {
		return b.objLen(L, idx)
	}
	return 0
}

// ProtectedCallWarning is returned (non-nil) by ProtectedCall when a
// continuation was supplied on a version that cannot honor it, per spec
// §4.1: "passing a non-null continuation on the oldest version emits a
// warning (continuations silently dropped) and falls back."
type ProtectedCallWarning struct {
	Message string
}

// ProtectedCall invokes the loaded pcall/pcallk symbol. A non-zero
// continuation is only meaningful on versions with HasPCallK; on 5.1 it is
// silently dropped and a warning is returned alongside the call's own
// result code so the caller can surface it without failing the call.
func (b *Binding) ProtectedCall(L LuaState, nargs, nresults, errfunc int32, continuation uintptr) (status int32, warning *ProtectedCallWarning) {
	if continuation != 0 && !b.Capabilities.HasPCallK {
		warning = &ProtectedCallWarning{Message: "continuation requested but unsupported on Lua " + b.Version.String() + "; falling back to non-continuation pcall"}
	}
	return b.PCall(L, nargs, nresults, errfunc), warning
}

// LoadChunkWarning mirrors ProtectedCallWarning for the chunk-load mode
// flag (spec §4.1: "the binding warns when a mode is supplied on the
// oldest version").
type LoadChunkWarning struct {
	Message string
}

// LoadChunk loads a chunk from buf under chunkname. mode ("t"/"b"/"bt") is
// only honored on versions with HasLoadBufferX; on 5.1 it is dropped.
func (b *Binding) LoadChunk(L LuaState, buf []byte, chunkname, mode string) (status int32, warning *LoadChunkWarning) {
	if mode != "" && !b.Capabilities.HasLoadBufferX {
		warning = &LoadChunkWarning{Message: "chunk mode " + mode + " requested but unsupported on Lua " + b.Version.String() + "; ignoring"}
	}
	return b.LoadBuffer(L, buf, chunkname), warning
}
