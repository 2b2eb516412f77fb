package luastate

import (
	"github.com/wayfinder-dap/wayfinder/internal/luaabi"
	"github.com/wayfinder-dap/wayfinder/internal/value"
)

// registryIndex is LUA_REGISTRYINDEX, stable across V51..V54 as a pseudo
// index (its numeric value differs between 5.1 and 5.2+, but luaL_ref/
// luaL_unref take it as a plain table index argument, so the binding
// resolves the correct constant per version here rather than in luaabi).
func (s *State) registryIndex() int32 {
	if s.binding.HostVersionOf() == luaabi.V51 {
		return -10000
	}
	return -1001000
}

// Ref pops the value on top of the stack and returns a stable registry
// reference to it (spec §4.2: "registry reference create/release, used as
// stable cross-call identities for tables, functions, userdata").
func (s *State) Ref() value.Ref {
	return value.Ref(s.binding.Ref(s.L, s.registryIndex()))
}

// PushRegistryRef pushes the value previously registered under ref.
func (s *State) PushRegistryRef(ref value.Ref) {
	s.binding.RawGetI(s.L, s.registryIndex(), int32(ref))
}

// ReleaseRef releases a previously created registry reference, allowing it
// to be reused and the referenced value to be garbage collected.
func (s *State) ReleaseRef(ref value.Ref) {
	s.binding.Unref(s.L, s.registryIndex(), int32(ref))
}
