package luastate

import (
	"github.com/wayfinder-dap/wayfinder/internal/value"
)

// PushNil pushes a nil value.
func (s *State) PushNil() { s.binding.PushNil(s.L) }

// PushBool pushes a boolean value.
func (s *State) PushBool(b bool) {
	var i int32
	if b {
		i = 1
	}
	s.binding.PushBoolean(s.L, i)
}

// PushNumber pushes a floating-point number.
func (s *State) PushNumber(n float64) { s.binding.PushNumber(s.L, n) }

// PushInteger pushes an integer (represented natively as a lua_Integer
// where the loaded version supports it; all four supported versions do).
func (s *State) PushInteger(n int64) { s.binding.PushInteger(s.L, n) }

// PushString pushes a copy of s as a Lua string.
func (s *State) PushString(str string) { s.binding.PushString(s.L, str) }

// PushLightUserdata pushes an opaque pointer value.
func (s *State) PushLightUserdata(p uintptr) { s.binding.PushLightUserdata(s.L, p) }

// PushValue pushes a generic Value, dispatching on its Kind. Reference
// kinds (Table/Function/UserData/Thread) are pushed by a round trip through
// the registry, via PushRegistryRef on v.Ref.
func (s *State) PushValue(v value.Value) {
	switch v.Kind {
	case value.Nil:
		s.PushNil()
	case value.Boolean:
		s.PushBool(v.Bool)
	case value.Number:
		s.PushNumber(v.Num)
	case value.String:
		s.PushString(string(v.Str))
	default:
		s.PushRegistryRef(value.Ref(v.Ref))
	}
}

// ToValue converts the stack value at idx into a materialized Value,
// per spec §4.2's "single mapping from the numeric type tag to the
// semantic variant." Reference types are immediately registered so the
// caller receives a stable Ref rather than a raw stack index, per the
// wrapper's invariant that it "never retains a borrowed raw pointer across
// a call that might reallocate internal buffers."
func (s *State) ToValue(idx int32) value.Value {
	switch s.binding.Type(s.L, idx) {
	case tagNil:
		return value.Nil_()
	case tagBoolean:
		return value.Bool(s.binding.ToBoolean(s.L, idx) != 0)
	case tagNumber:
		return value.Num(s.binding.ToNumber(s.L, idx))
	case tagString:
		return value.Str(s.binding.ToLString(s.L, idx))
	case tagTable:
		return value.TableRef(s.refAt(idx), s.tableLength(idx))
	case tagFunction:
		return value.FuncRef(s.refAt(idx), "")
	case tagUserdata, tagLightUserdata:
		return value.UserDataRef(s.refAt(idx))
	case tagThread:
		return value.ThreadRef(s.refAt(idx))
	default:
		return value.Nil_()
	}
}

// refAt creates a registry reference for the value at idx without
// disturbing the rest of the stack: push a copy, then ref that copy (ref
// pops its argument).
func (s *State) refAt(idx int32) value.Ref {
	s.binding.PushValue(s.L, idx)
	return s.Ref()
}

func (s *State) tableLength(idx int32) int {
	return int(s.binding.Length(s.L, idx))
}
