package luastate

import "github.com/wayfinder-dap/wayfinder/internal/value"

// LocalAt reads local variable n (1-based, per the native convention) at
// call-stack level, returning its name and materialized value (spec
// §4.2/§4.3.6: "local variable read at a debug-info slot"). ok is false if
// level or n is out of range.
func (s *State) LocalAt(level int32, n int32) (name string, v value.Value, ok bool) {
	buf, ok := s.binding.StackBuffer(s.L, level)
	if !ok {
		return "", value.Nil_(), false
	}
	name, ok = s.binding.GetLocal(s.L, buf, n)
	if !ok {
		return "", value.Nil_(), false
	}
	v = s.ToValue(s.StackTop())
	s.Pop(1)
	return name, v, true
}

// SetLocalAt writes v into local variable n at call-stack level.
func (s *State) SetLocalAt(level int32, n int32, v value.Value) (name string, ok bool) {
	buf, ok := s.binding.StackBuffer(s.L, level)
	if !ok {
		return "", false
	}
	s.PushValue(v)
	name, ok = s.binding.SetLocal(s.L, buf, n)
	if !ok {
		// SetLocal only pops the pushed value on success; undo the push.
		s.Pop(1)
		return "", false
	}
	return name, true
}

// FunctionAt materializes the function value of the activation record at
// call-stack level, for callers (UpvalueAtFrame) that need a stack index to
// address its upvalues rather than a debug-info name/source summary.
func (s *State) FunctionAt(level int32) (value.Value, bool) {
	buf, ok := s.binding.StackBuffer(s.L, level)
	if !ok {
		return value.Nil_(), false
	}
	if _, ok := s.binding.GetInfo(s.L, "f", buf); !ok {
		return value.Nil_(), false
	}
	v := s.ToValue(s.StackTop())
	s.Pop(1)
	return v, true
}

// UpvalueAtFrame reads upvalue n of the function running at call-stack
// level, resolving the function value first via FunctionAt (spec §4.3.6:
// "reference < −1000 ... enumerate upvalues of the function at that
// frame").
func (s *State) UpvalueAtFrame(level, n int32) (name string, v value.Value, ok bool) {
	fn, ok := s.FunctionAt(level)
	if !ok || fn.Kind != value.Function {
		return "", value.Nil_(), false
	}
	s.PushRegistryRef(fn.Ref)
	funcIndex := s.StackTop()
	name, v, ok = s.UpvalueAt(funcIndex, n)
	s.Pop(1)
	return name, v, ok
}

// UpvalueAt reads upvalue n of the function value currently at funcIndex
// on the stack.
func (s *State) UpvalueAt(funcIndex, n int32) (name string, v value.Value, ok bool) {
	name, ok = s.binding.GetUpvalue(s.L, funcIndex, n)
	if !ok {
		return "", value.Nil_(), false
	}
	v = s.ToValue(s.StackTop())
	s.Pop(1)
	return name, v, true
}

// SetUpvalueAt writes v into upvalue n of the function value at funcIndex.
func (s *State) SetUpvalueAt(funcIndex, n int32, v value.Value) (name string, ok bool) {
	s.PushValue(v)
	name, ok = s.binding.SetUpvalue(s.L, funcIndex, n)
	if !ok {
		s.Pop(1)
		return "", false
	}
	return name, true
}
