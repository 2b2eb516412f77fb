package luastate

import "github.com/wayfinder-dap/wayfinder/internal/value"

// TableVariables enumerates a table already materialized as ref (spec
// §4.3.6: "reference == −2: expand a table whose handle is already on the
// stack"), generalizing GlobalVariables' push/Next/cap loop to an arbitrary
// table instead of specifically the globals table.
func (s *State) TableVariables(ref value.Ref, maxEntries int) map[string]value.Value {
	s.PushRegistryRef(ref)
	tableIdx := s.StackTop()

	out := make(map[string]value.Value)
	s.PushNil()
	for len(out) < maxEntries && s.binding.Next(s.L, tableIdx) != 0 {
		keyIdx := s.StackTop() - 1
		valIdx := s.StackTop()
		key := s.renderKey(keyIdx)
		out[key] = s.ToValue(valIdx)
		s.Pop(1)
	}
	s.SetStackTop(tableIdx - 1)
	return out
}

// renderKey renders a table key for display, stringifying non-string keys
// (spec §4.3.5's Render rules apply to values; keys use the same rendering
// so a numeric- or table-keyed entry still has a readable name).
func (s *State) renderKey(idx int32) string {
	if s.binding.Type(s.L, idx) == tagString {
		return s.binding.ToLString(s.L, idx)
	}
	return s.ToValue(idx).Render()
}

// ReadGlobal reads the named global, implementing control.StateReader.
//
// lua_getglobal's return value (the pushed value's type tag) is only
// meaningful from 5.4 onward — 5.1 through 5.3 declare it void — so this
// reads the type off the stack after the push instead of trusting the
// call's return value, keeping the check correct on every supported
// version.
func (s *State) ReadGlobal(name string) (value.Value, bool) {
	s.binding.GetGlobal(s.L, name)
	defer s.Pop(1)
	if s.binding.Type(s.L, s.StackTop()) == tagNil {
		return value.Nil_(), false
	}
	return s.ToValue(s.StackTop()), true
}

// WriteGlobal assigns v to the named global, implementing
// control.StateWriter.
func (s *State) WriteGlobal(name string, v value.Value) error {
	s.PushValue(v)
	s.binding.SetGlobal(s.L, name)
	return nil
}

// GlobalNames enumerates every top-level key in the global table, by
// standard key iteration (spec §4.3.6: "enumerate global table by
// standard key iteration"), implementing control.StateReader.
func (s *State) GlobalNames() []string {
	s.binding.PushGlobalsTable(s.L)
	globalsIdx := s.StackTop()

	var names []string
	s.PushNil() // first key
	for s.binding.Next(s.L, globalsIdx) != 0 {
		// stack: ... globals key value
		if s.binding.Type(s.L, s.StackTop()-1) == tagString {
			names = append(names, s.binding.ToLString(s.L, s.StackTop()-1))
		}
		s.Pop(1) // pop value, keep key for the next lua_next call
	}
	s.Pop(1) // pop the globals table itself
	return names
}

// GlobalVariables enumerates the global table for a `variables(-1)`
// request (spec §4.3.6), capped at maxEntries to bound DAP response size.
func (s *State) GlobalVariables(maxEntries int) map[string]value.Value {
	s.binding.PushGlobalsTable(s.L)
	globalsIdx := s.StackTop()

	out := make(map[string]value.Value)
	s.PushNil()
	for len(out) < maxEntries && s.binding.Next(s.L, globalsIdx) != 0 {
		keyIdx := s.StackTop() - 1
		valIdx := s.StackTop()
		if s.binding.Type(s.L, keyIdx) == tagString {
			out[s.binding.ToLString(s.L, keyIdx)] = s.ToValue(valIdx)
		}
		s.Pop(1)
	}
	// lua_next leaves one key on the stack if the cap stopped iteration
	// early; always balance the stack back to globalsIdx-1 before return.
	s.SetStackTop(globalsIdx - 1)
	return out
}
