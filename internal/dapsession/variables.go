package dapsession

import (
	"strings"

	"github.com/wayfinder-dap/wayfinder/internal/value"
	"github.com/wayfinder-dap/wayfinder/internal/wferr"
)

// Variable reference encoding, per spec §4.3.6. −1 and −2 are fixed
// sentinels; references < −1000 pack a frame ID and upvalue slot. −2 is a
// deliberately dual-use sentinel per spec §9's Open Question: rather than
// give every expandable table its own reference (which would require a
// growing per-episode table registry the spec doesn't call for), the
// session tracks exactly one "last materialized expandable table" and
// reuses −2 for it, matching "a table whose handle is already on the stack"
// — singular, per the wording in 4.3.6.
const (
	refGlobals        = -1
	refTableExpansion = -2
	upvalueBase       = 1000
)

func encodeUpvalueReference(frame, slot int) int {
	return -(frame*upvalueBase + slot)
}

func decodeUpvalueReference(ref int) (frame, slot int) {
	n := -ref
	return n / upvalueBase, n % upvalueBase
}

func isUpvalueReference(ref int) bool { return ref < -upvalueBase }

// dapVariable is the `variables` response body's per-entry shape.
type dapVariable struct {
	Name               string `json:"name"`
	Value              string `json:"value"`
	Type               string `json:"type"`
	VariablesReference int    `json:"variablesReference"`
}

// variableRefFor assigns the outgoing variablesReference for a materialized
// value: 0 for anything that can't be expanded further, or refTableExpansion
// after recording v as the session's current expansion target for a table.
func (s *Session) variableRefFor(v value.Value) int {
	if v.Kind != value.Table {
		return 0
	}
	s.expandTarget = v
	s.hasExpandTarget = true
	return refTableExpansion
}

// Variables materializes the named scope per spec §4.3.6.
func (s *Session) Variables(reference int) ([]dapVariable, error) {
	if !s.hasTarget() {
		return nil, &wferr.NoDebugSessionError{}
	}

	switch {
	case reference == refGlobals:
		return s.globalVariables(), nil
	case reference == refTableExpansion:
		return s.tableVariables(), nil
	case isUpvalueReference(reference):
		frame, slot := decodeUpvalueReference(reference)
		return s.upvalueVariables(frame, slot), nil
	default:
		return s.localVariables(reference), nil
	}
}

func (s *Session) globalVariables() []dapVariable {
	const maxGlobals = 100
	vals := s.state.GlobalVariables(maxGlobals)
	out := make([]dapVariable, 0, len(vals))
	for name, v := range vals {
		out = append(out, dapVariable{Name: name, Value: v.Render(), Type: v.DAPType(), VariablesReference: s.variableRefFor(v)})
	}
	return out
}

func (s *Session) tableVariables() []dapVariable {
	if !s.hasExpandTarget {
		return nil
	}
	const maxTableEntries = 50
	vals := s.state.TableVariables(s.expandTarget.Ref, maxTableEntries)
	out := make([]dapVariable, 0, len(vals))
	for name, v := range vals {
		out = append(out, dapVariable{Name: name, Value: v.Render(), Type: v.DAPType(), VariablesReference: s.variableRefFor(v)})
	}
	return out
}

func (s *Session) localVariables(frame int) []dapVariable {
	var out []dapVariable
	for slot := int32(1); ; slot++ {
		name, v, ok := s.state.LocalAt(int32(frame), slot)
		if !ok {
			break
		}
		if strings.HasPrefix(name, "(") {
			continue
		}
		out = append(out, dapVariable{Name: name, Value: v.Render(), Type: v.DAPType(), VariablesReference: s.variableRefFor(v)})
	}
	return out
}

func (s *Session) upvalueVariables(frame, startSlot int) []dapVariable {
	var out []dapVariable
	for slot := int32(startSlot); ; slot++ {
		name, v, ok := s.state.UpvalueAtFrame(int32(frame), slot)
		if !ok {
			break
		}
		out = append(out, dapVariable{Name: name, Value: v.Render(), Type: v.DAPType(), VariablesReference: s.variableRefFor(v)})
	}
	return out
}
