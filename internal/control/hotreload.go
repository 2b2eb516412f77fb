package control

import (
	"github.com/wayfinder-dap/wayfinder/internal/value"
)

// Severity is the level of a hot-reload diagnostic.
type Severity string

const (
	SeverityInfo    Severity = "Info"
	SeverityWarning Severity = "Warning"
	SeverityError   Severity = "Error"
)

// Diagnostic is one message produced while performing a reload.
type Diagnostic struct {
	Message  string
	Severity Severity
}

// PreservedBinding is one top-level global captured before a hot reload,
// per spec §4.3.7 step 1: simple kinds (Nil/Boolean/Number/String) are
// recorded directly; complex kinds (table/function/userdata/thread) are
// recorded by registry reference and flagged as "may not be fully
// preserved" — recording them at all (rather than skipping) is what lets
// RestoreGlobals tell the difference between "never existed" and
// "existed but can't come back".
type PreservedBinding struct {
	Name    string
	Value   value.Value
	Complex bool
}

func isComplexKind(k value.Kind) bool {
	switch k {
	case value.Table, value.Function, value.UserData, value.Thread:
		return true
	default:
		return false
	}
}

// StateReader/StateWriter are implemented by the L1 interpreter state
// wrapper, giving hot reload read/write access to the global table without
// this package depending on luastate directly.
type StateReader interface {
	// GlobalNames lists every top-level key currently in the global
	// table, in an unspecified but stable-for-one-call order.
	GlobalNames() []string
	ReadGlobal(name string) (value.Value, bool)
}

type StateWriter interface {
	WriteGlobal(name string, v value.Value) error
}

// CaptureGlobals walks the full global table (spec §4.3.7 step 1),
// consulting guard for every complex value. Only the top-level binding is
// recorded, never its contents. When a complex value's registry reference
// was already visited (two globals naming the same table, say), the later
// name is skipped: it is not recorded, so RestoreGlobals neither restores
// nor resets it, and the earlier binding is not reused for it.
func CaptureGlobals(r StateReader, guard *ReloadCycleGuard) []PreservedBinding {
	names := r.GlobalNames()
	out := make([]PreservedBinding, 0, len(names))
	for _, name := range names {
		v, ok := r.ReadGlobal(name)
		if !ok {
			continue
		}
		complex := isComplexKind(v.Kind)
		if complex && guard != nil && guard.Visit(v.Ref) {
			continue
		}
		out = append(out, PreservedBinding{Name: name, Value: v, Complex: complex})
	}
	return out
}

// RestoreGlobals writes back captured bindings after the new chunk has run
// (spec §4.3.7 step 4): simple values are re-assigned verbatim; complex
// values are set to Nil instead, each producing a Warning diagnostic,
// since a registry reference from the previous chunk's generation cannot
// be safely re-attached to the new one.
func RestoreGlobals(w StateWriter, bindings []PreservedBinding) (restored int, diagnostics []Diagnostic, err error) {
	for _, b := range bindings {
		if b.Complex {
			if werr := w.WriteGlobal(b.Name, value.Nil_()); werr != nil {
				return restored, diagnostics, werr
			}
			diagnostics = append(diagnostics, Diagnostic{
				Severity: SeverityWarning,
				Message:  "global \"" + b.Name + "\" was a " + b.Value.Kind.String() + "; reset to nil across reload (complex values are not preserved)",
			})
			restored++
			continue
		}
		if werr := w.WriteGlobal(b.Name, b.Value); werr != nil {
			return restored, diagnostics, werr
		}
		restored++
	}
	return restored, diagnostics, nil
}

// CapabilityDiagnostics lists the fixed set of deliberately-unimplemented
// hot-reload capabilities (spec §4.3.7 step 5), surfaced once per reload so
// IDE users see the limits instead of silently losing state.
func CapabilityDiagnostics() []Diagnostic {
	return []Diagnostic{
		{Severity: SeverityInfo, Message: "function identity is not preserved across reload"},
		{Severity: SeverityInfo, Message: "closure upvalue rewiring is not performed across reload"},
	}
}

// ReloadCycleGuard detects a previously captured registry reference being
// encountered again during state capture: a visited set keyed by registry
// reference. It only reports the re-encounter; it holds no captured
// representation to hand back, and CaptureGlobals skips the re-encountered
// name. It is plain map[value.Ref]bool, reset once per reload.
type ReloadCycleGuard struct {
	visited map[value.Ref]bool
}

// NewReloadCycleGuard returns an empty guard, ready for one reload's walk.
func NewReloadCycleGuard() *ReloadCycleGuard {
	return &ReloadCycleGuard{visited: make(map[value.Ref]bool)}
}

// Visit records ref as visited, returning true if it was already visited.
func (g *ReloadCycleGuard) Visit(ref value.Ref) (alreadyVisited bool) {
	if g.visited[ref] {
		return true
	}
	g.visited[ref] = true
	return false
}

// ReloadResult summarizes the outcome of one hot-reload attempt, shaped to
// map directly onto the DAP-facing HotReloadResult{success, warnings,
// message} type spec.md's data model defines.
type ReloadResult struct {
	Preserved     []PreservedBinding
	RestoredCount int
	Diagnostics   []Diagnostic
	LoadErr       error
	RunErr        error
	RestoreErr    error
}

// Success reports whether the reload completed without a load, run, or
// restore failure.
func (r ReloadResult) Success() bool {
	return r.LoadErr == nil && r.RunErr == nil && r.RestoreErr == nil
}

// PerformReload runs the capture/compile/execute/restore sequence from
// spec §4.3.7. compileAndRun is expected to load the new chunk and execute
// it with zero arguments expecting one result, returning a LoadErr-shaped
// failure for a compile error and a RunErr-shaped one for an execution
// error — PerformReload itself is agnostic to which, treating either as
// "do not attempt restore".
func PerformReload(r StateReader, w StateWriter, compileAndRun func() error) ReloadResult {
	var res ReloadResult
	guard := NewReloadCycleGuard()
	res.Preserved = CaptureGlobals(r, guard)

	if err := compileAndRun(); err != nil {
		res.LoadErr = err
		return res
	}

	restored, diags, err := RestoreGlobals(w, res.Preserved)
	res.RestoredCount = restored
	res.Diagnostics = append(diags, CapabilityDiagnostics()...)
	res.RestoreErr = err
	return res
}
