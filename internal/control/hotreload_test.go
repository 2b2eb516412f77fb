package control

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfinder-dap/wayfinder/internal/value"
)

type fakeGlobals struct {
	order []string
	vals  map[string]value.Value
}

func (f *fakeGlobals) GlobalNames() []string { return f.order }

func (f *fakeGlobals) ReadGlobal(name string) (value.Value, bool) {
	v, ok := f.vals[name]
	return v, ok
}

func (f *fakeGlobals) WriteGlobal(name string, v value.Value) error {
	if f.vals == nil {
		f.vals = make(map[string]value.Value)
	}
	f.vals[name] = v
	return nil
}

func TestCaptureGlobals_WalksAllNames(t *testing.T) {
	fg := &fakeGlobals{order: []string{"score", "t"}, vals: map[string]value.Value{
		"score": value.Num(10),
		"t":     value.TableRef(value.Ref(1), 0),
	}}
	got := CaptureGlobals(fg, NewReloadCycleGuard())
	require.Len(t, got, 2)
	assert.False(t, got[0].Complex)
	assert.True(t, got[1].Complex)
}

func TestCaptureGlobals_CycleGuardSkipsRevisitedRef(t *testing.T) {
	fg := &fakeGlobals{order: []string{"a", "b"}, vals: map[string]value.Value{
		"a": value.TableRef(value.Ref(5), 0),
		"b": value.TableRef(value.Ref(5), 0),
	}}
	got := CaptureGlobals(fg, NewReloadCycleGuard())
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Name)
}

func TestPerformReload_RestoresSimpleValues(t *testing.T) {
	fg := &fakeGlobals{order: []string{"score"}, vals: map[string]value.Value{"score": value.Num(99)}}

	res := PerformReload(fg, fg, func() error {
		fg.vals["score"] = value.Num(0)
		return nil
	})

	require.True(t, res.Success())
	assert.Equal(t, 1, res.RestoredCount)
	v, ok := fg.ReadGlobal("score")
	require.True(t, ok)
	assert.Equal(t, float64(99), v.Num)
}

func TestPerformReload_ComplexValuesResetToNilWithWarning(t *testing.T) {
	fg := &fakeGlobals{order: []string{"t"}, vals: map[string]value.Value{"t": value.TableRef(value.Ref(1), 0)}}

	res := PerformReload(fg, fg, func() error { return nil })

	require.True(t, res.Success())
	v, ok := fg.ReadGlobal("t")
	require.True(t, ok)
	assert.Equal(t, value.Nil, v.Kind)

	var sawWarning bool
	for _, d := range res.Diagnostics {
		if d.Severity == SeverityWarning {
			sawWarning = true
		}
	}
	assert.True(t, sawWarning)
}

func TestPerformReload_CompileFailureSkipsRestore(t *testing.T) {
	fg := &fakeGlobals{order: []string{"score"}, vals: map[string]value.Value{"score": value.Num(5)}}

	res := PerformReload(fg, fg, func() error {
		return errors.New("compile error")
	})

	require.Error(t, res.LoadErr)
	assert.False(t, res.Success())
	assert.Equal(t, 0, res.RestoredCount)
	v, _ := fg.ReadGlobal("score")
	assert.Equal(t, float64(5), v.Num, "globals must be untouched on compile failure")
}

func TestReloadCycleGuard_DetectsRevisit(t *testing.T) {
	g := NewReloadCycleGuard()
	assert.False(t, g.Visit(value.Ref(1)))
	assert.True(t, g.Visit(value.Ref(1)))
	assert.False(t, g.Visit(value.Ref(2)))
}

func TestCapabilityDiagnostics_AlwaysPresent(t *testing.T) {
	diags := CapabilityDiagnostics()
	assert.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, SeverityInfo, d.Severity)
	}
}
