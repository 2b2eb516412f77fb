package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfinder-dap/wayfinder/internal/value"
)

func TestSampleWatchpoints_DetectsChange(t *testing.T) {
	mgr := NewBreakpointManager()
	bp := mgr.AddDataBreakpoint(DataBreakpoint{Path: "x", Kind: DataGlobal, Access: AccessReadWrite, PreviousValue: "1"})

	changes := SampleWatchpoints(mgr, []WatchSample{{ID: bp.ID, Value: "2"}})
	require.Len(t, changes, 1)
	assert.Equal(t, "1", changes[0].Previous)
	assert.Equal(t, "2", changes[0].Current)
}

func TestSampleWatchpoints_NoChange(t *testing.T) {
	mgr := NewBreakpointManager()
	bp := mgr.AddDataBreakpoint(DataBreakpoint{Path: "x", Kind: DataGlobal, Access: AccessRead, PreviousValue: "same"})

	changes := SampleWatchpoints(mgr, []WatchSample{{ID: bp.ID, Value: "same"}})
	assert.Empty(t, changes)
}

func TestSampleWatchpoints_DetectsChangeOnWriteOnly(t *testing.T) {
	mgr := NewBreakpointManager()
	bp := mgr.AddDataBreakpoint(DataBreakpoint{Path: "x", Kind: DataGlobal, Access: AccessWrite, PreviousValue: "1"})

	changes := SampleWatchpoints(mgr, []WatchSample{{ID: bp.ID, Value: "2"}})
	require.Len(t, changes, 1)
	assert.Equal(t, "1", changes[0].Previous)
	assert.Equal(t, "2", changes[0].Current)
}

func TestSampleWatchpoints_SkipsErroredSample(t *testing.T) {
	mgr := NewBreakpointManager()
	bp := mgr.AddDataBreakpoint(DataBreakpoint{Path: "x", Kind: DataGlobal, Access: AccessRead, PreviousValue: "1"})

	changes := SampleWatchpoints(mgr, []WatchSample{{ID: bp.ID, Value: "2", Err: assertErr()}})
	assert.Empty(t, changes)
}

func assertErr() error { return errSentinel }

var errSentinel = &sentinelError{}

type sentinelError struct{}

func (e *sentinelError) Error() string { return "sentinel" }

func TestShouldStopOnChange_ConditionFalseSkips(t *testing.T) {
	change := WatchChange{Breakpoint: &DataBreakpoint{Condition: "false"}}
	eval := EvaluatorFunc(func(int, string) (value.Value, error) { return value.Bool(false), nil })
	ok, err := ShouldStopOnChange(eval, 0, change)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestShouldStopOnChange_NoConditionStops(t *testing.T) {
	change := WatchChange{Breakpoint: &DataBreakpoint{}}
	eval := EvaluatorFunc(func(int, string) (value.Value, error) { return value.Nil_(), nil })
	ok, err := ShouldStopOnChange(eval, 0, change)
	require.NoError(t, err)
	assert.True(t, ok)
}
