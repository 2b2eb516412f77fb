package dapsession

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wayfinder-dap/wayfinder/internal/config"
	"github.com/wayfinder-dap/wayfinder/internal/obslog"
	"github.com/wayfinder-dap/wayfinder/internal/value"
)

func TestEncodeDecodeUpvalueReference_RoundTrips(t *testing.T) {
	ref := encodeUpvalueReference(3, 2)
	frame, slot := decodeUpvalueReference(ref)
	assert.Equal(t, 3, frame)
	assert.Equal(t, 2, slot)
	assert.True(t, isUpvalueReference(ref))
}

func TestIsUpvalueReference_FalseForFixedSentinels(t *testing.T) {
	assert.False(t, isUpvalueReference(refGlobals))
	assert.False(t, isUpvalueReference(refTableExpansion))
	assert.False(t, isUpvalueReference(0))
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return New(config.Default(), obslog.New(config.Logging{Backend: config.LoggingZerolog}, discardWriter{}))
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestVariableRefFor_NonTableReturnsZero(t *testing.T) {
	s := newTestSession(t)
	assert.Equal(t, 0, s.variableRefFor(value.Num(42)))
	assert.Equal(t, 0, s.variableRefFor(value.Str("x")))
}

func TestVariableRefFor_TableRecordsExpansionTarget(t *testing.T) {
	s := newTestSession(t)
	tbl := value.TableRef(value.Ref(5), 2)
	ref := s.variableRefFor(tbl)
	assert.Equal(t, refTableExpansion, ref)
	assert.True(t, s.hasExpandTarget)
	assert.Equal(t, value.Ref(5), s.expandTarget.Ref)
}

func TestVariables_NoTargetReturnsNoDebugSessionError(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Variables(refGlobals)
	assert.Error(t, err)
}
