package dapsession

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch_Initialize_ReturnsCapabilities(t *testing.T) {
	s := newTestSession(t)
	resp, terminate := s.dispatch([]byte(`{"id":1,"method":"initialize"}`))
	assert.False(t, terminate)
	assert.Nil(t, resp.Error)
	caps, ok := resp.Result.(Capabilities)
	require.True(t, ok)
	assert.True(t, caps.SupportsConditionalBreakpoints)
}

func TestDispatch_UnknownMethod_ReturnsProtocolError(t *testing.T) {
	s := newTestSession(t)
	resp, terminate := s.dispatch([]byte(`{"id":2,"method":"nonsense"}`))
	assert.False(t, terminate)
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32600, resp.Error.Code)
	assert.Equal(t, "Unknown method: nonsense", resp.Error.Message)
}

func TestDispatch_Disconnect_SignalsTermination(t *testing.T) {
	s := newTestSession(t)
	_, terminate := s.dispatch([]byte(`{"id":3,"method":"disconnect"}`))
	assert.True(t, terminate)
}

func TestDispatch_SetBreakpoints_ReplacesCatalog(t *testing.T) {
	s := newTestSession(t)
	body := []byte(`{"id":4,"method":"setBreakpoints","params":{"source":{"path":"/x.src"},"breakpoints":[{"line":10,"condition":"i > 5"}]}}`)
	resp, _ := s.dispatch(body)
	assert.Nil(t, resp.Error)

	bps := s.bp.GetLineBreakpoints("/x.src")
	require.Len(t, bps, 1)
	assert.Equal(t, 10, bps[0].Line)
	assert.Equal(t, "i > 5", bps[0].Condition)
}

func TestDispatch_SetExceptionBreakpoints_RecordsFilters(t *testing.T) {
	s := newTestSession(t)
	body := []byte(`{"id":5,"method":"setExceptionBreakpoints","params":{"filters":["all"]}}`)
	_, _ = s.dispatch(body)
	assert.True(t, s.bp.ExceptionFilterActive("all"))
}

func TestDispatch_Continue_WithoutTargetReturnsNoDebugSessionError(t *testing.T) {
	s := newTestSession(t)
	resp, _ := s.dispatch([]byte(`{"id":6,"method":"continue"}`))
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32001, resp.Error.Code)
}

func TestDispatch_ConfigurationDone_Acknowledges(t *testing.T) {
	s := newTestSession(t)
	resp, terminate := s.dispatch([]byte(`{"id":7,"method":"configurationDone"}`))
	assert.False(t, terminate)
	assert.Nil(t, resp.Error)
	assert.True(t, s.configured)
}

func TestDispatch_Source_ReturnsNotImplemented(t *testing.T) {
	s := newTestSession(t)
	resp, _ := s.dispatch([]byte(`{"id":8,"method":"source"}`))
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32005, resp.Error.Code)
}
