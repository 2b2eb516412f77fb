package luastate

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfinder-dap/wayfinder/internal/config"
	"github.com/wayfinder-dap/wayfinder/internal/luaabi"
	"github.com/wayfinder-dap/wayfinder/internal/obslog"
	"github.com/wayfinder-dap/wayfinder/internal/wferr"
)

func TestLoadString_SuccessLeavesNothingPopped(t *testing.T) {
	b := fakeBinding(luaabi.V54)
	b.LoadBuffer = func(luaabi.LuaState, []byte, string) int32 { return statusOK }
	s := newTestState(b)

	err := s.LoadString("return 1", "=chunk")
	require.NoError(t, err)
}

func TestLoadString_FailurePopsErrorMessage(t *testing.T) {
	b := fakeBinding(luaabi.V54)
	var popped int32
	b.LoadBuffer = func(luaabi.LuaState, []byte, string) int32 { return 1 }
	b.GetTop = func(luaabi.LuaState) int32 { return 1 }
	b.ToLString = func(luaabi.LuaState, int32) string { return "syntax error" }
	b.Pop = func(_ luaabi.LuaState, n int32) { popped += n }
	s := newTestState(b)

	err := s.LoadString("(((", "=chunk")
	require.Error(t, err)
	var compileErr *wferr.InterpreterCompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, "syntax error", compileErr.Message)
	assert.Equal(t, int32(1), popped)
}

func TestLoadString_UnsupportedModeWarnsThroughLogger(t *testing.T) {
	b := fakeBinding(luaabi.V51)
	b.LoadBuffer = func(luaabi.LuaState, []byte, string) int32 { return statusOK }
	s := newTestState(b)
	var buf bytes.Buffer
	s.SetLogger(obslog.New(config.Logging{Backend: config.LoggingZerolog}, &buf))

	err := s.LoadString("return 1", "=chunk")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "chunk mode")
}

func TestLoadString_WithNoLoggerAttachedDoesNotPanic(t *testing.T) {
	b := fakeBinding(luaabi.V51)
	b.LoadBuffer = func(luaabi.LuaState, []byte, string) int32 { return statusOK }
	s := newTestState(b)

	err := s.LoadString("return 1", "=chunk")
	require.NoError(t, err)
}

func TestCallProtected_SuccessReturnsNil(t *testing.T) {
	b := fakeBinding(luaabi.V54)
	b.PCall = func(luaabi.LuaState, int32, int32, int32) int32 { return statusOK }
	s := newTestState(b)

	err := s.CallProtected(0, 1)
	require.NoError(t, err)
}

func TestCallProtected_FailurePopsRuntimeError(t *testing.T) {
	b := fakeBinding(luaabi.V54)
	b.PCall = func(luaabi.LuaState, int32, int32, int32) int32 { return 2 }
	b.GetTop = func(luaabi.LuaState) int32 { return 1 }
	b.ToLString = func(luaabi.LuaState, int32) string { return "boom" }
	b.Pop = func(luaabi.LuaState, int32) {}
	s := newTestState(b)

	err := s.CallProtected(0, 0)
	require.Error(t, err)
	var runtimeErr *wferr.InterpreterRuntimeError
	require.ErrorAs(t, err, &runtimeErr)
	assert.Equal(t, "boom", runtimeErr.Message)
}

func TestEvaluateInFrame_CompileErrorPropagates(t *testing.T) {
	b := fakeBinding(luaabi.V54)
	b.LoadBuffer = func(luaabi.LuaState, []byte, string) int32 { return 1 }
	b.GetTop = func(luaabi.LuaState) int32 { return 1 }
	b.ToLString = func(luaabi.LuaState, int32) string { return "unexpected symbol" }
	b.Pop = func(luaabi.LuaState, int32) {}
	s := newTestState(b)

	_, err := s.EvaluateInFrame(0, "+")
	require.Error(t, err)
	var compileErr *wferr.InterpreterCompileError
	require.ErrorAs(t, err, &compileErr)
}

func TestEvaluateInFrame_SuccessReturnsConvertedValue(t *testing.T) {
	b := fakeBinding(luaabi.V54)
	b.LoadBuffer = func(luaabi.LuaState, []byte, string) int32 { return statusOK }
	b.PCall = func(luaabi.LuaState, int32, int32, int32) int32 { return statusOK }
	b.GetTop = func(luaabi.LuaState) int32 { return 1 }
	b.Type = func(luaabi.LuaState, int32) int32 { return tagNumber }
	b.ToNumber = func(luaabi.LuaState, int32) float64 { return 7 }
	b.Pop = func(luaabi.LuaState, int32) {}
	s := newTestState(b)

	v, err := s.EvaluateInFrame(1, "7")
	require.NoError(t, err)
	assert.Equal(t, 7.0, v.Num)
}

func TestEvaluate_DelegatesToEvaluateInFrame(t *testing.T) {
	b := fakeBinding(luaabi.V54)
	b.LoadBuffer = func(luaabi.LuaState, []byte, string) int32 { return statusOK }
	b.PCall = func(luaabi.LuaState, int32, int32, int32) int32 { return statusOK }
	b.GetTop = func(luaabi.LuaState) int32 { return 1 }
	b.Type = func(luaabi.LuaState, int32) int32 { return tagString }
	b.ToLString = func(luaabi.LuaState, int32) string { return "ok" }
	b.Pop = func(luaabi.LuaState, int32) {}
	s := newTestState(b)

	v, err := s.Evaluate(0, `"ok"`)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(v.Str))
}
