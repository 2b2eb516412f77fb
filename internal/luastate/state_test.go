package luastate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfinder-dap/wayfinder/internal/luaabi"
)

// fakeBinding builds a minimal *luaabi.Binding exercising only the
// exported function fields a given test needs; Binding's raw debug-info
// fields are unexported and can only be populated by luaabi itself
// (against a real loaded interpreter), so tests here stick to the
// exported stack/global/registry surface.
func fakeBinding(version luaabi.HostVersion) *luaabi.Binding {
	return &luaabi.Binding{Version: version}
}

func TestNew_NullStateReturnsLoadError(t *testing.T) {
	b := fakeBinding(luaabi.V54)
	b.NewState = func() luaabi.LuaState { return 0 }

	s, err := New(b)
	require.Error(t, err)
	assert.Nil(t, s)
}

func TestNew_OpensLibsOnSuccess(t *testing.T) {
	b := fakeBinding(luaabi.V54)
	var opened bool
	b.NewState = func() luaabi.LuaState { return 1 }
	b.OpenLibs = func(luaabi.LuaState) { opened = true }

	s, err := New(b)
	require.NoError(t, err)
	assert.True(t, opened)
	assert.False(t, s.Closed())
}

func TestClose_IsIdempotent(t *testing.T) {
	b := fakeBinding(luaabi.V54)
	closeCount := 0
	b.NewState = func() luaabi.LuaState { return 1 }
	b.OpenLibs = func(luaabi.LuaState) {}
	b.Close = func(luaabi.LuaState) { closeCount++ }

	s, err := New(b)
	require.NoError(t, err)

	s.Close()
	s.Close()

	assert.Equal(t, 1, closeCount)
	assert.True(t, s.Closed())
}

func TestStackTop_DelegatesToBinding(t *testing.T) {
	b := fakeBinding(luaabi.V54)
	b.NewState = func() luaabi.LuaState { return 1 }
	b.OpenLibs = func(luaabi.LuaState) {}
	b.GetTop = func(luaabi.LuaState) int32 { return 3 }

	s, err := New(b)
	require.NoError(t, err)
	assert.Equal(t, int32(3), s.StackTop())
}
