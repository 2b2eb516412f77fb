package luaabi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLineHook_InstallsOnLineMaskOnly(t *testing.T) {
	b := &Binding{}
	var gotMask, gotCount int32
	var gotHook uintptr
	b.setHookRaw = func(_ LuaState, hook uintptr, mask, count int32) {
		gotHook, gotMask, gotCount = hook, mask, count
	}
	b.getInfoRaw = func(_ LuaState, _ string, _ uintptr) int32 { return 1 }

	unregister := b.SetLineHook(0, func(LuaState, []byte) {})
	assert.NotZero(t, gotHook)
	assert.Equal(t, MaskLine, gotMask)
	assert.Equal(t, int32(0), gotCount)

	require := assert.New(t)
	require.NotNil(unregister)
	unregister()
	require.Zero(gotHook)
	require.Zero(gotMask)
}

func TestHookMaskConstants_AreDistinctBits(t *testing.T) {
	masks := []int32{MaskCall, MaskRet, MaskLine, MaskCount}
	seen := map[int32]bool{}
	for _, m := range masks {
		assert.False(t, seen[m], "mask bit reused: %d", m)
		seen[m] = true
	}
}
