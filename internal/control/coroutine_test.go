package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfinder-dap/wayfinder/internal/value"
)

func TestCoroutineRegistry_MainThreadPreregistered(t *testing.T) {
	r := NewCoroutineRegistry()
	list := r.List()
	require.Len(t, list, 1)
	assert.Equal(t, MainThreadID, list[0].ThreadID)
}

func TestCoroutineRegistry_TrackAssignsStableIDs(t *testing.T) {
	r := NewCoroutineRegistry()
	id1 := r.Track(value.Ref(100), "worker", CoroutineSuspended)
	id2 := r.Track(value.Ref(100), "worker", CoroutineRunning)
	assert.Equal(t, id1, id2, "same ref must map to the same thread ID")
	assert.NotEqual(t, MainThreadID, id1)

	list := r.List()
	require.Len(t, list, 2)
}

func TestCoroutineRegistry_ForgetRemoves(t *testing.T) {
	r := NewCoroutineRegistry()
	id := r.Track(value.Ref(7), "temp", CoroutineDead)
	r.Forget(id)
	assert.Len(t, r.List(), 1)

	// re-tracking the same ref after Forget gets a fresh ID.
	newID := r.Track(value.Ref(7), "temp2", CoroutineRunning)
	assert.NotEqual(t, id, newID)
}
