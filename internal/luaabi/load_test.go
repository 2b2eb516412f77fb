package luaabi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfinder-dap/wayfinder/internal/wferr"
)

func TestOpen_NoCandidateFound(t *testing.T) {
	_, err := Open(V51)
	require.Error(t, err)
	var loadErr *wferr.InterpreterLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "5.1", loadErr.Version)
}

func TestOpenPath_MissingLibraryFails(t *testing.T) {
	_, err := OpenPath(V54, "/nonexistent/liblua5.4.so")
	require.Error(t, err)
	var loadErr *wferr.InterpreterLoadError
	require.True(t, errors.As(err, &loadErr))
}

func TestRegisterRequired_RecoversFromPanic(t *testing.T) {
	// registerRequired must convert a purego panic (unresolved symbol, or
	// a handle of 0) into a plain error rather than crashing the test
	// binary.
	var fn func()
	err := registerRequired(0, "does_not_exist", &fn)
	require.Error(t, err)
}
