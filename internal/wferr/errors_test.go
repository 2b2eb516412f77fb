package wferr

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrUnknownMethod(t *testing.T) {
	err := ErrUnknownMethod("nonsense")
	require.Equal(t, -32600, err.Code)
	assert.Equal(t, "Unknown method: nonsense", err.Message)
	assert.Equal(t, "Unknown method: nonsense", err.Error())
}

func TestWrappedCauseChains(t *testing.T) {
	cause := io.ErrUnexpectedEOF

	cases := []error{
		&TransportError{Op: "read", Cause: cause},
		&InterpreterLoadError{Version: "v54", Symbol: "lua_pcallk", Cause: cause},
		&InterpreterCompileError{Cause: cause},
		&InterpreterRuntimeError{Cause: cause},
		&SourceMapLoadError{Path: "x.js.map", Cause: cause},
	}

	for _, err := range cases {
		t.Run(err.Error(), func(t *testing.T) {
			assert.True(t, errors.Is(err, cause), "expected errors.Is to unwrap to cause")
			assert.NotEmpty(t, err.Error())
		})
	}
}

func TestStandaloneErrors(t *testing.T) {
	assert.Equal(t, "no active debug session", (&NoDebugSessionError{}).Error())
	assert.Equal(t, "breakpoint: not found", (&NotFoundError{What: "breakpoint"}).Error())
	assert.Equal(t, "source request: not implemented", (&NotImplementedError{What: "source request"}).Error())
}
