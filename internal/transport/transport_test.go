package transport

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMessage_ThenReadMessage_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	body := []byte(`{"id":1,"method":"initialize"}`)

	require.NoError(t, WriteMessage(&buf, body))

	got, err := ReadMessage(bufio.NewReader(&buf))
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestReadMessage_MissingContentLengthIsError(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("Content-Type: application/json\r\n\r\n{}"))
	_, err := ReadMessage(r)
	assert.Error(t, err)
}

func TestReadMessage_IgnoresUnknownHeaders(t *testing.T) {
	raw := "Content-Type: application/vscode.debugadapter\r\nContent-Length: 2\r\n\r\n{}"
	r := bufio.NewReader(strings.NewReader(raw))

	got, err := ReadMessage(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), got)
}

func TestReadMessage_TruncatedBodyIsError(t *testing.T) {
	raw := "Content-Length: 10\r\n\r\n{}"
	r := bufio.NewReader(strings.NewReader(raw))
	_, err := ReadMessage(r)
	assert.Error(t, err)
}
