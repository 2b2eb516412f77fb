package sourcemap

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMapJSON = `{
  "version": 3,
  "file": "out.lua",
  "sourceRoot": "",
  "sources": ["src/main.wf"],
  "sourcesContent": ["-- original source"],
  "names": [],
  "mappings": "AAAA,CAAC"
}`

func TestLoadFile_ParsesJSONAndMappings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.lua.map")
	require.NoError(t, os.WriteFile(path, []byte(sampleMapJSON), 0o644))

	sm, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/main.wf"}, sm.Sources)
	require.Len(t, sm.byLine, 1)
	require.Len(t, sm.byLine[0], 2)
}

func TestLoadFile_MissingFileReturnsSourceMapLoadError(t *testing.T) {
	_, err := LoadFile("/nonexistent/does-not-exist.map")
	require.Error(t, err)
}

func TestLoadFromGeneratedFile_SiblingFileReference(t *testing.T) {
	dir := t.TempDir()
	mapPath := filepath.Join(dir, "out.lua.map")
	require.NoError(t, os.WriteFile(mapPath, []byte(sampleMapJSON), 0o644))

	genPath := filepath.Join(dir, "out.lua")
	generated := "print(1)\n-- //# sourceMappingURL=out.lua.map\n"
	require.NoError(t, os.WriteFile(genPath, []byte(generated), 0o644))

	sm, err := LoadFromGeneratedFile(genPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/main.wf"}, sm.Sources)
}

func TestLoadFromGeneratedFile_DataURIReference(t *testing.T) {
	dir := t.TempDir()
	genPath := filepath.Join(dir, "out.lua")
	encoded := "data:application/json;base64," + base64.StdEncoding.EncodeToString([]byte(sampleMapJSON))
	generated := "print(1)\n-- //# sourceMappingURL=" + encoded + "\n"
	require.NoError(t, os.WriteFile(genPath, []byte(generated), 0o644))

	sm, err := LoadFromGeneratedFile(genPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/main.wf"}, sm.Sources)
}

func TestLoadFromGeneratedFile_NoCommentReturnsError(t *testing.T) {
	dir := t.TempDir()
	genPath := filepath.Join(dir, "out.lua")
	require.NoError(t, os.WriteFile(genPath, []byte("print(1)\n"), 0o644))

	_, err := LoadFromGeneratedFile(genPath)
	assert.Error(t, err)
}
