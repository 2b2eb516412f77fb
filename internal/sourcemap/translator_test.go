package sourcemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestMap() *SourceMap {
	sm := &SourceMap{
		GeneratedFile: "out.lua",
		Sources:       []string{"src/a.wf", "src/b.wf"},
		Names:         nil,
	}
	// Line 0: column 0 -> a.wf:0:0; column 4 -> a.wf:0:10.
	// Line 1: column 0 -> b.wf:2:0.
	sm.byLine = [][]MappingEntry{
		{
			{GeneratedColumn: 0, SourceIndex: 0, OriginalLine: 0, OriginalColumn: 0, NameIndex: -1},
			{GeneratedColumn: 4, SourceIndex: 0, OriginalLine: 0, OriginalColumn: 10, NameIndex: -1},
		},
		{
			{GeneratedColumn: 0, SourceIndex: 1, OriginalLine: 2, OriginalColumn: 0, NameIndex: -1},
		},
	}
	return sm
}

func TestForwardLookup_FindsRightmostEntryAtOrBeforeColumn(t *testing.T) {
	tr := NewTranslator()
	tr.Register("out.lua", buildTestMap())

	pos, err := tr.ForwardLookup("out.lua", 0, 6)
	require.NoError(t, err)
	assert.Equal(t, "src/a.wf", pos.File)
	assert.Equal(t, 0, pos.Line)
	assert.Equal(t, 10, pos.Column)
}

func TestForwardLookup_ExactColumnMatch(t *testing.T) {
	tr := NewTranslator()
	tr.Register("out.lua", buildTestMap())

	pos, err := tr.ForwardLookup("out.lua", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, "src/b.wf", pos.File)
	assert.Equal(t, 2, pos.Line)
}

func TestForwardLookup_BeforeFirstEntryReturnsNotFound(t *testing.T) {
	tr := NewTranslator()
	tr.Register("out.lua", &SourceMap{byLine: [][]MappingEntry{
		{{GeneratedColumn: 5, SourceIndex: 0}},
	}})

	_, err := tr.ForwardLookup("out.lua", 0, 2)
	assert.Error(t, err)
}

func TestForwardLookup_UnregisteredFileReturnsNotFound(t *testing.T) {
	tr := NewTranslator()
	_, err := tr.ForwardLookup("missing.lua", 0, 0)
	assert.Error(t, err)
}

func TestReverseLookup_ExactMatch(t *testing.T) {
	tr := NewTranslator()
	tr.Register("out.lua", buildTestMap())

	pos, err := tr.ReverseLookup("out.lua", "src/a.wf", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, "out.lua", pos.File)
	assert.Equal(t, 0, pos.Line)
	assert.Equal(t, 4, pos.Column)
}

func TestReverseLookup_UnknownOriginalSourceReturnsNotFound(t *testing.T) {
	tr := NewTranslator()
	tr.Register("out.lua", buildTestMap())

	_, err := tr.ReverseLookup("out.lua", "src/does-not-exist.wf", 0, 0)
	assert.Error(t, err)
}

func TestHandleBundleMode_ListsAllOriginalSources(t *testing.T) {
	tr := NewTranslator()
	tr.Register("out.lua", buildTestMap())

	sources := tr.HandleBundleMode("out.lua")
	assert.Equal(t, []string{"src/a.wf", "src/b.wf"}, sources)
}

func TestLookupWithFallback_ExactMatch(t *testing.T) {
	tr := NewTranslator()
	tr.Register("out.lua", buildTestMap())

	path, sm, ok := tr.LookupWithFallback("out.lua")
	require.True(t, ok)
	assert.Equal(t, "out.lua", path)
	assert.NotNil(t, sm)
}

func TestLookupWithFallback_ClosestByPrefix(t *testing.T) {
	tr := NewTranslator()
	tr.Register("build/out.lua", buildTestMap())
	tr.Register("build/other.lua", &SourceMap{})

	path, _, ok := tr.LookupWithFallback("build/out2.lua")
	require.True(t, ok)
	assert.Equal(t, "build/out.lua", path)
}

func TestLookupWithFallback_NoMapsReturnsFalse(t *testing.T) {
	tr := NewTranslator()
	_, _, ok := tr.LookupWithFallback("anything.lua")
	assert.False(t, ok)
}
