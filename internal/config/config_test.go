package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_SetsSpecMandatedDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "lua5.4", cfg.Runtime)
	assert.True(t, cfg.ShowModifications)
	assert.Equal(t, EvalSafetyBasic, cfg.EvalSafety)
	assert.Equal(t, SourceMapLenient, cfg.SourceMapPreferences.DefaultBehavior)
}

func TestDecode_PartialDocumentKeepsOtherDefaults(t *testing.T) {
	doc := []byte(`
runtime: lua5.1
program: ./script.wf
`)
	cfg, err := Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, "lua5.1", cfg.Runtime)
	assert.Equal(t, "./script.wf", cfg.Program)
	assert.True(t, cfg.ShowModifications) // untouched default survives
}

func TestDecode_OverridesEvalSafety(t *testing.T) {
	doc := []byte(`eval_safety: Strict`)
	cfg, err := Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, EvalSafetyStrict, cfg.EvalSafety)
}

func TestDecode_MalformedYAMLReturnsError(t *testing.T) {
	_, err := Decode([]byte("runtime: [unterminated"))
	assert.Error(t, err)
}

func TestLoad_MissingFileReturnsError(t *testing.T) {
	_, err := Load("/nonexistent/wayfinder.yaml")
	assert.Error(t, err)
}
