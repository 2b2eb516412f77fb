package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateHitCondition_Empty(t *testing.T) {
	ok, err := EvaluateHitCondition("", 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEvaluateHitCondition_Bare(t *testing.T) {
	ok, err := EvaluateHitCondition("3", 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = EvaluateHitCondition("3", 4)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluateHitCondition_Operators(t *testing.T) {
	cases := []struct {
		expr  string
		count int
		want  bool
	}{
		{"> 2", 3, true},
		{"> 3", 3, false},
		{">= 3", 3, true},
		{"< 3", 2, true},
		{"< 3", 3, false},
		{"<= 3", 3, true},
		{"== 5", 5, true},
		{"!= 5", 4, true},
		{"!= 5", 5, false},
		{"% 2", 4, true},
		{"% 2", 5, false},
		{"%3", 9, true},
	}
	for _, c := range cases {
		got, err := EvaluateHitCondition(c.expr, c.count)
		require.NoError(t, err, c.expr)
		assert.Equal(t, c.want, got, "expr=%q count=%d", c.expr, c.count)
	}
}

func TestEvaluateHitCondition_ModZeroIsError(t *testing.T) {
	_, err := EvaluateHitCondition("% 0", 10)
	require.Error(t, err)
}

func TestEvaluateHitCondition_MalformedOperand(t *testing.T) {
	_, err := EvaluateHitCondition(">= banana", 10)
	require.Error(t, err)
}

func TestEvaluateHitCondition_GEBeforeGT(t *testing.T) {
	// ">=" must not be parsed as ">" followed by a malformed "= 3" operand.
	ok, err := EvaluateHitCondition(">=3", 3)
	require.NoError(t, err)
	assert.True(t, ok)
}
