package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	assert.False(t, Nil_().Truthy())
	assert.False(t, Bool(false).Truthy())
	assert.True(t, Bool(true).Truthy())
	assert.True(t, Num(0).Truthy())
	assert.True(t, Str("").Truthy())
}

func TestRenderScalars(t *testing.T) {
	assert.Equal(t, "nil", Nil_().Render())
	assert.Equal(t, "true", Bool(true).Render())
	assert.Equal(t, "false", Bool(false).Render())
	assert.Equal(t, "42", Num(42).Render())
	assert.Equal(t, "hello", Str("hello").Render())
}

func TestRenderReferenceTypes(t *testing.T) {
	assert.Equal(t, "table:0x0000002A", TableRef(42, 3).Render())
	assert.Equal(t, "function:0x00000001", FuncRef(1, "f").Render())
}

func TestCanonicalDecimalNonFinite(t *testing.T) {
	assert.Equal(t, "NaN", CanonicalDecimal(math.NaN()))
	assert.Equal(t, "Infinity", CanonicalDecimal(math.Inf(1)))
	assert.Equal(t, "-Infinity", CanonicalDecimal(math.Inf(-1)))
}
