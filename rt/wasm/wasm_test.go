package wasm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapGlobals(t *testing.T) {
	g := MapGlobals{"env.global2": 5}
	v, ok := g.Global("env", "global2")
	assert.True(t, ok)
	assert.Equal(t, int32(5), v)
	_, ok = g.Global("env", "global3")
	assert.False(t, ok)
}

func TestSplitName(t *testing.T) {
	m, n, err := SplitName("env.global2")
	require.NoError(t, err)
	assert.Equal(t, "env", m)
	assert.Equal(t, "global2", n)

	m, n, err = SplitName("global2")
	require.NoError(t, err)
	assert.Equal(t, "env", m)
	assert.Equal(t, "global2", n)

	for _, bad := range []string{"", ".x", "x."} {
		_, _, err := SplitName(bad)
		assert.Error(t, err, bad)
	}
}

func TestValueEqual(t *testing.T) {
	nan := ValueF32(float32(math.NaN()))
	assert.True(t, nan.Equal(ValueF32(float32(math.NaN()))))
	assert.False(t, nan.Equal(ValueF32(1)))
	assert.False(t, ValueF32(1).Equal(nan))
	assert.True(t, ValueF32(2).Equal(ValueF32(2)))
	assert.False(t, ValueI32(2).Equal(ValueF32(2)))
	assert.True(t, ValueI32(-1).Equal(ValueI32(-1)))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "(i32.const -5)", ValueI32(-5).String())
	assert.Equal(t, "(f32.const 2.5)", ValueF32(2.5).String())
	assert.Equal(t, "(f32.const -3)", ValueF32(-3).String())
	assert.Equal(t, "(f32.const nan)", ValueF32(float32(math.NaN())).String())
	assert.Equal(t, "(f32.const -inf)", ValueF32(float32(math.Inf(-1))).String())
}

func TestParseValType(t *testing.T) {
	typ, err := ParseValType("f32")
	require.NoError(t, err)
	assert.Equal(t, F32, typ)
	_, err = ParseValType("i64")
	require.Error(t, err)
}

func TestQualifiedName(t *testing.T) {
	q, err := QualifiedName("global2")
	require.NoError(t, err)
	assert.Equal(t, "env.global2", q)

	q, err = QualifiedName("host.seed")
	require.NoError(t, err)
	assert.Equal(t, "host.seed", q)

	_, err = QualifiedName("")
	assert.Error(t, err)
}
