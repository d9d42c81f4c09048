package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlign(t *testing.T) {
	assert.Equal(t, 12, Align(9, 4))
	assert.Equal(t, 16, Align(16, 4))
	assert.Equal(t, 24, Align(20, 8))
	assert.Equal(t, 21, Align(21, 1))
}

func TestAllocStatic(t *testing.T) {
	m := New(64)
	a, err := m.AllocStatic(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, a)
	b, err := m.AllocStatic(4, 4)
	require.NoError(t, err)
	assert.Equal(t, 8, b)
	c, err := m.AllocStatic(8, 8)
	require.NoError(t, err)
	assert.Equal(t, 16, c)

	_, err = m.AllocStatic(64, 4)
	require.Error(t, err)
}

func TestLoadStore32LittleEndian(t *testing.T) {
	m := New(16)
	require.NoError(t, m.Store32(4, 0x11223344))
	assert.Equal(t, []byte{0, 0, 0, 0, 0x44, 0x33, 0x22, 0x11}, m.Bytes()[:8])

	v, err := m.Load32(4)
	require.NoError(t, err)
	assert.Equal(t, int32(0x11223344), v)

	require.NoError(t, m.Store32(12, -2))
	v, err = m.Load32(12)
	require.NoError(t, err)
	assert.Equal(t, int32(-2), v)
}

func TestLoadStoreOutOfBounds(t *testing.T) {
	m := New(16)
	for _, addr := range []int{-1, 13, 16, 1000} {
		require.ErrorIs(t, m.Store32(addr, 1), ErrOutOfBounds)
		_, err := m.Load32(addr)
		require.ErrorIs(t, err, ErrOutOfBounds)
	}
	assert.Equal(t, make([]byte, 16), m.Bytes())
}

func TestArray32(t *testing.T) {
	m := New(PageSize)
	_, err := m.AllocStatic(4, 4)
	require.NoError(t, err)
	a, err := NewArray32(m, 10)
	require.NoError(t, err)
	assert.Equal(t, 8, a.Base())
	assert.Equal(t, 10, a.Len())

	require.NoError(t, a.Store(9, 99))
	v, err := m.Load32(a.Base() + 36)
	require.NoError(t, err)
	assert.Equal(t, int32(99), v)

	require.ErrorIs(t, a.Store(10, 1), ErrOutOfBounds)
	_, err = a.Load(-1)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestArray32TooLarge(t *testing.T) {
	_, err := NewArray32(New(16), 10)
	require.Error(t, err)
}
