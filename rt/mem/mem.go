// Package mem implements the linear memory seen by the fixture functions.
//
// Memory is a flat little-endian byte array. Globals and arrays are laid
// out in a static segment at the bottom of memory by a bump allocator,
// starting at address 4 so that address 0 is never handed out.
package mem

import (
	"errors"
	"fmt"
)

// PageSize is the unit of memory length in WebAssembly.
const PageSize = 65536

// ErrOutOfBounds is returned for any access outside of memory or outside
// of an array's slots.
var ErrOutOfBounds = errors.New("out of bounds memory access")

type Memory struct {
	nextStaticAddr int
	content        []byte
}

// New returns a zeroed memory of size bytes.
func New(size int) *Memory {
	return &Memory{
		nextStaticAddr: 4,
		content:        make([]byte, size),
	}
}

// Align rounds addr up to the next multiple of alignment, which must be a
// power of two.
func Align(addr, alignment int) int {
	addr = addr + (alignment - 1)
	mask := ^(alignment - 1)
	return addr & mask
}

// AllocStatic reserves size bytes in the static segment and returns their
// address.
func (m *Memory) AllocStatic(size, align int) (int, error) {
	addr := Align(m.nextStaticAddr, align)
	nextAddr := addr + size
	if nextAddr > len(m.content) {
		return 0, fmt.Errorf("out of static memory: %d > %d", nextAddr, len(m.content))
	}
	m.nextStaticAddr = nextAddr
	return addr, nil
}

func (m *Memory) check(addr, size int) error {
	if addr < 0 || addr+size > len(m.content) {
		return fmt.Errorf("%w: address %d, size %d", ErrOutOfBounds, addr, size)
	}
	return nil
}

// Load32 reads a little-endian word at addr.
func (m *Memory) Load32(addr int) (int32, error) {
	if err := m.check(addr, 4); err != nil {
		return 0, err
	}
	var v uint32
	for i := 0; i < 4; i++ {
		v |= uint32(m.content[addr+i]) << (i * 8)
	}
	return int32(v), nil
}

// Store32 writes val as a little-endian word at addr.
func (m *Memory) Store32(addr int, val int32) error {
	if err := m.check(addr, 4); err != nil {
		return err
	}
	u := uint32(val)
	for i := 0; i < 4; i++ {
		m.content[addr+i] = byte(u >> (i * 8))
	}
	return nil
}

// Bytes returns a copy of the memory contents.
func (m *Memory) Bytes() []byte {
	out := make([]byte, len(m.content))
	copy(out, m.content)
	return out
}
