package mem

import "fmt"

// Array32 is a fixed-length array of int32 slots in the static segment.
type Array32 struct {
	mem    *Memory
	base   int
	length int
}

func NewArray32(m *Memory, length int) (*Array32, error) {
	base, err := m.AllocStatic(4*length, 4)
	if err != nil {
		return nil, err
	}
	return &Array32{mem: m, base: base, length: length}, nil
}

func (a *Array32) Len() int {
	return a.length
}

func (a *Array32) Base() int {
	return a.base
}

func (a *Array32) addr(index int32) (int, error) {
	if index < 0 || int(index) >= a.length {
		return 0, fmt.Errorf("%w: index %d, length %d", ErrOutOfBounds, index, a.length)
	}
	return a.base + 4*int(index), nil
}

func (a *Array32) Load(index int32) (int32, error) {
	addr, err := a.addr(index)
	if err != nil {
		return 0, err
	}
	return a.mem.Load32(addr)
}

func (a *Array32) Store(index, val int32) error {
	addr, err := a.addr(index)
	if err != nil {
		return err
	}
	return a.mem.Store32(addr, val)
}
