// Package fixtures holds the wasm2wasm fixture functions.
//
// The pure functions (RotateLeft, RotateRight, Floor) are free functions.
// Everything that touches state goes through an Instance, which owns the
// linear memory, the module's own global and the imports it was
// instantiated with.
package fixtures

import (
	"errors"
	"fmt"

	"wasmfixtures/rt/mem"
	"wasmfixtures/rt/wasm"
)

const (
	// LinearMemLength is the number of slots in linear_mem.
	LinearMemLength = 100

	// ExternalModule and ExternalName identify the imported global read
	// by the C++ fixture.
	ExternalModule = "env"
	ExternalName   = "global2"
)

var (
	ErrOutOfBounds      = mem.ErrOutOfBounds
	ErrUnresolvedImport = errors.New("unknown import")
)

type Instance struct {
	memory    *mem.Memory
	globalPtr int
	linearMem *mem.Array32
	globals   wasm.Globals
}

// New instantiates the fixture module. globals may be nil when the
// instance never reads an imported global.
func New(globals wasm.Globals) (*Instance, error) {
	m := mem.New(mem.PageSize)
	globalPtr, err := m.AllocStatic(4, 4)
	if err != nil {
		return nil, fmt.Errorf("couldn't allocate global: %w", err)
	}
	linearMem, err := mem.NewArray32(m, LinearMemLength)
	if err != nil {
		return nil, fmt.Errorf("couldn't allocate linear_mem: %w", err)
	}
	return &Instance{
		memory:    m,
		globalPtr: globalPtr,
		linearMem: linearMem,
		globals:   globals,
	}, nil
}

// Memory exposes the instance's backing memory.
func (inst *Instance) Memory() *mem.Memory {
	return inst.memory
}

// WriteLinearMemory stores b into slot a of linear_mem and returns 0.
// An index outside [0, LinearMemLength) returns ErrOutOfBounds and leaves
// memory unchanged.
//
//wasm:assert_return (invoke "i" (i32.const 5) (i32.const 42)) (i32.const 0)
//wasm:assert_return (invoke "i" (i32.const 99) (i32.const -1)) (i32.const 0)
//wasm:assert_trap (invoke "i" (i32.const 100) (i32.const 1)) "out of bounds memory access"
//wasm:assert_trap (invoke "i" (i32.const -1) (i32.const 1)) "out of bounds memory access"
func (inst *Instance) WriteLinearMemory(a, b int32) (int32, error) {
	if err := inst.linearMem.Store(a, b); err != nil {
		return 0, err
	}
	return 0, nil
}

// LinearMemory reads slot a of linear_mem.
func (inst *Instance) LinearMemory(a int32) (int32, error) {
	return inst.linearMem.Load(a)
}

//wasm:assert_return (invoke "j") (i32.const 0)
func (inst *Instance) GlobalCounter() int32 {
	v, err := inst.memory.Load32(inst.globalPtr)
	if err != nil {
		// globalPtr was allocated inside memory by New.
		panic(err)
	}
	return v
}

// ExternalCounter reads the imported global env.global2.
func (inst *Instance) ExternalCounter() (int32, error) {
	if inst.globals == nil {
		return 0, fmt.Errorf("%w: %s.%s (no imports)", ErrUnresolvedImport, ExternalModule, ExternalName)
	}
	v, ok := inst.globals.Global(ExternalModule, ExternalName)
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s", ErrUnresolvedImport, ExternalModule, ExternalName)
	}
	return v, nil
}
