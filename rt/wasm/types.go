package wasm

import (
	"fmt"
	"math"
)

// ValType is a wasm value type: i32 | f32
type ValType byte

const (
	I32 ValType = iota + 1
	F32
)

func (t ValType) String() string {
	switch t {
	case I32:
		return "i32"
	case F32:
		return "f32"
	}
	return fmt.Sprintf("ValType(%d)", byte(t))
}

// ParseValType maps a wasm type name to its ValType.
func ParseValType(name string) (ValType, error) {
	switch name {
	case "i32":
		return I32, nil
	case "f32":
		return F32, nil
	}
	return 0, fmt.Errorf("unimplemented type: '%s'", name)
}

// Value is a typed wasm value. The payload is stored as raw bits.
type Value struct {
	Type ValType
	bits uint32
}

func ValueI32(v int32) Value {
	return Value{Type: I32, bits: uint32(v)}
}

func ValueF32(v float32) Value {
	return Value{Type: F32, bits: math.Float32bits(v)}
}

func (v Value) I32() int32 {
	return int32(v.bits)
}

func (v Value) F32() float32 {
	return math.Float32frombits(v.bits)
}

// Equal reports whether v matches want. Any NaN matches any NaN.
func (v Value) Equal(want Value) bool {
	if v.Type != want.Type {
		return false
	}
	if v.Type == F32 {
		a, b := float64(v.F32()), float64(want.F32())
		if math.IsNaN(a) || math.IsNaN(b) {
			return math.IsNaN(a) && math.IsNaN(b)
		}
		return a == b
	}
	return v.bits == want.bits
}

// String renders v as a wast constant, e.g. "(i32.const 42)".
func (v Value) String() string {
	switch v.Type {
	case I32:
		return fmt.Sprintf("(i32.const %d)", v.I32())
	case F32:
		f := float64(v.F32())
		switch {
		case math.IsNaN(f):
			return "(f32.const nan)"
		case math.IsInf(f, 1):
			return "(f32.const inf)"
		case math.IsInf(f, -1):
			return "(f32.const -inf)"
		}
		return fmt.Sprintf("(f32.const %g)", v.F32())
	}
	return fmt.Sprintf("(%s.const ?)", v.Type)
}
