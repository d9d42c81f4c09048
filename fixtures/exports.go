package fixtures

import (
	"errors"
	"fmt"
	"sort"

	"wasmfixtures/rt/wasm"
)

// Variant selects which of the two fixture sources an export table
// mirrors. The C source has h (floor) and no imported global; the C++
// source has ga (imported global) and no floor.
type Variant string

const (
	VariantC   Variant = "c"
	VariantCXX Variant = "cxx"
)

var ErrUnknownExport = errors.New("unknown export")

func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantC, VariantCXX:
		return Variant(s), nil
	case "c++", "cpp":
		return VariantCXX, nil
	}
	return "", fmt.Errorf("unknown variant '%s' (want c or cxx)", s)
}

// Export is a callable function exported by an Instance.
type Export struct {
	Name    string
	Alias   string
	Params  []wasm.ValType
	Results []wasm.ValType
	call    func(inst *Instance, args []wasm.Value) ([]wasm.Value, error)
}

// Invoke type-checks args and calls the export on inst.
func (e *Export) Invoke(inst *Instance, args []wasm.Value) ([]wasm.Value, error) {
	if len(args) != len(e.Params) {
		return nil, fmt.Errorf("%s: want %d args, got %d", e.Name, len(e.Params), len(args))
	}
	for i, a := range args {
		if a.Type != e.Params[i] {
			return nil, fmt.Errorf("%s: arg #%d: want %s, got %s", e.Name, i, e.Params[i], a.Type)
		}
	}
	return e.call(inst, args)
}

var (
	i32i32 = []wasm.ValType{wasm.I32, wasm.I32}
	i32    = []wasm.ValType{wasm.I32}
	f32    = []wasm.ValType{wasm.F32}
)

var allExports = map[string]*Export{
	"f": {
		Name: "f", Alias: "RotateLeft", Params: i32i32, Results: i32,
		call: func(_ *Instance, args []wasm.Value) ([]wasm.Value, error) {
			return []wasm.Value{wasm.ValueI32(RotateLeft(args[0].I32(), args[1].I32()))}, nil
		},
	},
	"g": {
		Name: "g", Alias: "RotateRight", Params: i32i32, Results: i32,
		call: func(_ *Instance, args []wasm.Value) ([]wasm.Value, error) {
			return []wasm.Value{wasm.ValueI32(RotateRight(args[0].I32(), args[1].I32()))}, nil
		},
	},
	"h": {
		Name: "h", Alias: "Floor", Params: f32, Results: f32,
		call: func(_ *Instance, args []wasm.Value) ([]wasm.Value, error) {
			return []wasm.Value{wasm.ValueF32(Floor(args[0].F32()))}, nil
		},
	},
	"i": {
		Name: "i", Alias: "WriteLinearMemory", Params: i32i32, Results: i32,
		call: func(inst *Instance, args []wasm.Value) ([]wasm.Value, error) {
			r, err := inst.WriteLinearMemory(args[0].I32(), args[1].I32())
			if err != nil {
				return nil, err
			}
			return []wasm.Value{wasm.ValueI32(r)}, nil
		},
	},
	"j": {
		Name: "j", Alias: "GlobalCounter", Results: i32,
		call: func(inst *Instance, _ []wasm.Value) ([]wasm.Value, error) {
			return []wasm.Value{wasm.ValueI32(inst.GlobalCounter())}, nil
		},
	},
	"ga": {
		Name: "ga", Alias: "ExternalCounter", Results: i32,
		call: func(inst *Instance, _ []wasm.Value) ([]wasm.Value, error) {
			v, err := inst.ExternalCounter()
			if err != nil {
				return nil, err
			}
			return []wasm.Value{wasm.ValueI32(v)}, nil
		},
	},
}

var variantExports = map[Variant][]string{
	VariantC:   {"f", "g", "h", "i", "j"},
	VariantCXX: {"f", "g", "i", "j", "ga"},
}

// Exports returns the export table of v, keyed by both export name and
// Go alias.
func Exports(v Variant) (map[string]*Export, error) {
	names, ok := variantExports[v]
	if !ok {
		return nil, fmt.Errorf("unknown variant '%s'", v)
	}
	table := make(map[string]*Export, 2*len(names))
	for _, n := range names {
		e := allExports[n]
		table[e.Name] = e
		table[e.Alias] = e
	}
	return table, nil
}

// ExportNames lists the export names of v in sorted order.
func ExportNames(v Variant) []string {
	names := append([]string(nil), variantExports[v]...)
	sort.Strings(names)
	return names
}

// IsFixtureExport reports whether name is exported by any variant.
func IsFixtureExport(name string) bool {
	if _, ok := allExports[name]; ok {
		return true
	}
	for _, e := range allExports {
		if e.Alias == name {
			return true
		}
	}
	return false
}

// Lookup finds name in the export table of v.
func Lookup(v Variant, name string) (*Export, error) {
	table, err := Exports(v)
	if err != nil {
		return nil, err
	}
	e, ok := table[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s' in variant %s", ErrUnknownExport, name, v)
	}
	return e, nil
}
