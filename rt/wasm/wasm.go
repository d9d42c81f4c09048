package wasm

import (
	"fmt"
	"strings"
)

// Globals resolves imported i32 globals.
type Globals interface {
	Global(module, name string) (int32, bool)
}

// GlobalsFunc adapts a function to the Globals interface.
type GlobalsFunc func(module, name string) (int32, bool)

func (f GlobalsFunc) Global(module, name string) (int32, bool) {
	return f(module, name)
}

// MapGlobals is a Globals keyed by "module.name".
type MapGlobals map[string]int32

func (g MapGlobals) Global(module, name string) (int32, bool) {
	v, ok := g[module+"."+name]
	return v, ok
}

// QualifiedName returns "module.name" for qualified, placing a bare name
// in the "env" module.
func QualifiedName(qualified string) (string, error) {
	module, name, err := SplitName(qualified)
	if err != nil {
		return "", err
	}
	return module + "." + name, nil
}

// SplitName splits "module.name" into its parts. A bare name is placed in
// the "env" module.
func SplitName(qualified string) (string, string, error) {
	if qualified == "" {
		return "", "", fmt.Errorf("empty import name")
	}
	module, name, ok := strings.Cut(qualified, ".")
	if !ok {
		return "env", qualified, nil
	}
	if module == "" || name == "" {
		return "", "", fmt.Errorf("malformed import name: '%s'", qualified)
	}
	return module, name, nil
}
