package main

import (
	"fmt"
	"go/token"
	"strings"

	"wasmfixtures/rt/wasm"
)

type DirectiveKind int

const (
	AssertReturn DirectiveKind = iota + 1
	AssertTrap
	Invoke
)

func (k DirectiveKind) String() string {
	switch k {
	case AssertReturn:
		return "assert_return"
	case AssertTrap:
		return "assert_trap"
	case Invoke:
		return "invoke"
	}
	return fmt.Sprintf("DirectiveKind(%d)", int(k))
}

// Directive is one "//wasm:" pragma.
//
//	assert_return: ( assert_return ( invoke <name> <expr>* ) <expr>* )
//	assert_trap:   ( assert_trap ( invoke <name> <expr>* ) <failure> )
//	invoke:        ( invoke <name> <expr>* )
type Directive struct {
	Kind     DirectiveKind
	Export   string
	Args     []wasm.Value
	Expected []wasm.Value
	Trap     string
	Pos      token.Position
}

func (d *Directive) invokeString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(invoke %q", d.Export)
	for _, a := range d.Args {
		sb.WriteString(" ")
		sb.WriteString(a.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// String renders d as a wast command.
func (d *Directive) String() string {
	switch d.Kind {
	case AssertReturn:
		return assertReturnString(d.invokeString(), d.Expected)
	case AssertTrap:
		return fmt.Sprintf("(assert_trap %s %q)", d.invokeString(), d.Trap)
	}
	return d.invokeString()
}

func assertReturnString(invoke string, results []wasm.Value) string {
	var sb strings.Builder
	sb.WriteString("(assert_return ")
	sb.WriteString(invoke)
	for _, r := range results {
		sb.WriteString(" ")
		sb.WriteString(r.String())
	}
	sb.WriteString(")")
	return sb.String()
}

func positionString(pos token.Position) string {
	return fmt.Sprintf("[%s:%d]", pos.Filename, pos.Line)
}
