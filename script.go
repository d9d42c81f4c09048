package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"unicode"
)

const pragmaPrefix = "//wasm:"

// ScriptSource is the list of directives found in one Go file.
type ScriptSource struct {
	FileName   string
	Package    string
	Directives []*Directive
}

// ParseScriptFile reads the "//wasm:" pragmas of a Go source file. src is
// passed through to go/parser; nil means read fileName from disk.
func ParseScriptFile(fset *token.FileSet, fileName string, src interface{}) (*ScriptSource, error) {
	f, err := parser.ParseFile(fset, fileName, src, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	return parseAstFileScript(f, fset, fileName)
}

func parseAstFileScript(f *ast.File, fset *token.FileSet, fileName string) (*ScriptSource, error) {
	s := &ScriptSource{FileName: fileName}
	if f.Name != nil {
		s.Package = f.Name.Name
	}
	for _, group := range f.Comments {
		for _, c := range group.List {
			if !strings.HasPrefix(c.Text, pragmaPrefix) {
				continue
			}
			pos := fset.Position(c.Slash)
			d, err := parsePragma(strings.TrimPrefix(c.Text, pragmaPrefix))
			if err != nil {
				return nil, fmt.Errorf("%s: %v", positionString(pos), err)
			}
			d.Pos = pos
			s.Directives = append(s.Directives, d)
		}
	}
	return s, nil
}

// parsePragma parses the text after "//wasm:", e.g.
// `assert_return (invoke "f" (i32.const 1) (i32.const 1)) (i32.const 2)`.
func parsePragma(p string) (*Directive, error) {
	p = strings.TrimSpace(p)
	kindName, rest := p, ""
	if i := strings.IndexFunc(p, unicode.IsSpace); i >= 0 {
		kindName, rest = p[:i], p[i:]
	}
	var kind DirectiveKind
	switch kindName {
	case "assert_return":
		kind = AssertReturn
	case "assert_trap":
		kind = AssertTrap
	case "invoke":
		kind = Invoke
	default:
		return nil, fmt.Errorf("unsupported pragma '%s'", kindName)
	}

	exprs, err := parseSexprs(rest)
	if err != nil {
		return nil, err
	}
	if len(exprs) == 0 {
		return nil, fmt.Errorf("%s: missing (invoke ...)", kind)
	}
	d := &Directive{Kind: kind}
	if err := d.parseInvoke(exprs[0]); err != nil {
		return nil, err
	}
	tail := exprs[1:]

	switch kind {
	case AssertReturn:
		for _, e := range tail {
			v, err := parseConst(e)
			if err != nil {
				return nil, fmt.Errorf("assert_return result: %v", err)
			}
			d.Expected = append(d.Expected, v)
		}
	case AssertTrap:
		if len(tail) != 1 || !tail[0].quoted {
			return nil, fmt.Errorf("assert_trap: expected a failure string")
		}
		d.Trap = tail[0].atom
	case Invoke:
		if len(tail) != 0 {
			return nil, fmt.Errorf("invoke: unexpected trailing %s", tail[0])
		}
	}
	return d, nil
}

func (d *Directive) parseInvoke(e *sexpr) error {
	if e.head() != "invoke" {
		return fmt.Errorf("expected (invoke ...), got %s", e)
	}
	if len(e.list) < 2 || !e.list[1].quoted {
		return fmt.Errorf("invoke: expected a quoted export name in %s", e)
	}
	d.Export = e.list[1].atom
	for i, arg := range e.list[2:] {
		v, err := parseConst(arg)
		if err != nil {
			return fmt.Errorf("invoke %q: arg #%d: %v", d.Export, i, err)
		}
		d.Args = append(d.Args, v)
	}
	return nil
}
