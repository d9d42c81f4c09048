package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"wasmfixtures/rt/wasm"
)

// sexpr is either an atom, a quoted string or a list.
type sexpr struct {
	atom   string
	quoted bool
	list   []*sexpr
	isList bool
}

func (e *sexpr) String() string {
	if !e.isList {
		if e.quoted {
			return strconv.Quote(e.atom)
		}
		return e.atom
	}
	parts := make([]string, len(e.list))
	for i, c := range e.list {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (e *sexpr) head() string {
	if !e.isList || len(e.list) == 0 || e.list[0].isList || e.list[0].quoted {
		return ""
	}
	return e.list[0].atom
}

type sexprParser struct {
	src string
	pos int
}

// parseSexprs parses every top-level expression in src.
func parseSexprs(src string) ([]*sexpr, error) {
	p := &sexprParser{src: src}
	var result []*sexpr
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return result, nil
		}
		e, err := p.parse()
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
}

func (p *sexprParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *sexprParser) parse() (*sexpr, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, fmt.Errorf("unexpected end of input")
	}
	switch c := p.src[p.pos]; c {
	case '(':
		p.pos++
		e := &sexpr{isList: true}
		for {
			p.skipSpace()
			if p.pos >= len(p.src) {
				return nil, fmt.Errorf("unterminated list")
			}
			if p.src[p.pos] == ')' {
				p.pos++
				return e, nil
			}
			child, err := p.parse()
			if err != nil {
				return nil, err
			}
			e.list = append(e.list, child)
		}
	case ')':
		return nil, fmt.Errorf("unexpected ')' at offset %d", p.pos)
	case '"':
		start := p.pos
		p.pos++
		for p.pos < len(p.src) && p.src[p.pos] != '"' {
			if p.src[p.pos] == '\\' {
				p.pos++
			}
			p.pos++
		}
		if p.pos >= len(p.src) {
			return nil, fmt.Errorf("unterminated string at offset %d", start)
		}
		p.pos++
		s, err := strconv.Unquote(p.src[start:p.pos])
		if err != nil {
			return nil, fmt.Errorf("bad string %s: %v", p.src[start:p.pos], err)
		}
		return &sexpr{atom: s, quoted: true}, nil
	default:
		start := p.pos
		for p.pos < len(p.src) && !strings.ContainsRune(" \t\r\n()\"", rune(p.src[p.pos])) {
			p.pos++
		}
		return &sexpr{atom: p.src[start:p.pos]}, nil
	}
}

// parseConst parses "(i32.const 1)" or "(f32.const 2.5)".
func parseConst(e *sexpr) (wasm.Value, error) {
	head := e.head()
	typeName, ok := strings.CutSuffix(head, ".const")
	if !ok || len(e.list) != 2 || e.list[1].isList || e.list[1].quoted {
		return wasm.Value{}, fmt.Errorf("expected a constant, got %s", e)
	}
	t, err := wasm.ParseValType(typeName)
	if err != nil {
		return wasm.Value{}, err
	}
	lit := strings.ReplaceAll(e.list[1].atom, "_", "")
	switch t {
	case wasm.I32:
		v, err := parseI32(lit)
		if err != nil {
			return wasm.Value{}, err
		}
		return wasm.ValueI32(v), nil
	default:
		v, err := parseF32(lit)
		if err != nil {
			return wasm.Value{}, err
		}
		return wasm.ValueF32(v), nil
	}
}

// parseI32 accepts signed decimal and 0x hex literals. Leading zeros are
// decimal. Unsigned values up to 2^32-1 wrap to their two's complement
// int32.
func parseI32(lit string) (int32, error) {
	digits := lit
	neg := false
	if len(digits) > 0 && (digits[0] == '-' || digits[0] == '+') {
		neg = digits[0] == '-'
		digits = digits[1:]
	}
	base := 10
	if hex, ok := strings.CutPrefix(digits, "0x"); ok {
		base = 16
		digits = hex
	}
	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("bad i32 literal '%s'", lit)
	}
	if (neg && u > -math.MinInt32) || u > math.MaxUint32 {
		return 0, fmt.Errorf("i32 literal out of range: '%s'", lit)
	}
	if neg {
		return int32(-int64(u)), nil
	}
	return int32(uint32(u)), nil
}

func parseF32(lit string) (float32, error) {
	sign := 1.0
	body := lit
	if strings.HasPrefix(body, "-") {
		sign = -1
		body = body[1:]
	} else {
		body = strings.TrimPrefix(body, "+")
	}
	switch {
	case body == "inf":
		return float32(math.Inf(int(sign))), nil
	case body == "nan" || strings.HasPrefix(body, "nan:"):
		return float32(math.NaN()), nil
	}
	v, err := strconv.ParseFloat(lit, 32)
	if err != nil {
		return 0, fmt.Errorf("bad f32 literal '%s'", lit)
	}
	return float32(v), nil
}
