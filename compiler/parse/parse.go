package parse

import (
	"context"
	"os"

	"github.com/plusplusswift/swift/compiler/ir"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

type (
	parser struct {
		name string
		b    []byte
		i    int

		f      *ir.Func
		blk    int
		nargs  int
		vals   map[string]ir.ID
		blocks map[string]int
		fixups []fixup
	}

	// fixup is a branch target referenced before its label.
	fixup struct {
		id    ir.ID
		slot  int
		label string
		pos   int
	}
)

func ParseFile(ctx context.Context, name string) (*ir.Module, error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	return Parse(ctx, name, text)
}

// Parse reads a module in textual form.
func Parse(ctx context.Context, name string, text []byte) (m *ir.Module, err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "parse", "name", name, "size", len(text))
	defer tr.Finish("err", &err)

	p := &parser{
		name: name,
		b:    text,
	}

	m = &ir.Module{Name: name}

	for {
		p.skip()

		if p.i == len(p.b) {
			break
		}

		f, err := p.function()
		if err != nil {
			return nil, err
		}

		if tr.If("parsed_func") {
			tr.Printw("parsed func", "name", f.Name, "blocks", len(f.Blocks), "insts", f.Len())
		}

		m.Funcs = append(m.Funcs, f)
	}

	return m, nil
}

func (p *parser) function() (f *ir.Func, err error) {
	st := p.i

	if w, err := p.ident(); err != nil || w != "func" {
		return nil, p.errorf(st, "func expected")
	}

	name, err := p.ident()
	if err != nil {
		return nil, errors.Wrap(err, "func name")
	}

	if err = p.expect('{'); err != nil {
		return nil, err
	}

	p.f = ir.NewFunc(name)
	p.blk = -1
	p.nargs = 0
	p.vals = map[string]ir.ID{}
	p.blocks = map[string]int{}
	p.fixups = p.fixups[:0]

	for {
		p.skip()

		if p.i == len(p.b) {
			return nil, p.errorf(p.i, "unexpected end of file in func %v", name)
		}

		if p.b[p.i] == '}' {
			p.i++
			break
		}

		if p.isLabel() {
			err = p.label()
		} else {
			err = p.inst()
		}
		if err != nil {
			return nil, errors.Wrap(err, "func %v", name)
		}
	}

	for _, fx := range p.fixups {
		b, ok := p.blocks[fx.label]
		if !ok {
			return nil, errors.Wrap(p.errorf(fx.pos, "undefined label: %v", fx.label), "func %v", name)
		}

		in := p.f.Insts[fx.id]

		switch op := in.Op.(type) {
		case ir.Br:
			op.To = b
			in.Op = op
		case ir.CondBr:
			if fx.slot == 0 {
				op.Then = b
			} else {
				op.Else = b
			}

			in.Op = op
		}
	}

	return p.f, nil
}

func (p *parser) isLabel() bool {
	if p.b[p.i] == '%' {
		return false
	}

	j := skipIdent(p.b, p.i)

	return j != p.i && j < len(p.b) && p.b[j] == ':'
}

func (p *parser) label() error {
	st := p.i

	l, err := p.ident()
	if err != nil {
		return err
	}

	p.i++ // ':'

	if _, ok := p.blocks[l]; ok {
		return p.errorf(st, "label redefined: %v", l)
	}

	p.blk = p.f.NewBlock(l)
	p.blocks[l] = p.blk

	return nil
}

func (p *parser) skip() {
	for {
		p.i = SpaceAll.Skip(p.b, p.i)

		if p.i+1 < len(p.b) && p.b[p.i] == '/' && p.b[p.i+1] == '/' {
			p.i = skipLine(p.b, p.i)
			continue
		}

		return
	}
}

func (p *parser) peek() byte {
	p.skip()

	if p.i == len(p.b) {
		return 0
	}

	return p.b[p.i]
}

func (p *parser) punct(c byte) bool {
	if p.peek() != c {
		return false
	}

	p.i++

	return true
}

func (p *parser) expect(c byte) error {
	if !p.punct(c) {
		return p.errorf(p.i, "%q expected", c)
	}

	return nil
}

func (p *parser) ident() (string, error) {
	p.skip()

	st := p.i
	p.i = skipIdent(p.b, p.i)

	if p.i == st {
		return "", p.errorf(st, "identifier expected")
	}

	return string(p.b[st:p.i]), nil
}

// keyword consumes w if it's the next identifier.
func (p *parser) keyword(w string) bool {
	p.skip()

	j := skipIdent(p.b, p.i)
	if string(p.b[p.i:j]) != w {
		return false
	}

	p.i = j

	return true
}

func (p *parser) number() (string, error) {
	p.skip()

	st := p.i

	if p.i < len(p.b) && (p.b[p.i] == '-' || p.b[p.i] == '+') {
		p.i++
	}

	for p.i < len(p.b) && (isIdent(p.b[p.i]) ||
		(p.b[p.i] == '-' || p.b[p.i] == '+') && (p.b[p.i-1] == 'e' || p.b[p.i-1] == 'E' || p.b[p.i-1] == 'p' || p.b[p.i-1] == 'P')) {
		p.i++
	}

	if p.i == st {
		return "", p.errorf(st, "number expected")
	}

	return string(p.b[st:p.i]), nil
}

func (p *parser) integer() (int, error) {
	p.skip()

	st := p.i

	for p.i < len(p.b) && isDigit(p.b[p.i]) {
		p.i++
	}

	if p.i == st {
		return 0, p.errorf(st, "integer expected")
	}

	x := 0

	for _, c := range p.b[st:p.i] {
		x = x*10 + int(c-'0')
	}

	return x, nil
}

func (p *parser) str() (string, error) {
	if p.peek() != '"' {
		return "", p.errorf(p.i, "string expected")
	}

	st := p.i
	p.i++

	var s []byte

	for ; p.i < len(p.b) && p.b[p.i] != '"'; p.i++ {
		if p.b[p.i] == '\\' && p.i+1 < len(p.b) {
			p.i++
		}

		s = append(s, p.b[p.i])
	}

	if p.i == len(p.b) {
		return "", p.errorf(st, "unterminated string")
	}

	p.i++

	return string(s), nil
}

func (p *parser) errorf(at int, f string, args ...any) error {
	line, col := 1, 1

	for _, c := range p.b[:at] {
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	return errors.Wrap(errors.New(f, args...), "%s:%d:%d", p.name, line, col)
}
