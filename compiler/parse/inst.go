package parse

import (
	"math/big"

	"github.com/plusplusswift/swift/compiler/apint"
	"github.com/plusplusswift/swift/compiler/builtin"
	"github.com/plusplusswift/swift/compiler/ir"
	"github.com/plusplusswift/swift/compiler/tp"
	"tlog.app/go/errors"
)

func (p *parser) inst() (err error) {
	st := p.i

	if p.blk < 0 {
		return p.errorf(st, "instruction outside of a block")
	}

	var name string

	if p.peek() == '%' {
		name, err = p.valueName()
		if err != nil {
			return err
		}

		if _, ok := p.vals[name]; ok {
			return p.errorf(st, "value redefined: %%%v", name)
		}

		if err = p.expect('='); err != nil {
			return err
		}
	}

	opst := p.i

	op, err := p.ident()
	if err != nil {
		return err
	}

	var id ir.ID

	switch op {
	case "arg":
		id, err = p.arg()
	case "integer_literal":
		id, err = p.intLit()
	case "float_literal":
		id, err = p.floatLit()
	case "builtin":
		id, err = p.builtin()
	case "tuple":
		id, err = p.tuple()
	case "struct":
		id, err = p.structLit()
	case "tuple_extract":
		id, err = p.tupleExtract()
	case "struct_extract":
		id, err = p.structExtract()
	case "call":
		id, err = p.call()
	case "return":
		id, err = p.ret()
	case "br":
		id, err = p.br()
	case "cond_br":
		id, err = p.condBr()
	default:
		return p.errorf(opst, "unknown instruction: %v", op)
	}
	if err != nil {
		return errors.Wrap(err, "%v", op)
	}

	src, err := p.source()
	if err != nil {
		return errors.Wrap(err, "%v", op)
	}

	p.f.SetSource(id, src)

	if name == "" {
		return nil
	}

	if p.f.Insts[id].Type == nil {
		return p.errorf(st, "%v has no result", op)
	}

	p.vals[name] = id

	return nil
}

func (p *parser) valueName() (string, error) {
	if !p.punct('%') {
		return "", p.errorf(p.i, "value expected")
	}

	st := p.i
	p.i = skipIdent(p.b, p.i)

	if p.i == st {
		return "", p.errorf(st, "value name expected")
	}

	return string(p.b[st:p.i]), nil
}

func (p *parser) value() (ir.ID, error) {
	p.skip()

	st := p.i

	name, err := p.valueName()
	if err != nil {
		return ir.Nil, err
	}

	id, ok := p.vals[name]
	if !ok {
		return ir.Nil, p.errorf(st, "undefined value: %%%v", name)
	}

	return id, nil
}

// values parses a parenthesized list of operands.
func (p *parser) values() (args []ir.ID, err error) {
	if err = p.expect('('); err != nil {
		return nil, err
	}

	for !p.punct(')') {
		if len(args) != 0 {
			if err = p.expect(','); err != nil {
				return nil, err
			}
		}

		a, err := p.value()
		if err != nil {
			return nil, err
		}

		args = append(args, a)
	}

	return args, nil
}

func (p *parser) types(args []ir.ID) []tp.Type {
	ts := make([]tp.Type, len(args))

	for i, a := range args {
		ts[i] = p.f.Insts[a].Type
	}

	return ts
}

func (p *parser) arg() (ir.ID, error) {
	t, err := p.typ()
	if err != nil {
		return ir.Nil, err
	}

	id := p.f.Append(p.blk, ir.Arg{N: p.nargs}, t)
	p.nargs++

	return id, nil
}

func (p *parser) intLit() (ir.ID, error) {
	st := p.i

	t, err := p.typ()
	if err != nil {
		return ir.Nil, err
	}

	it, ok := t.(tp.Int)
	if !ok {
		return ir.Nil, p.errorf(st, "integer type expected: %v", t)
	}

	if err = p.expect(','); err != nil {
		return ir.Nil, err
	}

	vst := p.i

	s, err := p.number()
	if err != nil {
		return ir.Nil, err
	}

	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return ir.Nil, p.errorf(vst, "bad integer: %v", s)
	}

	return p.f.Append(p.blk, ir.IntLit{Val: apint.New(int(it.Bits), v)}, it), nil
}

func (p *parser) floatLit() (ir.ID, error) {
	st := p.i

	t, err := p.typ()
	if err != nil {
		return ir.Nil, err
	}

	ft, ok := t.(tp.Float)
	if !ok {
		return ir.Nil, p.errorf(st, "float type expected: %v", t)
	}

	if err = p.expect(','); err != nil {
		return ir.Nil, err
	}

	vst := p.i

	s, err := p.number()
	if err != nil {
		return ir.Nil, err
	}

	v, _, err := new(big.Float).SetPrec(ft.Prec()).SetMode(big.ToNearestEven).Parse(s, 0)
	if err != nil {
		return ir.Nil, p.errorf(vst, "bad float: %v", s)
	}

	// f = mant * 2^exp, 0.5 <= |mant| < 1
	if v.IsInf() || v.Sign() != 0 && v.MantExp(nil) > ft.MaxExp()+1 {
		return ir.Nil, p.errorf(vst, "float literal out of range of %v: %v", ft, s)
	}

	return p.f.Append(p.blk, ir.FloatLit{Val: v}, ft), nil
}

func (p *parser) builtin() (ir.ID, error) {
	st := p.i

	name, err := p.ident()
	if err != nil {
		return ir.Nil, err
	}

	var ts []tp.Type

	if p.punct('<') {
		for !p.punct('>') {
			if len(ts) != 0 {
				if err = p.expect(','); err != nil {
					return ir.Nil, err
				}
			}

			t, err := p.typ()
			if err != nil {
				return ir.Nil, err
			}

			ts = append(ts, t)
		}
	}

	args, err := p.values()
	if err != nil {
		return ir.Nil, err
	}

	res, err := p.resultType()
	if err != nil {
		return ir.Nil, err
	}

	if info, ok := builtin.Lookup(name); ok {
		r, err := info.Check(ts, p.types(args))
		if err != nil {
			return ir.Nil, p.errorf(st, "%v", err)
		}

		if res != nil && !tp.Equal(res, r) {
			return ir.Nil, p.errorf(st, "%v: result type mismatch: %v, expected %v", name, res, r)
		}

		res = r
	} else if res == nil {
		return ir.Nil, p.errorf(st, "unknown builtin needs a result type: %v", name)
	}

	return p.f.Append(p.blk, ir.Builtin{Name: name, Types: ts}, res, args...), nil
}

func (p *parser) resultType() (tp.Type, error) {
	if !p.punct(':') {
		return nil, nil
	}

	return p.typ()
}

func (p *parser) tuple() (ir.ID, error) {
	args, err := p.values()
	if err != nil {
		return ir.Nil, err
	}

	return p.f.Append(p.blk, ir.Tuple{}, tp.Tuple{Elems: p.types(args)}, args...), nil
}

func (p *parser) structLit() (ir.ID, error) {
	st := p.i

	t, err := p.typ()
	if err != nil {
		return ir.Nil, err
	}

	s, ok := t.(tp.Struct)
	if !ok {
		return ir.Nil, p.errorf(st, "struct type expected: %v", t)
	}

	args, err := p.values()
	if err != nil {
		return ir.Nil, err
	}

	if len(args) != len(s.Fields) {
		return ir.Nil, p.errorf(st, "%d values for %d fields", len(args), len(s.Fields))
	}

	for i, a := range args {
		if !tp.Equal(p.f.Insts[a].Type, s.Fields[i].Type) {
			return ir.Nil, p.errorf(st, "field %v: type mismatch: %v", s.Fields[i].Name, p.f.Insts[a].Type)
		}
	}

	return p.f.Append(p.blk, ir.Struct{}, s, args...), nil
}

func (p *parser) tupleExtract() (ir.ID, error) {
	st := p.i

	x, err := p.value()
	if err != nil {
		return ir.Nil, err
	}

	if err = p.expect(','); err != nil {
		return ir.Nil, err
	}

	idx, err := p.integer()
	if err != nil {
		return ir.Nil, err
	}

	t, ok := p.f.Insts[x].Type.(tp.Tuple)
	if !ok || idx >= len(t.Elems) {
		return ir.Nil, p.errorf(st, "bad tuple index %d of %v", idx, p.f.Insts[x].Type)
	}

	return p.f.Append(p.blk, ir.TupleExtract{Index: idx}, t.Elems[idx], x), nil
}

func (p *parser) structExtract() (ir.ID, error) {
	st := p.i

	x, err := p.value()
	if err != nil {
		return ir.Nil, err
	}

	if err = p.expect(','); err != nil {
		return ir.Nil, err
	}

	field, err := p.ident()
	if err != nil {
		return ir.Nil, err
	}

	t, ok := p.f.Insts[x].Type.(tp.Struct)
	if !ok {
		return ir.Nil, p.errorf(st, "struct expected: %v", p.f.Insts[x].Type)
	}

	i := t.Field(field)
	if i < 0 {
		return ir.Nil, p.errorf(st, "no field %v in %v", field, t)
	}

	return p.f.Append(p.blk, ir.StructExtract{Field: field}, t.Fields[i].Type, x), nil
}

func (p *parser) call() (ir.ID, error) {
	name, err := p.ident()
	if err != nil {
		return ir.Nil, err
	}

	args, err := p.values()
	if err != nil {
		return ir.Nil, err
	}

	res, err := p.resultType()
	if err != nil {
		return ir.Nil, err
	}

	return p.f.Append(p.blk, ir.Call{Func: name}, res, args...), nil
}

func (p *parser) ret() (ir.ID, error) {
	if p.peek() != '%' {
		return p.f.Append(p.blk, ir.Return{}, nil), nil
	}

	x, err := p.value()
	if err != nil {
		return ir.Nil, err
	}

	return p.f.Append(p.blk, ir.Return{}, nil, x), nil
}

func (p *parser) br() (ir.ID, error) {
	id := p.f.Append(p.blk, ir.Br{}, nil)

	err := p.target(id, 0)

	return id, err
}

func (p *parser) condBr() (ir.ID, error) {
	c, err := p.value()
	if err != nil {
		return ir.Nil, err
	}

	id := p.f.Append(p.blk, ir.CondBr{}, nil, c)

	for slot := 0; slot < 2; slot++ {
		if err = p.expect(','); err != nil {
			return ir.Nil, err
		}

		if err = p.target(id, slot); err != nil {
			return ir.Nil, err
		}
	}

	return id, nil
}

func (p *parser) target(id ir.ID, slot int) error {
	p.skip()

	st := p.i

	l, err := p.ident()
	if err != nil {
		return err
	}

	p.fixups = append(p.fixups, fixup{id: id, slot: slot, label: l, pos: st})

	return nil
}

// source parses optional location and source expression suffixes.
func (p *parser) source() (src ir.Source, err error) {
	if p.keyword("loc") {
		src.Loc.File, err = p.str()
		if err != nil {
			return src, err
		}

		if err = p.expect(':'); err != nil {
			return src, err
		}

		if src.Loc.Line, err = p.integer(); err != nil {
			return src, err
		}

		if err = p.expect(':'); err != nil {
			return src, err
		}

		if src.Loc.Col, err = p.integer(); err != nil {
			return src, err
		}
	}

	if p.keyword("expr") {
		e := &ir.Expr{}

		e.Type, err = p.ident()
		if err != nil {
			return src, err
		}

		if err = p.expect('('); err != nil {
			return src, err
		}

		for !p.punct(')') {
			if len(e.Args) != 0 {
				if err = p.expect(','); err != nil {
					return src, err
				}
			}

			a, err := p.ident()
			if err != nil {
				return src, err
			}

			e.Args = append(e.Args, a)
		}

		src.Expr = e
	}

	return src, nil
}
