package format

import (
	"context"

	"github.com/nikandfor/hacked/hfmt"
	"github.com/plusplusswift/swift/compiler/builtin"
	"github.com/plusplusswift/swift/compiler/ir"
	"github.com/plusplusswift/swift/compiler/tp"
	"tlog.app/go/errors"
)

// names maps instructions to their printed numbers.
// Every instruction takes a number, so parsing the output
// gives the same numbers back as IDs.
type names map[ir.ID]int

func Module(ctx context.Context, b []byte, m *ir.Module) (_ []byte, err error) {
	for i, f := range m.Funcs {
		if i != 0 {
			b = append(b, '\n')
		}

		b, err = Func(ctx, b, f)
		if err != nil {
			return nil, errors.Wrap(err, "func %v", f.Name)
		}
	}

	return b, nil
}

func Func(ctx context.Context, b []byte, f *ir.Func) (_ []byte, err error) {
	ns := names{}

	f.Range(func(id ir.ID, in *ir.Inst) bool {
		ns[id] = len(ns)
		return true
	})

	b = app(b, 0, "func %v {\n", f.Name)

	for _, blk := range f.Blocks {
		b = app(b, 0, "%v:\n", blk.Label)

		for _, id := range blk.Code {
			b, err = formatInst(ctx, b, f, ns, id)
			if err != nil {
				return nil, errors.Wrap(err, "inst %d", id)
			}
		}
	}

	b = app(b, 0, "}\n")

	return b, nil
}

func formatInst(ctx context.Context, b []byte, f *ir.Func, ns names, id ir.ID) ([]byte, error) {
	in := f.Insts[id]

	b = app(b, 1, "")

	if in.Type != nil {
		b = app(b, 0, "%%%d = ", ns[id])
	}

	switch op := in.Op.(type) {
	case ir.Arg:
		b = app(b, 0, "arg %v", in.Type)
	case ir.IntLit:
		b = app(b, 0, "integer_literal %v, %s", in.Type, op.Val.Text(isSigned(in)))
	case ir.FloatLit:
		b = app(b, 0, "float_literal %v, %s", in.Type, op.Val.Text('g', -1))
	case ir.Builtin:
		b = app(b, 0, "builtin %s", op.Name)

		if len(op.Types) != 0 {
			b = append(b, '<')

			for i, t := range op.Types {
				if i != 0 {
					b = append(b, ", "...)
				}

				b = append(b, t.String()...)
			}

			b = append(b, '>')
		}

		b = values(b, ns, in.Args)

		if _, ok := builtin.Lookup(op.Name); !ok {
			b = app(b, 0, " : %v", in.Type)
		}
	case ir.Tuple:
		b = append(b, "tuple "...)
		b = values(b, ns, in.Args)
	case ir.Struct:
		b = app(b, 0, "struct %v ", in.Type)
		b = values(b, ns, in.Args)
	case ir.TupleExtract:
		b = app(b, 0, "tuple_extract %%%d, %d", ns[in.Args[0]], op.Index)
	case ir.StructExtract:
		b = app(b, 0, "struct_extract %%%d, %s", ns[in.Args[0]], op.Field)
	case ir.Call:
		b = app(b, 0, "call %s", op.Func)
		b = values(b, ns, in.Args)

		if in.Type != nil {
			b = app(b, 0, " : %v", in.Type)
		}
	case ir.Return:
		b = append(b, "return"...)

		if len(in.Args) != 0 {
			b = app(b, 0, " %%%d", ns[in.Args[0]])
		}
	case ir.Br:
		b = app(b, 0, "br %s", f.Blocks[op.To].Label)
	case ir.CondBr:
		b = app(b, 0, "cond_br %%%d, %s, %s", ns[in.Args[0]], f.Blocks[op.Then].Label, f.Blocks[op.Else].Label)
	default:
		return nil, errors.New("unsupported instruction: %T", op)
	}

	b = source(b, in.Src)
	b = append(b, '\n')

	return b, nil
}

func values(b []byte, ns names, args []ir.ID) []byte {
	b = append(b, '(')

	for i, a := range args {
		if i != 0 {
			b = append(b, ", "...)
		}

		b = app(b, 0, "%%%d", ns[a])
	}

	return append(b, ')')
}

func source(b []byte, src ir.Source) []byte {
	if l := src.Loc; l.IsValid() {
		b = append(b, " loc "...)
		b = quote(b, l.File)
		b = app(b, 0, ":%d:%d", l.Line, l.Col)
	}

	if e := src.Expr; e != nil {
		b = app(b, 0, " expr %s(", e.Type)

		for i, a := range e.Args {
			if i != 0 {
				b = append(b, ", "...)
			}

			b = append(b, a...)
		}

		b = append(b, ')')
	}

	return b
}

func quote(b []byte, s string) []byte {
	b = append(b, '"')

	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b = append(b, '\\')
		}

		b = append(b, s[i])
	}

	return append(b, '"')
}

// isSigned is false for i1 so flags print as 0 and 1.
func isSigned(in *ir.Inst) bool {
	t, _ := in.Type.(tp.Int)

	return t.Signed && t.Bits > 1
}

func app(b []byte, d int, f string, args ...any) []byte {
	const tabs = "\t\t\t\t\t\t\t\t\t\t\t\t\t\t\t"
	b = append(b, tabs[:d]...)
	b = hfmt.Appendf(b, f, args...)
	return b
}
