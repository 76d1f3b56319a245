package fold

import (
	"math/big"

	"github.com/plusplusswift/swift/compiler/apint"
	"github.com/plusplusswift/swift/compiler/builtin"
	"github.com/plusplusswift/swift/compiler/diag"
	"github.com/plusplusswift/swift/compiler/ir"
	"github.com/plusplusswift/swift/compiler/tp"
)

type (
	Status int

	// Value is a folded result to be materialized by the caller.
	Value interface {
		value()
	}

	Int struct {
		Val  apint.Int
		Type tp.Int
	}

	Float struct {
		Val  *big.Float
		Type tp.Float
	}

	// Tuple of literal values.
	Tuple struct {
		Elems []Value
		Type  tp.Tuple
	}

	// Ref is an already existing value.
	Ref ir.ID

	// call is a builtin instruction being folded.
	call struct {
		f    *ir.Func
		in   *ir.Inst
		info *builtin.Info
		op   ir.Builtin

		sink diag.Sink
	}

	folder func(c call) (Value, Status)
)

const (
	NotFoldable Status = iota
	Folded
	Failed // evaluation error, diagnostic is reported
)

var folders map[builtin.Kind]folder

func init() {
	folders = map[builtin.Kind]folder{
		builtin.AddWithOverflow: foldOverflow,
		builtin.SubWithOverflow: foldOverflow,
		builtin.MulWithOverflow: foldOverflow,

		builtin.Trunc: foldCast,
		builtin.ZExt:  foldCast,
		builtin.SExt:  foldCast,

		builtin.SDiv:      foldDivision,
		builtin.ExactSDiv: foldDivision,
		builtin.SRem:      foldDivision,
		builtin.UDiv:      foldDivision,
		builtin.ExactUDiv: foldDivision,
		builtin.URem:      foldDivision,

		builtin.STruncWithOverflow: foldCheckedTrunc,
		builtin.UTruncWithOverflow: foldCheckedTrunc,

		builtin.IToFPWithOverflow: foldIToFP,
	}
}

func (Int) value()   {}
func (Float) value() {}
func (Tuple) value() {}
func (Ref) value()   {}

// Inst evaluates instruction id of f using its current operands.
// It never modifies f. Evaluation errors are reported to sink
// and result in Failed.
func Inst(f *ir.Func, id ir.ID, sink diag.Sink) (Value, Status) {
	in := f.Inst(id)
	if in == nil {
		return nil, NotFoldable
	}

	switch op := in.Op.(type) {
	case ir.Builtin:
		info, ok := builtin.Lookup(op.Name)
		if !ok {
			return nil, NotFoldable
		}

		fn, ok := folders[info.Kind]
		if !ok {
			return nil, NotFoldable
		}

		return fn(call{
			f:    f,
			in:   in,
			info: info,
			op:   op,
			sink: sink,
		})
	case ir.TupleExtract:
		return AggregateExtract(f, in.Args[0], op.Index)
	case ir.StructExtract:
		st, ok := f.Insts[in.Args[0]].Type.(tp.Struct)
		if !ok {
			return nil, NotFoldable
		}

		return AggregateExtract(f, in.Args[0], st.Field(op.Field))
	case ir.IntLit, ir.FloatLit, ir.Arg, ir.Tuple, ir.Struct, ir.Call, ir.Return, ir.Br, ir.CondBr:
		return nil, NotFoldable
	}

	return nil, NotFoldable
}

func (s Status) String() string {
	switch s {
	case Folded:
		return "folded"
	case Failed:
		return "failed"
	}

	return "not_foldable"
}

// lit returns operand i if it's an integer literal.
func (c call) lit(i int) (apint.Int, bool) {
	x, _, ok := c.f.IntLit(c.in.Args[i])

	return x.Val, ok
}

func (c call) loc() ir.Loc {
	return c.in.Src.Loc
}
