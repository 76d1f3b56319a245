package fold

import (
	"github.com/plusplusswift/swift/compiler/apint"
	"github.com/plusplusswift/swift/compiler/builtin"
	"github.com/plusplusswift/swift/compiler/tp"
)

// CheckedArithmetic computes lhs op rhs wrapped to their width.
// Overflowed is set if the exact result doesn't fit.
func CheckedArithmetic(k builtin.Kind, signed bool, lhs, rhs apint.Int) (r apint.Int, overflowed bool) {
	switch {
	case k == builtin.AddWithOverflow && signed:
		return lhs.SAddOv(rhs)
	case k == builtin.AddWithOverflow:
		return lhs.UAddOv(rhs)
	case k == builtin.SubWithOverflow && signed:
		return lhs.SSubOv(rhs)
	case k == builtin.SubWithOverflow:
		return lhs.USubOv(rhs)
	case k == builtin.MulWithOverflow && signed:
		return lhs.SMulOv(rhs)
	case k == builtin.MulWithOverflow:
		return lhs.UMulOv(rhs)
	}

	panic(k)
}

// foldOverflow folds to a (result, overflow) pair.
// An overflow is an error only when the call asks for a report.
func foldOverflow(c call) (Value, Status) {
	x, ok := c.lit(0)
	if !ok {
		return nil, NotFoldable
	}

	y, ok := c.lit(1)
	if !ok {
		return nil, NotFoldable
	}

	r, ov := CheckedArithmetic(c.info.Kind, c.info.Signed, x, y)

	if ov && c.shouldReport() {
		c.reportOverflow(x, y)

		return nil, Failed
	}

	flag := apint.FromInt64(1, 0)
	if ov {
		flag = apint.FromInt64(1, 1)
	}

	return Tuple{
		Elems: []Value{
			Int{Val: r, Type: c.op.Types[0].(tp.Int)},
			Int{Val: flag, Type: tp.Bool},
		},
		Type: c.in.Type.(tp.Tuple),
	}, Folded
}

func (c call) shouldReport() bool {
	if !c.info.Report {
		return false
	}

	flag, ok := c.lit(2)

	return ok && flag.IsOne()
}

func (c call) reportOverflow(x, y apint.Int) {
	signed := c.info.Signed
	lhs, rhs := x.Text(signed), y.Text(signed)

	if typ, ok := operandType(c); ok {
		c.sink.ArithmeticOverflow(c.loc(), lhs, c.info.Op, rhs, typ)
		return
	}

	c.sink.ArithmeticOverflowGeneric(c.loc(), lhs, c.info.Op, rhs, signed, x.Width())
}

// operandType infers the source type the user operates on
// if the instruction was lowered from a call with two arguments of the same type.
func operandType(c call) (string, bool) {
	e := c.in.Src.Expr
	if e == nil || len(e.Args) != 2 || e.Args[0] != e.Args[1] || e.Args[0] == "" {
		return "", false
	}

	return e.Args[0], true
}
