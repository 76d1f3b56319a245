package fold

import (
	"github.com/plusplusswift/swift/compiler/apint"
	"github.com/plusplusswift/swift/compiler/builtin"
	"github.com/plusplusswift/swift/compiler/tp"
	"tlog.app/go/errors"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrOverflow       = errors.New("overflow")
	ErrInexact        = errors.New("inexact division")
)

// Division computes a quotient or a remainder.
func Division(k builtin.Kind, num, den apint.Int) (apint.Int, error) {
	if den.IsZero() {
		return apint.Int{}, ErrDivisionByZero
	}

	switch k {
	case builtin.SDiv, builtin.ExactSDiv:
		r, ov := num.SDivOv(den)
		if ov {
			return r, ErrOverflow
		}

		if k == builtin.ExactSDiv && !num.SRem(den).IsZero() {
			return r, ErrInexact
		}

		return r, nil
	case builtin.SRem:
		return num.SRem(den), nil
	case builtin.UDiv, builtin.ExactUDiv:
		r := num.UDiv(den)

		if k == builtin.ExactUDiv && !num.URem(den).IsZero() {
			return r, ErrInexact
		}

		return r, nil
	case builtin.URem:
		return num.URem(den), nil
	}

	panic(k)
}

func foldDivision(c call) (Value, Status) {
	den, ok := c.lit(1)
	if !ok {
		return nil, NotFoldable
	}

	if den.IsZero() {
		c.sink.DivisionByZero(c.loc())

		return nil, Failed
	}

	num, ok := c.lit(0)
	if !ok {
		return nil, NotFoldable
	}

	r, err := Division(c.info.Kind, num, den)
	switch err {
	case nil:
	case ErrOverflow:
		c.sink.DivisionOverflow(c.loc(), num.Text(true), "/", den.Text(true))

		return nil, Failed
	default:
		return nil, NotFoldable
	}

	return Int{Val: r, Type: c.op.Types[0].(tp.Int)}, Folded
}
