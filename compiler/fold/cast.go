package fold

import (
	"github.com/plusplusswift/swift/compiler/apint"
	"github.com/plusplusswift/swift/compiler/builtin"
	"github.com/plusplusswift/swift/compiler/tp"
)

// WidthCast converts src to w bits. It never fails.
func WidthCast(k builtin.Kind, src apint.Int, w int) apint.Int {
	switch k {
	case builtin.Trunc:
		return src.Trunc(w)
	case builtin.ZExt:
		return src.ZExt(w)
	case builtin.SExt:
		return src.SExt(w)
	}

	panic(k)
}

// CheckedTruncation truncates src to w bits.
// It fails if extending the result back doesn't give src.
func CheckedTruncation(src apint.Int, w int, signed bool) (apint.Int, bool) {
	r := src.Trunc(w)

	var back apint.Int

	if signed {
		back = r.SExt(src.Width())
	} else {
		back = r.ZExt(src.Width())
	}

	return r, back.Equal(src)
}

func foldCast(c call) (Value, Status) {
	x, ok := c.lit(0)
	if !ok {
		return nil, NotFoldable
	}

	to := c.op.Types[1].(tp.Int)

	return Int{
		Val:  WidthCast(c.info.Kind, x, int(to.Bits)),
		Type: to,
	}, Folded
}

func foldCheckedTrunc(c call) (Value, Status) {
	x, ok := c.lit(0)
	if !ok {
		return nil, NotFoldable
	}

	to := c.op.Types[1].(tp.Int)

	r, ok := CheckedTruncation(x, int(to.Bits), c.info.Signed)
	if !ok {
		c.reportLiteralOverflow(to)

		return nil, Failed
	}

	return Int{Val: r, Type: to}, Folded
}

// reportLiteralOverflow names the source expression type if known.
// Code without a location is usually synthesized so it's only a warning.
func (c call) reportLiteralOverflow(to tp.Type) {
	typ := to.String()

	if e := c.in.Src.Expr; e != nil && e.Type != "" {
		typ = e.Type
	}

	if !c.loc().IsValid() {
		c.sink.LiteralOverflowWarning(c.loc(), typ)
		return
	}

	c.sink.LiteralOverflow(c.loc(), typ)
}
